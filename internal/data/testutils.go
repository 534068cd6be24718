// File: internal/data/testutils.go
// Description: Database helpers for integration tests

package data

import (
	"database/sql"
	"fmt"
	"os"
	"testing"

	_ "github.com/lib/pq"
)

// TestDSNEnv names the variable holding the DSN of a disposable database.
// Integration tests are skipped when it is unset.
const TestDSNEnv = "VUELOS_TEST_DB_DSN"

// OpenTestDB connects to the test database, creates the schema and empties
// every table. The test is skipped when no DSN is configured.
func OpenTestDB(t testing.TB) *sql.DB {
	t.Helper()

	dsn := os.Getenv(TestDSNEnv)
	if dsn == "" {
		t.Skipf("%s not set", TestDSNEnv)
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := EnsureSchema(db); err != nil {
		t.Fatalf("create schema: %v", err)
	}
	tu := NewTestUtils(db)
	if err := tu.CleanDatabase(); err != nil {
		t.Fatalf("clean test db: %v", err)
	}
	if err := tu.SeedPermissions(); err != nil {
		t.Fatalf("seed permissions: %v", err)
	}
	return db
}

// TestUtils provides utility functions for testing database operations
type TestUtils struct {
	DB *sql.DB
}

func NewTestUtils(db *sql.DB) *TestUtils {
	return &TestUtils{DB: db}
}

// TruncateAllTables empties every table, children first.
func (tu *TestUtils) TruncateAllTables() error {
	tables := []string{
		"export_history",
		"reservations",
		"users_permissions",
		"tokens",
		"flights",
		"permissions",
		"users",
	}

	for _, table := range tables {
		if _, err := tu.DB.Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)); err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}
	return nil
}

// ResetIdentitySequences restarts every bigserial at 1.
func (tu *TestUtils) ResetIdentitySequences() error {
	sequences := []string{
		"users_id_seq",
		"permissions_id_seq",
		"flights_id_seq",
		"reservations_id_seq",
		"export_history_id_seq",
	}

	for _, seq := range sequences {
		if _, err := tu.DB.Exec(fmt.Sprintf("ALTER SEQUENCE %s RESTART WITH 1", seq)); err != nil {
			return fmt.Errorf("failed to reset sequence %s: %w", seq, err)
		}
	}
	return nil
}

// CleanDatabase truncates all tables and resets sequences.
func (tu *TestUtils) CleanDatabase() error {
	if err := tu.TruncateAllTables(); err != nil {
		return err
	}
	return tu.ResetIdentitySequences()
}

// SeedPermissions inserts every permission code.
func (tu *TestUtils) SeedPermissions() error {
	for _, code := range AllPermissions {
		_, err := tu.DB.Exec(`INSERT INTO permissions (code) VALUES ($1) ON CONFLICT (code) DO NOTHING`, code)
		if err != nil {
			return fmt.Errorf("failed to seed permission %s: %w", code, err)
		}
	}
	return nil
}

// SeedTestUser inserts an active user with the given role and password and
// grants the role's permissions.
func (tu *TestUtils) SeedTestUser(email, password, role string) (*User, error) {
	u := &User{
		Email:     email,
		Role:      role,
		FirstName: "Prueba",
		LastName:  "Usuario",
		IsActive:  true,
	}
	if err := u.Password.Set(password); err != nil {
		return nil, err
	}

	m := NewModels(tu.DB)
	if err := m.Users.Insert(u); err != nil {
		return nil, fmt.Errorf("failed to seed test user: %w", err)
	}
	if err := m.Permissions.GrantRole(u.ID, role); err != nil {
		return nil, fmt.Errorf("failed to grant %s permissions: %w", role, err)
	}
	return u, nil
}

// SeedTestFlight inserts a Bogotá to Medellín flight with seats seats.
func (tu *TestUtils) SeedTestFlight(code string, seats int) (*Flight, error) {
	f := &Flight{
		Code:        code,
		Airline:     "Avianca",
		Origin:      "Bogotá",
		Destination: "Medellín",
		Date:        "2025-11-15",
		Departure:   "07:00",
		Arrival:     "08:00",
		Price:       350000,
		Seats:       seats,
	}
	if err := (&FlightModel{DB: tu.DB}).Insert(f); err != nil {
		return nil, fmt.Errorf("failed to seed test flight: %w", err)
	}
	return f, nil
}
