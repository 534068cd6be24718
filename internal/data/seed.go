// File: internal/data/seed.go
package data

import (
	"database/sql"
	"fmt"
)

// SeedUser is an account created by Seed.
type SeedUser struct {
	User     User
	Password string
}

// DefaultUsers are the demo passenger and the administrator. The demo
// passenger's phone has nine digits, so the profile starts incomplete.
var DefaultUsers = []SeedUser{
	{
		User: User{
			Email:          "pepito@gmail.com",
			Role:           RoleUser,
			DocumentType:   "CC",
			DocumentNumber: "84739728",
			FirstName:      "Pepito",
			LastName:       "Gómez",
			SecondLastName: "Alnurfio",
			Phone:          "300587687",
			BirthDate:      "1985-12-16",
			IsActive:       true,
		},
		Password: "123456",
	},
	{
		User: User{
			Email:          "admin@vueloscolombia.com",
			Role:           RoleAdmin,
			DocumentType:   "CC",
			DocumentNumber: "12345678",
			FirstName:      "Admin",
			LastName:       "Sistema",
			Phone:          "3101234567",
			BirthDate:      "1980-01-01",
			IsActive:       true,
		},
		Password: "admin123",
	},
}

// SampleFlights is the catalogue loaded on an empty database.
var SampleFlights = []Flight{
	{Code: "AV-801", Airline: "Avianca", Origin: "Bogotá", Destination: "Medellín", Date: "2025-11-15", Departure: "07:00", Arrival: "08:00", Price: 350000, Seats: 12},
	{Code: "LA-402", Airline: "LATAM", Origin: "Bogotá", Destination: "Medellín", Date: "2025-11-15", Departure: "14:30", Arrival: "15:30", Price: 320000, Seats: 8},
	{Code: "VG-205", Airline: "Viva Air", Origin: "Bogotá", Destination: "Medellín", Date: "2025-11-15", Departure: "18:45", Arrival: "19:45", Price: 280000, Seats: 5},
	{Code: "AV-602", Airline: "Avianca", Origin: "Medellín", Destination: "Cartagena", Date: "2025-11-16", Departure: "06:15", Arrival: "07:45", Price: 420000, Seats: 15},
	{Code: "WN-301", Airline: "Wingo", Origin: "Medellín", Destination: "Cartagena", Date: "2025-11-16", Departure: "12:00", Arrival: "13:30", Price: 380000, Seats: 3},
	{Code: "LA-508", Airline: "LATAM", Origin: "Cali", Destination: "Bogotá", Date: "2025-11-17", Departure: "09:20", Arrival: "10:20", Price: 290000, Seats: 20},
	{Code: "AV-710", Airline: "Avianca", Origin: "Cartagena", Destination: "Santa Marta", Date: "2025-11-18", Departure: "08:30", Arrival: "09:00", Price: 180000, Seats: 10},
	{Code: "EF-115", Airline: "EasyFly", Origin: "Bogotá", Destination: "Barranquilla", Date: "2025-11-19", Departure: "16:45", Arrival: "18:15", Price: 310000, Seats: 7},
	{Code: "VG-412", Airline: "Viva Air", Origin: "Medellín", Destination: "Cali", Date: "2025-11-20", Departure: "11:10", Arrival: "12:10", Price: 270000, Seats: 4},
	{Code: "LA-609", Airline: "LATAM", Origin: "Santa Marta", Destination: "Bogotá", Date: "2025-11-21", Departure: "13:25", Arrival: "14:55", Price: 390000, Seats: 18},
}

// SeedReport counts the rows Seed created.
type SeedReport struct {
	Users   int
	Flights int
}

// Seed creates the permissions, default users and sample flights that are
// missing. Running it again changes nothing.
func Seed(db *sql.DB) (SeedReport, error) {
	var report SeedReport
	models := NewModels(db)

	ctx, cancel := getContext()
	defer cancel()

	for _, code := range AllPermissions {
		_, err := db.ExecContext(ctx, `INSERT INTO permissions (code) VALUES ($1) ON CONFLICT (code) DO NOTHING`, code)
		if err != nil {
			return report, fmt.Errorf("seed permission %s: %w", code, err)
		}
	}

	for _, su := range DefaultUsers {
		u := su.User
		if err := u.Password.Set(su.Password); err != nil {
			return report, err
		}

		var id int64
		err := db.QueryRowContext(ctx, `
			INSERT INTO users (email, password_hash, role, document_type, document_number,
				first_name, middle_name, last_name, second_last_name, phone, birth_date, is_active)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11::date, $12)
			ON CONFLICT (email) DO NOTHING
			RETURNING id`,
			u.Email, u.Password.hash, u.Role, u.DocumentType, u.DocumentNumber,
			u.FirstName, u.MiddleName, u.LastName, u.SecondLastName, u.Phone, u.BirthDate, u.IsActive,
		).Scan(&id)
		if err == sql.ErrNoRows {
			continue
		}
		if err != nil {
			return report, fmt.Errorf("seed user %s: %w", u.Email, err)
		}
		if err := models.Permissions.GrantRole(id, u.Role); err != nil {
			return report, fmt.Errorf("seed permissions for %s: %w", u.Email, err)
		}
		report.Users++
	}

	for _, f := range SampleFlights {
		res, err := db.ExecContext(ctx, `
			INSERT INTO flights (code, airline, origin, destination, flight_date, departure, arrival, price, seats)
			VALUES ($1, $2, $3, $4, $5::date, $6::time, $7::time, $8, $9)
			ON CONFLICT (code) DO NOTHING`,
			f.Code, f.Airline, f.Origin, f.Destination, f.Date, f.Departure, f.Arrival, f.Price, f.Seats)
		if err != nil {
			return report, fmt.Errorf("seed flight %s: %w", f.Code, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			report.Flights++
		}
	}

	return report, nil
}
