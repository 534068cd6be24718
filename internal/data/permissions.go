// Filename: internal/data/permissions.go
package data

import (
	"database/sql"
	"slices"

	"github.com/lib/pq"
)

/************************************************************************************************************/
// Permission Declarations
/************************************************************************************************************/

// Permission codes.
const (
	PermFlightsRead        = "flights:read"
	PermFlightsWrite       = "flights:write"
	PermReservationsCreate = "reservations:create"
	PermManifestRead       = "manifest:read"
	PermUsersRead          = "users:read"
)

// AllPermissions lists every code the seed creates.
var AllPermissions = Permissions{
	PermFlightsRead,
	PermFlightsWrite,
	PermReservationsCreate,
	PermManifestRead,
	PermUsersRead,
}

// PermissionModel struct to interact with the permissions table in the database
type PermissionModel struct {
	DB *sql.DB
}

// Permissions is a list of permission codes.
type Permissions []string

// Includes reports whether code is in p.
func (p Permissions) Includes(code string) bool {
	return slices.Contains(p, code)
}

// ForRole returns the permissions granted to new accounts of role.
func ForRole(role string) (Permissions, error) {
	switch role {
	case RoleUser:
		return Permissions{PermFlightsRead, PermReservationsCreate}, nil
	case RoleAdmin:
		return slices.Clone(AllPermissions), nil
	default:
		return nil, ErrInvalidRole
	}
}

/*************************************************************************************************************/
// Methods
/*************************************************************************************************************/

// GetAllForUser returns the codes granted to userID.
func (m *PermissionModel) GetAllForUser(userID int64) (Permissions, error) {
	query := `
		SELECT p.code
		FROM permissions p
		INNER JOIN users_permissions up ON up.permission_id = p.id
		WHERE up.user_id = $1
		ORDER BY p.code`

	ctx, cancel := getContext()
	defer cancel()

	rows, err := m.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var permissions Permissions
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, err
		}
		permissions = append(permissions, code)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return permissions, nil
}

// AddForUser grants codes to userID. Codes already granted are skipped.
func (m *PermissionModel) AddForUser(userID int64, codes ...string) error {
	cleanCodes := slices.Compact(slices.Sorted(slices.Values(codes)))

	query := `
		INSERT INTO users_permissions (user_id, permission_id)
		SELECT $1, p.id
		FROM permissions p
		WHERE p.code = ANY($2)
		ON CONFLICT DO NOTHING`

	ctx, cancel := getContext()
	defer cancel()

	_, err := m.DB.ExecContext(ctx, query, userID, pq.Array(cleanCodes))
	return err
}

// GrantRole grants userID the default permissions of role.
func (m *PermissionModel) GrantRole(userID int64, role string) error {
	codes, err := ForRole(role)
	if err != nil {
		return err
	}
	return m.AddForUser(userID, codes...)
}

// ClearPermissions removes every permission of userID.
func (m *PermissionModel) ClearPermissions(userID int64) error {
	query := `
		DELETE FROM users_permissions
		WHERE user_id = $1`

	ctx, cancel := getContext()
	defer cancel()

	result, err := m.DB.ExecContext(ctx, query, userID)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNoRecords
	}

	return nil
}
