// File: internal/data/models.go
package data

import (
	"database/sql"
	_ "embed"
)

//go:embed schema.sql
var schemaSQL string

// Models groups every table wrapper behind one value handed to the API.
type Models struct {
	Permissions  PermissionModel
	Tokens       TokenModel
	Users        UserModel
	Flights      FlightModel
	Reservations ReservationModel
	Exports      ExportHistoryModel
}

func NewModels(db *sql.DB) Models {
	return Models{
		Permissions:  PermissionModel{DB: db},
		Tokens:       TokenModel{DB: db},
		Users:        UserModel{DB: db},
		Flights:      FlightModel{DB: db},
		Reservations: ReservationModel{DB: db},
		Exports:      ExportHistoryModel{DB: db},
	}
}

// EnsureSchema creates any missing table. Every statement is idempotent.
func EnsureSchema(db *sql.DB) error {
	ctx, cancel := getContext()
	defer cancel()

	_, err := db.ExecContext(ctx, schemaSQL)
	return err
}
