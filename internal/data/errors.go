// File: internal/data/errors.go
package data

import (
	"errors"

	"github.com/lib/pq"
)

// Define custom error variables for common error scenarios.
var (
	ErrRecordNotFound    = errors.New("record not found")
	ErrEditConflict      = errors.New("edit conflict")
	ErrNoRecords         = errors.New("no matching records found")
	ErrDuplicateEmail    = errors.New("duplicate email")
	ErrDuplicateCode     = errors.New("duplicate flight code")
	ErrNoSeats           = errors.New("not enough seats available")
	ErrFlightReserved    = errors.New("flight has reservations")
	ErrAlreadyCancelled  = errors.New("reservation already cancelled")
	ErrInvalidRole       = errors.New("invalid role specified")
	ErrAccountNotActive  = errors.New("account is not active")
	ErrInvalidToken      = errors.New("invalid or expired token")
	ErrInvalidCredential = errors.New("invalid credentials")
)

// Postgres error codes translated by the models.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// pgCode returns the SQLSTATE of err, or "" when err is not a driver error.
func pgCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}
