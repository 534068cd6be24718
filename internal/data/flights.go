// File: internal/data/flights.go
package data

import (
	"database/sql"
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
)

// ----------------------------------------------------------------------
//
//	Definitions
//
// ----------------------------------------------------------------------

// Flight is a scheduled flight with its remaining seats. Prices are whole
// Colombian pesos. JSON keys match the flight form.
type Flight struct {
	ID          int64     `json:"id"`
	Code        string    `json:"codigo"`
	Airline     string    `json:"aerolinea"`
	Origin      string    `json:"origen"`
	Destination string    `json:"destino"`
	Date        string    `json:"fecha"`
	Departure   string    `json:"salida"`
	Arrival     string    `json:"llegada"`
	Price       int64     `json:"precio"`
	Seats       int       `json:"asientos"`
	CreatedAt   time.Time `json:"created_at"`
	Version     int       `json:"version"`
}

// FlightModel wraps a sql.DB connection pool.
type FlightModel struct {
	DB *sql.DB
}

// FlightFilter narrows a flight listing. Empty fields match everything.
type FlightFilter struct {
	Filter      Filter
	Origin      string
	Destination string
	Date        string
	Airline     string
	MinSeats    int
}

// FlightSortSafeList holds the accepted values of the sort parameter.
var FlightSortSafeList = []string{
	"id", "flight_date", "departure", "price", "seats", "airline",
	"-id", "-flight_date", "-departure", "-price", "-seats", "-airline",
}

// textPolicy strips all markup from admin-entered text.
var textPolicy = bluemonday.StrictPolicy()

// ----------------------------------------------------------------------
//
//	Methods
//
// ----------------------------------------------------------------------

// SanitizeText removes markup from s and trims it. Entities that the policy
// escapes are decoded again so plain text is stored.
func SanitizeText(s string) string {
	return strings.TrimSpace(html.UnescapeString(textPolicy.Sanitize(s)))
}

// Sanitize cleans every free-text field of f in place.
func (f *Flight) Sanitize() {
	f.Code = strings.ToUpper(SanitizeText(f.Code))
	f.Airline = SanitizeText(f.Airline)
	f.Origin = SanitizeText(f.Origin)
	f.Destination = SanitizeText(f.Destination)
}

// PriceCOP is Price formatted for display.
func (f *Flight) PriceCOP() string {
	return FormatCOP(f.Price)
}

// Route describes the flight as "origin → destination".
func (f *Flight) Route() string {
	return f.Origin + " → " + f.Destination
}

// ----------------------------------------------------------------------
//
//	Database interaction methods
//
// ----------------------------------------------------------------------

const flightColumns = `id, code, airline, origin, destination,
	to_char(flight_date, 'YYYY-MM-DD'), to_char(departure, 'HH24:MI'), to_char(arrival, 'HH24:MI'),
	price, seats, created_at, version`

func scanFlight(row interface{ Scan(...any) error }, f *Flight, extra ...any) error {
	dest := append(extra,
		&f.ID,
		&f.Code,
		&f.Airline,
		&f.Origin,
		&f.Destination,
		&f.Date,
		&f.Departure,
		&f.Arrival,
		&f.Price,
		&f.Seats,
		&f.CreatedAt,
		&f.Version,
	)
	return row.Scan(dest...)
}

// Insert sanitizes and stores a new flight.
func (m *FlightModel) Insert(f *Flight) error {
	f.Sanitize()

	query := `
		INSERT INTO flights (code, airline, origin, destination, flight_date, departure, arrival, price, seats)
		VALUES ($1, $2, $3, $4, $5::date, $6::time, $7::time, $8, $9)
		RETURNING id, created_at, version`

	ctx, cancel := getContext()
	defer cancel()

	err := m.DB.QueryRowContext(ctx, query,
		f.Code, f.Airline, f.Origin, f.Destination, f.Date, f.Departure, f.Arrival, f.Price, f.Seats,
	).Scan(&f.ID, &f.CreatedAt, &f.Version)
	if err != nil {
		if pgCode(err) == pgUniqueViolation {
			return ErrDuplicateCode
		}
		return err
	}
	return nil
}

// Get retrieves a flight by ID.
func (m *FlightModel) Get(id int64) (*Flight, error) {
	if id < 1 {
		return nil, ErrRecordNotFound
	}

	query := `SELECT ` + flightColumns + ` FROM flights WHERE id = $1`

	ctx, cancel := getContext()
	defer cancel()

	f := &Flight{}
	if err := scanFlight(m.DB.QueryRowContext(ctx, query, id), f); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return f, nil
}

// Update sanitizes and writes f, guarded by its version.
func (m *FlightModel) Update(f *Flight) error {
	f.Sanitize()

	query := `
		UPDATE flights
		SET code = $1, airline = $2, origin = $3, destination = $4, flight_date = $5::date,
			departure = $6::time, arrival = $7::time, price = $8, seats = $9, version = version + 1
		WHERE id = $10 AND version = $11
		RETURNING version`

	ctx, cancel := getContext()
	defer cancel()

	err := m.DB.QueryRowContext(ctx, query,
		f.Code, f.Airline, f.Origin, f.Destination, f.Date, f.Departure, f.Arrival, f.Price, f.Seats,
		f.ID, f.Version,
	).Scan(&f.Version)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return ErrEditConflict
		case pgCode(err) == pgUniqueViolation:
			return ErrDuplicateCode
		default:
			return err
		}
	}
	return nil
}

// Delete removes a flight. Flights that have reservations cannot be
// deleted.
func (m *FlightModel) Delete(id int64) error {
	if id < 1 {
		return ErrRecordNotFound
	}

	ctx, cancel := getContext()
	defer cancel()

	result, err := m.DB.ExecContext(ctx, `DELETE FROM flights WHERE id = $1`, id)
	if err != nil {
		if pgCode(err) == pgForeignKeyViolation {
			return ErrFlightReserved
		}
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// GetAll lists flights matching filter. City and airline filters are
// case-insensitive exact matches.
func (m *FlightModel) GetAll(filter FlightFilter) ([]*Flight, MetaData, error) {
	query := fmt.Sprintf(`
		SELECT COUNT(*) OVER(), %s
		FROM flights
		WHERE (LOWER(origin) = LOWER($1) OR $1 = '')
		  AND (LOWER(destination) = LOWER($2) OR $2 = '')
		  AND (flight_date = NULLIF($3, '')::date OR $3 = '')
		  AND (LOWER(airline) = LOWER($4) OR $4 = '')
		  AND seats >= $5
		ORDER BY %s %s, id ASC
		LIMIT $6 OFFSET $7`, flightColumns, filter.Filter.SortColumn(), filter.Filter.SortDirection())

	ctx, cancel := getContext()
	defer cancel()

	rows, err := m.DB.QueryContext(ctx, query,
		filter.Origin,
		filter.Destination,
		filter.Date,
		filter.Airline,
		filter.MinSeats,
		filter.Filter.Limit(),
		filter.Filter.Offset(),
	)
	if err != nil {
		return nil, MetaData{}, err
	}
	defer rows.Close()

	flights := []*Flight{}
	totalRecords := int64(0)

	for rows.Next() {
		f := &Flight{}
		if err := scanFlight(rows, f, &totalRecords); err != nil {
			return nil, MetaData{}, err
		}
		flights = append(flights, f)
	}
	if err := rows.Err(); err != nil {
		return nil, MetaData{}, err
	}

	return flights, CalculateMetaData(totalRecords, filter.Filter.Page, filter.Filter.PageSize), nil
}
