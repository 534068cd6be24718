// File: internal/data/reservations.go
package data

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ----------------------------------------------------------------------
//
//	Definitions
//
// ----------------------------------------------------------------------

// Reservation states.
const (
	StatusConfirmed = "CONFIRMADA"
	StatusCancelled = "CANCELADA"
)

// Reservation books Quantity seats on a flight for one user.
type Reservation struct {
	ID        int64     `json:"id"`
	Code      uuid.UUID `json:"codigo"`
	UserID    int64     `json:"usuarioId"`
	FlightID  int64     `json:"vueloId"`
	Quantity  int       `json:"cantidad"`
	Status    string    `json:"estado"`
	CreatedAt time.Time `json:"fechaReserva"`
	Flight    *Flight   `json:"vuelo,omitempty"`
}

// Total is the amount due for the reservation. It is zero when the flight
// was not loaded.
func (r *Reservation) Total() int64 {
	if r.Flight == nil {
		return 0
	}
	return r.Flight.Price * int64(r.Quantity)
}

// Passenger is one manifest row: a confirmed reservation and the
// profile of the user who made it.
type Passenger struct {
	ReservationCode uuid.UUID `json:"codigoReserva"`
	Document        string    `json:"documento"`
	Name            string    `json:"nombre"`
	Email           string    `json:"correo"`
	Phone           string    `json:"celular"`
	BirthDate       string    `json:"nacimiento"`
	Quantity        int       `json:"cantidad"`
}

// ReservationModel wraps a sql.DB connection pool.
type ReservationModel struct {
	DB *sql.DB
}

// ----------------------------------------------------------------------
//
//	Database interaction methods
//
// ----------------------------------------------------------------------

// Insert books r.Quantity seats on r.FlightID. The seat count is decremented
// in the same transaction; ErrNoSeats is returned when the flight does not
// have enough left. On success r.Flight holds the updated flight.
func (m *ReservationModel) Insert(r *Reservation) error {
	ctx, cancel := getContext()
	defer cancel()

	tx, err := m.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	flight := &Flight{}
	err = scanFlight(tx.QueryRowContext(ctx, `
		UPDATE flights
		SET seats = seats - $1, version = version + 1
		WHERE id = $2 AND seats >= $1
		RETURNING `+flightColumns, r.Quantity, r.FlightID), flight)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return m.explainNoSeats(ctx, tx, r.FlightID)
		}
		return err
	}

	r.Code = uuid.New()
	r.Status = StatusConfirmed
	err = tx.QueryRowContext(ctx, `
		INSERT INTO reservations (code, user_id, flight_id, quantity, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		r.Code, r.UserID, r.FlightID, r.Quantity, r.Status,
	).Scan(&r.ID, &r.CreatedAt)
	if err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return err
	}
	r.Flight = flight
	return nil
}

// explainNoSeats tells a missing flight apart from a full one.
func (m *ReservationModel) explainNoSeats(ctx context.Context, tx *sql.Tx, flightID int64) error {
	var exists bool
	err := tx.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM flights WHERE id = $1)`, flightID).Scan(&exists)
	if err != nil {
		return err
	}
	if !exists {
		return ErrRecordNotFound
	}
	return ErrNoSeats
}

const reservationColumns = `r.id, r.code, r.user_id, r.flight_id, r.quantity, r.status, r.created_at,
	f.id, f.code, f.airline, f.origin, f.destination,
	to_char(f.flight_date, 'YYYY-MM-DD'), to_char(f.departure, 'HH24:MI'), to_char(f.arrival, 'HH24:MI'),
	f.price, f.seats, f.created_at, f.version`

func scanReservation(row interface{ Scan(...any) error }, r *Reservation) error {
	r.Flight = &Flight{}
	return scanFlight(row, r.Flight,
		&r.ID, &r.Code, &r.UserID, &r.FlightID, &r.Quantity, &r.Status, &r.CreatedAt,
	)
}

// Get retrieves a reservation and its flight.
func (m *ReservationModel) Get(id int64) (*Reservation, error) {
	if id < 1 {
		return nil, ErrRecordNotFound
	}

	query := `
		SELECT ` + reservationColumns + `
		FROM reservations r
		INNER JOIN flights f ON f.id = r.flight_id
		WHERE r.id = $1`

	ctx, cancel := getContext()
	defer cancel()

	r := &Reservation{}
	if err := scanReservation(m.DB.QueryRowContext(ctx, query, id), r); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return r, nil
}

// GetAllForUser lists a user's reservations, newest first.
func (m *ReservationModel) GetAllForUser(userID int64) ([]*Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations r
		INNER JOIN flights f ON f.id = r.flight_id
		WHERE r.user_id = $1
		ORDER BY r.created_at DESC, r.id DESC`

	ctx, cancel := getContext()
	defer cancel()

	rows, err := m.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reservations := []*Reservation{}
	for rows.Next() {
		r := &Reservation{}
		if err := scanReservation(rows, r); err != nil {
			return nil, err
		}
		reservations = append(reservations, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return reservations, nil
}

// Cancel marks a confirmed reservation owned by userID as cancelled and
// returns its seats to the flight. Reservations owned by someone else are
// reported as not found.
func (m *ReservationModel) Cancel(id, userID int64) error {
	ctx, cancel := getContext()
	defer cancel()

	tx, err := m.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var flightID int64
	var quantity int
	err = tx.QueryRowContext(ctx, `
		UPDATE reservations
		SET status = $1
		WHERE id = $2 AND user_id = $3 AND status = $4
		RETURNING flight_id, quantity`,
		StatusCancelled, id, userID, StatusConfirmed,
	).Scan(&flightID, &quantity)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return err
		}
		var status string
		err = tx.QueryRowContext(ctx, `SELECT status FROM reservations WHERE id = $1 AND user_id = $2`, id, userID).Scan(&status)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return ErrRecordNotFound
		case err != nil:
			return err
		default:
			return ErrAlreadyCancelled
		}
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE flights SET seats = seats + $1, version = version + 1 WHERE id = $2`,
		quantity, flightID)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// GetPassengers returns the manifest of a flight: one row per confirmed
// reservation.
func (m *ReservationModel) GetPassengers(flightID int64) ([]*Passenger, error) {
	query := `
		SELECT r.code, u.document_number,
			TRIM(BOTH ' ' FROM CONCAT_WS(' ', NULLIF(u.first_name, ''), NULLIF(u.middle_name, ''), NULLIF(u.last_name, ''), NULLIF(u.second_last_name, ''))),
			u.email, u.phone, COALESCE(to_char(u.birth_date, 'YYYY-MM-DD'), ''), r.quantity
		FROM reservations r
		INNER JOIN users u ON u.id = r.user_id
		WHERE r.flight_id = $1 AND r.status = $2
		ORDER BY r.created_at, r.id`

	ctx, cancel := getContext()
	defer cancel()

	rows, err := m.DB.QueryContext(ctx, query, flightID, StatusConfirmed)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	passengers := []*Passenger{}
	for rows.Next() {
		p := &Passenger{}
		if err := rows.Scan(&p.ReservationCode, &p.Document, &p.Name, &p.Email, &p.Phone, &p.BirthDate, &p.Quantity); err != nil {
			return nil, err
		}
		passengers = append(passengers, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return passengers, nil
}
