// File: cmd/api/reservations.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Pedro-J-Kukul/vuelosapi/internal/data"
	"github.com/Pedro-J-Kukul/vuelosapi/internal/form"
	"github.com/Pedro-J-Kukul/vuelosapi/internal/mailer"
	"github.com/Pedro-J-Kukul/vuelosapi/internal/schemas"
)

// Global errors of the reservation form.
const (
	msgIncompleteProfile = "Por favor completa tus datos antes de reservar"
	msgNoSeats           = "No hay suficientes asientos disponibles"
	msgFlightNotFound    = "Vuelo no encontrado"
)

// receipt is the data of the reservation receipt template.
type receipt struct {
	Name     string
	Code     string
	Quantity int
	Total    int64
	Flight   *data.Flight
}

func newReceipt(user *data.User, r *data.Reservation) receipt {
	return receipt{
		Name:     user.FullName(),
		Code:     r.Code.String(),
		Quantity: r.Quantity,
		Total:    r.Total(),
		Flight:   r.Flight,
	}
}

// createReservationHandler books seats through the reservation form. The
// passenger profile must be complete first.
func (app *app) createReservationHandler(w http.ResponseWriter, r *http.Request) {
	in, err := app.readFormValues(w, r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	user := app.contextGetUser(r)
	reservation := &data.Reservation{UserID: user.ID}

	ok := app.runForm(w, r, schemas.ReservationForm, nil, in, func(_ context.Context, values form.Values) error {
		if !user.HasCompleteProfile() {
			return newFormError(http.StatusForbidden, msgIncompleteProfile)
		}

		flightID, err := values.Int("vueloId")
		if err != nil {
			return err
		}
		quantity, err := values.Int("cantidad")
		if err != nil {
			return err
		}
		reservation.FlightID = flightID
		reservation.Quantity = int(quantity)

		err = app.models.Reservations.Insert(reservation)
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			return &formError{
				status: http.StatusUnprocessableEntity,
				msg:    msgFlightNotFound,
				fields: form.FieldErrors{"vueloId": msgFlightNotFound},
			}
		case errors.Is(err, data.ErrNoSeats):
			return &formError{
				status: http.StatusConflict,
				msg:    msgNoSeats,
				fields: form.FieldErrors{"cantidad": msgNoSeats},
			}
		}
		return err
	})
	if !ok {
		return
	}

	payload := newReceipt(user, reservation)
	app.background(func() {
		if err := app.mailer.Send(user.Email, mailer.ReceiptTemplate, payload); err != nil {
			app.logger.Error("failed to send receipt", "reservation_id", reservation.ID, "error", err)
		}
	})

	headers := make(http.Header)
	headers.Set("Location", fmt.Sprintf("/v1/reservations/%d/receipt", reservation.ID))

	err = app.writeJSON(w, http.StatusCreated, envelope{
		"reserva": reservation,
		"total":   data.FormatCOP(reservation.Total()),
	}, headers)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// listMyReservationsHandler lists the signed-in user's reservations.
func (app *app) listMyReservationsHandler(w http.ResponseWriter, r *http.Request) {
	user := app.contextGetUser(r)

	reservations, err := app.models.Reservations.GetAllForUser(user.ID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"reservas": reservations}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// showReceiptHandler renders the receipt of a reservation. Only its owner
// and administrators can see it.
func (app *app) showReceiptHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	reservation, err := app.models.Reservations.Get(id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	user := app.contextGetUser(r)
	owner := user
	if reservation.UserID != user.ID {
		if !user.IsAdmin() {
			app.notFoundResponse(w, r)
			return
		}
		owner, err = app.models.Users.GetByID(reservation.UserID)
		if err != nil {
			app.serverErrorResponse(w, r, err)
			return
		}
	}

	msg, err := app.mailer.Render(mailer.ReceiptTemplate, newReceipt(owner, reservation))
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{
		"reserva": reservation,
		"total":   data.FormatCOP(reservation.Total()),
		"recibo": map[string]string{
			"asunto": msg.Subject,
			"texto":  msg.PlainBody,
		},
	}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// cancelReservationHandler cancels one of the user's reservations and
// returns its seats.
func (app *app) cancelReservationHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	user := app.contextGetUser(r)
	err = app.models.Reservations.Cancel(id, user.ID)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		case errors.Is(err, data.ErrAlreadyCancelled):
			app.errorResponseJSON(w, r, http.StatusConflict, "la reserva ya fue cancelada")
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"message": "reserva cancelada"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
