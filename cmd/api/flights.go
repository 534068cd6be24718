// File: cmd/api/flights.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/Pedro-J-Kukul/vuelosapi/internal/data"
	"github.com/Pedro-J-Kukul/vuelosapi/internal/form"
	"github.com/Pedro-J-Kukul/vuelosapi/internal/schemas"
	"github.com/Pedro-J-Kukul/vuelosapi/internal/validator"
)

const msgDuplicateFlightCode = "Ya existe un vuelo con este código"

// flightValues fills the flight form from a stored flight.
func flightValues(f *data.Flight) form.Values {
	return form.Values{
		"codigo":    f.Code,
		"aerolinea": f.Airline,
		"origen":    f.Origin,
		"destino":   f.Destination,
		"fecha":     f.Date,
		"salida":    f.Departure,
		"llegada":   f.Arrival,
		"precio":    strconv.FormatInt(f.Price, 10),
		"asientos":  strconv.Itoa(f.Seats),
	}
}

// applyFlight copies validated flight form values onto f.
func applyFlight(f *data.Flight, values form.Values) error {
	price, err := values.Int("precio")
	if err != nil {
		return err
	}
	seats, err := values.Int("asientos")
	if err != nil {
		return err
	}

	f.Code = values.Get("codigo")
	f.Airline = values.Get("aerolinea")
	f.Origin = values.Get("origen")
	f.Destination = values.Get("destino")
	f.Date = values.Get("fecha")
	f.Departure = values.Get("salida")
	f.Arrival = values.Get("llegada")
	f.Price = price
	f.Seats = int(seats)
	return nil
}

// passengerCount reads the leading number of a value such as "2 adultos".
// Anything unreadable counts as one passenger.
func passengerCount(s string) int {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return 1
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// readFlight resolves :id to a flight, writing the error response itself.
func (app *app) readFlight(w http.ResponseWriter, r *http.Request) (*data.Flight, bool) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return nil, false
	}

	flight, err := app.models.Flights.Get(id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return nil, false
	}
	return flight, true
}

// listFlightsHandler lists flights with optional filters.
func (app *app) listFlightsHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	v := validator.New()

	filter := data.FlightFilter{
		Filter:      app.readFilters(query, "flight_date", 20, data.FlightSortSafeList, v),
		Origin:      app.getSingleQueryParameter(query, "origen", ""),
		Destination: app.getSingleQueryParameter(query, "destino", ""),
		Date:        app.getSingleQueryParameter(query, "fecha", ""),
		Airline:     app.getSingleQueryParameter(query, "aerolinea", ""),
		MinSeats:    app.getSingleIntQueryParameter(query, "min_asientos", 0, v),
	}
	if filter.Date != "" {
		v.Check(validator.IsValidDate(filter.Date), "fecha", "debe tener el formato AAAA-MM-DD")
	}
	if data.ValidateFilters(v, filter.Filter); !v.IsValid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	flights, metadata, err := app.models.Flights.GetAll(filter)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"vuelos": flights, "metadata": metadata}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// searchFlightsHandler runs the search form over the query string and
// returns the flights with enough seats for the passengers.
func (app *app) searchFlightsHandler(w http.ResponseWriter, r *http.Request) {
	var (
		flights  []*data.Flight
		metadata data.MetaData
		criteria data.FlightFilter
	)

	ok := app.runForm(w, r, schemas.SearchForm, nil, queryValues(r.URL.Query()), func(_ context.Context, values form.Values) error {
		criteria = data.FlightFilter{
			Filter: data.Filter{
				Page:         1,
				PageSize:     data.MaxPageSize,
				SortBy:       "departure",
				SortSafeList: data.FlightSortSafeList,
			},
			Origin:      values.Get("origen"),
			Destination: values.Get("destino"),
			Date:        values.Get("fechaIda"),
			MinSeats:    passengerCount(values.Get("pasajeros")),
		}
		var err error
		flights, metadata, err = app.models.Flights.GetAll(criteria)
		return err
	})
	if !ok {
		return
	}

	err := app.writeJSON(w, http.StatusOK, envelope{
		"vuelos":    flights,
		"metadata":  metadata,
		"pasajeros": criteria.MinSeats,
	}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *app) showFlightHandler(w http.ResponseWriter, r *http.Request) {
	flight, ok := app.readFlight(w, r)
	if !ok {
		return
	}

	err := app.writeJSON(w, http.StatusOK, envelope{"vuelo": flight}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// createFlightHandler adds a flight through the flight form.
func (app *app) createFlightHandler(w http.ResponseWriter, r *http.Request) {
	in, err := app.readFormValues(w, r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	flight := &data.Flight{}
	ok := app.runForm(w, r, schemas.FlightForm, nil, in, func(_ context.Context, values form.Values) error {
		if err := applyFlight(flight, values); err != nil {
			return err
		}
		err := app.models.Flights.Insert(flight)
		if errors.Is(err, data.ErrDuplicateCode) {
			return &formError{
				status: http.StatusUnprocessableEntity,
				msg:    msgDuplicateFlightCode,
				fields: form.FieldErrors{"codigo": msgDuplicateFlightCode},
			}
		}
		return err
	})
	if !ok {
		return
	}

	headers := make(http.Header)
	headers.Set("Location", fmt.Sprintf("/v1/flights/%d", flight.ID))

	err = app.writeJSON(w, http.StatusCreated, envelope{"vuelo": flight}, headers)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// updateFlightHandler edits a flight. The form starts from the stored
// flight, so the body only needs the changed fields.
func (app *app) updateFlightHandler(w http.ResponseWriter, r *http.Request) {
	flight, ok := app.readFlight(w, r)
	if !ok {
		return
	}

	in, err := app.readFormValues(w, r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	ok = app.runForm(w, r, schemas.FlightForm, flightValues(flight), in, func(_ context.Context, values form.Values) error {
		if err := applyFlight(flight, values); err != nil {
			return err
		}
		err := app.models.Flights.Update(flight)
		switch {
		case errors.Is(err, data.ErrDuplicateCode):
			return &formError{
				status: http.StatusUnprocessableEntity,
				msg:    msgDuplicateFlightCode,
				fields: form.FieldErrors{"codigo": msgDuplicateFlightCode},
			}
		case errors.Is(err, data.ErrEditConflict):
			return newFormError(http.StatusConflict, "El vuelo cambió mientras lo editabas, inténtalo de nuevo")
		}
		return err
	})
	if !ok {
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"vuelo": flight}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *app) deleteFlightHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	err = app.models.Flights.Delete(id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		case errors.Is(err, data.ErrFlightReserved):
			app.errorResponseJSON(w, r, http.StatusConflict, "el vuelo tiene reservas y no se puede eliminar")
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"message": "vuelo eliminado"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// listPassengersHandler returns the manifest of a flight.
func (app *app) listPassengersHandler(w http.ResponseWriter, r *http.Request) {
	flight, ok := app.readFlight(w, r)
	if !ok {
		return
	}

	passengers, err := app.models.Reservations.GetPassengers(flight.ID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	seats := 0
	for _, p := range passengers {
		seats += p.Quantity
	}

	err = app.writeJSON(w, http.StatusOK, envelope{
		"vuelo":        flight,
		"pasajeros":    passengers,
		"totalPasajes": seats,
	}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
