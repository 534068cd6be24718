// File: cmd/api/handlers_test.go
// Description: Handler tests against the test database

package main

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/Pedro-J-Kukul/vuelosapi/internal/data"
	"github.com/Pedro-J-Kukul/vuelosapi/internal/schemas"
)

func TestRegisterUserHandler(t *testing.T) {
	app, _, _ := newTestAppWithDB(t)

	tests := []struct {
		name           string
		payload        map[string]any
		expectedStatus int
		fieldError     string
		detailError    string
	}{
		{
			name: "Valid account",
			payload: map[string]any{
				"correo":              "nuevo@example.com",
				"confirmarCorreo":     "nuevo@example.com",
				"contrasena":          "secreto",
				"confirmarContrasena": "secreto",
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Duplicate email",
			payload: map[string]any{
				"correo":              "NUEVO@example.com",
				"confirmarCorreo":     "NUEVO@example.com",
				"contrasena":          "secreto",
				"confirmarContrasena": "secreto",
			},
			expectedStatus: http.StatusUnprocessableEntity,
			fieldError:     "correo",
		},
		{
			name: "Invalid optional phone",
			payload: map[string]any{
				"correo":              "otro@example.com",
				"confirmarCorreo":     "otro@example.com",
				"contrasena":          "secreto",
				"confirmarContrasena": "secreto",
				"numeroCelular":       "300",
			},
			expectedStatus: http.StatusUnprocessableEntity,
			detailError:    "numeroCelular",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := makeRequest(t, app, http.MethodPost, "/v1/users", tt.payload, nil)
			checkResponseCode(t, tt.expectedStatus, rr)

			if tt.fieldError != "" || tt.detailError != "" {
				var resp formResponse
				parseJSONResponse(t, rr, &resp)
				if tt.fieldError != "" && resp.FieldErrors[tt.fieldError] == "" {
					t.Errorf("expected a %s error, got %v", tt.fieldError, resp.FieldErrors)
				}
				if tt.detailError != "" && resp.DetailErrors[tt.detailError] == "" {
					t.Errorf("expected a %s detail error, got %v", tt.detailError, resp.DetailErrors)
				}
				register := schemas.MustLookup(schemas.RegisterForm)
				for key := range resp.FieldErrors {
					if _, ok := register.Schema[key]; !ok {
						t.Errorf("field_errors holds %q, which the register form does not have", key)
					}
				}
				return
			}

			var resp struct {
				User     data.User `json:"user"`
				Complete bool      `json:"perfilCompleto"`
			}
			parseJSONResponse(t, rr, &resp)
			if resp.User.Email != "nuevo@example.com" || resp.User.Role != data.RoleUser || resp.Complete {
				t.Errorf("unexpected body %+v", resp)
			}
			if rr.Header().Get("Location") != "/v1/users/me" {
				t.Errorf("Location = %q", rr.Header().Get("Location"))
			}
		})
	}
}

func TestAuthenticationHandlers(t *testing.T) {
	app, tu, _ := newTestAppWithDB(t)

	if _, err := tu.SeedTestUser("viajero@example.com", "secreto", data.RoleUser); err != nil {
		t.Fatal(err)
	}

	t.Run("Wrong password", func(t *testing.T) {
		rr := makeRequest(t, app, http.MethodPost, "/v1/tokens/authentication",
			map[string]string{"correo": "viajero@example.com", "contrasena": "incorrecta"}, nil)
		checkResponseCode(t, http.StatusUnauthorized, rr)

		var resp formResponse
		parseJSONResponse(t, rr, &resp)
		if resp.Error != msgInvalidCredentials {
			t.Errorf("error = %q", resp.Error)
		}
	})

	t.Run("Sign in and out", func(t *testing.T) {
		token := authenticateUser(t, app, "Viajero@Example.com", "secreto")

		rr := makeRequest(t, app, http.MethodGet, "/v1/users/me", nil, createAuthHeaders(token))
		checkResponseCode(t, http.StatusOK, rr)

		rr = makeRequest(t, app, http.MethodDelete, "/v1/tokens/authentication", nil, createAuthHeaders(token))
		checkResponseCode(t, http.StatusOK, rr)

		rr = makeRequest(t, app, http.MethodGet, "/v1/users/me", nil, createAuthHeaders(token))
		checkResponseCode(t, http.StatusUnauthorized, rr)
	})
}

func TestProfileUpdate(t *testing.T) {
	app, tu, _ := newTestAppWithDB(t)

	if _, err := tu.SeedTestUser("viajero@example.com", "secreto", data.RoleUser); err != nil {
		t.Fatal(err)
	}
	token := authenticateUser(t, app, "viajero@example.com", "secreto")
	headers := createAuthHeaders(token)

	rr := makeRequest(t, app, http.MethodGet, "/v1/users/me/completeness", nil, headers)
	checkResponseCode(t, http.StatusOK, rr)
	var completeness struct {
		Complete bool     `json:"completo"`
		Missing  []string `json:"faltantes"`
	}
	parseJSONResponse(t, rr, &completeness)
	if completeness.Complete || len(completeness.Missing) == 0 {
		t.Errorf("fresh profile reported as %+v", completeness)
	}

	rr = makeRequest(t, app, http.MethodPut, "/v1/users/me", map[string]any{"numeroCelular": "300-123"}, headers)
	checkResponseCode(t, http.StatusUnprocessableEntity, rr)

	rr = makeRequest(t, app, http.MethodPut, "/v1/users/me", completeProfile, headers)
	checkResponseCode(t, http.StatusOK, rr)
	var updated struct {
		User     data.User `json:"user"`
		Complete bool      `json:"perfilCompleto"`
	}
	parseJSONResponse(t, rr, &updated)
	if !updated.Complete || updated.User.FirstName != "Laura" {
		t.Errorf("updated profile = %+v", updated)
	}

	// the stored password survives an update that leaves it untouched
	authenticateUser(t, app, "viajero@example.com", "secreto")

	rr = makeRequest(t, app, http.MethodPut, "/v1/users/me", map[string]any{
		"contrasena":          "nuevaclave",
		"confirmarContrasena": "nuevaclave",
	}, headers)
	checkResponseCode(t, http.StatusOK, rr)
	authenticateUser(t, app, "viajero@example.com", "nuevaclave")
}

func TestReservationFlow(t *testing.T) {
	app, tu, _ := newTestAppWithDB(t)

	if _, err := tu.SeedTestUser("viajero@example.com", "secreto", data.RoleUser); err != nil {
		t.Fatal(err)
	}
	flight, err := tu.SeedTestFlight("AV-801", 3)
	if err != nil {
		t.Fatal(err)
	}
	headers := createAuthHeaders(authenticateUser(t, app, "viajero@example.com", "secreto"))
	booking := map[string]any{"vueloId": flight.ID, "cantidad": 2}

	rr := makeRequest(t, app, http.MethodPost, "/v1/reservations", booking, headers)
	checkResponseCode(t, http.StatusForbidden, rr)
	var blocked formResponse
	parseJSONResponse(t, rr, &blocked)
	if blocked.Error != msgIncompleteProfile {
		t.Errorf("error = %q", blocked.Error)
	}

	checkResponseCode(t, http.StatusOK, makeRequest(t, app, http.MethodPut, "/v1/users/me", completeProfile, headers))

	rr = makeRequest(t, app, http.MethodPost, "/v1/reservations", booking, headers)
	checkResponseCode(t, http.StatusCreated, rr)
	var created struct {
		Reservation data.Reservation `json:"reserva"`
		Total       string           `json:"total"`
	}
	parseJSONResponse(t, rr, &created)
	if created.Total != "$700.000" || created.Reservation.Flight.Seats != 1 {
		t.Errorf("reservation = %+v", created)
	}

	rr = makeRequest(t, app, http.MethodPost, "/v1/reservations", booking, headers)
	checkResponseCode(t, http.StatusConflict, rr)

	rr = makeRequest(t, app, http.MethodPost, "/v1/reservations", map[string]any{"vueloId": 9999, "cantidad": 1}, headers)
	checkResponseCode(t, http.StatusUnprocessableEntity, rr)

	rr = makeRequest(t, app, http.MethodGet, "/v1/reservations/me", nil, headers)
	checkResponseCode(t, http.StatusOK, rr)
	var mine struct {
		Reservations []data.Reservation `json:"reservas"`
	}
	parseJSONResponse(t, rr, &mine)
	if len(mine.Reservations) != 1 {
		t.Fatalf("got %d reservations", len(mine.Reservations))
	}

	receiptURL := fmt.Sprintf("/v1/reservations/%d/receipt", created.Reservation.ID)
	rr = makeRequest(t, app, http.MethodGet, receiptURL, nil, headers)
	checkResponseCode(t, http.StatusOK, rr)
	var receipt struct {
		Receipt struct {
			Subject string `json:"asunto"`
			Text    string `json:"texto"`
		} `json:"recibo"`
	}
	parseJSONResponse(t, rr, &receipt)
	if !strings.Contains(receipt.Receipt.Subject, "AV-801") || !strings.Contains(receipt.Receipt.Text, "Laura Rojas") {
		t.Errorf("receipt = %+v", receipt.Receipt)
	}

	if _, err := tu.SeedTestUser("otro@example.com", "secreto", data.RoleUser); err != nil {
		t.Fatal(err)
	}
	stranger := createAuthHeaders(authenticateUser(t, app, "otro@example.com", "secreto"))
	checkResponseCode(t, http.StatusNotFound, makeRequest(t, app, http.MethodGet, receiptURL, nil, stranger))

	cancelURL := fmt.Sprintf("/v1/reservations/%d", created.Reservation.ID)
	checkResponseCode(t, http.StatusNotFound, makeRequest(t, app, http.MethodDelete, cancelURL, nil, stranger))
	checkResponseCode(t, http.StatusOK, makeRequest(t, app, http.MethodDelete, cancelURL, nil, headers))
	checkResponseCode(t, http.StatusConflict, makeRequest(t, app, http.MethodDelete, cancelURL, nil, headers))
}

func TestFlightAdministration(t *testing.T) {
	app, tu, _ := newTestAppWithDB(t)

	if _, err := tu.SeedTestUser("admin@example.com", "admin123", data.RoleAdmin); err != nil {
		t.Fatal(err)
	}
	if _, err := tu.SeedTestUser("viajero@example.com", "secreto", data.RoleUser); err != nil {
		t.Fatal(err)
	}
	admin := createAuthHeaders(authenticateUser(t, app, "admin@example.com", "admin123"))
	passenger := createAuthHeaders(authenticateUser(t, app, "viajero@example.com", "secreto"))

	newFlight := map[string]any{
		"codigo":    "WN-301",
		"aerolinea": "Wingo",
		"origen":    "Medellín",
		"destino":   "Cartagena",
		"fecha":     "2025-11-16",
		"salida":    "12:00",
		"llegada":   "13:30",
		"precio":    380000,
		"asientos":  3,
	}

	checkResponseCode(t, http.StatusForbidden, makeRequest(t, app, http.MethodPost, "/v1/flights", newFlight, passenger))

	rr := makeRequest(t, app, http.MethodPost, "/v1/flights", newFlight, admin)
	checkResponseCode(t, http.StatusCreated, rr)
	var created struct {
		Flight data.Flight `json:"vuelo"`
	}
	parseJSONResponse(t, rr, &created)
	if created.Flight.Code != "WN-301" {
		t.Errorf("code = %q", created.Flight.Code)
	}

	rr = makeRequest(t, app, http.MethodPost, "/v1/flights", newFlight, admin)
	checkResponseCode(t, http.StatusUnprocessableEntity, rr)
	var dup formResponse
	parseJSONResponse(t, rr, &dup)
	if dup.FieldErrors["codigo"] != msgDuplicateFlightCode {
		t.Errorf("field errors = %v", dup.FieldErrors)
	}

	flightURL := fmt.Sprintf("/v1/flights/%d", created.Flight.ID)
	rr = makeRequest(t, app, http.MethodPut, flightURL, map[string]any{"precio": 400000}, admin)
	checkResponseCode(t, http.StatusOK, rr)

	rr = makeRequest(t, app, http.MethodGet, flightURL, nil, nil)
	checkResponseCode(t, http.StatusOK, rr)
	var shown struct {
		Flight data.Flight `json:"vuelo"`
	}
	parseJSONResponse(t, rr, &shown)
	if shown.Flight.Price != 400000 || shown.Flight.Airline != "Wingo" {
		t.Errorf("flight after update = %+v", shown.Flight)
	}

	checkResponseCode(t, http.StatusOK, makeRequest(t, app, http.MethodPut, "/v1/users/me", completeProfile, passenger))
	checkResponseCode(t, http.StatusCreated, makeRequest(t, app, http.MethodPost, "/v1/reservations",
		map[string]any{"vueloId": created.Flight.ID, "cantidad": 1}, passenger))

	rr = makeRequest(t, app, http.MethodGet, flightURL+"/passengers", nil, admin)
	checkResponseCode(t, http.StatusOK, rr)
	var manifest struct {
		Passengers []data.Passenger `json:"pasajeros"`
		Seats      int              `json:"totalPasajes"`
	}
	parseJSONResponse(t, rr, &manifest)
	if len(manifest.Passengers) != 1 || manifest.Seats != 1 || manifest.Passengers[0].Document != "1020304050" {
		t.Errorf("manifest = %+v", manifest)
	}
	checkResponseCode(t, http.StatusForbidden, makeRequest(t, app, http.MethodGet, flightURL+"/passengers", nil, passenger))

	rr = makeRequest(t, app, http.MethodPost, flightURL+"/passengers/export", nil, admin)
	checkResponseCode(t, http.StatusServiceUnavailable, rr)

	checkResponseCode(t, http.StatusConflict, makeRequest(t, app, http.MethodDelete, flightURL, nil, admin))
	checkResponseCode(t, http.StatusNotFound, makeRequest(t, app, http.MethodDelete, "/v1/flights/9999", nil, admin))
}

func TestSearchFlights(t *testing.T) {
	app, _, db := newTestAppWithDB(t)

	if _, err := data.Seed(db); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		query   string
		want    int
		minimum int
	}{
		{"Bogotá to Medellín", "origen=Bogot%C3%A1&destino=Medell%C3%ADn&fechaIda=2025-11-15", 3, 1},
		{"Three passengers still fit both flights", "origen=Medell%C3%ADn&destino=Cartagena&fechaIda=2025-11-16&pasajeros=3+adultos", 2, 3},
		{"No flights that day", "origen=Cali&destino=Bogot%C3%A1&fechaIda=2025-11-15", 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := makeRequest(t, app, http.MethodGet, "/v1/flights/search?"+tt.query, nil, nil)
			checkResponseCode(t, http.StatusOK, rr)

			var resp struct {
				Flights    []data.Flight `json:"vuelos"`
				Passengers int           `json:"pasajeros"`
			}
			parseJSONResponse(t, rr, &resp)
			if len(resp.Flights) != tt.want || resp.Passengers != tt.minimum {
				t.Errorf("got %d flights for %d passengers", len(resp.Flights), resp.Passengers)
			}
		})
	}

	rr := makeRequest(t, app, http.MethodGet, "/v1/flights?aerolinea=Avianca&sort=-price", nil, nil)
	checkResponseCode(t, http.StatusOK, rr)
	var listed struct {
		Flights []data.Flight `json:"vuelos"`
	}
	parseJSONResponse(t, rr, &listed)
	if len(listed.Flights) != 3 || listed.Flights[0].Code != "AV-602" {
		t.Errorf("Avianca flights = %+v", listed.Flights)
	}
}
