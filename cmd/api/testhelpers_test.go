// File: cmd/api/testhelpers_test.go
// Description: helpers shared by the handler tests

package main

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Pedro-J-Kukul/vuelosapi/internal/data"
)

// newTestApp returns an app without a database. Only handlers that answer
// before touching the models can be exercised with it.
func newTestApp(t *testing.T) *app {
	t.Helper()
	return newTestAppWithModels(t, data.NewModels(nil))
}

// newTestAppWithDB returns an app backed by the test database. The test is
// skipped when no database is configured.
func newTestAppWithDB(t *testing.T) (*app, *data.TestUtils, *sql.DB) {
	t.Helper()
	db := data.OpenTestDB(t)
	return newTestAppWithModels(t, data.NewModels(db)), data.NewTestUtils(db), db
}

func newTestAppWithModels(t *testing.T, models data.Models) *app {
	t.Helper()

	var cfg config
	cfg.env = "test"
	cfg.smtp.host = "localhost"
	cfg.smtp.port = 1
	cfg.smtp.sender = "Vuelos Colombia <test@vueloscolombia.com>"

	a := newApp(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)), models)
	t.Cleanup(a.wg.Wait)
	return a
}

// executeRequest executes an HTTP request and returns the response recorder
func executeRequest(app *app, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	app.routes().ServeHTTP(rr, req)
	return rr
}

// makeRequest sends body encoded as JSON.
func makeRequest(t *testing.T, app *app, method, url string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req := httptest.NewRequest(method, url, reqBody)
	req.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	return executeRequest(app, req)
}

func parseJSONResponse(t *testing.T, rr *httptest.ResponseRecorder, dest any) {
	t.Helper()

	if err := json.NewDecoder(rr.Body).Decode(dest); err != nil {
		t.Fatalf("Failed to parse JSON response: %v. Body: %s", err, rr.Body.String())
	}
}

func checkResponseCode(t *testing.T, expected int, rr *httptest.ResponseRecorder) {
	t.Helper()

	if expected != rr.Code {
		t.Errorf("Expected status code %d, got %d. Body: %s", expected, rr.Code, rr.Body.String())
	}
}

// formResponse is the body of a rejected form submission.
type formResponse struct {
	Error        string            `json:"error"`
	FieldErrors  map[string]string `json:"field_errors"`
	DetailErrors map[string]string `json:"detail_errors"`
}

// authenticateUser signs in and returns the bearer token.
func authenticateUser(t *testing.T, app *app, email, password string) string {
	t.Helper()

	rr := makeRequest(t, app, http.MethodPost, "/v1/tokens/authentication",
		map[string]string{"correo": email, "contrasena": password}, nil)
	if rr.Code != http.StatusCreated {
		t.Fatalf("Authentication failed: status %d, body: %s", rr.Code, rr.Body.String())
	}

	var response struct {
		Token struct {
			Plaintext string `json:"token"`
		} `json:"authentication_token"`
	}
	parseJSONResponse(t, rr, &response)

	if response.Token.Plaintext == "" {
		t.Fatal("No authentication token returned")
	}
	return response.Token.Plaintext
}

func createAuthHeaders(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

// completeProfile is a profile update that makes a seeded test user
// bookable.
var completeProfile = map[string]any{
	"tipoDocumento":   "CC",
	"numeroDocumento": "1020304050",
	"primerNombre":    "Laura",
	"primerApellido":  "Rojas",
	"numeroCelular":   "3001234567",
	"fechaNacimiento": "1990-05-20",
}
