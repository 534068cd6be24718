// File: cmd/api/middleware_test.go
// Description: Tests for middleware functionality

package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRecoverPanicMiddleware(t *testing.T) {
	app := newTestApp(t)

	handler := app.recoverPanic(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	checkResponseCode(t, http.StatusInternalServerError, rr)
	if rr.Header().Get("Connection") != "close" {
		t.Error("expected the connection to be closed")
	}
}

func TestAuthenticateMiddleware(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		name           string
		headers        map[string]string
		expectedStatus int
	}{
		{
			name:           "No authentication header",
			headers:        nil,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Invalid token format",
			headers:        map[string]string{"Authorization": "Token abc"},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Token of the wrong length",
			headers:        map[string]string{"Authorization": "Bearer tooshort"},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := makeRequest(t, app, http.MethodGet, "/v1/users/me", nil, tt.headers)
			checkResponseCode(t, tt.expectedStatus, rr)
		})
	}

	t.Run("Anonymous users cannot book", func(t *testing.T) {
		rr := makeRequest(t, app, http.MethodPost, "/v1/reservations", map[string]any{"vueloId": 1, "cantidad": 1}, nil)
		checkResponseCode(t, http.StatusUnauthorized, rr)
	})
}

func TestCORSMiddleware(t *testing.T) {
	app := newTestApp(t)
	app.config.cors.trustedOrigins = []string{"http://localhost:3000"}

	tests := []struct {
		name       string
		origin     string
		expectCORS bool
	}{
		{"Trusted origin", "http://localhost:3000", true},
		{"Untrusted origin", "http://evil.com", false},
		{"No origin header", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headers := map[string]string{}
			if tt.origin != "" {
				headers["Origin"] = tt.origin
			}

			rr := makeRequest(t, app, http.MethodGet, "/v1/healthcheck", nil, headers)

			corsHeader := rr.Header().Get("Access-Control-Allow-Origin")
			if tt.expectCORS && corsHeader != tt.origin {
				t.Errorf("Expected CORS header %s, got %s", tt.origin, corsHeader)
			}
			if !tt.expectCORS && corsHeader != "" {
				t.Errorf("Expected no CORS header, got %s", corsHeader)
			}
		})
	}

	t.Run("Preflight", func(t *testing.T) {
		rr := makeRequest(t, app, http.MethodOptions, "/v1/reservations", nil, map[string]string{
			"Origin":                        "http://localhost:3000",
			"Access-Control-Request-Method": http.MethodPost,
		})
		checkResponseCode(t, http.StatusOK, rr)
		if rr.Header().Get("Access-Control-Allow-Methods") == "" {
			t.Error("preflight response lacks allowed methods")
		}
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	app := newTestApp(t)
	app.config.rateLimit.enabled = true
	app.config.rateLimit.rps = 1
	app.config.rateLimit.burst = 2

	handler := app.routes()
	codes := make([]int, 0, 3)
	for range 3 {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/healthcheck", nil))
		codes = append(codes, rr.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Errorf("status codes = %v", codes)
	}
}

func TestUnknownRoutes(t *testing.T) {
	app := newTestApp(t)

	checkResponseCode(t, http.StatusNotFound, makeRequest(t, app, http.MethodGet, "/v1/aerolineas", nil, nil))
	checkResponseCode(t, http.StatusNotFound, makeRequest(t, app, http.MethodGet, "/v1/flights/abc", nil, nil))
	checkResponseCode(t, http.StatusMethodNotAllowed, makeRequest(t, app, http.MethodPatch, "/v1/healthcheck", nil, nil))
}
