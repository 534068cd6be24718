// Filename: /cmd/api/routes.go
// Description: connects the routes with the api

package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/Pedro-J-Kukul/vuelosapi/internal/data"
)

func (app *app) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedResponse)

	router.HandlerFunc(http.MethodGet, "/v1/healthcheck", app.healthcheckHandler)
	router.Handler(http.MethodGet, "/v1/metrics", app.metrics.handler())

	// Forms
	router.HandlerFunc(http.MethodGet, "/v1/forms", app.listFormsHandler)
	router.HandlerFunc(http.MethodGet, "/v1/forms/:name", app.showFormHandler)
	router.HandlerFunc(http.MethodPost, "/v1/forms/:name/validate", app.validateFormHandler)
	router.HandlerFunc(http.MethodGet, "/forms/:name", app.renderFormHandler)
	router.HandlerFunc(http.MethodPost, "/forms/:name", app.renderFormHandler)

	// Accounts
	router.HandlerFunc(http.MethodPost, "/v1/users", app.registerUserHandler)
	router.HandlerFunc(http.MethodPost, "/v1/tokens/authentication", app.createAuthenticationTokenHandler)
	router.HandlerFunc(http.MethodDelete, "/v1/tokens/authentication", app.requireAuthenticatedUser(app.deleteAuthenticationTokenHandler))
	router.HandlerFunc(http.MethodGet, "/v1/users/me", app.requireAuthenticatedUser(app.showCurrentUserHandler))
	router.HandlerFunc(http.MethodPut, "/v1/users/me", app.requireAuthenticatedUser(app.updateCurrentUserHandler))
	router.HandlerFunc(http.MethodGet, "/v1/users/me/completeness", app.requireAuthenticatedUser(app.profileCompletenessHandler))
	router.HandlerFunc(http.MethodGet, "/v1/users", app.requirePermission(data.PermUsersRead, app.listUsersHandler))

	// Flights
	router.HandlerFunc(http.MethodGet, "/v1/flights", app.listFlightsHandler)
	router.HandlerFunc(http.MethodGet, "/v1/flights/:id", app.named("search", app.searchFlightsHandler, app.showFlightHandler))
	router.HandlerFunc(http.MethodPost, "/v1/flights", app.requirePermission(data.PermFlightsWrite, app.createFlightHandler))
	router.HandlerFunc(http.MethodPut, "/v1/flights/:id", app.requirePermission(data.PermFlightsWrite, app.updateFlightHandler))
	router.HandlerFunc(http.MethodDelete, "/v1/flights/:id", app.requirePermission(data.PermFlightsWrite, app.deleteFlightHandler))
	router.HandlerFunc(http.MethodGet, "/v1/flights/:id/passengers", app.requirePermission(data.PermManifestRead, app.listPassengersHandler))
	router.HandlerFunc(http.MethodPost, "/v1/flights/:id/passengers/export", app.requirePermission(data.PermManifestRead, app.exportPassengersHandler))

	// Manifest exports
	router.HandlerFunc(http.MethodGet, "/v1/exports", app.requirePermission(data.PermManifestRead, app.listExportHistoryHandler))
	router.HandlerFunc(http.MethodGet, "/v1/sheets", app.requirePermission(data.PermManifestRead, app.getSheetsInfoHandler))

	// Reservations
	router.HandlerFunc(http.MethodPost, "/v1/reservations", app.requirePermission(data.PermReservationsCreate, app.createReservationHandler))
	router.HandlerFunc(http.MethodGet, "/v1/reservations/:id", app.requireAuthenticatedUser(app.named("me", app.listMyReservationsHandler, app.notFoundResponse)))
	router.HandlerFunc(http.MethodGet, "/v1/reservations/:id/receipt", app.requireAuthenticatedUser(app.showReceiptHandler))
	router.HandlerFunc(http.MethodDelete, "/v1/reservations/:id", app.requireAuthenticatedUser(app.cancelReservationHandler))

	return app.recoverPanic(app.enableCORS(app.rateLimit(app.authenticate(router))))
}

// named serves paths whose :id is the literal name with static and the rest
// with byID. httprouter rejects a static segment next to a wildcard.
func (app *app) named(name string, static, byID http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if httprouter.ParamsFromContext(r.Context()).ByName("id") == name {
			static(w, r)
			return
		}
		byID(w, r)
	}
}
