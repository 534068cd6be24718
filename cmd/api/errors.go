package main

import (
	"fmt"
	"net/http"

	"github.com/Pedro-J-Kukul/vuelosapi/internal/form"
)

// logs the error message along with the request method and URL
func (app *app) logError(r *http.Request, err error) {
	app.logger.Error(err.Error(), "method", r.Method, "uri", r.URL.RequestURI())
}

// Sends an error response in JSON format
func (app *app) errorResponseJSON(w http.ResponseWriter, r *http.Request, status int, message any) {
	err := app.writeJSON(w, status, envelope{"error": message}, nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

// error response for total server failure with a 500 status code
func (app *app) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)
	message := "the server encountered a problem and could not process your request"
	app.errorResponseJSON(w, r, http.StatusInternalServerError, message)
}

// send an error response if our client messes up with a 404
func (app *app) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	message := "the requested resource could not be found"
	app.errorResponseJSON(w, r, http.StatusNotFound, message)
}

// send an error response if our client messes up with a 405
func (app *app) methodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	message := fmt.Sprintf("the %s method is not supported for this resource", r.Method)
	app.errorResponseJSON(w, r, http.StatusMethodNotAllowed, message)
}

// send an error response if our client messes up with a 400 (bad request)
func (app *app) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponseJSON(w, r, http.StatusBadRequest, err.Error())
}

// error response for failed validation checks with a 422 status code
func (app *app) failedValidationResponse(w http.ResponseWriter, r *http.Request, errors map[string]string) {
	app.errorResponseJSON(w, r, http.StatusUnprocessableEntity, errors)
}

// formFailedResponse reports a form submission that did not go through: the
// global error and the per-field errors. field_errors only holds fields of
// the form; errors about other input go under detail_errors.
func (app *app) formFailedResponse(w http.ResponseWriter, r *http.Request, status int, state form.State, details form.FieldErrors) {
	fieldErrors := state.FieldErrors
	if fieldErrors == nil {
		fieldErrors = form.FieldErrors{}
	}
	env := envelope{"error": state.Error, "field_errors": fieldErrors}
	if len(details) > 0 {
		env["detail_errors"] = details
	}
	err := app.writeJSON(w, status, env, nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

// For rate limit exceeded errors with a 429 status code
func (app *app) rateLimitExceededResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponseJSON(w, r, http.StatusTooManyRequests, "rate limit exceeded")
}

// for edit conflict status 409
func (app *app) editConflictResponse(w http.ResponseWriter, r *http.Request) {
	message := "unable to update the record due to an edit conflict, please try again"
	app.errorResponseJSON(w, r, http.StatusConflict, message)
}

func (app *app) invalidAuthenticationTokenResponse(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	app.errorResponseJSON(w, r, http.StatusUnauthorized, "invalid or missing authentication token")
}

func (app *app) authenticationRequiredResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponseJSON(w, r, http.StatusUnauthorized, "you must be authenticated to access this resource")
}

func (app *app) notPermittedResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponseJSON(w, r, http.StatusForbidden, "your user account doesn't have the necessary permissions to access this resource")
}

func (app *app) serviceUnavailableResponse(w http.ResponseWriter, r *http.Request, message string) {
	app.errorResponseJSON(w, r, http.StatusServiceUnavailable, message)
}
