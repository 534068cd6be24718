// File: cmd/api/forms.go
// Description: runs request payloads through the form engine and serves
// form descriptors

package main

import (
	"context"
	"errors"
	"maps"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"github.com/Pedro-J-Kukul/vuelosapi/internal/form"
	"github.com/Pedro-J-Kukul/vuelosapi/internal/schemas"
)

// formActions is where each rendered form posts to.
var formActions = map[string]string{
	schemas.LoginForm:       "/v1/tokens/authentication",
	schemas.RegisterForm:    "/v1/users",
	schemas.ProfileForm:     "/v1/users/me",
	schemas.FlightForm:      "/v1/flights",
	schemas.SearchForm:      "/v1/flights/search",
	schemas.ReservationForm: "/v1/reservations",
}

// formError is returned by submit callbacks to choose the response status.
// Its message becomes the form's global error. Entries of fields named by
// the form's schema are added to the field errors; the rest, like details,
// are reported as detail errors.
type formError struct {
	status  int
	msg     string
	fields  form.FieldErrors
	details form.FieldErrors
}

func (e *formError) Error() string {
	return e.msg
}

func newFormError(status int, msg string) *formError {
	return &formError{status: status, msg: msg}
}

// runForm feeds in through the named form's engine, starting from initial,
// and submits it. On failure it writes the response itself. It reports
// whether onSubmit ran and succeeded.
func (app *app) runForm(w http.ResponseWriter, r *http.Request, name string, initial, in form.Values, onSubmit form.SubmitFunc) bool {
	def := schemas.MustLookup(name)
	engine := def.NewEngine(initial, onSubmit)
	def.Fields.Apply(engine, in)

	start := time.Now()
	res, err := engine.Submit(r.Context())
	state := engine.State()

	switch {
	case err != nil:
		elapsed := app.metrics.observe(name, outcomeFailed, start)
		var fe *formError
		if errors.As(err, &fe) {
			app.logger.Info("form submission failed", "form", name, "status", fe.status, "duration", elapsed)
			details := maps.Clone(fe.details)
			for key, msg := range fe.fields {
				if _, ok := def.Schema[key]; ok {
					state.FieldErrors[key] = msg
					continue
				}
				if details == nil {
					details = form.FieldErrors{}
				}
				details[key] = msg
			}
			app.formFailedResponse(w, r, fe.status, state, details)
			return false
		}
		app.logError(r, err)
		state.Error = form.MsgSubmitFailure
		app.formFailedResponse(w, r, http.StatusInternalServerError, state, nil)
		return false
	case !res.Valid:
		elapsed := app.metrics.observe(name, outcomeInvalid, start)
		app.logger.Info("form rejected", "form", name, "fields", len(state.FieldErrors), "duration", elapsed)
		app.formFailedResponse(w, r, http.StatusUnprocessableEntity, state, nil)
		return false
	}

	elapsed := app.metrics.observe(name, outcomeOK, start)
	app.logger.Info("form submitted", "form", name, "duration", elapsed)
	return true
}

// lookupForm resolves the :name parameter, answering 404 for unknown forms.
func (app *app) lookupForm(w http.ResponseWriter, r *http.Request) (schemas.Definition, bool) {
	name := httprouter.ParamsFromContext(r.Context()).ByName("name")
	def, err := schemas.Lookup(name)
	if err != nil {
		app.notFoundResponse(w, r)
		return schemas.Definition{}, false
	}
	return def, true
}

// listFormsHandler lists the registered form names.
func (app *app) listFormsHandler(w http.ResponseWriter, r *http.Request) {
	if err := app.writeJSON(w, http.StatusOK, envelope{"forms": schemas.Names()}, nil); err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// showFormHandler returns a form's title, submit label and descriptors.
func (app *app) showFormHandler(w http.ResponseWriter, r *http.Request) {
	def, ok := app.lookupForm(w, r)
	if !ok {
		return
	}
	if err := app.writeJSON(w, http.StatusOK, envelope{"form": def}, nil); err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// renderFormHandler serves a form as HTML. A GET renders the initial state;
// a POST of url-encoded values renders the state after a submit attempt,
// without submitting anything.
func (app *app) renderFormHandler(w http.ResponseWriter, r *http.Request) {
	def, ok := app.lookupForm(w, r)
	if !ok {
		return
	}

	engine := def.NewEngine(nil, nil)
	if r.Method == http.MethodPost {
		r.Body = http.MaxBytesReader(w, r.Body, 256_000)
		if err := r.ParseForm(); err != nil {
			app.badRequestResponse(w, r, err)
			return
		}
		def.Fields.Apply(engine, queryValues(r.PostForm))
		if _, err := engine.Submit(r.Context()); err != nil {
			app.serverErrorResponse(w, r, err)
			return
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := def.Page(formActions[def.Name], engine.State()).Render(w); err != nil {
		app.logError(r, err)
	}
}

// validateFormHandler is a dry run: the body is filtered and validated but
// never submitted. With ?field=name only that field's rule runs, against the
// rest of the body.
func (app *app) validateFormHandler(w http.ResponseWriter, r *http.Request) {
	def, ok := app.lookupForm(w, r)
	if !ok {
		return
	}

	in, err := app.readFormValues(w, r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	engine := def.NewEngine(nil, func(context.Context, form.Values) error { return nil })
	def.Fields.Apply(engine, in)

	if field := r.URL.Query().Get("field"); field != "" {
		desc, known := def.Fields.Lookup(field)
		if !known {
			app.failedValidationResponse(w, r, map[string]string{"field": "campo desconocido"})
			return
		}
		values := engine.Values()
		msg := form.ValidateField(field, values[field], values, def.Schema)
		resp := envelope{"field": field, "valid": msg == "", "error": msg}
		if desc.Kind != form.PasswordInput {
			resp["value"] = values[field]
		}
		err = app.writeJSON(w, http.StatusOK, resp, nil)
		if err != nil {
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	res, err := engine.Submit(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
	state := engine.State()
	err = app.writeJSON(w, http.StatusOK, envelope{
		"valid":        res.Valid,
		"error":        state.Error,
		"field_errors": state.FieldErrors,
	}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
