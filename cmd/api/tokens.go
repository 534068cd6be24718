// Filename: cmd/api/tokens.go

package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/Pedro-J-Kukul/vuelosapi/internal/data"
	"github.com/Pedro-J-Kukul/vuelosapi/internal/form"
	"github.com/Pedro-J-Kukul/vuelosapi/internal/schemas"
)

// Global errors of the login form.
const (
	msgInvalidCredentials = "Credenciales inválidas"
	msgAccountNotActive   = "La cuenta no está activa"
)

// createAuthenticationTokenHandler signs a user in through the login form.
func (app *app) createAuthenticationTokenHandler(w http.ResponseWriter, r *http.Request) {
	in, err := app.readFormValues(w, r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var (
		user  *data.User
		token *data.Token
	)
	ok := app.runForm(w, r, schemas.LoginForm, nil, in, func(_ context.Context, values form.Values) error {
		var err error
		user, err = app.models.Users.Authenticate(values.Get("correo"), values.Get("contrasena"))
		switch {
		case errors.Is(err, data.ErrInvalidCredential):
			return newFormError(http.StatusUnauthorized, msgInvalidCredentials)
		case errors.Is(err, data.ErrAccountNotActive):
			return newFormError(http.StatusForbidden, msgAccountNotActive)
		case err != nil:
			return err
		}

		token, err = app.models.Tokens.New(user.ID, data.AuthenticationTTL, data.ScopeAuthentication)
		return err
	})
	if !ok {
		return
	}

	err = app.writeJSON(w, http.StatusCreated, envelope{
		"authentication_token": token,
		"user":                 user,
	}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// deleteAuthenticationTokenHandler signs the user out everywhere.
func (app *app) deleteAuthenticationTokenHandler(w http.ResponseWriter, r *http.Request) {
	userID := app.contextGetUser(r).ID

	err := app.models.Tokens.DeleteAllForUser(data.ScopeAuthentication, userID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"message": "sesión cerrada"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
