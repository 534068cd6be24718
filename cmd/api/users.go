// File: cmd/api/users.go
package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/Pedro-J-Kukul/vuelosapi/internal/data"
	"github.com/Pedro-J-Kukul/vuelosapi/internal/form"
	"github.com/Pedro-J-Kukul/vuelosapi/internal/mailer"
	"github.com/Pedro-J-Kukul/vuelosapi/internal/schemas"
	"github.com/Pedro-J-Kukul/vuelosapi/internal/validator"
)

const msgDuplicateEmail = "Ya existe una cuenta con este correo"

// keepPassword stands in for the stored password on the profile form. The
// password filter strips its characters, so typed input never equals it.
const keepPassword = "··········"

// profileDetailFields are the profile form fields that register also
// accepts.
var profileDetailFields = []string{
	"tipoDocumento", "numeroDocumento",
	"primerNombre", "segundoNombre", "primerApellido", "segundoApellido",
	"numeroCelular", "fechaNacimiento",
}

// profileValues fills the profile form from a stored user.
func profileValues(u *data.User) form.Values {
	docType := u.DocumentType
	if docType == "" {
		docType = validator.DefaultDocumentType
	}
	return form.Values{
		"tipoDocumento":       docType,
		"numeroDocumento":     u.DocumentNumber,
		"primerNombre":        u.FirstName,
		"segundoNombre":       u.MiddleName,
		"primerApellido":      u.LastName,
		"segundoApellido":     u.SecondLastName,
		"numeroCelular":       u.Phone,
		"fechaNacimiento":     u.BirthDate,
		"correo":              u.Email,
		"confirmarCorreo":     u.Email,
		"contrasena":          keepPassword,
		"confirmarContrasena": keepPassword,
	}
}

// applyProfile copies the passenger fields of values onto u.
func applyProfile(u *data.User, values form.Values) {
	u.DocumentType = values.Get("tipoDocumento")
	u.DocumentNumber = values.Get("numeroDocumento")
	u.FirstName = values.Get("primerNombre")
	u.MiddleName = values.Get("segundoNombre")
	u.LastName = values.Get("primerApellido")
	u.SecondLastName = values.Get("segundoApellido")
	u.Phone = values.Get("numeroCelular")
	u.BirthDate = values.Get("fechaNacimiento")
}

// profileDetails filters and validates the optional passenger fields sent
// along with a registration. Empty fields are skipped.
func profileDetails(in form.Values) (form.Values, form.FieldErrors) {
	profile := schemas.MustLookup(schemas.ProfileForm)

	details := form.Values{"tipoDocumento": validator.DefaultDocumentType}
	for _, name := range profileDetailFields {
		if v := in.Get(name); v != "" {
			details[name] = validator.FilterInput(v, profile.Fields.FilterFor(name))
		}
	}

	errs := form.FieldErrors{}
	for _, name := range profileDetailFields {
		v, ok := details[name]
		if !ok || v == "" {
			continue
		}
		if msg := form.ValidateField(name, v, details, profile.Schema); msg != "" {
			errs[name] = msg
		}
	}
	return details, errs
}

// registerUserHandler creates a passenger account through the register form.
func (app *app) registerUserHandler(w http.ResponseWriter, r *http.Request) {
	in, err := app.readFormValues(w, r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	user := &data.User{Role: data.RoleUser, IsActive: true}
	ok := app.runForm(w, r, schemas.RegisterForm, nil, in, func(_ context.Context, values form.Values) error {
		details, detailErrs := profileDetails(in)
		if len(detailErrs) > 0 {
			return &formError{status: http.StatusUnprocessableEntity, msg: form.MsgFixErrors, details: detailErrs}
		}
		applyProfile(user, details)

		user.Email = values.Get("correo")
		if err := user.Password.Set(values.Get("contrasena")); err != nil {
			return err
		}

		v := validator.New()
		if data.ValidateUser(v, user); !v.IsValid() {
			return &formError{status: http.StatusUnprocessableEntity, msg: form.MsgFixErrors, fields: v.Errors}
		}

		if err := app.models.Users.Insert(user); err != nil {
			if errors.Is(err, data.ErrDuplicateEmail) {
				return &formError{
					status: http.StatusUnprocessableEntity,
					msg:    msgDuplicateEmail,
					fields: form.FieldErrors{"correo": msgDuplicateEmail},
				}
			}
			return err
		}
		return app.models.Permissions.GrantRole(user.ID, user.Role)
	})
	if !ok {
		return
	}

	app.background(func() {
		if err := app.mailer.Send(user.Email, mailer.WelcomeTemplate, map[string]any{"Email": user.Email}); err != nil {
			app.logger.Error("failed to send welcome email", "user_id", user.ID, "error", err)
		}
	})

	headers := make(http.Header)
	headers.Set("Location", "/v1/users/me")

	err = app.writeJSON(w, http.StatusCreated, envelope{"user": user, "perfilCompleto": user.HasCompleteProfile()}, headers)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// showCurrentUserHandler returns the signed-in user's profile.
func (app *app) showCurrentUserHandler(w http.ResponseWriter, r *http.Request) {
	user := app.contextGetUser(r)

	err := app.writeJSON(w, http.StatusOK, envelope{"user": user, "perfilCompleto": user.HasCompleteProfile()}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// updateCurrentUserHandler edits the profile through the profile form. The
// form starts from the stored profile, so omitted fields keep their value;
// the password only changes when both password fields are sent.
func (app *app) updateCurrentUserHandler(w http.ResponseWriter, r *http.Request) {
	in, err := app.readFormValues(w, r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	user := app.contextGetUser(r)
	ok := app.runForm(w, r, schemas.ProfileForm, profileValues(user), in, func(_ context.Context, values form.Values) error {
		applyProfile(user, values)
		user.Email = values.Get("correo")
		if pw := values.Get("contrasena"); pw != keepPassword {
			if err := user.Password.Set(pw); err != nil {
				return err
			}
		}

		v := validator.New()
		if data.ValidateUser(v, user); !v.IsValid() {
			return &formError{status: http.StatusUnprocessableEntity, msg: form.MsgFixErrors, fields: v.Errors}
		}

		err := app.models.Users.Update(user)
		switch {
		case errors.Is(err, data.ErrDuplicateEmail):
			return &formError{
				status: http.StatusUnprocessableEntity,
				msg:    msgDuplicateEmail,
				fields: form.FieldErrors{"correo": msgDuplicateEmail},
			}
		case errors.Is(err, data.ErrEditConflict):
			return newFormError(http.StatusConflict, "El perfil cambió mientras lo editabas, inténtalo de nuevo")
		}
		return err
	})
	if !ok {
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"user": user, "perfilCompleto": user.HasCompleteProfile()}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// profileCompletenessHandler reports what keeps the user from booking.
func (app *app) profileCompletenessHandler(w http.ResponseWriter, r *http.Request) {
	user := app.contextGetUser(r)

	missing := user.MissingProfileFields()
	if missing == nil {
		missing = []string{}
	}
	err := app.writeJSON(w, http.StatusOK, envelope{"completo": len(missing) == 0, "faltantes": missing}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// listUsersHandler lists accounts for administrators.
func (app *app) listUsersHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	v := validator.New()

	usersSortSafeList := []string{"id", "first_name", "last_name", "email", "-id", "-first_name", "-last_name", "-email"}

	filters := app.readFilters(query, "id", 20, usersSortSafeList, v)
	if data.ValidateFilters(v, filters); !v.IsValid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	users, metadata, err := app.models.Users.GetAll(data.UserFilter{
		Filter: filters,
		Name:   app.getSingleQueryParameter(query, "name", ""),
		Email:  app.getSingleQueryParameter(query, "email", ""),
		Role:   app.getSingleQueryParameter(query, "role", ""),
	})
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"users": users, "metadata": metadata}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
