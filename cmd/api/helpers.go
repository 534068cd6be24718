package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/julienschmidt/httprouter"

	"github.com/Pedro-J-Kukul/vuelosapi/internal/data"
	"github.com/Pedro-J-Kukul/vuelosapi/internal/form"
	"github.com/Pedro-J-Kukul/vuelosapi/internal/validator"
)

// creating an envelope type
type envelope map[string]any

func (app *app) writeJSON(w http.ResponseWriter, status int, data envelope, headers http.Header) error {
	jsResponse, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		return err
	}
	jsResponse = append(jsResponse, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_, err = w.Write(jsResponse)
	return err
}

// readJSON decodes a single JSON value from the body into dest.
func (app *app) readJSON(w http.ResponseWriter, r *http.Request, dest any) error {
	// limit the size of the request body to 256000 bytes
	maxBytes := 256_000
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dest)
	if err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var invalidUnmarshalError *json.InvalidUnmarshalError
		var maxBytesError *http.MaxBytesError

		switch {
		case errors.As(err, &syntaxError):
			return fmt.Errorf("the body contains badly-formed JSON (at character %d)", syntaxError.Offset)
		case errors.Is(err, io.ErrUnexpectedEOF):
			return errors.New("the body contains badly-formed JSON")
		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				return fmt.Errorf("the body contains the incorrect JSON type for field %q", unmarshalTypeError.Field)
			}
			return fmt.Errorf("the body contains the incorrect JSON type (at character %d)", unmarshalTypeError.Offset)
		case errors.Is(err, io.EOF):
			return errors.New("the body must not be empty")
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
			return fmt.Errorf("body contains unknown key %s", fieldName)
		case errors.As(err, &maxBytesError):
			return fmt.Errorf("the body must not be larger than %d bytes", maxBytesError.Limit)
		case errors.As(err, &invalidUnmarshalError):
			panic(err)
		default:
			return err
		}
	}

	// call decode again to check if there is only a single json value in the body
	err = dec.Decode(&struct{}{})
	if !errors.Is(err, io.EOF) {
		return errors.New("the body must only contain a single JSON value")
	}

	return nil
}

// readFormValues decodes a flat JSON object into form values. Nested
// objects and arrays are rejected.
func (app *app) readFormValues(w http.ResponseWriter, r *http.Request) (form.Values, error) {
	var raw map[string]any
	if err := app.readJSON(w, r, &raw); err != nil {
		return nil, err
	}
	for key, value := range raw {
		switch value.(type) {
		case map[string]any, []any:
			return nil, fmt.Errorf("the body contains a non-scalar value for field %q", key)
		}
	}
	return form.FromAny(raw), nil
}

// queryValues turns the first value of each query parameter into form
// values.
func queryValues(query url.Values) form.Values {
	out := make(form.Values, len(query))
	for key := range query {
		out[key] = query.Get(key)
	}
	return out
}

// Helper function to read an id parameter from the url
func (app *app) readIDParam(r *http.Request) (int64, error) {
	params := httprouter.ParamsFromContext(r.Context())

	id, err := strconv.ParseInt(params.ByName("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, errors.New("invalid id parameter")
	}

	return id, nil
}

// get single string query parameter
func (app *app) getSingleQueryParameter(queryParameters url.Values, key string, defaultValue string) string {
	result := queryParameters.Get(key)
	if result == "" {
		return defaultValue
	}
	return result
}

// getSingleIntQueryParameter records a validation error when the parameter
// is not an integer.
func (app *app) getSingleIntQueryParameter(queryParameters url.Values, key string, defaultValue int, v *validator.Validator) int {
	result := queryParameters.Get(key)
	if result == "" {
		return defaultValue
	}

	intResult, err := strconv.Atoi(result)
	if err != nil {
		v.AddError(key, "debe ser un número entero")
		return defaultValue
	}
	return intResult
}

// readFilters reads page, page_size and sort from the query string.
func (app *app) readFilters(query url.Values, defaultSort string, defaultPageSize int, safeList []string, v *validator.Validator) data.Filter {
	return data.Filter{
		Page:         int64(app.getSingleIntQueryParameter(query, "page", 1, v)),
		PageSize:     int64(app.getSingleIntQueryParameter(query, "page_size", defaultPageSize, v)),
		SortBy:       app.getSingleQueryParameter(query, "sort", defaultSort),
		SortSafeList: safeList,
	}
}

// background runs fn in a goroutine tracked by the shutdown WaitGroup and
// logs any panic.
func (app *app) background(fn func()) {
	app.wg.Add(1)
	go func() {
		defer app.wg.Done()
		defer func() {
			if err := recover(); err != nil {
				app.logger.Error(fmt.Sprintf("%v", err))
			}
		}()
		fn()
	}()
}
