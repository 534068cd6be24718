package form

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Pedro-J-Kukul/vuelosapi/internal/validator"
)

// Global messages shown next to the submit action.
const (
	MsgFixErrors     = "Por favor corrige los errores en el formulario."
	MsgSubmitFailure = "Error al procesar la solicitud"
)

// ErrSubmitInProgress is returned by Submit while a previous submission is
// still running.
var ErrSubmitInProgress = errors.New("form: submit already in progress")

// ErrCallbackPanicked wraps the value of a recovered submit callback panic.
// The panic value never reaches the global error.
var ErrCallbackPanicked = errors.New("form: submit callback panicked")

// SubmitFunc receives a snapshot of the validated values. A returned error
// becomes the form's global error.
type SubmitFunc func(ctx context.Context, values Values) error

// State is a point-in-time copy of an engine's state.
type State struct {
	Values      Values      `json:"values"`
	FieldErrors FieldErrors `json:"field_errors"`
	Error       string      `json:"error"`
	Loading     bool        `json:"loading"`
	Submitted   bool        `json:"submitted"`
}

// Engine holds the state of one form instance: its values, per-field
// errors, a global error and the loading and submitted flags. An Engine is
// owned by whoever created it but is safe for concurrent use.
type Engine struct {
	initial  Values
	schema   Schema
	onSubmit SubmitFunc

	mu          sync.Mutex
	values      Values
	fieldErrors FieldErrors
	err         string
	loading     bool
	submitted   bool

	// inFlight is true while a callback runs, even across Reset. generation
	// is bumped by Reset so a callback started earlier cannot write back.
	inFlight   bool
	generation uint64
}

// New creates an engine seeded with a copy of initial.
func New(initial Values, schema Schema, onSubmit SubmitFunc) *Engine {
	return &Engine{
		initial:     initial.Clone(),
		schema:      schema,
		onSubmit:    onSubmit,
		values:      initial.Clone(),
		fieldErrors: make(FieldErrors),
	}
}

// Change stores value under name. When fieldType is not empty the value is
// passed through validator.FilterInput first. Editing a field clears the
// global error and that field's error without re-validating it.
func (e *Engine) Change(name, value string, fieldType validator.FieldType) {
	if fieldType != "" {
		value = validator.FilterInput(value, fieldType)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.values[name] = value
	e.err = ""
	delete(e.fieldErrors, name)
}

// Submit validates the whole form and, when it is valid, calls the submit
// callback with a snapshot of the values.
//
// Validation failures are reported through the returned Result and the
// engine state, never as an error. The callback's error is stored as the
// global error and also returned. Calling Submit while a previous call is
// still loading returns ErrSubmitInProgress and changes nothing. A callback
// still running when Reset is called keeps later submits out until it
// returns, and its outcome is discarded.
func (e *Engine) Submit(ctx context.Context) (Result, error) {
	e.mu.Lock()
	if e.loading || e.inFlight {
		e.mu.Unlock()
		return Result{}, ErrSubmitInProgress
	}

	e.submitted = true
	res := ValidateForm(e.values, e.schema)
	e.fieldErrors = res.Errors.Clone()

	if !res.Valid {
		e.err = MsgFixErrors
		e.mu.Unlock()
		return res, nil
	}

	e.loading = true
	e.inFlight = true
	e.err = ""
	gen := e.generation
	snapshot := e.values.Clone()
	e.mu.Unlock()

	err := e.call(ctx, snapshot)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.inFlight = false
	if gen != e.generation {
		return res, err
	}
	e.loading = false
	if err != nil {
		e.err = err.Error()
		if e.err == "" || errors.Is(err, ErrCallbackPanicked) {
			e.err = MsgSubmitFailure
		}
	}

	return res, err
}

func (e *Engine) call(ctx context.Context, values Values) (err error) {
	if e.onSubmit == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrCallbackPanicked, r)
		}
	}()
	return e.onSubmit(ctx, values)
}

// Reset restores the initial values and clears every error and flag.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.values = e.initial.Clone()
	e.fieldErrors = make(FieldErrors)
	e.err = ""
	e.loading = false
	e.submitted = false
	e.generation++
}

// SetValues replaces all values at once.
func (e *Engine) SetValues(values Values) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.values = values.Clone()
}

// SetError overrides the global error.
func (e *Engine) SetError(msg string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.err = msg
}

// State returns a copy of the current state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	return State{
		Values:      e.values.Clone(),
		FieldErrors: e.fieldErrors.Clone(),
		Error:       e.err,
		Loading:     e.loading,
		Submitted:   e.submitted,
	}
}

// Values returns a copy of the current values.
func (e *Engine) Values() Values {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.values.Clone()
}

// Loading reports whether the submit callback is running.
func (e *Engine) Loading() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loading
}

// VisibleErrors returns the field errors a user should see. Nothing is shown
// before the first submit attempt.
func (s State) VisibleErrors() FieldErrors {
	if !s.Submitted {
		return FieldErrors{}
	}
	return s.FieldErrors.Clone()
}

// FieldClass returns the CSS classes for an input, flagging errors and
// filled-in fields only once the form has been submitted.
func (s State) FieldClass(name string) string {
	const base = "form-input"
	if !s.Submitted {
		return base
	}
	if s.FieldErrors[name] != "" {
		return base + " form-input--error"
	}
	if s.Values[name] != "" {
		return base + " form-input--success"
	}
	return base
}
