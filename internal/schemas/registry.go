package schemas

import (
	_ "embed"
	"errors"
	"fmt"
	"maps"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/Pedro-J-Kukul/vuelosapi/internal/form"
)

// Form names.
const (
	LoginForm       = "login"
	RegisterForm    = "register"
	ProfileForm     = "profile"
	FlightForm      = "flight"
	SearchForm      = "search"
	ReservationForm = "reservation"
)

// ErrUnknownForm is returned by Lookup for names that are not registered.
var ErrUnknownForm = errors.New("schemas: unknown form")

//go:embed fields.yaml
var fieldsYAML []byte

// Definition ties a form's schema to its field descriptors.
type Definition struct {
	Name   string      `json:"name"`
	Title  string      `json:"title"`
	Submit string      `json:"submit"`
	Schema form.Schema `json:"-"`
	Fields form.Fields `json:"fields"`
}

// NewEngine creates an engine for d. The initial values are the descriptor
// defaults overridden by initial.
func (d Definition) NewEngine(initial form.Values, onSubmit form.SubmitFunc) *form.Engine {
	values := d.Fields.Initial()
	maps.Copy(values, initial)
	return form.New(values, d.Schema, onSubmit)
}

// Page returns a renderable page for state.
func (d Definition) Page(action string, state form.State) form.Page {
	return form.Page{
		Title:  d.Title,
		Action: action,
		Submit: d.Submit,
		Fields: d.Fields,
		State:  state,
	}
}

var byName = map[string]form.Schema{
	LoginForm:       Login,
	RegisterForm:    Register,
	ProfileForm:     Profile,
	FlightForm:      Flight,
	SearchForm:      Search,
	ReservationForm: Reservation,
}

var registry = mustLoad(fieldsYAML)

// Lookup returns the definition registered under name.
func Lookup(name string) (Definition, error) {
	d, ok := registry[name]
	if !ok {
		return Definition{}, fmt.Errorf("%w: %q", ErrUnknownForm, name)
	}
	return d, nil
}

// MustLookup is Lookup for names known at compile time.
func MustLookup(name string) Definition {
	d, err := Lookup(name)
	if err != nil {
		panic(err)
	}
	return d
}

// Names lists the registered forms in sorted order.
func Names() []string {
	return slices.Sorted(maps.Keys(registry))
}

type document struct {
	Forms map[string]struct {
		Title  string      `yaml:"title"`
		Submit string      `yaml:"submit"`
		Fields form.Fields `yaml:"fields"`
	} `yaml:"forms"`
}

func load(data []byte) (map[string]Definition, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("schemas: parse descriptors: %w", err)
	}

	out := make(map[string]Definition, len(byName))
	for name, schema := range byName {
		f, ok := doc.Forms[name]
		if !ok {
			return nil, fmt.Errorf("schemas: form %q has no descriptors", name)
		}
		for _, field := range schema.Fields() {
			if _, ok := f.Fields.Lookup(field); !ok {
				return nil, fmt.Errorf("schemas: form %q: field %q has a rule but no descriptor", name, field)
			}
		}
		out[name] = Definition{
			Name:   name,
			Title:  f.Title,
			Submit: f.Submit,
			Schema: schema,
			Fields: f.Fields,
		}
	}
	for name := range doc.Forms {
		if _, ok := byName[name]; !ok {
			return nil, fmt.Errorf("schemas: descriptors for unregistered form %q", name)
		}
	}

	return out, nil
}

func mustLoad(data []byte) map[string]Definition {
	defs, err := load(data)
	if err != nil {
		panic(err)
	}
	return defs
}
