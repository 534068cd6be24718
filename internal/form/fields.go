package form

import "github.com/Pedro-J-Kukul/vuelosapi/internal/validator"

const (
	TextInput     Kind = "text"
	EmailInput    Kind = "email"
	PasswordInput Kind = "password"
	NumberInput   Kind = "number"
	TelInput      Kind = "tel"
	DateInput     Kind = "date"
	TimeInput     Kind = "time"
	Select        Kind = "select"
)

// Kind is the HTML input type used to render a field.
type Kind string

// Option is one entry of a select field.
type Option struct {
	Value string `yaml:"value" json:"value"`
	Label string `yaml:"label" json:"label"`
}

// Field describes one input of a form. Descriptors are data: the renderer
// and the request decoder interpret them without knowing which form they
// belong to.
type Field struct {
	// Name is the key of the value in Values.
	Name string `yaml:"name" json:"name"`
	// Label as it appears next to the input.
	Label string `yaml:"label" json:"label"`
	// Kind is the HTML input type. Empty means text.
	Kind Kind `yaml:"kind" json:"kind"`
	// Options lists the choices of a select field.
	Options []Option `yaml:"options,omitempty" json:"options,omitempty"`
	// Hint is shown under the input.
	Hint string `yaml:"hint,omitempty" json:"hint,omitempty"`
	// Default seeds the initial value.
	Default string `yaml:"default,omitempty" json:"default,omitempty"`
	// Required marks the input as required in the rendered form.
	Required bool `yaml:"required,omitempty" json:"required,omitempty"`
	// Filter is the validator.FieldType applied on every change.
	Filter validator.FieldType `yaml:"filter,omitempty" json:"filter,omitempty"`
}

// Fields is an ordered list of descriptors.
type Fields []Field

// Lookup returns the descriptor named name.
func (fs Fields) Lookup(name string) (Field, bool) {
	for _, f := range fs {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// FilterFor returns the input filter for name, or "" when the field is
// unknown or unfiltered.
func (fs Fields) FilterFor(name string) validator.FieldType {
	f, _ := fs.Lookup(name)
	return f.Filter
}

// Initial builds the initial Values: every field present, set to its
// default.
func (fs Fields) Initial() Values {
	out := make(Values, len(fs))
	for _, f := range fs {
		out[f.Name] = f.Default
	}
	return out
}

// Apply feeds every descriptor-known entry of in through e.Change, using the
// descriptor's filter. Unknown keys are ignored.
func (fs Fields) Apply(e *Engine, in Values) {
	for _, f := range fs {
		if v, ok := in[f.Name]; ok {
			e.Change(f.Name, v, f.Filter)
		}
	}
}
