package form

import (
	"maps"
	"strconv"
	"strings"
)

// Values maps a field name to its current value. Numbers are carried in
// their decimal string form, the way an HTML input reports them.
type Values map[string]string

// FieldErrors maps a field name to its validation message.
type FieldErrors map[string]string

// Clone returns an independent copy of v. A nil map clones to an empty one.
func (v Values) Clone() Values {
	out := make(Values, len(v))
	maps.Copy(out, v)
	return out
}

// Get returns the value stored under name, or "".
func (v Values) Get(name string) string {
	return v[name]
}

// Int parses the value under name as a base-10 integer.
func (v Values) Int(name string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(v[name]), 10, 64)
}

// Float parses the value under name as a float.
func (v Values) Float(name string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(v[name]), 64)
}

// FromAny converts a decoded JSON object into Values. Strings are kept as
// is, numbers use their shortest decimal form, booleans become "true" or
// "false" and nulls become "".
func FromAny(in map[string]any) Values {
	out := make(Values, len(in))
	for k, raw := range in {
		out[k] = Stringify(raw)
	}
	return out
}

// Stringify renders a scalar the way FromAny does.
func Stringify(raw any) string {
	switch x := raw.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case bool:
		return strconv.FormatBool(x)
	default:
		return ""
	}
}

// Clone returns an independent copy of e.
func (e FieldErrors) Clone() FieldErrors {
	out := make(FieldErrors, len(e))
	maps.Copy(out, e)
	return out
}
