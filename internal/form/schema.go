package form

import (
	"maps"
	"slices"
)

// Rule validates one field. It receives the field's value and a read-only
// snapshot of the whole form so it can compare against sibling fields. It
// returns "" when the value is acceptable and a message otherwise.
type Rule func(value string, values Values) string

// Schema maps field names to their rule.
type Schema map[string]Rule

// Result is the outcome of validating a whole form.
type Result struct {
	Errors FieldErrors
	Valid  bool
}

// Fields returns the schema's field names in sorted order.
func (s Schema) Fields() []string {
	return slices.Sorted(maps.Keys(s))
}

// ValidateForm applies every rule in schema to values and collects the
// fields that failed.
func ValidateForm(values Values, schema Schema) Result {
	snapshot := values.Clone()
	errs := make(FieldErrors)

	for field, rule := range schema {
		if rule == nil {
			continue
		}
		if msg := rule(snapshot[field], snapshot); msg != "" {
			errs[field] = msg
		}
	}

	return Result{Errors: errs, Valid: len(errs) == 0}
}

// ValidateField runs the rule for a single field. Fields without a rule are
// always acceptable.
func ValidateField(field, value string, values Values, schema Schema) string {
	rule, ok := schema[field]
	if !ok || rule == nil {
		return ""
	}
	return rule(value, values.Clone())
}
