package form_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Pedro-J-Kukul/vuelosapi/internal/form"
)

func TestValidateFormCollectsOnlyFailures(t *testing.T) {
	res := form.ValidateForm(form.Values{"correo": "a@b.com", "contrasena": "12345"}, loginSchema)

	want := form.FieldErrors{"contrasena": "La contraseña debe tener al menos 6 caracteres"}
	if diff := cmp.Diff(want, res.Errors); diff != "" {
		t.Errorf("errors mismatch (-want +got):\n%s", diff)
	}
	if res.Valid {
		t.Error("expected invalid result")
	}
}

func TestValidateFormCrossField(t *testing.T) {
	schema := form.Schema{
		"contrasena": func(v string, _ form.Values) string {
			if v == "" {
				return "requerida"
			}
			return ""
		},
		"confirmarContrasena": func(v string, all form.Values) string {
			if v != all["contrasena"] {
				return "no coinciden"
			}
			return ""
		},
	}

	tests := []struct {
		name   string
		values form.Values
		want   form.FieldErrors
	}{
		{"match", form.Values{"contrasena": "abcdef", "confirmarContrasena": "abcdef"}, form.FieldErrors{}},
		{"mismatch", form.Values{"contrasena": "abcdef", "confirmarContrasena": "abcdeg"}, form.FieldErrors{"confirmarContrasena": "no coinciden"}},
		{"missing keys", form.Values{}, form.FieldErrors{"contrasena": "requerida"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := form.ValidateForm(tt.values, schema)
			if diff := cmp.Diff(tt.want, res.Errors); diff != "" {
				t.Errorf("errors mismatch (-want +got):\n%s", diff)
			}
			if res.Valid != (len(tt.want) == 0) {
				t.Errorf("Valid = %v", res.Valid)
			}
		})
	}
}

func TestValidateFormDoesNotLetRulesMutateInput(t *testing.T) {
	schema := form.Schema{
		"a": func(_ string, all form.Values) string {
			all["b"] = "changed"
			return ""
		},
		"b": func(string, form.Values) string { return "" },
	}
	in := form.Values{"a": "1", "b": "2"}
	form.ValidateForm(in, schema)
	if in["b"] != "2" {
		t.Errorf("rule mutated caller values: %v", in)
	}
}

func TestValidateField(t *testing.T) {
	values := form.Values{"correo": "a@b.com"}
	if msg := form.ValidateField("contrasena", "123", values, loginSchema); msg == "" {
		t.Error("expected a message for a short password")
	}
	if msg := form.ValidateField("correo", "a@b.com", values, loginSchema); msg != "" {
		t.Errorf("unexpected message %q", msg)
	}
	if msg := form.ValidateField("nope", "x", values, loginSchema); msg != "" {
		t.Errorf("unknown fields must pass, got %q", msg)
	}
}

func TestFromAny(t *testing.T) {
	got := form.FromAny(map[string]any{
		"precio":   350000.0,
		"asientos": 12.0,
		"tarifa":   99.5,
		"origen":   "Bogotá",
		"activo":   true,
		"nada":     nil,
	})
	want := form.Values{
		"precio":   "350000",
		"asientos": "12",
		"tarifa":   "99.5",
		"origen":   "Bogotá",
		"activo":   "true",
		"nada":     "",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("FromAny mismatch (-want +got):\n%s", diff)
	}

	n, err := got.Int("precio")
	if err != nil || n != 350000 {
		t.Errorf("Int(precio) = %d, %v", n, err)
	}
	f, err := got.Float("tarifa")
	if err != nil || f != 99.5 {
		t.Errorf("Float(tarifa) = %v, %v", f, err)
	}
}

func TestSchemaFieldsSorted(t *testing.T) {
	if diff := cmp.Diff([]string{"contrasena", "correo"}, loginSchema.Fields()); diff != "" {
		t.Errorf("Fields mismatch (-want +got):\n%s", diff)
	}
}
