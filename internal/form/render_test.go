package form_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"golang.org/x/net/html"

	"github.com/Pedro-J-Kukul/vuelosapi/internal/form"
	"github.com/Pedro-J-Kukul/vuelosapi/internal/validator"
)

var loginFields = form.Fields{
	{Name: "correo", Label: "Correo electrónico", Kind: form.EmailInput, Required: true, Filter: validator.FieldEmail},
	{Name: "contrasena", Label: "Contraseña", Kind: form.PasswordInput, Required: true, Filter: validator.FieldPassword},
	{Name: "tipoDocumento", Label: "Tipo de documento", Kind: form.Select, Default: "CC", Options: []form.Option{
		{Value: "CC", Label: "Cédula de Ciudadanía"},
		{Value: "TI", Label: "Tarjeta de Identidad"},
	}},
}

// findAll walks the tree and collects element nodes named tag.
func findAll(n *html.Node, tag string) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tag {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func hasClass(n *html.Node, class string) bool {
	v, _ := attr(n, "class")
	for _, c := range strings.Fields(v) {
		if c == class {
			return true
		}
	}
	return false
}

func render(t *testing.T, p form.Page) *html.Node {
	t.Helper()
	var buf bytes.Buffer
	if err := p.Render(&buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	doc, err := html.Parse(&buf)
	if err != nil {
		t.Fatalf("rendered page does not parse: %v", err)
	}
	return doc
}

func TestRenderFreshForm(t *testing.T) {
	doc := render(t, form.Page{Title: "Iniciar sesión", Action: "/v1/tokens/authentication", Fields: loginFields})

	inputs := findAll(doc, "input")
	if len(inputs) != 2 {
		t.Fatalf("got %d inputs, want 2", len(inputs))
	}
	if typ, _ := attr(inputs[1], "type"); typ != "password" {
		t.Errorf("contrasena type = %q", typ)
	}
	if _, ok := attr(inputs[0], "required"); !ok {
		t.Error("correo should be required")
	}

	selects := findAll(doc, "select")
	if len(selects) != 1 {
		t.Fatalf("got %d selects, want 1", len(selects))
	}
	var selected string
	for _, opt := range findAll(selects[0], "option") {
		if _, ok := attr(opt, "selected"); ok {
			selected, _ = attr(opt, "value")
		}
	}
	if selected != "CC" {
		t.Errorf("selected option = %q, want the default CC", selected)
	}

	for _, span := range findAll(doc, "span") {
		if hasClass(span, "form-field-error") {
			t.Error("field errors must not render before the first submit")
		}
	}

	buttons := findAll(doc, "button")
	if len(buttons) != 1 {
		t.Fatalf("got %d buttons", len(buttons))
	}
	if buttons[0].FirstChild == nil || buttons[0].FirstChild.Data != "Enviar" {
		t.Error("default submit label not rendered")
	}
}

func TestRenderAfterFailedSubmit(t *testing.T) {
	e := form.New(loginFields.Initial(), loginSchema, nil)
	e.Change("correo", "pepito@gmail.com", validator.FieldEmail)
	e.Change("contrasena", "123", validator.FieldPassword)
	if _, err := e.Submit(context.Background()); err != nil {
		t.Fatal(err)
	}

	doc := render(t, form.Page{Title: "Iniciar sesión", Fields: loginFields, State: e.State(), Submit: "Ingresar"})

	for _, in := range findAll(doc, "input") {
		name, _ := attr(in, "name")
		value, _ := attr(in, "value")
		switch name {
		case "correo":
			if value != "pepito@gmail.com" {
				t.Errorf("correo value = %q", value)
			}
			if !hasClass(in, "form-input--success") {
				t.Error("correo should be marked as valid")
			}
		case "contrasena":
			if value != "" {
				t.Error("password values must not be echoed")
			}
			if !hasClass(in, "form-input--error") {
				t.Error("contrasena should be marked as invalid")
			}
		}
	}

	var fieldErrs []string
	var global string
	for _, n := range append(findAll(doc, "span"), findAll(doc, "div")...) {
		switch {
		case hasClass(n, "form-field-error"):
			fieldErrs = append(fieldErrs, n.FirstChild.Data)
		case hasClass(n, "form-error"):
			global = n.FirstChild.Data
		}
	}
	if len(fieldErrs) != 1 || fieldErrs[0] != "La contraseña debe tener al menos 6 caracteres" {
		t.Errorf("field errors = %q", fieldErrs)
	}
	if global != form.MsgFixErrors {
		t.Errorf("global error = %q", global)
	}
}

func TestRenderEscapesValues(t *testing.T) {
	st := form.State{Values: form.Values{"correo": `"><script>alert(1)</script>`}}
	doc := render(t, form.Page{Title: "x", Fields: loginFields, State: st})

	if n := len(findAll(doc, "script")); n != 0 {
		t.Fatalf("value was not escaped: %d script elements", n)
	}
}

func TestRenderLoadingDisablesButton(t *testing.T) {
	doc := render(t, form.Page{Title: "x", Fields: loginFields, State: form.State{Loading: true}})

	btn := findAll(doc, "button")[0]
	if _, ok := attr(btn, "disabled"); !ok {
		t.Error("button should be disabled while loading")
	}
	if f := findAll(doc, "form")[0]; !hasClass(f, "form-loading") {
		t.Error("form should carry the loading class")
	}
}
