package form

import (
	"html/template"
	"io"
)

const pageTemplate = `<!DOCTYPE html>
<html lang="es">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
<main class="page">
<h1>{{.Title}}</h1>
<form method="post" action="{{.Action}}" novalidate class="{{if .State.Loading}}form-loading{{else}}form-container{{end}}">
{{- $state := .State}}
{{- $errs := .State.VisibleErrors}}
{{- range .Fields}}
<div class="form-group">
<label for="{{.Name}}">{{.Label}}</label>
{{- if eq .Kind "select"}}
<select id="{{.Name}}" name="{{.Name}}" class="{{$state.FieldClass .Name}}"{{if .Required}} required{{end}}>
{{- $current := index $state.Values .Name}}
{{- range .Options}}
<option value="{{.Value}}"{{if eq .Value $current}} selected{{end}}>{{.Label}}</option>
{{- end}}
</select>
{{- else}}
<input id="{{.Name}}" name="{{.Name}}" type="{{inputType .Kind}}" value="{{if ne .Kind "password"}}{{index $state.Values .Name}}{{end}}" class="{{$state.FieldClass .Name}}"{{if .Required}} required{{end}}>
{{- end}}
{{- with .Hint}}
<small class="form-hint">{{.}}</small>
{{- end}}
{{- with index $errs .Name}}
<span class="form-field-error" role="alert">{{.}}</span>
{{- end}}
</div>
{{- end}}
{{- with .State.Error}}
<div class="form-error" role="alert">{{.}}</div>
{{- end}}
<button type="submit"{{if .State.Loading}} disabled{{end}}>{{.Submit}}</button>
</form>
</main>
</body>
</html>
`

var page = template.Must(template.New("form").Funcs(template.FuncMap{
	"inputType": func(k Kind) string {
		if k == "" {
			return string(TextInput)
		}
		return string(k)
	},
}).Parse(pageTemplate))

// Page is everything needed to render a form as HTML.
type Page struct {
	Title  string
	Action string
	Submit string
	Fields Fields
	State  State
}

// Render writes p as a standalone HTML document. Field errors are only
// rendered after the first submit attempt.
func (p Page) Render(w io.Writer) error {
	if p.Submit == "" {
		p.Submit = "Enviar"
	}
	if p.State.Values == nil {
		p.State.Values = p.Fields.Initial()
	}
	return page.Execute(w, p)
}
