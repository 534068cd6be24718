package main

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Pedro-J-Kukul/vuelosapi/internal/form"
	"github.com/Pedro-J-Kukul/vuelosapi/internal/schemas"
)

func formsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "forms [name]",
		Short: "List the forms, or describe one form's fields",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				for _, name := range schemas.Names() {
					def := schemas.MustLookup(name)
					fmt.Fprintf(tw, "%s\t%s\t%d fields\n", name, def.Title, len(def.Fields))
				}
				return tw.Flush()
			}

			def, err := schemas.Lookup(args[0])
			if err != nil {
				return err
			}
			return describe(out, def)
		},
	}
	return cmd
}

// describe prints the field descriptors of def as YAML.
func describe(w io.Writer, def schemas.Definition) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	type field struct {
		Name     string   `yaml:"name"`
		Label    string   `yaml:"label"`
		Kind     string   `yaml:"kind"`
		Required bool     `yaml:"required,omitempty"`
		Filter   string   `yaml:"filter,omitempty"`
		Default  string   `yaml:"default,omitempty"`
		Options  []string `yaml:"options,omitempty"`
	}
	doc := struct {
		Name   string  `yaml:"name"`
		Title  string  `yaml:"title"`
		Fields []field `yaml:"fields"`
	}{Name: def.Name, Title: def.Title}

	for _, f := range def.Fields {
		entry := field{
			Name:     f.Name,
			Label:    f.Label,
			Kind:     cmp.Or(string(f.Kind), "text"),
			Required: f.Required,
			Filter:   string(f.Filter),
			Default:  f.Default,
		}
		for _, o := range f.Options {
			entry.Options = append(entry.Options, o.Value)
		}
		doc.Fields = append(doc.Fields, entry)
	}
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

func validateCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "validate <form> [field=value ...]",
		Short: "Check input against a form without submitting it",
		Long: `Run the form's filters and rules over the given values, exactly as the API
does before submitting. Exits with status 1 when any field is invalid.`,
		Example: `  vuelosctl validate login correo=pepito@gmail.com contrasena=123456
  vuelosctl validate search origen=Bogotá destino=Medellín fechaIda=2025-11-15`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := schemas.Lookup(args[0])
			if err != nil {
				return err
			}

			in := form.Values{}
			for _, pair := range args[1:] {
				name, value, ok := strings.Cut(pair, "=")
				if !ok {
					return fmt.Errorf("%q is not a field=value pair", pair)
				}
				if _, known := def.Fields.Lookup(name); !known {
					return fmt.Errorf("form %s has no field %q", def.Name, name)
				}
				in[name] = value
			}

			engine := def.NewEngine(nil, func(context.Context, form.Values) error { return nil })
			def.Fields.Apply(engine, in)
			res, err := engine.Submit(cmd.Context())
			if err != nil {
				return err
			}

			if err := report(cmd.OutOrStdout(), def, engine.State(), asJSON); err != nil {
				return err
			}
			if !res.Valid {
				return errInvalidInput
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the form state as JSON")
	return cmd
}

// report prints the outcome of a validation run. Password values are never
// echoed.
func report(w io.Writer, def schemas.Definition, state form.State, asJSON bool) error {
	for _, f := range def.Fields {
		if f.Kind == form.PasswordInput && state.Values[f.Name] != "" {
			state.Values[f.Name] = "******"
		}
	}

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(state)
	}

	if len(state.FieldErrors) == 0 {
		fmt.Fprintf(w, "\033[32m✓\033[0m %s: all fields valid\n", def.Name)
		return nil
	}

	fmt.Fprintf(w, "\033[31m✗\033[0m %s: %s\n", def.Name, state.Error)
	names := make([]string, 0, len(state.FieldErrors))
	for name := range state.FieldErrors {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %-20s %s\n", name, state.FieldErrors[name])
	}
	return nil
}
