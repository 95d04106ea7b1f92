package manifest

import (
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/simonhull/firebird-suite/plume/generator"
)

// ValidationError is one problem found in a manifest.
type ValidationError struct {
	Field      string // e.g. "spec.arguments[1].name"
	Message    string
	Suggestion string
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("validation error at %s: %s", e.Field, e.Message)
	if e.Suggestion != "" {
		msg += fmt.Sprintf(". Suggestion: %s", e.Suggestion)
	}
	return msg
}

// ValidationErrors collects every problem in a manifest.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "validation errors"
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "found %d validation errors:\n", len(e))
	for i, err := range e {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, err.Error())
	}
	return b.String()
}

func (e *ValidationErrors) add(field, format string, args ...any) {
	*e = append(*e, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
}

// Validate checks the document header and its decoded spec. It returns
// ValidationErrors listing every problem, or nil.
func Validate(doc *Document) error {
	var errs ValidationErrors

	switch doc.APIVersion {
	case APIVersion:
	case "":
		errs.add("apiVersion", "apiVersion is required")
	default:
		errs = append(errs, ValidationError{
			Field:      "apiVersion",
			Message:    fmt.Sprintf("unsupported apiVersion %q", doc.APIVersion),
			Suggestion: "use " + APIVersion,
		})
	}
	if doc.Kind != Kind {
		errs = append(errs, ValidationError{
			Field:      "kind",
			Message:    fmt.Sprintf("kind must be %s, got %q", Kind, doc.Kind),
			Suggestion: "set kind: " + Kind,
		})
	}
	if doc.Name == "" {
		errs.add("name", "name is required")
	} else if !generator.IsIdentifier(doc.Name) {
		errs.add("name", "%q is not a valid generator name", doc.Name)
	}

	spec, err := doc.DecodeSpec()
	if err != nil {
		errs.add("spec", "%v", err)
		return errs
	}
	validateArguments(&errs, spec.Arguments)
	validateOptions(&errs, spec.Options)
	validateTemplates(&errs, spec.Templates)

	for i, inv := range spec.Invocations {
		if inv.Generator == "" {
			errs.add(fmt.Sprintf("spec.invocations[%d].generator", i), "generator is required")
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateArguments(errs *ValidationErrors, args []ArgumentSpec) {
	positions := make(map[int]bool)
	names := make(map[string]bool)

	for i, a := range args {
		field := fmt.Sprintf("spec.arguments[%d]", i)

		if a.Position < 0 {
			errs.add(field+".position", "position must not be negative")
		} else if positions[a.Position] {
			errs.add(field+".position", "position %d is declared twice", a.Position)
		}
		positions[a.Position] = true

		if !generator.IsIdentifier(a.Name) {
			*errs = append(*errs, ValidationError{
				Field:      field + ".name",
				Message:    fmt.Sprintf("%q is not a valid argument name", a.Name),
				Suggestion: "use letters, digits and underscores",
			})
		} else if names[a.Name] {
			errs.add(field+".name", "argument %q is declared twice", a.Name)
		}
		names[a.Name] = true

		if v := a.Validate; v != nil {
			if v.Pattern != "" {
				if _, err := regexp.Compile(v.Pattern); err != nil {
					errs.add(field+".validate.pattern", "invalid pattern: %v", err)
				}
			}
			if v.Transform != "" {
				if _, ok := transforms[v.Transform]; !ok {
					*errs = append(*errs, ValidationError{
						Field:      field + ".validate.transform",
						Message:    fmt.Sprintf("unknown transform %q", v.Transform),
						Suggestion: "use one of " + strings.Join(transformNames(), ", "),
					})
				}
			}
		}
	}
}

func validateOptions(errs *ValidationErrors, opts []OptionSpec) {
	names := make(map[string]bool)
	for i, o := range opts {
		field := fmt.Sprintf("spec.options[%d].name", i)
		switch {
		case !generator.IsIdentifier(o.Name):
			errs.add(field, "%q is not a valid option name", o.Name)
		case names[o.Name]:
			errs.add(field, "option %q is declared twice", o.Name)
		}
		names[o.Name] = true

		if o.Boolean && o.Default != nil {
			if _, ok := o.Default.(bool); !ok {
				errs.add(fmt.Sprintf("spec.options[%d].default", i), "boolean option needs a true/false default")
			}
		}
	}
}

func validateTemplates(errs *ValidationErrors, templates []TemplateSpec) {
	for i, t := range templates {
		field := fmt.Sprintf("spec.templates[%d]", i)
		switch {
		case t.Source == "":
			errs.add(field+".source", "source is required")
		case !validSource(t.Source):
			*errs = append(*errs, ValidationError{
				Field:      field + ".source",
				Message:    fmt.Sprintf("%q must stay inside the manifest's directory", t.Source),
				Suggestion: "use a relative path without ..",
			})
		}
		if t.Destination == "" {
			errs.add(field+".destination", "destination is required")
		}
	}
}

func validSource(source string) bool {
	s := path.Clean(strings.ReplaceAll(source, "\\", "/"))
	return !path.IsAbs(s) && s != ".." && !strings.HasPrefix(s, "../")
}
