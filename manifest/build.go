package manifest

import (
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/simonhull/firebird-suite/plume/generator"
)

// Definition builds the generator described by doc, reading template
// sources from fsys. Invocations are not linked; see Link.
func (d *Document) Definition(fsys fs.FS) (*generator.Definition, error) {
	if err := Validate(d); err != nil {
		return nil, err
	}
	spec, err := d.DecodeSpec()
	if err != nil {
		return nil, err
	}

	def := generator.NewDefinition(d.Name,
		generator.WithDescription(d.Description()),
		generator.WithTemplateFS(fsys),
	)

	for _, a := range spec.Arguments {
		opts := []generator.ArgumentOption{generator.WithDesc(a.Desc)}
		if a.Required {
			opts = append(opts, generator.Required())
		}
		if a.Default != nil {
			opts = append(opts, generator.WithDefault(a.Default))
		}
		if a.Validate != nil {
			v, err := newValidator(a.Name, a.Validate)
			if err != nil {
				return nil, err
			}
			opts = append(opts, generator.WithValidator(v))
		}
		if err := def.Argument(a.Position, a.Name, opts...); err != nil {
			return nil, err
		}
	}

	for _, o := range spec.Options {
		err := def.Option(generator.OptionDeclaration{
			Name:    o.Name,
			Desc:    o.Desc,
			Default: o.Default,
			Boolean: o.Boolean,
		})
		if err != nil {
			return nil, err
		}
	}

	for _, t := range spec.Templates {
		def.Template(path.Clean(strings.ReplaceAll(t.Source, "\\", "/")), t.Destination)
	}

	return def, nil
}

// Link adds doc's invocations to def, resolving generator names through
// lookup.
func (d *Document) Link(def *generator.Definition, lookup func(name string) (*generator.Definition, bool)) error {
	spec, err := d.DecodeSpec()
	if err != nil {
		return err
	}

	for i, inv := range spec.Invocations {
		child, ok := lookup(inv.Generator)
		if !ok {
			return &ValidationError{
				Field:   fmt.Sprintf("spec.invocations[%d].generator", i),
				Message: fmt.Sprintf("%s invokes unknown generator %q", d.Name, inv.Generator),
			}
		}
		switch {
		case len(inv.Args) > 0:
			def.Invoke(child, inv.Args...)
		case inv.Inherit:
			def.InvokeInherited(child)
		default:
			def.Invoke(child)
		}
	}
	return nil
}
