package generator

import (
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

// Bindings are the values a template is rendered with: options overlaid by
// bound arguments, plus "destination_root".
type Bindings map[string]any

// RenderFunc produces a template's content from its bindings.
type RenderFunc func(b Bindings) ([]byte, error)

// OptionDeclaration declares a generator-specific command line option.
type OptionDeclaration struct {
	Name    string
	Desc    string
	Default any
	Boolean bool
}

// FlagName is the kebab-case flag the option is exposed as (without "--").
func (o OptionDeclaration) FlagName() string {
	return strings.ReplaceAll(o.Name, "_", "-")
}

// TemplateDeclaration maps a source template to a destination path template.
// When Render is nil the source is read from the definition's template
// filesystem and rendered with the default Renderer.
type TemplateDeclaration struct {
	Source      string
	Destination string
	Render      RenderFunc
}

// Invocation composes a child generator into its parent. Args are the child's
// static positional values; with Inherit set and no Args, the parent's raw
// positional values are forwarded instead.
type Invocation struct {
	Definition *Definition
	Args       []any
	Inherit    bool
}

// Definition is a generator blueprint: arguments, options, templates and
// child invocations. It is built once (at startup or when manifests load) and
// only read afterwards; instances never modify it.
type Definition struct {
	name        string
	desc        string
	templateFS  fs.FS
	arguments   []ArgumentDeclaration
	options     []OptionDeclaration
	templates   []TemplateDeclaration
	invocations []Invocation
}

// DefinitionOption configures a Definition at construction.
type DefinitionOption func(*Definition)

// WithDescription sets the (markdown) description shown in help.
func WithDescription(desc string) DefinitionOption {
	return func(d *Definition) { d.desc = desc }
}

// WithTemplateFS sets the filesystem template sources are read from.
// An embed.FS or os.DirFS both work.
func WithTemplateFS(fsys fs.FS) DefinitionOption {
	return func(d *Definition) { d.templateFS = fsys }
}

// NewDefinition creates an empty generator definition.
func NewDefinition(name string, opts ...DefinitionOption) *Definition {
	d := &Definition{name: name}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Definition) Name() string        { return d.name }
func (d *Definition) Description() string { return d.desc }
func (d *Definition) TemplateFS() fs.FS   { return d.templateFS }

// Arguments returns the declared arguments ordered by position.
func (d *Definition) Arguments() []ArgumentDeclaration {
	return append([]ArgumentDeclaration(nil), d.arguments...)
}

func (d *Definition) Options() []OptionDeclaration {
	return append([]OptionDeclaration(nil), d.options...)
}

func (d *Definition) Templates() []TemplateDeclaration {
	return append([]TemplateDeclaration(nil), d.templates...)
}

func (d *Definition) Invocations() []Invocation {
	return append([]Invocation(nil), d.invocations...)
}

// Argument declares a positional argument. Positions and names are unique
// per definition and cannot be redeclared.
func (d *Definition) Argument(position int, name string, opts ...ArgumentOption) error {
	if position < 0 {
		return fmt.Errorf("argument %q: position must not be negative", name)
	}
	if !IsIdentifier(name) {
		return fmt.Errorf("argument %q: name must be an identifier", name)
	}
	for _, a := range d.arguments {
		if a.Position == position {
			return fmt.Errorf("argument %q: position %d already declared by %q", name, position, a.Name)
		}
		if a.Name == name {
			return fmt.Errorf("argument %q already declared at position %d", name, a.Position)
		}
	}

	decl := ArgumentDeclaration{Position: position, Name: name}
	for _, opt := range opts {
		opt(&decl)
	}

	d.arguments = append(d.arguments, decl)
	sort.Slice(d.arguments, func(i, j int) bool {
		return d.arguments[i].Position < d.arguments[j].Position
	})
	return nil
}

func (d *Definition) FirstArgument(name string, opts ...ArgumentOption) error {
	return d.Argument(0, name, opts...)
}

func (d *Definition) SecondArgument(name string, opts ...ArgumentOption) error {
	return d.Argument(1, name, opts...)
}

func (d *Definition) ThirdArgument(name string, opts ...ArgumentOption) error {
	return d.Argument(2, name, opts...)
}

func (d *Definition) FourthArgument(name string, opts ...ArgumentOption) error {
	return d.Argument(3, name, opts...)
}

// Option declares a generator-specific command line option.
func (d *Definition) Option(opt OptionDeclaration) error {
	if !IsIdentifier(opt.Name) {
		return fmt.Errorf("option %q: name must be an identifier", opt.Name)
	}
	for _, o := range d.options {
		if o.Name == opt.Name {
			return fmt.Errorf("option %q already declared", opt.Name)
		}
	}
	d.options = append(d.options, opt)
	return nil
}

// Template declares a template read from the definition's template filesystem.
func (d *Definition) Template(source, destination string) {
	d.templates = append(d.templates, TemplateDeclaration{Source: source, Destination: destination})
}

// TemplateFunc declares a template whose content comes from render.
func (d *Definition) TemplateFunc(destination string, render RenderFunc) {
	d.templates = append(d.templates, TemplateDeclaration{Destination: destination, Render: render})
}

// Invoke composes child into this generator with static positional values.
func (d *Definition) Invoke(child *Definition, args ...any) {
	d.invocations = append(d.invocations, Invocation{Definition: child, Args: args})
}

// InvokeInherited composes child, forwarding this generator's raw positional values.
func (d *Definition) InvokeInherited(child *Definition) {
	d.invocations = append(d.invocations, Invocation{Definition: child, Inherit: true})
}

// arity is the number of positional values the definition accepts:
// the highest declared position plus one.
func (d *Definition) arity() int {
	if len(d.arguments) == 0 {
		return 0
	}
	return d.arguments[len(d.arguments)-1].Position + 1
}

func (d *Definition) argument(name string) (ArgumentDeclaration, bool) {
	for _, a := range d.arguments {
		if a.Name == name {
			return a, true
		}
	}
	return ArgumentDeclaration{}, false
}
