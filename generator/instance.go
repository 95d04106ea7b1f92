package generator

import (
	"fmt"
	"maps"
	"path/filepath"
)

// Instance is one run's binding of a Definition: destination root, options,
// argument values and the child instances built from its invocations.
// Children are owned by exactly one parent.
type Instance struct {
	definition      *Definition
	destinationRoot string
	options         map[string]any
	raw             []any
	values          map[string]any
	children        []*Instance
}

// BoundArgument is an argument declaration paired with its current value.
type BoundArgument struct {
	ArgumentDeclaration
	Value any
}

// New binds positional values to def and recursively instantiates every
// invocation. The value at position p is args[p] when present and non-nil,
// else the declaration's default. Every value passes through the same
// validator as Set; required arguments are checked after all positions
// are assigned, so a validator rejection anywhere wins over a missing value.
func New(def *Definition, destinationRoot string, options map[string]any, args ...any) (*Instance, error) {
	if len(args) > def.arity() {
		return nil, &TooManyArgumentsError{Generator: def.name, Max: def.arity(), Given: len(args)}
	}

	inst := &Instance{
		definition:      def,
		destinationRoot: destinationRoot,
		options:         make(map[string]any, len(options)+len(def.options)),
		raw:             append([]any(nil), args...),
		values:          make(map[string]any, len(def.arguments)),
	}

	for _, o := range def.options {
		if o.Default != nil {
			inst.options[o.Name] = o.Default
		}
	}
	maps.Copy(inst.options, options)

	for _, decl := range def.arguments {
		var value any
		if decl.Position < len(args) {
			value = args[decl.Position]
		}
		if value == nil {
			value = decl.Default
		}
		value, err := inst.validate(decl, value)
		if err != nil {
			return nil, err
		}
		inst.values[decl.Name] = value
	}

	// Required arguments are checked once every position is assigned.
	for _, decl := range def.arguments {
		if decl.Required && inst.values[decl.Name] == nil {
			return nil, &TooFewArgumentsError{Generator: def.name, Argument: decl.Name}
		}
	}

	for _, inv := range def.invocations {
		childArgs := inv.Args
		if len(childArgs) == 0 && inv.Inherit {
			childArgs = inst.raw
		}
		child, err := New(inv.Definition, destinationRoot, options, childArgs...)
		if err != nil {
			return nil, fmt.Errorf("invoking %s from %s: %w", inv.Definition.name, def.name, err)
		}
		inst.children = append(inst.children, child)
	}

	return inst, nil
}

func (i *Instance) Definition() *Definition { return i.definition }
func (i *Instance) Name() string            { return i.definition.name }
func (i *Instance) DestinationRoot() string { return i.destinationRoot }
func (i *Instance) Children() []*Instance   { return append([]*Instance(nil), i.children...) }

// Option returns an option value, falling back to the declared default.
func (i *Instance) Option(name string) any {
	return i.options[name]
}

// Get returns the current value of a declared argument (nil when unset).
func (i *Instance) Get(name string) any {
	return i.values[name]
}

// Set assigns a declared argument after construction, applying the same
// required and validator rules as New.
func (i *Instance) Set(name string, value any) error {
	decl, ok := i.definition.argument(name)
	if !ok {
		return fmt.Errorf("%s has no argument named %q", i.definition.name, name)
	}
	return i.assign(decl, value)
}

// Arguments returns the bound arguments ordered by position.
func (i *Instance) Arguments() []BoundArgument {
	bound := make([]BoundArgument, 0, len(i.definition.arguments))
	for _, decl := range i.definition.arguments {
		bound = append(bound, BoundArgument{ArgumentDeclaration: decl, Value: i.values[decl.Name]})
	}
	return bound
}

// Bindings returns the values templates are rendered with.
func (i *Instance) Bindings() Bindings {
	b := make(Bindings, len(i.options)+len(i.values)+1)
	maps.Copy(b, i.options)
	maps.Copy(b, i.values)
	b["destination_root"] = i.destinationRoot
	return b
}

// Templates binds the definition's own template declarations to this
// instance's current bindings.
func (i *Instance) Templates() ([]*Template, error) {
	bindings := i.Bindings()
	templates := make([]*Template, 0, len(i.definition.templates))
	for _, decl := range i.definition.templates {
		t, err := i.bindTemplate(decl, bindings)
		if err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}
	return templates, nil
}

func (i *Instance) bindTemplate(decl TemplateDeclaration, bindings Bindings) (*Template, error) {
	relative, err := defaultRenderer.RenderString(i.definition.name+":"+decl.Destination, decl.Destination, bindings)
	if err != nil {
		return nil, fmt.Errorf("destination for %s: %w", i.definition.name, err)
	}
	rel := filepath.Clean(string(relative))

	render := decl.Render
	if render == nil {
		fsys, source := i.definition.templateFS, decl.Source
		render = func(b Bindings) ([]byte, error) {
			if fsys == nil {
				return nil, fmt.Errorf("generator %s has no template filesystem for %s", i.definition.name, source)
			}
			return defaultRenderer.RenderFS(fsys, source, b)
		}
	}

	return &Template{
		source:      decl.Source,
		relative:    rel,
		destination: filepath.Join(i.destinationRoot, rel),
		render:      func() ([]byte, error) { return render(bindings) },
	}, nil
}

// assign is the validated assignment behind Set.
func (i *Instance) assign(decl ArgumentDeclaration, value any) error {
	value, err := i.validate(decl, value)
	if err != nil {
		return err
	}
	if value == nil && decl.Required {
		return &TooFewArgumentsError{Generator: i.definition.name, Argument: decl.Name}
	}
	i.values[decl.Name] = value
	return nil
}

// validate runs decl's validator on a non-nil value.
func (i *Instance) validate(decl ArgumentDeclaration, value any) (any, error) {
	if value == nil || decl.Validate == nil {
		return value, nil
	}
	out := decl.Validate(value)
	if out.rejected {
		return nil, &ArgumentError{Generator: i.definition.name, Argument: decl.Name, Message: out.message}
	}
	return out.value, nil
}
