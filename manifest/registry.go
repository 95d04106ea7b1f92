package manifest

import (
	"fmt"

	"github.com/simonhull/firebird-suite/plume/generator"
	"github.com/tidwall/btree"
)

// Registry holds generator definitions by name, in name order.
type Registry struct {
	defs *btree.Map[string, *generator.Definition]
}

func NewRegistry() *Registry {
	return &Registry{defs: btree.NewMap[string, *generator.Definition](0)}
}

// Register adds def. Names are unique.
func (r *Registry) Register(def *generator.Definition) error {
	if _, exists := r.defs.Get(def.Name()); exists {
		return fmt.Errorf("generator %q is already registered", def.Name())
	}
	r.defs.Set(def.Name(), def)
	return nil
}

func (r *Registry) Lookup(name string) (*generator.Definition, bool) {
	return r.defs.Get(name)
}

// Names returns every registered name, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, r.defs.Len())
	r.defs.Scan(func(name string, _ *generator.Definition) bool {
		names = append(names, name)
		return true
	})
	return names
}

// Definitions returns every registered definition, sorted by name.
func (r *Registry) Definitions() []*generator.Definition {
	defs := make([]*generator.Definition, 0, r.defs.Len())
	r.defs.Scan(func(_ string, def *generator.Definition) bool {
		defs = append(defs, def)
		return true
	})
	return defs
}

func (r *Registry) Len() int {
	return r.defs.Len()
}
