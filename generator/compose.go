package generator

import "slices"

// CollectDefinitions returns root followed, depth first, by the definitions
// of its invocations in declaration order. A definition invoked twice appears
// twice. Cyclic invocation graphs are a configuration error and never finish.
func CollectDefinitions(root *Definition) []*Definition {
	defs := []*Definition{root}
	for _, inv := range root.invocations {
		defs = append(defs, CollectDefinitions(inv.Definition)...)
	}
	return defs
}

// CollectOptionDeclarations merges the options of every generator in the tree
// into one command line surface. Generators are visited innermost first, so
// when two declare the same name the one closest to the root has the final
// say on description and default. Each name keeps the position of its first
// appearance in that order.
func CollectOptionDeclarations(root *Definition) []OptionDeclaration {
	defs := CollectDefinitions(root)
	slices.Reverse(defs)

	var merged []OptionDeclaration
	index := make(map[string]int)
	for _, d := range defs {
		for _, o := range d.options {
			if at, ok := index[o.Name]; ok {
				merged[at] = o
				continue
			}
			index[o.Name] = len(merged)
			merged = append(merged, o)
		}
	}
	return merged
}

// CollectTemplates returns root's own templates in declaration order,
// followed by each child's templates collected recursively in invocation order.
func CollectTemplates(root *Instance) ([]*Template, error) {
	templates, err := root.Templates()
	if err != nil {
		return nil, err
	}
	for _, child := range root.children {
		sub, err := CollectTemplates(child)
		if err != nil {
			return nil, err
		}
		templates = append(templates, sub...)
	}
	return templates, nil
}
