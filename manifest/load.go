package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/simonhull/firebird-suite/plume/filesystem"
	"github.com/simonhull/firebird-suite/plume/generator"
)

// FilePattern matches manifest file names.
const FilePattern = "*.plume.yml"

// Load discovers manifests below each of paths, builds their definitions
// and links invocations by name. Missing paths are ignored. Any invalid
// manifest, duplicate name, unknown invocation or invocation cycle fails
// the whole load.
func Load(paths ...string) (*Registry, error) {
	var files []string
	for _, p := range paths {
		found, err := filesystem.Find(p, filesystem.WalkOptions{}, FilePattern)
		if err != nil {
			return nil, fmt.Errorf("searching %s: %w", p, err)
		}
		files = append(files, found...)
	}
	return LoadFiles(files...)
}

// LoadFiles loads exactly the given manifest files.
func LoadFiles(files ...string) (*Registry, error) {
	registry := NewRegistry()
	docs := make([]*Document, 0, len(files))

	for _, file := range files {
		doc, err := Parse(file)
		if err != nil {
			return nil, err
		}
		def, err := doc.Definition(os.DirFS(filepath.Dir(file)))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}
		if err := registry.Register(def); err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}
		docs = append(docs, doc)
	}

	for _, doc := range docs {
		def, _ := registry.Lookup(doc.Name)
		if err := doc.Link(def, registry.Lookup); err != nil {
			return nil, fmt.Errorf("%s: %w", doc.Path, err)
		}
	}

	for _, def := range registry.Definitions() {
		if cycle := findCycle(def, nil); cycle != nil {
			return nil, fmt.Errorf("invocation cycle: %s", strings.Join(cycle, " -> "))
		}
	}

	return registry, nil
}

// findCycle returns the names along an invocation path that revisits a
// generator, or nil.
func findCycle(def *generator.Definition, path []string) []string {
	for i, name := range path {
		if name == def.Name() {
			return append(path[i:], def.Name())
		}
	}
	path = append(path, def.Name())
	for _, inv := range def.Invocations() {
		if cycle := findCycle(inv.Definition, path); cycle != nil {
			return cycle
		}
	}
	return nil
}
