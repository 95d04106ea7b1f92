package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// TestProject is a temporary workspace with a generator search path and a
// destination root.
type TestProject struct {
	Root        string
	Generators  string // search path holding generator manifests
	Destination string // where generated files are written
	t           *testing.T
}

// NewTestProject creates the workspace below t.TempDir().
func NewTestProject(t *testing.T) *TestProject {
	t.Helper()

	root := t.TempDir()
	p := &TestProject{
		Root:        root,
		Generators:  filepath.Join(root, "generators"),
		Destination: filepath.Join(root, "app"),
		t:           t,
	}
	for _, dir := range []string{p.Generators, p.Destination} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatal(err)
		}
	}
	return p
}

// WriteManifest writes generators/<name>/<name>.plume.yml and returns its path.
func (p *TestProject) WriteManifest(name, content string) string {
	p.t.Helper()
	return p.write(filepath.Join(p.Generators, name, name+".plume.yml"), content)
}

// WriteTemplate writes a template source next to generator name's manifest.
func (p *TestProject) WriteTemplate(name, rel, content string) string {
	p.t.Helper()
	return p.write(filepath.Join(p.Generators, name, rel), content)
}

// WriteFile writes a file below the destination root.
func (p *TestProject) WriteFile(rel, content string) string {
	p.t.Helper()
	return p.write(filepath.Join(p.Destination, rel), content)
}

// ReadFile reads a file below the destination root.
func (p *TestProject) ReadFile(rel string) string {
	p.t.Helper()

	content, err := os.ReadFile(filepath.Join(p.Destination, rel))
	if err != nil {
		p.t.Fatal(err)
	}
	return string(content)
}

// FileExists checks if a file exists below the destination root.
func (p *TestProject) FileExists(rel string) bool {
	p.t.Helper()

	_, err := os.Stat(filepath.Join(p.Destination, rel))
	return err == nil
}

func (p *TestProject) write(path, content string) string {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		p.t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		p.t.Fatal(err)
	}
	return path
}

// GreetingManifest declares the "greeting" generator: one required
// argument and one template rendered to {{name}}.txt.
const GreetingManifest = `apiVersion: plume/v1
kind: Generator
name: greeting
metadata:
  description: Writes a greeting file.
spec:
  arguments:
    - position: 0
      name: name
      required: true
      desc: Who to greet
  templates:
    - source: file.txt.template
      destination: "{{name}}.txt"
`

// GreetingTemplate is the template source GreetingManifest refers to.
const GreetingTemplate = "Hello {{name}}\n"

// AddGreeting writes the greeting generator into the project.
func (p *TestProject) AddGreeting() {
	p.t.Helper()
	p.WriteManifest("greeting", GreetingManifest)
	p.WriteTemplate("greeting", "file.txt.template", GreetingTemplate)
}
