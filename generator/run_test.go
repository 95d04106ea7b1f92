package generator

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/simonhull/firebird-suite/plume/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func acmeDefinition(t *testing.T) *Definition {
	t.Helper()
	fsys := fstest.MapFS{
		"file.txt.template": {Data: []byte("Hello {{name}}\n")},
	}
	def := NewDefinition("greeting", WithTemplateFS(fsys))
	require.NoError(t, def.FirstArgument("name", Required()))
	def.Template("file.txt.template", "{{name}}.txt")
	return def
}

func runOptions(root string, out *bytes.Buffer, chooser Chooser, args ...any) RunOptions {
	return RunOptions{
		DestinationRoot: root,
		Arguments:       args,
		Chooser:         chooser,
		Writer:          out,
		Logger:          logger.NewSilentLogger(),
	}
}

func TestRun_EndToEnd(t *testing.T) {
	def := acmeDefinition(t)
	root := t.TempDir()
	path := filepath.Join(root, "acme.txt")
	ctx := context.Background()

	var out bytes.Buffer
	report, err := Run(ctx, def, runOptions(root, &out, nil, "acme"))
	require.NoError(t, err)
	require.Len(t, report.Entries, 1)
	assert.Equal(t, "acme.txt", report.Entries[0].Path)
	assert.Equal(t, StatusAdded, report.Entries[0].Status)
	assert.Equal(t, "Hello acme\n", readFile(t, path))
	assert.Contains(t, out.String(), "Generating with greeting generator:\n")

	out.Reset()
	report, err = Run(ctx, def, runOptions(root, &out, nil, "acme"))
	require.NoError(t, err)
	assert.Equal(t, 1, report.Count("identical"))

	writeFile(t, path, "edited by hand\n")
	chooser := &scriptedChooser{answers: []Choice{ChoiceOverwrite}}
	report, err = Run(ctx, def, runOptions(root, &out, chooser, "acme"))
	require.NoError(t, err)
	assert.Equal(t, 1, report.Count("conflict-resolved-as-overwrite"))
	assert.Equal(t, "Hello acme\n", readFile(t, path))
}

func TestRun_ArgumentErrorWritesNothing(t *testing.T) {
	root := t.TempDir()
	var out bytes.Buffer

	report, err := Run(context.Background(), acmeDefinition(t), runOptions(root, &out, nil))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrArgument)
	assert.Nil(t, report)
	assert.Empty(t, out.String())
}

func TestRun_Pretend(t *testing.T) {
	root := t.TempDir()
	var out bytes.Buffer
	opts := runOptions(root, &out, nil, "acme")
	opts.Modes.Pretend = true

	report, err := Run(context.Background(), acmeDefinition(t), opts)
	require.NoError(t, err)
	assert.True(t, report.Pretend)
	assert.Equal(t, 1, report.Count("added"))
	assert.False(t, report.Entries[0].Written)
	assert.NoFileExists(t, filepath.Join(root, "acme.txt"))
	assert.Contains(t, out.String(), "Generating with greeting generator (just pretending):")
}

func TestRun_AbortStopsProcessing(t *testing.T) {
	def := NewDefinition("multi")
	def.TemplateFunc("a.txt", staticTemplate("new a"))
	def.TemplateFunc("b.txt", staticTemplate("new b"))
	def.TemplateFunc("c.txt", staticTemplate("new c"))

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "b.txt"), "old b")
	var out bytes.Buffer
	chooser := &scriptedChooser{answers: []Choice{ChoiceAbort}}

	report, err := Run(context.Background(), def, runOptions(root, &out, chooser))
	assert.ErrorIs(t, err, ErrAborted)
	require.NotNil(t, report)
	assert.True(t, report.Aborted)
	require.Len(t, report.Entries, 2)
	assert.Equal(t, "added", report.Entries[0].Label())
	assert.Equal(t, "conflict-resolved-as-abort", report.Entries[1].Label())

	assert.Equal(t, "new a", readFile(t, filepath.Join(root, "a.txt")))
	assert.Equal(t, "old b", readFile(t, filepath.Join(root, "b.txt")))
	assert.NoFileExists(t, filepath.Join(root, "c.txt"))
	assert.Contains(t, out.String(), "Aborted!")
}

func TestRun_ComposedGenerators(t *testing.T) {
	child := NewDefinition("child")
	require.NoError(t, child.FirstArgument("name", Required()))
	require.NoError(t, child.Option(OptionDeclaration{Name: "suffix", Default: "go"}))
	child.TemplateFunc("{{name}}_child.{{suffix}}", func(b Bindings) ([]byte, error) {
		return []byte(Str(b["name"])), nil
	})

	root := NewDefinition("parent")
	require.NoError(t, root.FirstArgument("name", Required()))
	root.TemplateFunc("{{name}}.txt", staticTemplate("parent"))
	root.InvokeInherited(child)

	dir := t.TempDir()
	var out bytes.Buffer
	opts := runOptions(dir, &out, nil, "widget")
	opts.Options = map[string]any{"suffix": "rb"}

	report, err := Run(context.Background(), root, opts)
	require.NoError(t, err)

	require.Len(t, report.Entries, 2)
	assert.Equal(t, "widget.txt", report.Entries[0].Path)
	assert.Equal(t, "widget_child.rb", report.Entries[1].Path)
	assert.Equal(t, "widget", readFile(t, filepath.Join(dir, "widget_child.rb")))
}

func TestRun_RenderErrorNamesTemplate(t *testing.T) {
	def := NewDefinition("broken", WithTemplateFS(fstest.MapFS{}))
	def.Template("missing.template", "out.txt")

	_, err := Run(context.Background(), def, runOptions(t.TempDir(), &bytes.Buffer{}, nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out.txt")
}

func TestRun_NoTemplateFS(t *testing.T) {
	def := NewDefinition("nofs")
	def.Template("a.template", "a.txt")

	_, err := Run(context.Background(), def, runOptions(t.TempDir(), &bytes.Buffer{}, nil))
	assert.ErrorContains(t, err, "has no template filesystem")
}
