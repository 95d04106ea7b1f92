package generator

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplate_RenderIsMemoized(t *testing.T) {
	calls := 0
	tmpl := NewTemplate("/root", "a.txt", func() ([]byte, error) {
		calls++
		return []byte("x"), nil
	})

	for range 3 {
		got, err := tmpl.Render()
		require.NoError(t, err)
		assert.Equal(t, "x", string(got))
	}
	assert.Equal(t, 1, calls)
}

func TestTemplate_NilRenderIsEmpty(t *testing.T) {
	tmpl := NewTemplate("/root", "a.txt", func() ([]byte, error) { return nil, nil })
	got, err := tmpl.Render()
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestTemplate_Lines(t *testing.T) {
	tmpl := textTemplate("/root", "a.txt", "one\ntwo\n")
	lines, err := tmpl.Lines()
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, lines)
}

func TestTemplate_ExistsAndIdentical(t *testing.T) {
	root := t.TempDir()
	tmpl := textTemplate(root, "a.txt", "content")

	exists, err := tmpl.Exists()
	require.NoError(t, err)
	assert.False(t, exists)

	identical, err := tmpl.Identical()
	require.NoError(t, err)
	assert.False(t, identical)

	writeFile(t, filepath.Join(root, "a.txt"), "content")
	identical, err = tmpl.Identical()
	require.NoError(t, err)
	assert.True(t, identical)

	writeFile(t, filepath.Join(root, "a.txt"), "content\n")
	identical, err = tmpl.Identical()
	require.NoError(t, err)
	assert.False(t, identical, "byte comparison, not line comparison")
}

func TestTemplate_InvokeCreatesParents(t *testing.T) {
	root := t.TempDir()
	tmpl := textTemplate(root, filepath.Join("deep", "er", "a.txt"), "hi")

	require.NoError(t, tmpl.Invoke(context.Background()))

	info, err := os.Stat(tmpl.Destination())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())
	assert.Equal(t, "hi", readFile(t, tmpl.Destination()))
}

func TestTemplate_InvokeCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tmpl := textTemplate(t.TempDir(), "a.txt", "hi")
	assert.ErrorIs(t, tmpl.Invoke(ctx), context.Canceled)
	assert.NoFileExists(t, tmpl.Destination())
}
