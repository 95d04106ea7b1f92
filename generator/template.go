package generator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Template is a template bound to an instance: where it goes and how to
// produce its content. Content is rendered once and reused, so the
// identical check, previews and the final write all see the same bytes.
type Template struct {
	source      string
	relative    string
	destination string
	render      func() ([]byte, error)

	content  []byte
	rendered bool
}

// NewTemplate binds content produced by render to a destination below root.
func NewTemplate(root, relative string, render func() ([]byte, error)) *Template {
	return &Template{relative: relative, destination: filepath.Join(root, relative), render: render}
}

func (t *Template) Source() string { return t.source }

// RelativeDestination is the destination relative to the destination root.
func (t *Template) RelativeDestination() string { return t.relative }

// Destination is the absolute (root-joined) destination path.
func (t *Template) Destination() string { return t.destination }

// Render returns the rendered content.
func (t *Template) Render() ([]byte, error) {
	if t.rendered {
		return t.content, nil
	}
	content, err := t.render()
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", t.relative, err)
	}
	if content == nil {
		content = []byte{}
	}
	t.content, t.rendered = content, true
	return t.content, nil
}

// Lines returns the rendered content split into lines.
func (t *Template) Lines() ([]string, error) {
	content, err := t.Render()
	if err != nil {
		return nil, err
	}
	return splitLines(string(content)), nil
}

// Exists reports whether the destination is already on disk.
func (t *Template) Exists() (bool, error) {
	_, err := os.Stat(t.destination)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("stat %s: %w", t.destination, err)
}

// Existing reads the current destination content.
func (t *Template) Existing() ([]byte, error) {
	data, err := os.ReadFile(t.destination)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", t.destination, err)
	}
	return data, nil
}

// Identical reports whether the destination exists with exactly the
// rendered content.
func (t *Template) Identical() (bool, error) {
	exists, err := t.Exists()
	if err != nil || !exists {
		return false, err
	}
	existing, err := t.Existing()
	if err != nil {
		return false, err
	}
	content, err := t.Render()
	if err != nil {
		return false, err
	}
	return bytes.Equal(existing, content), nil
}

// Invoke writes the rendered content to the destination, creating parent
// directories as needed.
func (t *Template) Invoke(ctx context.Context) error {
	content, err := t.Render()
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(t.destination)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("cannot create directory %s: %w", dir, err)
	}
	if err := os.WriteFile(t.destination, content, 0644); err != nil {
		return fmt.Errorf("write %s: %w", t.destination, err)
	}
	return nil
}
