package input

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var menu = []string{"skip", "overwrite", "render", "diff", "abort"}

func TestChoose(t *testing.T) {
	tests := []struct {
		name   string
		answer string
		want   int
	}{
		{"by name", "overwrite\n", 1},
		{"by number", "4\n", 3},
		{"by first letter", "a\n", 4},
		{"case insensitive", "SKIP\n", 0},
		{"retries after invalid", "nope\n9\nrender\n", 2},
		{"no trailing newline", "diff", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := NewPrompter(strings.NewReader(tt.answer), &out)

			got, err := p.Choose("How do you wish to proceed with this file?", menu)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "1. skip")
		})
	}
}

func TestChoose_EndOfInput(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("bogus\n"), &out)

	_, err := p.Choose("Pick", menu)
	assert.ErrorIs(t, err, ErrNoAnswer)
	assert.Contains(t, out.String(), "You must choose one of")
}

func TestMatch_Ambiguous(t *testing.T) {
	_, ok := match("s", []string{"skip", "save"})
	assert.False(t, ok)

	idx, ok := match("sk", []string{"skip", "save"})
	assert.True(t, ok)
	assert.Equal(t, 0, idx)
}

func TestPrompt(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("\nacme\n"), &out)

	assert.Equal(t, "model", p.Prompt("Generator", "model"))
	assert.Equal(t, "acme", p.Prompt("Name", ""))
	assert.Contains(t, out.String(), "(model)")
}

func TestConfirm(t *testing.T) {
	p := NewPrompter(strings.NewReader("y\n\nno\n"), &bytes.Buffer{})

	assert.True(t, p.Confirm("Continue?", false))
	assert.True(t, p.Confirm("Continue?", true))
	assert.False(t, p.Confirm("Continue?", true))
}
