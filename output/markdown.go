package output

import (
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// Markdown renders text for the terminal with glamour, word-wrapped to the
// terminal width. With color off, or if rendering fails, text is returned
// trimmed and otherwise unchanged.
func Markdown(text string) string {
	plain := strings.TrimSpace(text)
	if !colorEnabled || plain == "" {
		return plain
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(Width()-4),
	)
	if err != nil {
		return plain
	}
	rendered, err := r.Render(text)
	if err != nil {
		return plain
	}
	return strings.TrimRight(rendered, "\n")
}

// Width returns the terminal width, defaulting to 80 if unable to detect.
func Width() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
