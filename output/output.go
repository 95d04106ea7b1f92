package output

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	stepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	out          io.Writer = os.Stdout
	verboseMode  bool
	colorEnabled = true
)

// SetWriter redirects all output. nil restores stdout.
func SetWriter(w io.Writer) {
	if w == nil {
		w = os.Stdout
	}
	out = w
}

// Writer returns the current output destination.
func Writer() io.Writer {
	return out
}

// SetVerbose enables or disables Verbose messages.
func SetVerbose(v bool) {
	verboseMode = v
}

// SetColor switches styling on or off for every lipgloss style in the
// process, including status lines printed by the generator package.
func SetColor(enabled bool) {
	colorEnabled = enabled
	if enabled {
		lipgloss.SetColorProfile(termenv.EnvColorProfile())
	} else {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// ColorEnabled reports the last SetColor value.
func ColorEnabled() bool {
	return colorEnabled
}

// Success prints a completed-operation message.
func Success(msg string) {
	fmt.Fprintln(out, successStyle.Render("🪶 "+msg))
}

// Error prints a failure that needs the operator's attention.
func Error(msg string) {
	fmt.Fprintln(out, errorStyle.Render("❌ "+msg))
}

func Info(msg string) {
	fmt.Fprintln(out, infoStyle.Render("ℹ️  "+msg))
}

// Step prints an indented sub-item.
func Step(msg string) {
	fmt.Fprintln(out, stepStyle.Render("   "+msg))
}

// Verbose prints only when verbose mode is on.
func Verbose(msg string) {
	if verboseMode {
		fmt.Fprintln(out, stepStyle.Render("🔍 "+msg))
	}
}

// Plain prints msg unstyled.
func Plain(msg string) {
	fmt.Fprintln(out, msg)
}
