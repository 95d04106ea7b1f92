package generator

import (
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Lipgloss styles for the conflict menu
var (
	warningStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true)
)

// MenuChooser asks with a keyboard-driven terminal menu. Quitting the menu
// counts as Abort.
type MenuChooser struct{}

func (c *MenuChooser) Choose(t *Template) (Choice, error) {
	info, err := os.Stat(t.Destination())
	if err != nil && !os.IsNotExist(err) {
		return ChoiceAbort, fmt.Errorf("failed to stat file: %w", err)
	}

	final, err := tea.NewProgram(newConflictMenuModel(t.RelativeDestination(), info)).Run()
	if err != nil {
		return ChoiceAbort, fmt.Errorf("failed to show menu: %w", err)
	}

	result := final.(conflictMenuModel)
	if result.selected == nil {
		return ChoiceAbort, nil
	}
	return *result.selected, nil
}

// conflictMenuModel is the BubbleTea model for the conflict menu
type conflictMenuModel struct {
	path     string
	fileInfo os.FileInfo
	cursor   int
	selected *Choice
}

func newConflictMenuModel(path string, fileInfo os.FileInfo) conflictMenuModel {
	return conflictMenuModel{path: path, fileInfo: fileInfo}
}

func (m conflictMenuModel) Init() tea.Cmd {
	return nil
}

// Update handles keyboard input
func (m conflictMenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(Choices)-1 {
			m.cursor++
		}

	case "enter":
		choice := Choices[m.cursor]
		m.selected = &choice
		return m, tea.Quit

	default:
		// First letter jumps straight to a choice: s, o, r, d, a.
		for _, choice := range Choices {
			if key.String() == choice.String()[:1] {
				m.selected = &choice
				return m, tea.Quit
			}
		}
	}

	return m, nil
}

// View renders the menu
func (m conflictMenuModel) View() string {
	var b strings.Builder

	b.WriteString(warningStyle.Render("⚠️  File conflict detected: ") + titleStyle.Render(m.path) + "\n")

	if m.fileInfo != nil {
		b.WriteString(mutedStyle.Render("    Last modified: ") + formatRelativeTime(m.fileInfo.ModTime()) + "\n")
		b.WriteString(mutedStyle.Render("    Size: ") + formatFileSize(m.fileInfo.Size()) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("    [↑/↓] Navigate    [Enter] Select    [q] Abort") + "\n\n")

	for i, choice := range Choices {
		label := choiceLabels[choice]
		if m.cursor == i {
			b.WriteString("    " + selectedStyle.Render("> "+label) + "\n")
		} else {
			b.WriteString("      " + label + "\n")
		}
	}

	return b.String()
}

var choiceLabels = map[Choice]string{
	ChoiceSkip:      "Skip (keep existing file)",
	ChoiceOverwrite: "Overwrite (replace with generated content)",
	ChoiceRender:    "Render (show generated content)",
	ChoiceDiff:      "Diff (compare existing and generated)",
	ChoiceAbort:     "Abort (stop generating)",
}

// formatRelativeTime formats a time as relative (e.g., "2 hours ago")
func formatRelativeTime(t time.Time) string {
	d := time.Since(t)

	plural := func(n int, unit string) string {
		if n == 1 {
			return "1 " + unit + " ago"
		}
		return fmt.Sprintf("%d %ss ago", n, unit)
	}

	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return plural(int(d.Minutes()), "minute")
	case d < 24*time.Hour:
		return plural(int(d.Hours()), "hour")
	case d < 7*24*time.Hour:
		return plural(int(d.Hours()/24), "day")
	case d < 30*24*time.Hour:
		return plural(int(d.Hours()/24/7), "week")
	case d < 365*24*time.Hour:
		return plural(int(d.Hours()/24/30), "month")
	default:
		return plural(int(d.Hours()/24/365), "year")
	}
}

// formatFileSize formats file size in human-readable format
func formatFileSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}

	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}
