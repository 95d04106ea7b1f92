package generator

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// pagerThreshold is the line count above which PagerPreviewer opens a viewport.
const pagerThreshold = 20

// Previewer shows render and diff output during conflict resolution.
type Previewer interface {
	Show(title, body string) error
}

// InlinePreviewer prints previews straight to a writer.
type InlinePreviewer struct {
	Writer io.Writer
}

func (p *InlinePreviewer) Show(title, body string) error {
	w := p.Writer
	if w == nil {
		w = os.Stdout
	}
	_, err := fmt.Fprintf(w, "%s\n\n%s\n\n", headerStyle.Render(title), body)
	return err
}

// PagerPreviewer prints short previews inline and opens long ones in a
// full-screen scrollable viewport.
type PagerPreviewer struct {
	Inline InlinePreviewer
}

func (p *PagerPreviewer) Show(title, body string) error {
	if strings.Count(body, "\n") <= pagerThreshold {
		return p.Inline.Show(title, body)
	}

	program := tea.NewProgram(newPreviewModel(title, body), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to show preview: %w", err)
	}
	return nil
}

var borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

// previewModel is the BubbleTea model for a scrollable preview
type previewModel struct {
	title    string
	body     string
	viewport viewport.Model
	ready    bool
}

func newPreviewModel(title, body string) previewModel {
	return previewModel{title: title, body: body}
}

func (m previewModel) Init() tea.Cmd {
	return nil
}

// Update handles keyboard input and window sizing
func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "up", "k":
			m.viewport.ScrollUp(1)
		case "down", "j":
			m.viewport.ScrollDown(1)
		case "pgup", "b":
			m.viewport.PageUp()
		case "pgdown", "f", "space":
			m.viewport.PageDown()
		}

	case tea.WindowSizeMsg:
		const chrome = 5 // header, footer and borders
		if !m.ready {
			m.viewport = viewport.New(msg.Width-4, msg.Height-chrome)
			m.viewport.SetContent(m.body)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 4
			m.viewport.Height = msg.Height - chrome
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m previewModel) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder

	title := fmt.Sprintf("─ %s ", m.title)
	b.WriteString(borderStyle.Render("┌"+title+strings.Repeat("─", max(0, m.viewport.Width-len(title)+4))+"┐") + "\n")

	for _, line := range strings.Split(m.viewport.View(), "\n") {
		pad := strings.Repeat(" ", max(0, m.viewport.Width-lipgloss.Width(line)-1))
		b.WriteString(borderStyle.Render("│") + " " + line + pad + borderStyle.Render("│") + "\n")
	}

	footer := " [↑/↓] Scroll    [q] Return to menu "
	b.WriteString(borderStyle.Render("└"+strings.Repeat("─", max(0, m.viewport.Width-len(footer)+4))+footer+"┘") + "\n")

	return b.String()
}
