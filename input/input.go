// Package input reads operator answers from a line-oriented terminal:
// free text, yes/no, and a numbered choice menu.
package input

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// ErrNoAnswer is returned by Choose when input ends before a valid answer.
var ErrNoAnswer = errors.New("no answer given")

// Prompter reads answers line by line from a reader and writes prompts to a writer.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter creates a prompter. nil arguments default to stdin and stdout.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Prompt asks for text input with an optional default value.
// If the user presses Enter without typing anything, the default is returned.
//
// Example:
//
//	name := p.Prompt("Generator name", "model")
//	// Displays: Generator name (model): _
func (p *Prompter) Prompt(message, defaultValue string) string {
	if defaultValue != "" {
		fmt.Fprint(p.out, promptStyle.Render(message)+" "+
			hintStyle.Render(fmt.Sprintf("(%s)", defaultValue))+": ")
	} else {
		fmt.Fprint(p.out, promptStyle.Render(message)+": ")
	}

	answer, err := p.readLine()
	if err != nil || answer == "" {
		return defaultValue
	}
	return answer
}

// Confirm asks a yes/no question.
// Returns true if the user answers yes (y/Y/yes/YES), false otherwise.
// If defaultYes is true, pressing Enter returns true.
func (p *Prompter) Confirm(message string, defaultYes bool) bool {
	hint := "[y/N]"
	if defaultYes {
		hint = "[Y/n]"
	}
	fmt.Fprint(p.out, promptStyle.Render(message)+" "+hintStyle.Render(hint)+": ")

	answer, err := p.readLine()
	if err != nil || answer == "" {
		return defaultYes
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes"
}

// Choose lists numbered choices and asks until a valid answer arrives.
// An answer may be the choice itself, its 1-based number, or an unambiguous
// prefix. Returns the chosen index, or ErrNoAnswer when input runs out.
//
// Example:
//
//	1. skip
//	2. overwrite
//	How do you wish to proceed with this file? _
func (p *Prompter) Choose(message string, choices []string) (int, error) {
	for i, choice := range choices {
		fmt.Fprintf(p.out, "%d. %s\n", i+1, choice)
	}

	for {
		fmt.Fprint(p.out, promptStyle.Render(message)+"  ")

		answer, err := p.readLine()
		if answer != "" {
			if idx, ok := match(answer, choices); ok {
				return idx, nil
			}
			fmt.Fprintln(p.out, hintStyle.Render(fmt.Sprintf("You must choose one of [%s].", strings.Join(choices, ", "))))
		}
		if err != nil {
			return -1, ErrNoAnswer
		}
	}
}

func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	line = strings.TrimSpace(line)
	if err != nil && line == "" {
		return "", err
	}
	return line, nil
}

func match(answer string, choices []string) (int, bool) {
	if n, err := strconv.Atoi(answer); err == nil {
		if n >= 1 && n <= len(choices) {
			return n - 1, true
		}
		return -1, false
	}

	answer = strings.ToLower(answer)
	found := -1
	for i, choice := range choices {
		c := strings.ToLower(choice)
		if c == answer {
			return i, true
		}
		if strings.HasPrefix(c, answer) {
			if found >= 0 {
				return -1, false // ambiguous
			}
			found = i
		}
	}
	return found, found >= 0
}

var stdin = NewPrompter(nil, nil)

// Prompt asks on stdin/stdout. See Prompter.Prompt.
func Prompt(message, defaultValue string) string {
	return stdin.Prompt(message, defaultValue)
}

// Confirm asks on stdin/stdout. See Prompter.Confirm.
func Confirm(message string, defaultYes bool) bool {
	return stdin.Confirm(message, defaultYes)
}
