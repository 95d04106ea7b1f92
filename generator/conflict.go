package generator

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/simonhull/firebird-suite/plume/input"
)

// Status is how a template's destination compared to its rendered content.
type Status int

const (
	StatusAdded     Status = iota // destination absent
	StatusIdentical               // destination holds exactly the rendered content
	StatusForced                  // differs, overwritten because of force
	StatusSkipped                 // differs, kept because of skip
	StatusConflict                // differs, resolved by the operator
)

func (s Status) String() string {
	switch s {
	case StatusAdded:
		return "added"
	case StatusIdentical:
		return "identical"
	case StatusForced:
		return "forced"
	case StatusSkipped:
		return "skipped"
	case StatusConflict:
		return "conflict"
	default:
		return "unknown"
	}
}

// Choice is an operator answer at the conflict prompt. Render and Diff show
// a preview and prompt again; Skip, Overwrite and Abort are final.
type Choice int

const (
	ChoiceSkip Choice = iota
	ChoiceOverwrite
	ChoiceRender
	ChoiceDiff
	ChoiceAbort
)

// Choices lists the conflict menu in display order.
var Choices = []Choice{ChoiceSkip, ChoiceOverwrite, ChoiceRender, ChoiceDiff, ChoiceAbort}

func (c Choice) String() string {
	switch c {
	case ChoiceSkip:
		return "skip"
	case ChoiceOverwrite:
		return "overwrite"
	case ChoiceRender:
		return "render"
	case ChoiceDiff:
		return "diff"
	case ChoiceAbort:
		return "abort"
	default:
		return "unknown"
	}
}

// Final reports whether the choice ends the prompt loop.
func (c Choice) Final() bool {
	return c == ChoiceSkip || c == ChoiceOverwrite || c == ChoiceAbort
}

// Modes are the run-wide flags the resolver reads. Force wins over Skip when
// both are set. Pretend reports every decision without writing.
type Modes struct {
	Force   bool
	Skip    bool
	Pretend bool
}

// Chooser asks the operator how to handle a template in conflict.
type Chooser interface {
	Choose(t *Template) (Choice, error)
}

// Decision is the outcome of resolving one template.
type Decision struct {
	Status  Status
	Choice  Choice // meaningful only when Status is StatusConflict
	Written bool   // false under pretend even when the outcome is a write
}

// Label is the status as reported in a run report, e.g. "added" or
// "conflict-resolved-as-overwrite".
func (d Decision) Label() string {
	if d.Status == StatusConflict {
		return "conflict-resolved-as-" + d.Choice.String()
	}
	return d.Status.String()
}

// Lipgloss styles for status flags
var statusStyles = map[Status]lipgloss.Style{
	StatusAdded:     lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	StatusIdentical: lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	StatusForced:    lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	StatusSkipped:   lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	StatusConflict:  lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
}

// Resolver decides, template by template, whether and how to write.
type Resolver struct {
	modes    Modes
	strategy ConflictStrategy
	out      io.Writer
}

// ConflictStrategy resolves a template whose destination differs from its
// rendered content. Status is what such a template is reported as.
type ConflictStrategy interface {
	Status() Status
	Resolve(t *Template) (Choice, error)
}

// NewResolver creates a resolver. chooser is consulted only for conflicts
// when neither Force nor Skip is set; preview shows render and diff output.
func NewResolver(modes Modes, chooser Chooser, preview Previewer, out io.Writer) *Resolver {
	if out == nil {
		out = os.Stdout
	}
	if preview == nil {
		preview = &InlinePreviewer{Writer: out}
	}
	return &Resolver{
		modes:    modes,
		strategy: selectStrategy(modes, chooser, preview),
		out:      out,
	}
}

// selectStrategy chooses the conflict strategy based on modes
func selectStrategy(modes Modes, chooser Chooser, preview Previewer) ConflictStrategy {
	switch {
	case modes.Force:
		return &ForceStrategy{}
	case modes.Skip:
		return &SkipStrategy{}
	default:
		return &InteractiveStrategy{chooser: chooser, preview: preview, diffGen: NewDiffGenerator()}
	}
}

// Resolve classifies t, prints its status line, asks the strategy when the
// destination differs, and writes unless pretending.
func (r *Resolver) Resolve(ctx context.Context, t *Template) (Decision, error) {
	exists, err := t.Exists()
	if err != nil {
		return Decision{}, err
	}

	if !exists {
		r.status(StatusAdded, t)
		return r.write(ctx, t, Decision{Status: StatusAdded})
	}

	identical, err := t.Identical()
	if err != nil {
		return Decision{}, err
	}
	if identical {
		r.status(StatusIdentical, t)
		return Decision{Status: StatusIdentical}, nil
	}

	status := r.strategy.Status()
	r.status(status, t)
	choice, err := r.strategy.Resolve(t)
	if err != nil {
		return Decision{}, err
	}

	decision := Decision{Status: status, Choice: choice}
	if status == StatusConflict {
		switch choice {
		case ChoiceOverwrite:
			fmt.Fprintln(r.out, "Overwritten")
		case ChoiceAbort:
			fmt.Fprintln(r.out, "Aborted!")
		default:
			fmt.Fprintln(r.out, "Skipped file")
		}
	}
	if choice == ChoiceOverwrite {
		return r.write(ctx, t, decision)
	}
	return decision, nil
}

func (r *Resolver) write(ctx context.Context, t *Template, d Decision) (Decision, error) {
	if r.modes.Pretend {
		return d, nil
	}
	if err := t.Invoke(ctx); err != nil {
		return d, err
	}
	d.Written = true
	return d, nil
}

// status prints "[STATUS]" right-aligned to 12 columns, then the path.
func (r *Resolver) status(s Status, t *Template) {
	flag := fmt.Sprintf("%12s", "["+strings.ToUpper(s.String())+"]")
	fmt.Fprintf(r.out, "%s  %s\n", statusStyles[s].Render(flag), t.RelativeDestination())
}

// ForceStrategy always overwrites (no prompts)
type ForceStrategy struct{}

func (s *ForceStrategy) Status() Status { return StatusForced }

func (s *ForceStrategy) Resolve(t *Template) (Choice, error) {
	return ChoiceOverwrite, nil
}

// SkipStrategy always keeps the existing file (no prompts)
type SkipStrategy struct{}

func (s *SkipStrategy) Status() Status { return StatusSkipped }

func (s *SkipStrategy) Resolve(t *Template) (Choice, error) {
	return ChoiceSkip, nil
}

// InteractiveStrategy asks the chooser until it gets a final choice. Render
// and Diff show their preview, then ask again for the same template.
type InteractiveStrategy struct {
	chooser Chooser
	preview Previewer
	diffGen *DiffGenerator // Reused across conflicts
}

func (s *InteractiveStrategy) Status() Status { return StatusConflict }

func (s *InteractiveStrategy) Resolve(t *Template) (Choice, error) {
	if s.chooser == nil {
		return ChoiceAbort, fmt.Errorf("conflict at %s and no way to ask for a decision", t.RelativeDestination())
	}

	for {
		choice, err := s.chooser.Choose(t)
		if err != nil {
			return ChoiceAbort, fmt.Errorf("conflict at %s: %w", t.RelativeDestination(), err)
		}

		switch choice {
		case ChoiceRender:
			lines, err := t.Lines()
			if err != nil {
				return ChoiceAbort, err
			}
			if err := s.preview.Show("Rendering "+t.RelativeDestination(), FormatRender(lines)); err != nil {
				return ChoiceAbort, err
			}
		case ChoiceDiff:
			existing, err := t.Existing()
			if err != nil {
				return ChoiceAbort, err
			}
			rendered, err := t.Render()
			if err != nil {
				return ChoiceAbort, err
			}
			diff := s.diffGen.Format(existing, rendered)
			if err := s.preview.Show("Showing differences for "+t.RelativeDestination(), diff); err != nil {
				return ChoiceAbort, err
			}
		default:
			return choice, nil
		}
	}
}

// PromptChooser asks on a line-oriented reader; answers may be a choice
// name, its number or its first letter.
type PromptChooser struct {
	prompter *input.Prompter
}

// NewPromptChooser reads answers from in and writes the menu to out.
func NewPromptChooser(in io.Reader, out io.Writer) *PromptChooser {
	return &PromptChooser{prompter: input.NewPrompter(in, out)}
}

func (c *PromptChooser) Choose(t *Template) (Choice, error) {
	names := make([]string, len(Choices))
	for i, choice := range Choices {
		names[i] = choice.String()
	}
	idx, err := c.prompter.Choose("How do you wish to proceed with this file?", names)
	if err != nil {
		return ChoiceAbort, err
	}
	return Choices[idx], nil
}
