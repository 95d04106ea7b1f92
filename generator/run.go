package generator

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/simonhull/firebird-suite/plume/logger"
)

// RunOptions configures one generation run.
type RunOptions struct {
	DestinationRoot string
	Options         map[string]any // option name → value, as parsed from the command line
	Arguments       []any          // raw positional values
	Modes           Modes

	Chooser Chooser   // asked on conflicts; required unless Force or Skip
	Preview Previewer // defaults to inline previews on Writer
	Writer  io.Writer // defaults to os.Stdout
	Logger  logger.Logger
}

// ReportEntry records what happened to one template.
type ReportEntry struct {
	Path string // relative destination
	Decision
}

// Report is the outcome of a run, one entry per processed template in
// processing order.
type Report struct {
	Generator string
	Pretend   bool
	Aborted   bool
	Entries   []ReportEntry
}

// Count returns how many entries carry label (see Decision.Label).
func (r *Report) Count(label string) int {
	n := 0
	for _, e := range r.Entries {
		if e.Label() == label {
			n++
		}
	}
	return n
}

// Run binds def to the options and arguments, collects the templates of the
// whole generator tree and resolves them one at a time in order.
//
// Binding failures are returned before anything is printed or written and
// match ErrArgument. An operator abort stops the run and returns the partial
// report with ErrAborted; files already written stay written.
func Run(ctx context.Context, def *Definition, opts RunOptions) (*Report, error) {
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}
	if opts.Logger == nil {
		opts.Logger = logger.Default()
	}
	log := opts.Logger.WithFields(logger.F("generator", def.Name()))

	log.Debug("binding arguments", logger.F("count", len(opts.Arguments)))
	root, err := New(def, opts.DestinationRoot, opts.Options, opts.Arguments...)
	if err != nil {
		return nil, err
	}

	templates, err := CollectTemplates(root)
	if err != nil {
		return nil, err
	}
	log.Debug("collected templates", logger.F("count", len(templates)))

	if opts.Modes.Pretend {
		fmt.Fprintf(opts.Writer, "Generating with %s generator (just pretending):\n", def.Name())
	} else {
		fmt.Fprintf(opts.Writer, "Generating with %s generator:\n", def.Name())
	}

	preview := opts.Preview
	if preview == nil {
		preview = &InlinePreviewer{Writer: opts.Writer}
	}
	resolver := NewResolver(opts.Modes, opts.Chooser, preview, opts.Writer)

	report := &Report{Generator: def.Name(), Pretend: opts.Modes.Pretend}
	for _, t := range templates {
		decision, err := resolver.Resolve(ctx, t)
		if err != nil {
			return report, fmt.Errorf("%s: %w", t.RelativeDestination(), err)
		}

		report.Entries = append(report.Entries, ReportEntry{Path: t.RelativeDestination(), Decision: decision})
		log.Debug("resolved template",
			logger.F("template", t.RelativeDestination()),
			logger.F("status", decision.Label()),
			logger.F("written", decision.Written),
		)

		if decision.Status == StatusConflict && decision.Choice == ChoiceAbort {
			report.Aborted = true
			return report, ErrAborted
		}
	}

	return report, nil
}
