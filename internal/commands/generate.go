package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/simonhull/firebird-suite/plume"
	"github.com/simonhull/firebird-suite/plume/generator"
	"github.com/simonhull/firebird-suite/plume/logger"
	"github.com/simonhull/firebird-suite/plume/output"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// GenerateCmd creates the 'generate' command. Flag parsing is done here
// rather than by cobra because each generator contributes its own options.
func GenerateCmd(app *App, global *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "generate NAME [options] [args]",
		Short: "Run a generator",
		Long: `Run the named generator against the destination directory.

Each template prints its status: added, identical, forced, skipped or
conflict. On a conflict you choose to skip, overwrite, render the new
content, diff it against the existing file, or abort.

Examples:
  plume generate model User
  plume generate model User --package domain --force
  plume generate model --help`,
		DisableFlagParsing: true,
		// setup runs once flags are parsed, see RunE
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 || args[0] == "-h" || args[0] == "--help" {
				return cmd.Help()
			}
			if args[0] == "--version" {
				fmt.Fprintf(app.Out, "plume %s\n", plume.Version)
				return nil
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return app.generate(ctx, global, args[0], args[1:])
		},
	}
}

// runFlags are the flags every generator accepts.
type runFlags struct {
	help, version           bool
	pretend, force, skip    bool
	destination             string
	general, generatorFlags *pflag.FlagSet
}

func newRunFlags(name string, global *globalFlags, options []generator.OptionDeclaration) (*runFlags, error) {
	rf := &runFlags{
		general:        pflag.NewFlagSet(name, pflag.ContinueOnError),
		generatorFlags: pflag.NewFlagSet(name, pflag.ContinueOnError),
	}

	g := rf.general
	g.BoolVarP(&rf.help, "help", "h", false, "Print this help and exit")
	g.BoolVar(&rf.version, "version", false, "Print the plume version and exit")
	g.BoolVarP(&rf.pretend, "pretend", "p", false, "Report what would happen without writing files")
	g.BoolVarP(&rf.force, "force", "f", false, "Overwrite files that already exist")
	g.BoolVarP(&rf.skip, "skip", "s", false, "Skip files that already exist")
	g.StringVarP(&rf.destination, "destination", "d", "", "Destination root (default from plume.yml, else .)")
	global.register(g)

	for _, o := range options {
		flag := o.FlagName()
		if g.Lookup(flag) != nil {
			return nil, fmt.Errorf("generator option %q collides with the built-in --%s flag", o.Name, flag)
		}
		if o.Boolean {
			def, _ := o.Default.(bool)
			rf.generatorFlags.Bool(flag, def, o.Desc)
		} else {
			rf.generatorFlags.String(flag, generator.Str(o.Default), o.Desc)
		}
	}

	return rf, nil
}

// parse parses args with both flag sets and returns the positional values.
func (rf *runFlags) parse(args []string) ([]string, error) {
	all := pflag.NewFlagSet("generate", pflag.ContinueOnError)
	all.SetOutput(io.Discard)
	all.AddFlagSet(rf.general)
	all.AddFlagSet(rf.generatorFlags)
	if err := all.Parse(args); err != nil {
		return nil, err
	}
	return all.Args(), nil
}

// options returns the generator options given on the command line.
// Options left unset are omitted so their declared defaults apply.
func (rf *runFlags) options(decls []generator.OptionDeclaration) map[string]any {
	values := make(map[string]any)
	for _, o := range decls {
		flag := rf.generatorFlags.Lookup(o.FlagName())
		if flag == nil || !flag.Changed {
			continue
		}
		if o.Boolean {
			values[o.Name], _ = rf.generatorFlags.GetBool(o.FlagName())
		} else {
			values[o.Name] = flag.Value.String()
		}
	}
	return values
}

func (a *App) generate(ctx context.Context, global *globalFlags, name string, args []string) error {
	// Global flags can appear anywhere, so pick them out before the
	// generator and its options are known.
	global.parse(args)
	if err := a.setup(global); err != nil {
		output.Error(err.Error())
		return ErrReported
	}

	registry, err := a.Registry()
	if err != nil {
		output.Error(err.Error())
		return ErrReported
	}
	def, ok := registry.Lookup(name)
	if !ok {
		output.Error(fmt.Sprintf("Could not find generator '%s'.", name))
		if names := registry.Names(); len(names) > 0 {
			output.Info("Available generators:")
			for _, n := range names {
				output.Step(n)
			}
		}
		return ErrReported
	}

	decls := generator.CollectOptionDeclarations(def)
	rf, err := newRunFlags(name, global, decls)
	if err != nil {
		output.Error(err.Error())
		return ErrReported
	}

	positional, err := rf.parse(args)
	if err != nil {
		output.Error(err.Error())
		a.printHelp(def, rf)
		return ErrReported
	}
	if rf.help || (len(positional) > 0 && positional[0] == "help") {
		a.printHelp(def, rf)
		return nil
	}
	if rf.version {
		fmt.Fprintf(a.Out, "plume %s\n", plume.Version)
		return nil
	}

	opts := a.runOptions(rf, decls, positional)
	report, err := generator.Run(ctx, def, opts)
	switch {
	case errors.Is(err, generator.ErrArgument):
		output.Error(err.Error())
		a.printHelp(def, rf)
		return ErrReported
	case errors.Is(err, generator.ErrAborted):
		return ErrReported
	case err != nil:
		output.Error(err.Error())
		return ErrReported
	}

	a.Log.Info("run finished",
		logger.F("generator", report.Generator),
		logger.F("templates", len(report.Entries)),
		logger.F("pretend", report.Pretend),
	)
	output.Verbose(summary(report))
	return nil
}

func (a *App) runOptions(rf *runFlags, decls []generator.OptionDeclaration, positional []string) generator.RunOptions {
	modes := generator.Modes{
		Force:   a.Config.Defaults.Force,
		Skip:    a.Config.Defaults.Skip,
		Pretend: rf.pretend,
	}
	if rf.general.Changed("force") {
		modes.Force = rf.force
	}
	if rf.general.Changed("skip") {
		modes.Skip = rf.skip
	}

	// A configured destination is relative to the project, a flag to the
	// working directory.
	destination := a.Config.Defaults.Destination
	if !filepath.IsAbs(destination) {
		destination = filepath.Join(a.Dir, destination)
	}
	if rf.destination != "" {
		destination = rf.destination
	}

	arguments := make([]any, len(positional))
	for i, p := range positional {
		arguments[i] = p
	}

	opts := generator.RunOptions{
		DestinationRoot: destination,
		Options:         rf.options(decls),
		Arguments:       arguments,
		Modes:           modes,
		Writer:          a.Out,
		Logger:          a.Log,
	}
	if a.Interactive {
		opts.Chooser = &generator.MenuChooser{}
		opts.Preview = &generator.PagerPreviewer{Inline: generator.InlinePreviewer{Writer: a.Out}}
	} else {
		opts.Chooser = generator.NewPromptChooser(a.In, a.Out)
		opts.Preview = &generator.InlinePreviewer{Writer: a.Out}
	}
	return opts
}

func summary(r *generator.Report) string {
	counts := map[string]int{}
	var order []string
	for _, e := range r.Entries {
		label := e.Label()
		if counts[label] == 0 {
			order = append(order, label)
		}
		counts[label]++
	}
	s := fmt.Sprintf("%d templates", len(r.Entries))
	for _, label := range order {
		s += fmt.Sprintf(", %d %s", counts[label], label)
	}
	return s
}
