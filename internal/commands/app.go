package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/simonhull/firebird-suite/plume/internal/config"
	"github.com/simonhull/firebird-suite/plume/logger"
	"github.com/simonhull/firebird-suite/plume/manifest"
	"github.com/simonhull/firebird-suite/plume/output"
	"github.com/spf13/pflag"
)

// ErrReported marks an error that has already been shown to the operator;
// the caller should only set the exit status.
var ErrReported = errors.New("error already reported")

// App carries the process streams and the state shared by every command.
type App struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer

	// Dir is where plume.yml is looked up. Defaults to the working directory.
	Dir string

	// Interactive selects the terminal menu and pager for conflicts.
	Interactive bool

	Config *config.Config
	Log    logger.Logger

	registry *manifest.Registry
}

// NewApp wires the app to the real terminal.
func NewApp() *App {
	dir, _ := os.Getwd()
	return &App{
		In:          os.Stdin,
		Out:         os.Stdout,
		Err:         os.Stderr,
		Dir:         dir,
		Interactive: output.IsTerminal(os.Stdin) && output.IsTerminal(os.Stdout),
	}
}

type globalFlags struct {
	verbose    bool
	noColor    bool
	configFile string
	logLevel   string
}

func (g *globalFlags) register(fs *pflag.FlagSet) {
	fs.BoolVarP(&g.verbose, "verbose", "v", g.verbose, "Enable verbose output for debugging")
	fs.BoolVar(&g.noColor, "no-color", g.noColor, "Disable colored output")
	fs.StringVar(&g.configFile, "config", g.configFile, "Configuration file (default: plume.yml)")
	fs.StringVar(&g.logLevel, "log-level", g.logLevel, "Log level: debug, info, warn, error, silent")
}

// parse picks the global flags out of args, ignoring everything else.
func (g *globalFlags) parse(args []string) {
	fs := pflag.NewFlagSet("global", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	g.register(fs)
	_ = fs.Parse(args)
}

// setup loads configuration and configures output and logging.
func (a *App) setup(flags *globalFlags) error {
	output.SetWriter(a.Out)
	output.SetVerbose(flags.verbose)

	var (
		cfg *config.Config
		err error
	)
	if flags.configFile != "" {
		cfg, err = config.LoadFile(flags.configFile)
	} else {
		cfg, err = config.Load(a.Dir)
	}
	if err != nil {
		return err
	}
	a.Config = cfg

	output.SetColor(!(flags.noColor || cfg.Defaults.NoColor))

	level := cfg.LogLevel()
	if flags.logLevel != "" {
		if level, err = logger.ParseLevel(flags.logLevel); err != nil {
			return err
		}
	} else if flags.verbose {
		level = logger.LevelDebug
	}

	sink := a.Err
	if cfg.Log.File != "" {
		sink = io.MultiWriter(a.Err, logger.FileWriter(cfg.Log.File, cfg.Rotation()))
	}
	a.Log = logger.NewLogger(level, sink)
	logger.SetDefault(a.Log)

	if cfg.File != "" {
		a.Log.Debug("configuration loaded", logger.F("file", cfg.File))
	}
	return nil
}

// Registry loads the generators on the configured search paths once.
func (a *App) Registry() (*manifest.Registry, error) {
	if a.registry != nil {
		return a.registry, nil
	}
	registry, err := manifest.Load(a.Config.Generators.Paths...)
	if err != nil {
		return nil, fmt.Errorf("loading generators: %w", err)
	}
	a.Log.Debug("generators loaded",
		logger.F("paths", a.Config.Generators.Paths),
		logger.F("count", registry.Len()),
	)
	a.registry = registry
	return registry, nil
}
