package commands

import (
	"github.com/simonhull/firebird-suite/plume"
	"github.com/spf13/cobra"
)

// RootCmd creates the root command for the plume CLI.
func RootCmd(app *App) *cobra.Command {
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:   "plume",
		Short: "Scaffold files from declarative generators",
		Long: `Plume renders files from generator manifests (*.plume.yml).

Each generator declares positional arguments, options and templates, and
may invoke other generators. Existing files are never replaced silently:
every difference is reported and resolved by --force, --skip or by asking.

Generators are discovered on generators.paths in plume.yml
(default .plume/generators).`,
		Version:       plume.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup(flags)
		},
	}

	cmd.SetIn(app.In)
	cmd.SetOut(app.Out)
	cmd.SetErr(app.Err)

	flags.register(cmd.PersistentFlags())

	cmd.AddCommand(GenerateCmd(app, flags))
	cmd.AddCommand(ListCmd(app))

	return cmd
}
