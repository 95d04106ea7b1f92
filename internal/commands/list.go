package commands

import (
	"fmt"
	"strings"

	"github.com/simonhull/firebird-suite/plume/output"
	"github.com/spf13/cobra"
)

// ListCmd creates the 'list' command.
func ListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available generators",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := app.Registry()
			if err != nil {
				output.Error(err.Error())
				return ErrReported
			}

			if registry.Len() == 0 {
				output.Info("No generators found in:")
				for _, p := range app.Config.Generators.Paths {
					output.Step(p)
				}
				return nil
			}

			width := 0
			for _, name := range registry.Names() {
				width = max(width, len(name))
			}
			for _, def := range registry.Definitions() {
				fmt.Fprintf(app.Out, "  %-*s  %s\n", width, def.Name(), firstLine(def.Description()))
			}
			return nil
		},
	}
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
