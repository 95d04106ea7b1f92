package main

import (
	"errors"
	"os"

	"github.com/simonhull/firebird-suite/plume/internal/commands"
	"github.com/simonhull/firebird-suite/plume/output"
)

func main() {
	rootCmd := commands.RootCmd(commands.NewApp())

	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, commands.ErrReported) {
			output.Error(err.Error())
		}
		os.Exit(1)
	}
}
