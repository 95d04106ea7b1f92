package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/simonhull/firebird-suite/plume/generator"
	"github.com/simonhull/firebird-suite/plume/output"
)

// printHelp prints a generator's usage, description, arguments and the
// merged option surface of its whole invocation tree.
func (a *App) printHelp(def *generator.Definition, rf *runFlags) {
	w := a.Out
	fmt.Fprintf(w, "Usage:\n  plume generate %s [options]%s\n", def.Name(), argumentSynopsis(def))

	if desc := def.Description(); desc != "" {
		fmt.Fprintf(w, "\n%s\n", output.Markdown(desc))
	}

	if args := def.Arguments(); len(args) > 0 {
		fmt.Fprintln(w, "\nArguments:")
		writeArguments(w, args)
	}

	if rf.generatorFlags.HasFlags() {
		fmt.Fprintf(w, "\nOptions specific for this generator:\n%s", rf.generatorFlags.FlagUsages())
	}
	fmt.Fprintf(w, "\nGeneral options:\n%s", rf.general.FlagUsages())
}

func argumentSynopsis(def *generator.Definition) string {
	var b strings.Builder
	for _, a := range def.Arguments() {
		name := strings.ToUpper(a.Name)
		if a.Required {
			b.WriteString(" " + name)
		} else {
			b.WriteString(" [" + name + "]")
		}
	}
	return b.String()
}

func writeArguments(w io.Writer, args []generator.ArgumentDeclaration) {
	width := 0
	for _, a := range args {
		width = max(width, len(a.Name))
	}
	for _, a := range args {
		var notes []string
		if a.Required {
			notes = append(notes, "required")
		}
		if a.Default != nil {
			notes = append(notes, "default: "+generator.Str(a.Default))
		}
		line := a.Desc
		if len(notes) > 0 {
			line = strings.TrimSpace(line + " (" + strings.Join(notes, ", ") + ")")
		}
		fmt.Fprintf(w, "  %-*s  %s\n", width, a.Name, line)
	}
}
