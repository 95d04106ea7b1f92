// Package generator scaffolds files from declarative generator definitions.
//
// A Definition declares positional arguments, options, templates and the
// other generators it invokes. New binds command-line values to a
// definition, validating each one, and builds the whole invocation tree.
// Run then renders every template in the tree and resolves each against
// the destination directory.
//
// # Conflict resolution
//
// A template whose destination is absent is added; one whose destination
// already holds the rendered bytes is identical. When the destination
// differs, the run-wide modes decide:
//
//   - Force overwrites (and wins when Skip is also set)
//   - Skip keeps the existing file
//   - otherwise a Chooser is asked: skip, overwrite, render, diff or abort
//
// Render and diff show a preview and ask again. Pretend reports every
// decision without touching the disk.
//
//	def := generator.NewDefinition("model", generator.WithTemplateFS(templates))
//	def.FirstArgument("name", generator.Required())
//	def.Template("model.go.tmpl", "models/{{snakeCase .name}}.go")
//
//	report, err := generator.Run(ctx, def, generator.RunOptions{
//	    DestinationRoot: ".",
//	    Arguments:       []any{"User"},
//	    Chooser:         generator.NewPromptChooser(os.Stdin, os.Stdout),
//	})
package generator
