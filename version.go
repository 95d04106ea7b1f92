// Package plume is a code-scaffolding engine: generators declared in YAML
// manifests bind command-line arguments, render templates and resolve
// conflicts with files already on disk.
package plume

// Version is the plume release, overridden at build time with
// -ldflags "-X github.com/simonhull/firebird-suite/plume.Version=...".
var Version = "0.1.0"
