package filesystem

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// DefaultIgnoreDirs are directories never searched for manifests.
var DefaultIgnoreDirs = []string{
	"node_modules", "vendor", ".git", ".svn", ".hg",
	"dist", "build", "bin", "tmp",
	".idea", ".vscode",
}

// WalkOptions configures directory traversal.
type WalkOptions struct {
	IgnoreDirs     []string // default: DefaultIgnoreDirs
	IgnorePatterns []string // file name globs to skip, e.g. "*.bak"
	IncludeHidden  bool
	MaxDepth       int // 0 means unlimited; 1 visits only root's entries
}

// Walk visits every file and directory below rootPath that the options do
// not exclude. Return filepath.SkipDir from visit to prune a directory.
func Walk(rootPath string, opts WalkOptions, visit func(path string, d fs.DirEntry) error) error {
	ignoreDirs := opts.IgnoreDirs
	if ignoreDirs == nil {
		ignoreDirs = DefaultIgnoreDirs
	}
	rootDepth := depth(rootPath)

	return filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == rootPath {
			return visit(path, d)
		}

		if !opts.IncludeHidden && strings.HasPrefix(d.Name(), ".") {
			return skip(d)
		}
		if d.IsDir() && slices.Contains(ignoreDirs, d.Name()) {
			return filepath.SkipDir
		}
		if opts.MaxDepth > 0 && depth(path)-rootDepth > opts.MaxDepth {
			return skip(d)
		}
		if !d.IsDir() {
			for _, pattern := range opts.IgnorePatterns {
				if matched, _ := filepath.Match(pattern, d.Name()); matched {
					return nil
				}
			}
		}

		return visit(path, d)
	})
}

// Find returns, sorted, the files below rootPath whose base name matches
// any of patterns. A missing rootPath yields no files and no error.
func Find(rootPath string, opts WalkOptions, patterns ...string) ([]string, error) {
	if _, err := os.Stat(rootPath); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	var found []string
	err := Walk(rootPath, opts, func(path string, d fs.DirEntry) error {
		if d.IsDir() {
			return nil
		}
		for _, pattern := range patterns {
			matched, err := filepath.Match(pattern, d.Name())
			if err != nil {
				return err
			}
			if matched {
				found = append(found, path)
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.Sort(found)
	return found, nil
}

func skip(d fs.DirEntry) error {
	if d.IsDir() {
		return filepath.SkipDir
	}
	return nil
}

func depth(path string) int {
	return strings.Count(filepath.Clean(path), string(filepath.Separator))
}
