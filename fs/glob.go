// Package fs locates prompt template files on disk using doublestar globs.
package fs

import (
	"fmt"
	iofs "io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fwojciec/quill"
)

// DefaultPromptPattern matches every JSON and YAML file below a directory.
const DefaultPromptPattern = "**/*.{json,yaml,yml}"

// FindPrompts returns the files under dir matching pattern, as paths joined
// to dir and sorted. An empty pattern means DefaultPromptPattern. A pattern
// that matches nothing is not an error.
func FindPrompts(dir, pattern string) ([]string, error) {
	if pattern == "" {
		pattern = DefaultPromptPattern
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, quill.ErrValidation)
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("access %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory: %w", dir, quill.ErrValidation)
	}

	var matches []string
	err = doublestar.GlobWalk(os.DirFS(dir), pattern, func(path string, d iofs.DirEntry) error {
		if d.IsDir() {
			return nil
		}
		matches = append(matches, filepath.Join(dir, filepath.FromSlash(path)))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("match %q: %w", pattern, err)
	}
	slices.Sort(matches)
	return matches, nil
}
