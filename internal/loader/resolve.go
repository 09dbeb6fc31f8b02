package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/goliatone/go-acfjson/pkg/source"
)

// DefaultPattern selects the documents processed in a directory.
const DefaultPattern = "*.json"

// Mode tells whether a locator named one document or a directory.
type Mode string

const (
	ModeDocument  Mode = "document"
	ModeDirectory Mode = "directory"
)

// Locator names where documents live: a document path, or a directory plus
// a doublestar pattern matched against paths relative to it.
type Locator struct {
	Path    string
	Pattern string
}

// Target is a resolved locator.
type Target struct {
	Mode    Mode
	Root    string
	Sources []source.Source
}

// Resolve stats the locator on disk. A file yields a single document; a
// directory yields every non-directory entry matching the pattern, sorted.
func (l *Loader) Resolve(ctx context.Context, loc Locator) (Target, error) {
	if loc.Path == "" {
		return Target{}, errors.New("loader: a document or directory path is required")
	}
	if err := ctx.Err(); err != nil {
		return Target{}, err
	}

	info, err := os.Stat(loc.Path)
	if err != nil {
		return Target{}, fmt.Errorf("loader: resolve %s: %w", loc.Path, err)
	}
	if !info.IsDir() {
		return Target{
			Mode:    ModeDocument,
			Root:    filepath.Dir(loc.Path),
			Sources: []source.Source{source.FromFile(loc.Path)},
		}, nil
	}

	matches, err := Match(os.DirFS(loc.Path), loc.Pattern)
	if err != nil {
		return Target{}, fmt.Errorf("loader: resolve %s: %w", loc.Path, err)
	}
	sources := make([]source.Source, 0, len(matches))
	for _, name := range matches {
		sources = append(sources, source.FromFile(filepath.Join(loc.Path, filepath.FromSlash(name))))
	}
	return Target{Mode: ModeDirectory, Root: loc.Path, Sources: sources}, nil
}

// ResolveFS enumerates matching entries of fsys below dir as source.KindFS
// sources.
func (l *Loader) ResolveFS(dir, pattern string) (Target, error) {
	if l.fs == nil {
		return Target{}, errors.New("loader: fs is nil")
	}
	sub := l.fs
	if dir != "" && dir != "." {
		var err error
		if sub, err = fs.Sub(l.fs, dir); err != nil {
			return Target{}, fmt.Errorf("loader: resolve %s: %w", dir, err)
		}
	}
	matches, err := Match(sub, pattern)
	if err != nil {
		return Target{}, fmt.Errorf("loader: resolve %s: %w", dir, err)
	}
	sources := make([]source.Source, 0, len(matches))
	for _, name := range matches {
		sources = append(sources, source.FromFS(path.Join(dir, name)))
	}
	return Target{Mode: ModeDirectory, Root: dir, Sources: sources}, nil
}

// Match returns the sorted, slash-separated names of regular entries in fsys
// matching pattern. An empty pattern means DefaultPattern.
func Match(fsys fs.FS, pattern string) ([]string, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid pattern %q", pattern)
	}

	var matches []string
	err := doublestar.GlobWalk(fsys, pattern, func(name string, entry fs.DirEntry) error {
		if entry.IsDir() {
			return nil
		}
		matches = append(matches, name)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)
	return matches, nil
}
