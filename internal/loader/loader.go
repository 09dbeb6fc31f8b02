package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/goliatone/go-acfjson/pkg/source"
)

// Loader reads field group documents from plain files or an fs.FS.
type Loader struct {
	fs fs.FS
}

// Option configures a Loader.
type Option func(*Loader)

// WithFS sets the filesystem used for source.KindFS sources.
func WithFS(fsys fs.FS) Option {
	return func(l *Loader) {
		l.fs = fsys
	}
}

// New constructs a Loader.
func New(options ...Option) *Loader {
	l := &Loader{}
	for _, opt := range options {
		if opt != nil {
			opt(l)
		}
	}
	return l
}

// FS returns the configured filesystem, if any.
func (l *Loader) FS() fs.FS {
	return l.fs
}

// Load fetches a document from the provided source.
func (l *Loader) Load(ctx context.Context, src source.Source) (source.Document, error) {
	if src == nil {
		return source.Document{}, errors.New("loader: source is nil")
	}

	if err := ctx.Err(); err != nil {
		return source.Document{}, err
	}

	var (
		data []byte
		err  error
	)
	switch src.Kind() {
	case source.KindFile:
		data, err = readFile(src.Location())
	case source.KindFS:
		data, err = readFS(l.fs, src.Location())
	default:
		return source.Document{}, fmt.Errorf("loader: unsupported source kind %q", src.Kind())
	}
	if err != nil {
		return source.Document{}, fmt.Errorf("loader: read %s: %w", src.Location(), err)
	}

	return source.NewDocument(src, data)
}
