package source

import (
	"path/filepath"
)

// Source identifies where a field group document originated so loaders can
// operate on plain files or fs.FS entries without leaking implementation
// details.
type Source interface {
	Kind() Kind
	Location() string
}

// Kind enumerates the loader modalities.
type Kind string

const (
	KindFile Kind = "file"
	KindFS   Kind = "fs"
)

type fileSource struct {
	path string
}

func (s fileSource) Location() string {
	return s.path
}

func (s fileSource) Kind() Kind {
	return KindFile
}

// FromFile returns a Source pointing to a file path.
func FromFile(path string) Source {
	return fileSource{path: filepath.Clean(path)}
}

type fsSource struct {
	name string
}

func (s fsSource) Location() string {
	return s.name
}

func (s fsSource) Kind() Kind {
	return KindFS
}

// FromFS returns a Source identifying a resource inside an fs.FS.
func FromFS(name string) Source {
	return fsSource{name: filepath.ToSlash(name)}
}

// Name returns the base name of the source location, which is what reports
// print for directory runs.
func Name(src Source) string {
	if src == nil {
		return ""
	}
	return filepath.Base(src.Location())
}
