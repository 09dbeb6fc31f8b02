package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// readFile reads a document from disk. Directories are rejected up front so
// a locator pointing at the wrong level fails with a clear message.
func readFile(path string) ([]byte, error) {
	if path == "" {
		return nil, errors.New("loader: file path is required")
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("loader: %s is a directory", path)
	}
	return os.ReadFile(path)
}

func readFS(fsys fs.FS, name string) ([]byte, error) {
	if fsys == nil {
		return nil, errors.New("loader: fs is nil")
	}
	if name == "" {
		return nil, errors.New("loader: fs path is required")
	}
	info, err := fs.Stat(fsys, name)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("loader: %s is a directory", name)
	}
	return fs.ReadFile(fsys, name)
}
