package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/goliatone/go-acfjson/pkg/source"
)

const defaultFileMode fs.FileMode = 0o644

// Write replaces the document at src with data. Only file sources are
// writable; the file is truncated in place so its mode is kept.
func (l *Loader) Write(ctx context.Context, src source.Source, data []byte) (err error) {
	if src == nil {
		return errors.New("loader: source is nil")
	}
	if src.Kind() != source.KindFile {
		return fmt.Errorf("loader: %s sources are read-only", src.Kind())
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	file, err := os.OpenFile(src.Location(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, defaultFileMode)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	if _, err = file.Write(data); err != nil {
		return err
	}
	return nil
}
