package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/phambaophuc/copyright-stamp/internal/models"
)

// OutputPrefix is prepended to the source file name to form the output name.
const OutputPrefix = "watermarked_"

// OutputPath returns the sibling path a stamped copy of src is written to.
func OutputPath(src string) string {
	dir, name := filepath.Split(src)
	return filepath.Join(dir, OutputPrefix+name)
}

// WriteFile streams encode's output into path through a temporary file in the
// same directory, replacing any existing file only once encoding succeeded.
func WriteFile(path string, encode func(io.Writer) error) (err error) {
	dir, name := filepath.Split(path)
	tmp := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", name, uuid.NewString()))

	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("%w: create %q: %w", models.ErrWrite, path, err)
	}
	defer func() {
		if err != nil {
			os.Remove(tmp)
		}
	}()

	if err = encode(f); err != nil {
		f.Close()
		if errors.Is(err, models.ErrWrite) {
			return err
		}
		return fmt.Errorf("%w: encode %q: %w", models.ErrWrite, path, err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("%w: close %q: %w", models.ErrWrite, path, err)
	}
	if err = os.Rename(tmp, path); err != nil {
		return fmt.Errorf("%w: rename to %q: %w", models.ErrWrite, path, err)
	}
	return nil
}
