package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/niksmo/product-service/internal/core/port"
)

var _ port.PhotoStorage = (*PhotoDir)(nil)

var ErrInvalidPhotoName = errors.New("invalid photo name")

// A PhotoDir keeps uploaded photos as flat files in one directory.
// The same directory is served over HTTP.
type PhotoDir struct {
	dir string
}

// NewPhotoDir creates dir if it does not exist.
func NewPhotoDir(dir string) (PhotoDir, error) {
	const op = "NewPhotoDir"

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return PhotoDir{}, fmt.Errorf("%s: %w", op, err)
	}
	return PhotoDir{dir}, nil
}

func (d PhotoDir) Dir() string {
	return d.dir
}

// StorePhoto writes r to the file name. An existing file is never
// overwritten, a partial file is removed on failure.
func (d PhotoDir) StorePhoto(
	ctx context.Context, name string, r io.Reader,
) (storeErr error) {
	const op = "PhotoDir.StorePhoto"
	log := slog.With("op", op)

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if name == "" || filepath.Base(name) != name {
		return fmt.Errorf("%s: %w: %q", op, ErrInvalidPhotoName, name)
	}

	path := filepath.Join(d.dir, name)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	defer func() {
		if err := f.Close(); err != nil && storeErr == nil {
			storeErr = fmt.Errorf("%s: %w", op, err)
		}
		if storeErr == nil {
			return
		}
		if err := os.Remove(path); err != nil {
			log.Error("failed to remove partial file", "path", path, "err", err)
		}
	}()

	if _, err := io.Copy(f, r); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Debug("photo stored", "name", name)
	return nil
}
