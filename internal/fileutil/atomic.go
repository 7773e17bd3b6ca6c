// Package fileutil holds small filesystem helpers shared by the storage code.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ErrEmptyPath indicates an empty file path was provided.
var ErrEmptyPath = errors.New("path is empty")

// WriteAtomic replaces path with data. Readers see either the old contents
// or the new ones, never a partial write. Missing parent directories are
// created with 0o700.
func WriteAtomic(path string, data []byte, perm os.FileMode) (err error) {
	if path == "" {
		return ErrEmptyPath
	}

	dir := filepath.Dir(path)
	if err = os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err = tmp.Chmod(perm); err != nil {
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err = os.Rename(tmpPath, path); err != nil { //nolint:gosec // G703: path comes from config, not request input
		return fmt.Errorf("replacing %s: %w", filepath.Base(path), err)
	}

	// Rename durability is best effort.
	if d, openErr := os.Open(dir); openErr == nil { //nolint:gosec // G304: dir is derived from path
		_ = d.Sync()
		_ = d.Close()
	}

	return nil
}

// MoveAside renames path to path.corrupt-<unix seconds> and returns the new
// name. A missing file is not an error and returns "".
func MoveAside(path string, now time.Time) (string, error) {
	if path == "" {
		return "", ErrEmptyPath
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return "", nil
	}

	dst := fmt.Sprintf("%s.corrupt-%d", path, now.Unix())
	if err := os.Rename(path, dst); err != nil {
		return "", fmt.Errorf("moving %s aside: %w", filepath.Base(path), err)
	}
	return dst, nil
}
