// Package storage keeps uploaded files on local disk.
package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

const dirPermissions = 0o750

// ErrEmptyFilename is returned when Save is called without a usable name.
var ErrEmptyFilename = errors.New("empty filename")

// FileStore saves files under a single directory.
type FileStore struct {
	dir string
}

// New creates a FileStore rooted at dir. The directory is created lazily.
func New(dir string) *FileStore {
	if dir == "" {
		dir = "uploads"
	}
	return &FileStore{dir: dir}
}

// Dir returns the storage directory.
func (fs *FileStore) Dir() string {
	return fs.dir
}

// EnsureDir creates the storage directory if it does not exist.
func (fs *FileStore) EnsureDir() error {
	return EnsureDirs(fs.dir)
}

// Save writes r to {dir}/{base name} and returns the path. An existing file
// with the same name is overwritten.
func (fs *FileStore) Save(name string, r io.Reader) (string, error) {
	base := filepath.Base(name)
	if name == "" || base == "." || base == ".." || base == string(filepath.Separator) {
		return "", ErrEmptyFilename
	}

	if err := fs.EnsureDir(); err != nil {
		return "", err
	}

	path := filepath.Join(fs.dir, base)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return "", fmt.Errorf("write %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", path, err)
	}

	return path, nil
}

// EnsureDirs creates each directory, including parents, if missing.
func EnsureDirs(dirs ...string) error {
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, dirPermissions); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}
