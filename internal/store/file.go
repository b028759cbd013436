package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
)

const fileMode = 0o644

// FileBackend stores each collection as <dir>/<key>.json.
type FileBackend struct {
	dir string
}

// NewFileBackend creates dir if needed and returns a FileBackend rooted there.
func NewFileBackend(dir string) (*FileBackend, error) {
	if dir == "" {
		return nil, errors.New("file backend: data directory not set")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}
	return &FileBackend{dir: dir}, nil
}

// Path returns the file that holds key.
func (b *FileBackend) Path(key string) string {
	return filepath.Join(b.dir, key+".json")
}

// Read returns the file contents for key, or nil if the file does not exist.
func (b *FileBackend) Read(key string) ([]byte, error) {
	data, err := os.ReadFile(b.Path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", b.Path(key), err)
	}
	return data, nil
}

// Write replaces the file for key atomically, so readers see either the old
// or the new collection.
func (b *FileBackend) Write(key string, data []byte) error {
	if err := renameio.WriteFile(b.Path(key), data, fileMode); err != nil {
		return fmt.Errorf("writing %s: %w", b.Path(key), err)
	}
	return nil
}

// Remove deletes the file for key.
func (b *FileBackend) Remove(key string) error {
	err := os.Remove(b.Path(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing %s: %w", b.Path(key), err)
	}
	return nil
}

// Close is a no-op.
func (b *FileBackend) Close() error { return nil }
