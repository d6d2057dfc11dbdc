// Package file stores the registry document as a single JSON file on disk.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// DefaultPerm is the permission used for new data files.
const DefaultPerm os.FileMode = 0o644

// Store keeps the document in one file. Every save rewrites the whole file
// through a temporary sibling and a rename, so readers never observe a
// half-written document.
type Store struct {
	path string
	perm os.FileMode
}

// NewStore creates a store backed by path.
func NewStore(path string) *Store {
	return &Store{path: path, perm: DefaultPerm}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Name implements persistence.DocumentStore.
func (s *Store) Name() string {
	return "file:" + s.path
}

// Load returns the file content, or (nil, nil) if the file does not exist.
func (s *Store) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("file: read %s: %w", s.path, err)
	}
	if data == nil {
		data = []byte{}
	}
	return data, nil
}

// Save replaces the file content atomically.
func (s *Store) Save(ctx context.Context, doc []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return atomicWriteFile(s.path, doc, s.perm)
}

// atomicWriteFile writes to a temp file in the target directory, syncs it,
// renames it over path and finally syncs the directory.
func atomicWriteFile(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("file: create parent directory: %w", err)
	}

	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("file: create temp file: %w", err)
	}
	tmpPath := f.Name()

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("file: write temp file: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("file: sync temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("file: close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("file: chmod temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("file: rename temp file: %w", err)
	}

	// Best effort: the file is already in place.
	_ = syncDir(dir)
	return nil
}

func syncDir(dir string) error {
	f, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Sync()
}
