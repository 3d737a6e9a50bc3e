package document

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// File is a Document backed by a file on disk. The content is read once at
// open; Replace writes through to disk and updates the cached copy.
type File struct {
	mu   sync.Mutex
	path string
	text []byte
}

// OpenFile reads the document at path.
func OpenFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}
	return &File{path: path, text: data}, nil
}

// CreateFile writes text to a new document at path. It fails with ErrExists
// when the path is already taken.
func CreateFile(path string, text []byte) (*File, error) {
	if _, err := os.Stat(path); err == nil {
		return nil, fmt.Errorf("%s: %w", path, ErrExists)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("checking document: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating document directory: %w", err)
	}
	if err := writeAtomic(path, text); err != nil {
		return nil, err
	}
	return &File{path: path, text: clone(text)}, nil
}

func (f *File) Name() string { return filepath.Base(f.path) }

// Path returns the file path the document was opened from.
func (f *File) Path() string { return f.path }

func (f *File) Text() []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return clone(f.text)
}

// Replace writes text to the file atomically. On failure the file and the
// cached text are unchanged.
func (f *File) Replace(ctx context.Context, text []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := writeAtomic(f.path, text); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	f.text = clone(text)
	return nil
}

// writeAtomic writes data to path through a temp file in the same
// directory, so readers see either the old or the new content.
func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".kanban-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("setting file mode: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
