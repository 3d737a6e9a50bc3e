// Package document holds the persisted side of a board: a named text
// artifact that can be read whole and replaced whole.
package document

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
)

// Document errors.
var (
	ErrExists       = errors.New("document already exists")
	ErrWriteFailure = errors.New("document write failed")
)

// Document is the authoritative text of one board.
type Document interface {
	// Name is the document's file name or other identifier.
	Name() string
	// Text returns the current persisted text.
	Text() []byte
	// Replace persists text as the whole new content.
	Replace(ctx context.Context, text []byte) error
}

// Title derives a display title from a document name: the base name
// without its extension.
func Title(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Memory is an in-process Document. A failure set with FailWith is
// returned by every Replace until cleared.
type Memory struct {
	mu     sync.Mutex
	name   string
	text   []byte
	fail   error
	writes int
}

// NewMemory returns a Memory document holding a copy of text.
func NewMemory(name string, text []byte) *Memory {
	return &Memory{name: name, text: clone(text)}
}

func (m *Memory) Name() string { return m.name }

func (m *Memory) Text() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return clone(m.text)
}

func (m *Memory) Replace(ctx context.Context, text []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	m.text = clone(text)
	m.writes++
	return nil
}

// FailWith makes subsequent writes fail with err; nil clears it.
func (m *Memory) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fail = err
}

// Writes returns the number of successful Replace calls.
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

func clone(b []byte) []byte {
	return append([]byte(nil), b...)
}
