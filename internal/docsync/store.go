package docsync

import (
	"sync"

	"github.com/mesh-intelligence/kanban/pkg/types"
)

// Store holds the session's current board snapshot. Snapshots are
// replaced whole, never modified in place.
type Store struct {
	mu     sync.RWMutex
	board  types.Board
	loaded bool
}

// Get returns the snapshot and whether one has been set.
func (s *Store) Get() (types.Board, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.board, s.loaded
}

// Set replaces the snapshot.
func (s *Store) Set(b types.Board) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.board = b
	s.loaded = true
}

// Apply replaces the snapshot with fn applied to it and returns the result.
// It fails with ErrNotLoaded before the first Set.
func (s *Store) Apply(fn func(types.Board) types.Board) (types.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return types.Board{}, ErrNotLoaded
	}
	s.board = fn(s.board)
	return s.board, nil
}
