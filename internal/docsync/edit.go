package docsync

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/mesh-intelligence/kanban/internal/document"
	"github.com/mesh-intelligence/kanban/internal/logging"
	"github.com/mesh-intelligence/kanban/pkg/types"
)

// ErrNotSaved is returned by Edit when the authority could not persist
// the edited board.
var ErrNotSaved = errors.New("document not saved")

// Edit applies fn to the board in doc through a full session round trip:
// the session loads the document from an authority over a Pipe, echoes it,
// applies fn and sends the result back to be persisted. When fn returns an
// error no edit is sent, the document is left as it was and the error is
// returned. Edit returns the edited board and the authority's counters.
func Edit(ctx context.Context, doc document.Document, logger *log.Logger, fn func(types.Board) (types.Board, error)) (types.Board, Stats, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	sessionEnd, authorityEnd := Pipe()
	authority := NewAuthority(doc, WithLogger(logger))
	session := NewSession(sessionEnd, logger)

	served := make(chan error, 1)
	go func() { served <- authority.Serve(ctx, authorityEnd) }()
	ran := make(chan error, 1)
	go func() { ran <- session.Run(ctx) }()

	finish := func() (Stats, error) {
		session.Close()
		serr := <-served
		rerr := <-ran
		return authority.Stats(), errors.Join(serr, rerr)
	}

	if err := session.Start(ctx); err != nil {
		stats, ferr := finish()
		return types.Board{}, stats, errors.Join(err, ferr)
	}
	if err := session.WaitSynced(ctx); err != nil {
		stats, ferr := finish()
		return types.Board{}, stats, errors.Join(err, ferr)
	}
	current, _ := session.Board()
	next, err := fn(current)
	if err != nil {
		stats, ferr := finish()
		return types.Board{}, stats, errors.Join(err, ferr)
	}
	board, err := session.Apply(ctx, func(types.Board) types.Board { return next })
	stats, ferr := finish()
	if err := errors.Join(err, ferr); err != nil {
		return types.Board{}, stats, err
	}
	if stats.WriteErrors > 0 {
		return board, stats, fmt.Errorf("%s: %w", doc.Name(), ErrNotSaved)
	}
	return board, stats, nil
}
