package docsync

import (
	"context"
	"errors"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/mesh-intelligence/kanban/internal/codec"
	"github.com/mesh-intelligence/kanban/internal/logging"
	"github.com/mesh-intelligence/kanban/pkg/types"
)

// State is the lifecycle position of a Session.
type State int

// Session states.
const (
	Uninitialized State = iota
	AwaitingFirstLoad
	Synced
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case AwaitingFirstLoad:
		return "awaiting-first-load"
	case Synced:
		return "synced"
	default:
		return "unknown"
	}
}

// Session is the editing side of a document connection.
type Session struct {
	conn   Conn
	store  Store
	logger *log.Logger

	// sendMu orders snapshot changes with the edits that announce them.
	sendMu sync.Mutex

	mu      sync.Mutex
	state   State
	title   string
	closed  bool
	synced  chan struct{}
	loadErr chan error
}

// NewSession returns a session talking over conn. A nil logger discards.
func NewSession(conn Conn, logger *log.Logger) *Session {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Session{
		conn:    conn,
		logger:  logger,
		synced:  make(chan struct{}),
		loadErr: make(chan error, 1),
	}
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Title returns the display title from the last accepted update.
func (s *Session) Title() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.title
}

// Board returns the current snapshot, if any.
func (s *Session) Board() (types.Board, bool) {
	return s.store.Get()
}

// Start requests the document from the authority.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if s.state != Uninitialized {
		s.mu.Unlock()
		return ErrStarted
	}
	s.state = AwaitingFirstLoad
	s.mu.Unlock()

	s.logger.Debug("requesting document")
	return s.conn.Send(ctx, LoadMessage())
}

// Handle processes one inbound message. For an update it decodes the
// text; on failure the current snapshot, or the lack of one, is kept, the
// operator is told through an info message, and the decode error is
// returned. On success the snapshot is replaced and echoed back in an
// edit message.
func (s *Session) Handle(ctx context.Context, msg Message) error {
	if s.isClosed() {
		return ErrClosed
	}
	switch msg.Type {
	case TypeUpdate:
		return s.handleUpdate(ctx, msg)
	default:
		s.logger.Debug("ignoring message", "type", msg.Type)
		return nil
	}
}

func (s *Session) handleUpdate(ctx context.Context, msg Message) error {
	board, err := codec.Decode([]byte(msg.Text))
	if err != nil {
		s.logger.Error("document rejected", "title", msg.Title, "err", err)
		if s.State() != Synced {
			select {
			case s.loadErr <- err:
			default:
			}
		}
		if serr := s.conn.Send(ctx, InfoMessage(err.Error())); serr != nil {
			return errors.Join(err, serr)
		}
		return err
	}

	s.sendMu.Lock()
	defer s.sendMu.Unlock()
	s.store.Set(board)
	s.mu.Lock()
	s.title = msg.Title
	first := s.state != Synced
	s.state = Synced
	s.mu.Unlock()

	s.logger.Debug("document loaded", "title", msg.Title, "lists", len(board.Lists), "cards", board.CardCount())
	err = s.conn.Send(ctx, EditMessage(board))
	if first {
		close(s.synced)
	}
	return err
}

// WaitSynced blocks until the first update has been accepted. It returns
// the decode error if an update is rejected first.
func (s *Session) WaitSynced(ctx context.Context) error {
	select {
	case <-s.synced:
		return nil
	case err := <-s.loadErr:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Apply replaces the snapshot with fn applied to it and sends the new board
// to the authority. It fails with ErrNotLoaded until the session is synced.
func (s *Session) Apply(ctx context.Context, fn func(types.Board) types.Board) (types.Board, error) {
	s.mu.Lock()
	closed, state := s.closed, s.state
	s.mu.Unlock()
	if closed {
		return types.Board{}, ErrClosed
	}
	if state != Synced {
		return types.Board{}, ErrNotLoaded
	}
	s.sendMu.Lock()
	defer s.sendMu.Unlock()
	next, err := s.store.Apply(fn)
	if err != nil {
		return types.Board{}, err
	}
	return next, s.conn.Send(ctx, EditMessage(next))
}

// Info sends a notification for the operator.
func (s *Session) Info(ctx context.Context, text string) error {
	if s.isClosed() {
		return ErrClosed
	}
	return s.conn.Send(ctx, InfoMessage(text))
}

// Open asks the host to open url.
func (s *Session) Open(ctx context.Context, url string) error {
	if s.isClosed() {
		return ErrClosed
	}
	return s.conn.Send(ctx, OpenMessage(url))
}

// Run handles inbound messages one at a time until the connection closes
// or ctx ends. Rejected documents are reported and do not stop the loop.
func (s *Session) Run(ctx context.Context) error {
	for {
		msg, err := s.conn.Receive(ctx)
		if errors.Is(err, ErrClosed) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := s.Handle(ctx, msg); err != nil {
			switch {
			case errors.Is(err, ErrClosed):
				return nil
			case errors.Is(err, codec.ErrInvalidInput):
				continue
			default:
				return err
			}
		}
	}
}

// Close detaches the session from its connection.
func (s *Session) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()
	return s.conn.Close()
}

func (s *Session) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
