package docsync

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/mesh-intelligence/kanban/internal/codec"
	"github.com/mesh-intelligence/kanban/internal/document"
	"github.com/mesh-intelligence/kanban/internal/logging"
)

// Notifier shows a message to the operator.
type Notifier interface {
	Notify(msg string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(msg string)

func (f NotifierFunc) Notify(msg string) { f(msg) }

// Opener opens links on behalf of a session.
type Opener interface {
	Open(url string) error
}

// OpenerFunc adapts a function to Opener.
type OpenerFunc func(url string) error

func (f OpenerFunc) Open(url string) error { return f(url) }

// Stats counts what an Authority did with the messages it received.
type Stats struct {
	Loads            int
	Writes           int
	SkippedEchoes    int
	SkippedIdentical int
	WriteErrors      int
}

// AuthorityOption configures an Authority.
type AuthorityOption func(*Authority)

// WithNotifier routes info messages and write failures to n.
func WithNotifier(n Notifier) AuthorityOption {
	return func(a *Authority) { a.notifier = n }
}

// WithOpener handles open requests with o.
func WithOpener(o Opener) AuthorityOption {
	return func(a *Authority) { a.opener = o }
}

// WithLogger sets the authority's logger.
func WithLogger(l *log.Logger) AuthorityOption {
	return func(a *Authority) { a.logger = l }
}

// Authority owns one persisted document and applies session edits to it.
type Authority struct {
	mu            sync.Mutex
	doc           document.Document
	seenFirstEdit bool
	stats         Stats

	notifier Notifier
	opener   Opener
	logger   *log.Logger
}

// NewAuthority returns an authority for doc. Without options,
// notifications are logged and open requests are refused.
func NewAuthority(doc document.Document, opts ...AuthorityOption) *Authority {
	a := &Authority{doc: doc, logger: logging.Discard()}
	for _, opt := range opts {
		opt(a)
	}
	if a.notifier == nil {
		logger := a.logger
		a.notifier = NotifierFunc(func(msg string) { logger.Info(msg) })
	}
	if a.opener == nil {
		a.opener = OpenerFunc(func(url string) error {
			return fmt.Errorf("no opener for %s", url)
		})
	}
	return a
}

// Open switches the authority to doc. The next edit is again treated as
// the session's echo of the load.
func (a *Authority) Open(doc document.Document) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.doc = doc
	a.seenFirstEdit = false
}

// Stats returns a copy of the counters.
func (a *Authority) Stats() Stats {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.stats
}

// Handle processes one message and returns the reply to send, if any.
// Write failures are reported through the Notifier, not returned.
func (a *Authority) Handle(ctx context.Context, msg Message) (*Message, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	switch msg.Type {
	case TypeLoad:
		a.stats.Loads++
		reply := UpdateMessage(document.Title(a.doc.Name()), string(a.doc.Text()))
		a.logger.Debug("serving document", "doc", a.doc.Name())
		return &reply, nil
	case TypeEdit:
		return nil, a.handleEdit(ctx, msg)
	case TypeInfo:
		a.notifier.Notify(msg.Message)
		return nil, nil
	case TypeOpen:
		if err := a.opener.Open(msg.URL); err != nil {
			a.notifier.Notify(fmt.Sprintf("could not open %s: %v", msg.URL, err))
		}
		return nil, nil
	default:
		a.logger.Debug("ignoring message", "type", msg.Type)
		return nil, nil
	}
}

func (a *Authority) handleEdit(ctx context.Context, msg Message) error {
	if msg.Kanban == nil {
		return ErrNoSnapshot
	}
	if !a.seenFirstEdit {
		a.seenFirstEdit = true
		a.stats.SkippedEchoes++
		a.logger.Debug("skipping echo of load", "doc", a.doc.Name())
		return nil
	}
	text, err := codec.Encode(*msg.Kanban)
	if err != nil {
		return err
	}
	if bytes.Equal(text, a.doc.Text()) {
		a.stats.SkippedIdentical++
		a.logger.Debug("document unchanged", "doc", a.doc.Name())
		return nil
	}
	if err := a.doc.Replace(ctx, text); err != nil {
		a.stats.WriteErrors++
		a.logger.Error("saving document", "doc", a.doc.Name(), "err", err)
		a.notifier.Notify(fmt.Sprintf("could not save %s: %v", a.doc.Name(), err))
		return nil
	}
	a.stats.Writes++
	a.logger.Info("saved document", "doc", a.doc.Name(), "bytes", len(text))
	return nil
}

// Serve handles messages from conn one at a time, each to completion,
// until the connection closes or ctx ends.
func (a *Authority) Serve(ctx context.Context, conn Conn) error {
	for {
		msg, err := conn.Receive(ctx)
		if errors.Is(err, ErrClosed) {
			return nil
		}
		if err != nil {
			return err
		}
		reply, err := a.Handle(ctx, msg)
		if err != nil {
			a.logger.Warn("rejected message", "type", msg.Type, "err", err)
			continue
		}
		if reply == nil {
			continue
		}
		if err := conn.Send(ctx, *reply); err != nil {
			if errors.Is(err, ErrClosed) {
				return nil
			}
			return err
		}
	}
}
