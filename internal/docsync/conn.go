package docsync

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
)

// Sync engine errors.
var (
	ErrClosed     = errors.New("connection closed")
	ErrNotLoaded  = errors.New("no board loaded")
	ErrStarted    = errors.New("session already started")
	ErrNoSnapshot = errors.New("edit message without board")
)

// Conn carries messages between a session and an authority. Messages are
// delivered in order. Receive returns ErrClosed once the other side, or
// this side, has closed and no messages remain.
type Conn interface {
	Send(ctx context.Context, msg Message) error
	Receive(ctx context.Context) (Message, error)
	Close() error
}

const pipeBuffer = 16

// Pipe returns the two ends of an in-process connection. Closing either
// end closes both; messages already sent can still be received.
func Pipe() (session, authority Conn) {
	toAuthority := make(chan Message, pipeBuffer)
	toSession := make(chan Message, pipeBuffer)
	shared := &pipeState{done: make(chan struct{})}
	return &pipeEnd{in: toSession, out: toAuthority, state: shared},
		&pipeEnd{in: toAuthority, out: toSession, state: shared}
}

type pipeState struct {
	once sync.Once
	done chan struct{}
}

type pipeEnd struct {
	in    <-chan Message
	out   chan<- Message
	state *pipeState
}

func (p *pipeEnd) Send(ctx context.Context, msg Message) error {
	select {
	case <-p.state.done:
		return ErrClosed
	default:
	}
	select {
	case p.out <- msg:
		return nil
	case <-p.state.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *pipeEnd) Receive(ctx context.Context) (Message, error) {
	select {
	case msg := <-p.in:
		return msg, nil
	case <-p.state.done:
		select {
		case msg := <-p.in:
			return msg, nil
		default:
			return Message{}, ErrClosed
		}
	case <-ctx.Done():
		return Message{}, ctx.Err()
	}
}

func (p *pipeEnd) Close() error {
	p.state.once.Do(func() { close(p.state.done) })
	return nil
}

// StreamConn exchanges newline-delimited JSON messages over a byte stream,
// such as the standard input and output of a child process.
type StreamConn struct {
	r *bufio.Reader
	w io.Writer

	mu     sync.Mutex
	enc    *json.Encoder
	ownsW  bool
	closed bool
}

// StreamOption configures a StreamConn.
type StreamOption func(*StreamConn)

// OwnWriter makes Close close the writer when it is an io.Closer. Without
// it the writer is left open, so process streams such as os.Stdout outlive
// the connection.
func OwnWriter() StreamOption {
	return func(c *StreamConn) { c.ownsW = true }
}

// NewStreamConn reads messages from r and writes them to w.
func NewStreamConn(r io.Reader, w io.Writer, opts ...StreamOption) *StreamConn {
	c := &StreamConn{r: bufio.NewReader(r), w: w, enc: json.NewEncoder(w)}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *StreamConn) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	if err := c.enc.Encode(msg); err != nil {
		return fmt.Errorf("sending %s: %w", msg.Type, err)
	}
	return nil
}

// Receive blocks on the underlying reader; ctx is only checked before the
// read starts. Blank lines are skipped.
func (c *StreamConn) Receive(ctx context.Context) (Message, error) {
	for {
		if err := ctx.Err(); err != nil {
			return Message{}, err
		}
		line, err := c.r.ReadBytes('\n')
		if len(bytes.TrimSpace(line)) > 0 {
			var msg Message
			if jerr := json.Unmarshal(line, &msg); jerr != nil {
				return Message{}, fmt.Errorf("decoding message: %w", jerr)
			}
			return msg, nil
		}
		if errors.Is(err, io.EOF) {
			return Message{}, ErrClosed
		}
		if err != nil {
			return Message{}, fmt.Errorf("reading message: %w", err)
		}
	}
}

func (c *StreamConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	if !c.ownsW {
		return nil
	}
	if closer, ok := c.w.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
