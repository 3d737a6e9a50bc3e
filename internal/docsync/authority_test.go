package docsync

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/kanban/internal/codec"
	"github.com/mesh-intelligence/kanban/internal/document"
	"github.com/mesh-intelligence/kanban/internal/transform"
	"github.com/mesh-intelligence/kanban/pkg/types"
)

func TestAuthorityLoad(t *testing.T) {
	ctx := testContext(t)
	text := encode(t, testBoard())
	a := NewAuthority(document.NewMemory("/boards/Team Board.kanban", text))

	reply, err := a.Handle(ctx, LoadMessage())
	require.NoError(t, err)
	require.NotNil(t, reply)
	assert.Equal(t, TypeUpdate, reply.Type)
	assert.Equal(t, "Team Board", reply.Title)
	assert.Equal(t, string(text), reply.Text)
	assert.Equal(t, 1, a.Stats().Loads)
}

func TestAuthorityEchoSuppression(t *testing.T) {
	ctx := testContext(t)
	board := testBoard()

	// Persisted text that decodes to board but is not in canonical form.
	var compact bytes.Buffer
	require.NoError(t, json.Compact(&compact, encode(t, board)))
	doc := document.NewMemory("b.kanban", compact.Bytes())
	a := NewAuthority(doc)

	_, err := a.Handle(ctx, EditMessage(board))
	require.NoError(t, err)
	assert.Equal(t, 0, doc.Writes(), "first edit after open is the echo")

	_, err = a.Handle(ctx, EditMessage(board))
	require.NoError(t, err)
	assert.Equal(t, 1, doc.Writes(), "same board, different persisted text")
	assert.Equal(t, string(encode(t, board)), string(doc.Text()))

	_, err = a.Handle(ctx, EditMessage(board))
	require.NoError(t, err)
	assert.Equal(t, 1, doc.Writes(), "identical text is not rewritten")

	assert.Equal(t, Stats{SkippedEchoes: 1, Writes: 1, SkippedIdentical: 1}, a.Stats())
}

func TestAuthorityOpenResetsEcho(t *testing.T) {
	ctx := testContext(t)
	board := testBoard()
	a := NewAuthority(document.NewMemory("a.kanban", encode(t, board)))
	_, err := a.Handle(ctx, EditMessage(board))
	require.NoError(t, err)

	other := document.NewMemory("b.kanban", nil)
	a.Open(other)
	changed := transform.ArchiveList(board, "list-4")
	_, err = a.Handle(ctx, EditMessage(changed))
	require.NoError(t, err)
	assert.Zero(t, other.Writes())
	assert.Equal(t, 2, a.Stats().SkippedEchoes)

	_, err = a.Handle(ctx, EditMessage(changed))
	require.NoError(t, err)
	assert.Equal(t, 1, other.Writes())
}

func TestAuthorityWriteFailureIsReported(t *testing.T) {
	ctx := testContext(t)
	board := testBoard()
	original := encode(t, board)
	doc := document.NewMemory("b.kanban", original)
	doc.FailWith(errors.New("read-only file system"))
	rec := &recorder{}
	a := NewAuthority(doc, WithNotifier(rec))

	_, err := a.Handle(ctx, EditMessage(board))
	require.NoError(t, err)
	_, err = a.Handle(ctx, EditMessage(transform.ArchiveList(board, "list-1")))
	require.NoError(t, err, "write failures are not fatal")

	assert.Equal(t, 1, a.Stats().WriteErrors)
	require.Len(t, rec.notes, 1)
	assert.Contains(t, rec.notes[0], "read-only file system")
	assert.Equal(t, original, doc.Text())
}

func TestAuthorityNotificationsAndLinks(t *testing.T) {
	ctx := testContext(t)
	rec := &recorder{}
	a := NewAuthority(document.NewMemory("b.kanban", nil), WithNotifier(rec), WithOpener(rec))

	_, err := a.Handle(ctx, InfoMessage("heads up"))
	require.NoError(t, err)
	_, err = a.Handle(ctx, OpenMessage("https://example.com/x"))
	require.NoError(t, err)

	assert.Equal(t, []string{"heads up"}, rec.notes)
	assert.Equal(t, []string{"https://example.com/x"}, rec.urls)
}

func TestAuthorityOpenFailureNotifies(t *testing.T) {
	ctx := testContext(t)
	rec := &recorder{}
	a := NewAuthority(document.NewMemory("b.kanban", nil), WithNotifier(rec))

	_, err := a.Handle(ctx, OpenMessage("https://example.com"))
	require.NoError(t, err)
	require.Len(t, rec.notes, 1)
	assert.Contains(t, rec.notes[0], "could not open")
}

func TestAuthorityEditWithoutBoard(t *testing.T) {
	a := NewAuthority(document.NewMemory("b.kanban", nil))
	_, err := a.Handle(testContext(t), Message{Type: TypeEdit})
	assert.ErrorIs(t, err, ErrNoSnapshot)
}

func TestServeOverStream(t *testing.T) {
	ctx := testContext(t)
	text := encode(t, testBoard())
	a := NewAuthority(document.NewMemory("plan.kanban", text))

	in := strings.NewReader(`{"type":"load"}` + "\n\n")
	var out bytes.Buffer
	require.NoError(t, a.Serve(ctx, NewStreamConn(in, &out)))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 1)
	var reply Message
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &reply))
	assert.Equal(t, TypeUpdate, reply.Type)
	assert.Equal(t, "plan", reply.Title)

	b, err := codec.Decode([]byte(reply.Text))
	require.NoError(t, err)
	assert.Len(t, b.Lists, 4)
}

func TestStreamConnRoundTrip(t *testing.T) {
	ctx := testContext(t)
	var wire bytes.Buffer
	writer := NewStreamConn(strings.NewReader(""), &wire)

	card := types.NewCard("c", "list-1")
	card.Title = "x"
	board := testBoard()
	board.Lists = transform.AddCard(board.Lists, "list-1", card)

	require.NoError(t, writer.Send(ctx, EditMessage(board)))
	require.NoError(t, writer.Send(ctx, InfoMessage("done")))
	require.NoError(t, writer.Close())
	assert.ErrorIs(t, writer.Send(ctx, LoadMessage()), ErrClosed)

	reader := NewStreamConn(&wire, &bytes.Buffer{})
	edit := receive(t, ctx, reader)
	require.Equal(t, TypeEdit, edit.Type)
	assert.Equal(t, "x", edit.Kanban.Lists[0].Cards[0].Title)
	assert.Equal(t, InfoMessage("done"), receive(t, ctx, reader))

	_, err := reader.Receive(ctx)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestStreamConnBadLine(t *testing.T) {
	c := NewStreamConn(strings.NewReader("not json\n"), &bytes.Buffer{})
	_, err := c.Receive(testContext(t))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrClosed)
}

// closeCounter is a writer that records Close calls.
type closeCounter struct {
	bytes.Buffer
	closes int
}

func (c *closeCounter) Close() error {
	c.closes++
	return nil
}

func TestStreamConnLeavesWriterOpen(t *testing.T) {
	var w closeCounter
	c := NewStreamConn(strings.NewReader(""), &w)
	require.NoError(t, c.Close())
	assert.Zero(t, w.closes)

	owned := NewStreamConn(strings.NewReader(""), &w, OwnWriter())
	require.NoError(t, owned.Close())
	require.NoError(t, owned.Close())
	assert.Equal(t, 1, w.closes)
}
