package docsync

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/kanban/internal/codec"
	"github.com/mesh-intelligence/kanban/pkg/types"
)

func testBoard() types.Board {
	n := 0
	return types.NewBoard(func() string {
		n++
		return fmt.Sprintf("list-%d", n)
	})
}

func encode(t *testing.T, b types.Board) []byte {
	t.Helper()
	data, err := codec.Encode(b)
	require.NoError(t, err)
	return data
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func receive(t *testing.T, ctx context.Context, c Conn) Message {
	t.Helper()
	msg, err := c.Receive(ctx)
	require.NoError(t, err)
	return msg
}

// recorder collects notifications and open requests.
type recorder struct {
	notes []string
	urls  []string
}

func (r *recorder) Notify(msg string) { r.notes = append(r.notes, msg) }

func (r *recorder) Open(url string) error {
	r.urls = append(r.urls, url)
	return nil
}
