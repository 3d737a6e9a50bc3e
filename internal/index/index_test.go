package index

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/kanban/pkg/types"
)

func day(d int) *time.Time {
	t := time.Date(2025, 3, d, 12, 0, 0, 0, time.UTC)
	return &t
}

func indexedBoard() types.Board {
	bug := types.Label{ID: "l1", Title: "bug", Color: types.ColorRed}
	mk := func(id, list, title string, due *time.Time, labels ...types.Label) types.Card {
		c := types.NewCard(id, list)
		c.Title = title
		c.DueDate = due
		c.Labels = append(c.Labels, labels...)
		return c
	}
	return types.Board{
		Lists: []types.List{
			{ID: "todo", Title: "To Do", Cards: []types.Card{
				mk("c1", "todo", "late fix", day(1), bug),
				mk("c2", "todo", "someday", nil),
			}},
			{ID: "doing", Title: "Doing", Cards: []types.Card{
				mk("c3", "doing", "soon", day(10)),
				mk("c4", "doing", "bug hunt", day(5), bug),
			}},
		},
		Archive: types.Archive{Cards: []types.Card{mk("c9", "todo", "old", day(1), bug)}},
	}
}

func openIndex(t *testing.T) *Index {
	t.Helper()
	x, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { x.Close() })
	return x
}

func cardIDs(entries []Entry) []string {
	ids := []string{}
	for _, e := range entries {
		ids = append(ids, e.CardID)
	}
	return ids
}

func TestOpenRecreatesDatabase(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	x, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, x.Load(context.Background(), "a.kanban", indexedBoard()))
	require.NoError(t, x.Close())
	assert.FileExists(t, filepath.Join(dir, FileName))

	y, err := Open(dir)
	require.NoError(t, err)
	defer y.Close()
	n, err := y.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n, "documents are the source of truth")
}

func TestDue(t *testing.T) {
	ctx := context.Background()
	x := openIndex(t)
	require.NoError(t, x.Load(ctx, "a.kanban", indexedBoard()))

	got, err := x.Due(ctx, *day(6))
	require.NoError(t, err)
	assert.Equal(t, []string{"c1", "c4"}, cardIDs(got), "archived and undated cards are not indexed")
	assert.Equal(t, "To Do", got[0].ListTitle)
	require.NotNil(t, got[0].DueDate)
	assert.True(t, day(1).Equal(*got[0].DueDate))

	all, err := x.Due(ctx, *day(30))
	require.NoError(t, err)
	assert.Equal(t, []string{"c1", "c4", "c3"}, cardIDs(all))
}

func TestByLabel(t *testing.T) {
	ctx := context.Background()
	x := openIndex(t)
	require.NoError(t, x.Load(ctx, "b.kanban", indexedBoard()))
	require.NoError(t, x.Load(ctx, "a.kanban", indexedBoard()))

	got, err := x.ByLabel(ctx, "bug")
	require.NoError(t, err)
	require.Len(t, got, 4)
	assert.Equal(t, "a.kanban", got[0].Doc)
	assert.Equal(t, []string{"c1", "c4", "c1", "c4"}, cardIDs(got))

	none, err := x.ByLabel(ctx, "feature")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestLoadReplacesDocument(t *testing.T) {
	ctx := context.Background()
	x := openIndex(t)
	require.NoError(t, x.Load(ctx, "a.kanban", indexedBoard()))

	smaller := indexedBoard()
	smaller.Lists = smaller.Lists[:1]
	require.NoError(t, x.Load(ctx, "a.kanban", smaller))

	n, err := x.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	labeled, err := x.ByLabel(ctx, "bug")
	require.NoError(t, err)
	assert.Equal(t, []string{"c1"}, cardIDs(labeled))
}

func TestLoadRejectsDuplicateCards(t *testing.T) {
	ctx := context.Background()
	x := openIndex(t)
	b := indexedBoard()
	b.Lists[1].Cards[0].ID = "c1"

	require.Error(t, x.Load(ctx, "a.kanban", b))
	n, err := x.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n, "failed load leaves nothing behind")
}

func TestClosed(t *testing.T) {
	x, err := Open(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, x.Close())
	require.NoError(t, x.Close())

	assert.ErrorIs(t, x.Load(context.Background(), "a", types.Board{}), ErrClosed)
	_, err = x.Due(context.Background(), time.Now())
	assert.ErrorIs(t, err, ErrClosed)
	_, err = os.Stat(x.Path())
	assert.NoError(t, err)
}
