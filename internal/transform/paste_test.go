package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/kanban/pkg/types"
)

func TestParseCardLines(t *testing.T) {
	catalog := []types.Label{
		{ID: "l1", Title: "bug", Color: types.ColorRed},
		{ID: "l2", Title: "docs", Color: types.ColorBlue},
	}

	cards := ParseCardLines("bug: crash on save\r\nwrite tests\n\ndocs:readme: intro\nnote: not a label", "todo", catalog, fixedIDs())
	require.Len(t, cards, 5)

	assert.Equal(t, "crash on save", cards[0].Title)
	assert.Equal(t, []types.Label{catalog[0]}, cards[0].Labels)
	assert.Equal(t, "write tests", cards[1].Title)
	assert.Empty(t, cards[1].Labels)
	assert.Equal(t, "", cards[2].Title)
	assert.Equal(t, "readme: intro", cards[3].Title)
	assert.Equal(t, "docs", cards[3].Labels[0].Title)
	assert.Equal(t, "note: not a label", cards[4].Title)

	for _, c := range cards {
		assert.Equal(t, "todo", c.ListID)
	}
}

func TestPasteIntoList(t *testing.T) {
	lists := emptyBoard().Lists

	cards := ParseCardLines("one\n\ntwo\n", "doing", nil, fixedIDs("p1", "p2", "p3", "p4"))
	got := AddCards(lists, "doing", cards...)
	assert.Equal(t, []string{"p1", "p3"}, cardIDs(got[2].Cards))
}

func TestParseLabelPrefixWithoutTitle(t *testing.T) {
	catalog := []types.Label{{ID: "l1", Title: "bug", Color: types.ColorRed}}
	cards := ParseCardLines("bug:", "todo", catalog, fixedIDs())
	require.Len(t, cards, 1)
	assert.Equal(t, "bug:", cards[0].Title)
	assert.Empty(t, cards[0].Labels)
}
