package codec

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/kanban/pkg/types"
)

func seq(ids ...string) func() string {
	i := 0
	return func() string {
		id := ids[i]
		i++
		return id
	}
}

func sampleBoard() types.Board {
	b := types.NewBoard(seq("backlog", "todo", "doing", "done"))
	bug := types.Label{ID: "l1", Title: "bug", Color: types.ColorRed}
	due := time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)
	b.Settings.Labels = []types.Label{bug}
	b.Lists[0].Cards = []types.Card{{
		ID:          "c1",
		ListID:      "backlog",
		Title:       "Fix login",
		Description: "steps in the ticket",
		DueDate:     &due,
		Labels:      []types.Label{bug},
		Checkboxes:  []types.Checkbox{{ID: "x1", Title: "repro", Checked: true}},
		Comments:    []types.Comment{{ID: "m1", Comment: "on it"}},
	}}
	b.Archive.Lists = []types.ArchiveList{{ID: "old", Title: "Old"}}
	b.Archive.Cards = []types.Card{types.NewCard("c9", "old")}
	b.Archive.Cards[0].Title = "gone"
	return b
}

func TestRoundTrip(t *testing.T) {
	b := sampleBoard()

	data, err := Encode(b)
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)

	again, err := Encode(got)
	require.NoError(t, err)
	assert.Equal(t, string(data), string(again))

	require.Len(t, got.Lists, 4)
	c := got.Lists[0].Cards[0]
	require.NotNil(t, c.DueDate)
	assert.True(t, b.Lists[0].Cards[0].DueDate.Equal(*c.DueDate))
	assert.Equal(t, b.Lists[0].Cards[0].Labels, c.Labels)
	assert.Equal(t, b.Lists[0].Cards[0].Checkboxes, c.Checkboxes)
	assert.Equal(t, b.Archive, got.Archive)
	assert.Equal(t, b.Settings, got.Settings)
}

func TestEmptyBoardRoundTrip(t *testing.T) {
	data, err := Encode(types.NewBoard(types.NewID))
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)
	assert.Len(t, got.Lists, 4)
	assert.Equal(t, "Backlog", got.Lists[0].Title)
	assert.NotNil(t, got.Lists[0].Cards)
	assert.NotNil(t, got.Archive.Cards)
}

func TestEncodeFormat(t *testing.T) {
	data, err := Encode(types.Board{})
	require.NoError(t, err)

	want := `{
  "lists": [],
  "archive": {
    "lists": [],
    "cards": []
  },
  "settings": {
    "labels": []
  }
}
`
	assert.Equal(t, want, string(data))
}

func TestEncodeLeavesInputAlone(t *testing.T) {
	b := types.Board{Lists: []types.List{{ID: "a", Title: "A"}}}
	_, err := Encode(b)
	require.NoError(t, err)
	assert.Nil(t, b.Lists[0].Cards)
}

func TestDecodeOptionalCollections(t *testing.T) {
	doc := `{
  "lists": [{"id": "a", "title": "A", "cards": [{"id": "c", "listId": "a", "title": "T"}]}],
  "settings": {"labels": []},
  "extra": true
}`
	b, err := Decode([]byte(doc))
	require.NoError(t, err)

	c := b.Lists[0].Cards[0]
	assert.Nil(t, c.DueDate, "absent due date stays unset")
	assert.NotNil(t, c.Labels)
	assert.NotNil(t, c.Checkboxes)
	assert.NotNil(t, c.Comments)
	assert.NotNil(t, b.Archive.Lists)
	assert.NotNil(t, b.Archive.Cards)
}

func TestDecodeMissingDescription(t *testing.T) {
	doc := `{"lists":[{"id":"a","title":"A","cards":[{"id":"c","listId":"a","title":"T"}]}],"settings":{"labels":[]}}`
	b, err := Decode([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, "", b.Lists[0].Cards[0].Description)

	out, err := Encode(b)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"description": ""`)

	again, err := Decode(out)
	require.NoError(t, err)
	assert.Equal(t, b, again)
}

func TestDecodeDueDateForms(t *testing.T) {
	for _, due := range []string{"2024-03-01", "2024-03-01T10:00", "2024-03-01T10:00:00.123Z", "2024-03-01T10:00:00+02:00"} {
		t.Run(due, func(t *testing.T) {
			doc := `{"lists":[{"id":"a","title":"A","cards":[{"id":"c","listId":"a","title":"T","dueDate":"` + due + `"}]}],"settings":{"labels":[]}}`
			b, err := Decode([]byte(doc))
			require.NoError(t, err)
			require.NotNil(t, b.Lists[0].Cards[0].DueDate)
			assert.Equal(t, 2024, b.Lists[0].Cards[0].DueDate.Year())
		})
	}
}

func TestDecodeRejects(t *testing.T) {
	card := func(extra string) string {
		return `{"lists":[{"id":"a","title":"A","cards":[{"id":"c","listId":"a","title":"T"` + extra + `}]}],"settings":{"labels":[]}}`
	}

	tests := []struct {
		name string
		doc  string
		path string
	}{
		{name: "not json", doc: `{"lists": [`, path: ""},
		{name: "trailing garbage", doc: `{"lists":[],"settings":{"labels":[]}} {}`, path: ""},
		{name: "missing lists", doc: `{"settings":{"labels":[]}}`, path: ""},
		{name: "missing settings", doc: `{"lists":[]}`, path: ""},
		{name: "bad color", doc: card(`,"labels":[{"id":"l","title":"x","color":"#000000"}]`), path: "lists[0].cards[0].labels[0].color"},
		{name: "bad due date", doc: card(`,"dueDate":"someday"`), path: "lists[0].cards[0].dueDate"},
		{name: "null due date", doc: card(`,"dueDate":null`), path: "lists[0].cards[0].dueDate"},
		{name: "numeric id", doc: `{"lists":[{"id":7,"title":"A","cards":[]}],"settings":{"labels":[]}}`, path: "lists[0].id"},
		{name: "checkbox without state", doc: card(`,"checkboxes":[{"id":"x","title":"t"}]`), path: "lists[0].cards[0].checkboxes[0]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := Decode([]byte(tt.doc))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidInput))
			assert.True(t, strings.HasPrefix(err.Error(), "invalid input json: "), err.Error())

			var de *DecodeError
			require.True(t, errors.As(err, &de))
			assert.Equal(t, tt.path, de.Path)
			assert.Nil(t, b.Lists, "no partial board")
		})
	}
}

func TestValidateReportsAllProblems(t *testing.T) {
	doc := `{"lists":[{"id":"a","title":"A","cards":[
	  {"id":"c1","listId":"a","title":"T","dueDate":"nope"},
	  {"id":"c2","listId":"a","title":"T","labels":[{"id":"l","title":"x","color":"red"}]}
	]}],"settings":{"labels":[]}}`

	errs := Validate([]byte(doc))
	require.Len(t, errs, 2)
	assert.Contains(t, errs[0].Error(), "lists[0].cards[0].dueDate")
	assert.Contains(t, errs[1].Error(), "lists[0].cards[1].labels[0].color")

	assert.Empty(t, Validate([]byte(`{"lists":[],"settings":{"labels":[]}}`)))
}

func TestJSONPointerToPath(t *testing.T) {
	tests := map[string]string{
		"":                         "",
		"/":                        "",
		"/lists/0/title":           "lists[0].title",
		"#/archive/cards/3":        "archive.cards[3]",
		"/settings/labels/1/color": "settings.labels[1].color",
		"/a~1b/c~0d":               "a/b.c~d",
	}
	for ptr, want := range tests {
		assert.Equal(t, want, jsonPointerToPath(ptr), ptr)
	}
}
