package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/kanban/pkg/types"
)

func TestCardLabels(t *testing.T) {
	lists := boardWithCards().Lists
	bug := types.Label{ID: "l1", Title: "bug", Color: types.ColorRed}

	got := AddLabel(lists, "backlog", "c1", bug)
	assert.Equal(t, []types.Label{bug}, got[0].Cards[0].Labels)
	assert.Empty(t, lists[0].Cards[0].Labels)
	assert.True(t, Same(got, AddLabel(got, "backlog", "c1", bug)), "already attached")
	assert.True(t, Same(lists, AddLabel(lists, "backlog", "c1", types.Label{ID: "l2"})))

	renamed := bug
	renamed.Title = "defect"
	updated := UpdateLabel(got, "backlog", "c1", renamed)
	assert.Equal(t, "defect", updated[0].Cards[0].Labels[0].Title)
	assert.True(t, Same(got, UpdateLabel(got, "backlog", "c2", renamed)))

	deleted := DeleteLabel(updated, "backlog", "c1", "l1")
	assert.Empty(t, deleted[0].Cards[0].Labels)
	assert.True(t, Same(deleted, DeleteLabel(deleted, "backlog", "c1", "l1")))
}

func TestCardCheckboxes(t *testing.T) {
	lists := boardWithCards().Lists

	got := AddCheckbox(lists, "todo", "c4", types.Checkbox{ID: "a", Title: "first"})
	got = AddCheckbox(got, "todo", "c4", types.Checkbox{ID: "b", Title: "second"})
	got = AddCheckbox(got, "todo", "c4", types.Checkbox{ID: "c", Title: "third"})
	require.Len(t, got[1].Cards[0].Checkboxes, 3)
	assert.True(t, Same(got, AddCheckbox(got, "todo", "c4", types.Checkbox{ID: "d", Title: " "})))

	checked := UpdateCheckbox(got, "todo", "c4", types.Checkbox{ID: "b", Title: "second", Checked: true})
	done, total := checked[1].Cards[0].Progress()
	assert.Equal(t, 1, done)
	assert.Equal(t, 3, total)

	moved := MoveCheckbox(checked, "todo", "c4", 2, 0)
	ids := []string{}
	for _, cb := range moved[1].Cards[0].Checkboxes {
		ids = append(ids, cb.ID)
	}
	assert.Equal(t, []string{"c", "a", "b"}, ids)
	assert.True(t, Same(checked, MoveCheckbox(checked, "todo", "c4", 1, 1)))

	removed := DeleteCheckbox(moved, "todo", "c4", "a")
	assert.Len(t, removed[1].Cards[0].Checkboxes, 2)
	assert.Len(t, moved[1].Cards[0].Checkboxes, 3)
}

func TestCardComments(t *testing.T) {
	lists := boardWithCards().Lists

	got := AddComment(lists, "backlog", "c3", types.Comment{ID: "m1", Comment: "looks good"})
	got = AddComment(got, "backlog", "c3", types.Comment{ID: "m2", Comment: "ship it"})
	require.Len(t, got[0].Cards[2].Comments, 2)
	assert.Equal(t, "ship it", got[0].Cards[2].Comments[1].Comment, "newest last")
	assert.True(t, Same(got, AddComment(got, "backlog", "c3", types.Comment{ID: "m3", Comment: ""})))

	edited := UpdateComment(got, "backlog", "c3", types.Comment{ID: "m1", Comment: "needs work"})
	assert.Equal(t, "needs work", edited[0].Cards[2].Comments[0].Comment)
	assert.True(t, Same(got, UpdateComment(got, "backlog", "c3", types.Comment{ID: "zz", Comment: "x"})))

	deleted := DeleteComment(edited, "backlog", "c3", "m2")
	assert.Len(t, deleted[0].Cards[2].Comments, 1)
}

func TestNestedOnMissingCard(t *testing.T) {
	lists := boardWithCards().Lists

	assert.True(t, Same(lists, AddComment(lists, "todo", "c1", types.Comment{ID: "m", Comment: "x"})))
	assert.True(t, Same(lists, AddCheckbox(lists, "nope", "c1", types.Checkbox{ID: "x", Title: "x"})))
	assert.True(t, Same(lists, DeleteLabel(lists, "backlog", "missing", "l")))
}
