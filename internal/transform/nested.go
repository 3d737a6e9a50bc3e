package transform

import "github.com/mesh-intelligence/kanban/pkg/types"

// AddLabel attaches a copy of label to a card. Blank titles and labels
// already attached (by id) are rejected.
func AddLabel(lists []types.List, listID, cardID string, label types.Label) []types.List {
	if blank(label.Title) {
		return lists
	}
	return withCard(lists, listID, cardID, func(c types.Card) (types.Card, bool) {
		if indexOfLabel(c.Labels, label.ID) >= 0 {
			return c, false
		}
		c.Labels = appendNew(c.Labels, label)
		return c, true
	})
}

// UpdateLabel replaces the label with the same id on a card.
func UpdateLabel(lists []types.List, listID, cardID string, label types.Label) []types.List {
	if blank(label.Title) {
		return lists
	}
	return withCard(lists, listID, cardID, func(c types.Card) (types.Card, bool) {
		i := indexOfLabel(c.Labels, label.ID)
		if i < 0 {
			return c, false
		}
		c.Labels = replaceAt(c.Labels, i, label)
		return c, true
	})
}

// DeleteLabel detaches a label from a card.
func DeleteLabel(lists []types.List, listID, cardID, labelID string) []types.List {
	return withCard(lists, listID, cardID, func(c types.Card) (types.Card, bool) {
		i := indexOfLabel(c.Labels, labelID)
		if i < 0 {
			return c, false
		}
		c.Labels = removeAt(c.Labels, i)
		return c, true
	})
}

// AddCheckbox appends a checkbox to a card's task list.
func AddCheckbox(lists []types.List, listID, cardID string, cb types.Checkbox) []types.List {
	if blank(cb.Title) {
		return lists
	}
	return withCard(lists, listID, cardID, func(c types.Card) (types.Card, bool) {
		if indexOfCheckbox(c.Checkboxes, cb.ID) >= 0 {
			return c, false
		}
		c.Checkboxes = appendNew(c.Checkboxes, cb)
		return c, true
	})
}

// UpdateCheckbox replaces the checkbox with the same id.
func UpdateCheckbox(lists []types.List, listID, cardID string, cb types.Checkbox) []types.List {
	if blank(cb.Title) {
		return lists
	}
	return withCard(lists, listID, cardID, func(c types.Card) (types.Card, bool) {
		i := indexOfCheckbox(c.Checkboxes, cb.ID)
		if i < 0 {
			return c, false
		}
		c.Checkboxes = replaceAt(c.Checkboxes, i, cb)
		return c, true
	})
}

// DeleteCheckbox removes a checkbox from a card.
func DeleteCheckbox(lists []types.List, listID, cardID, checkboxID string) []types.List {
	return withCard(lists, listID, cardID, func(c types.Card) (types.Card, bool) {
		i := indexOfCheckbox(c.Checkboxes, checkboxID)
		if i < 0 {
			return c, false
		}
		c.Checkboxes = removeAt(c.Checkboxes, i)
		return c, true
	})
}

// MoveCheckbox reorders a card's task list with the Reinsert rule.
func MoveCheckbox(lists []types.List, listID, cardID string, from, to int) []types.List {
	return withCard(lists, listID, cardID, func(c types.Card) (types.Card, bool) {
		moved := Reinsert(c.Checkboxes, from, to)
		if Same(moved, c.Checkboxes) {
			return c, false
		}
		c.Checkboxes = moved
		return c, true
	})
}

// AddComment appends a comment to a card.
func AddComment(lists []types.List, listID, cardID string, comment types.Comment) []types.List {
	if blank(comment.Comment) {
		return lists
	}
	return withCard(lists, listID, cardID, func(c types.Card) (types.Card, bool) {
		if indexOfComment(c.Comments, comment.ID) >= 0 {
			return c, false
		}
		c.Comments = appendNew(c.Comments, comment)
		return c, true
	})
}

// UpdateComment replaces the comment with the same id.
func UpdateComment(lists []types.List, listID, cardID string, comment types.Comment) []types.List {
	if blank(comment.Comment) {
		return lists
	}
	return withCard(lists, listID, cardID, func(c types.Card) (types.Card, bool) {
		i := indexOfComment(c.Comments, comment.ID)
		if i < 0 {
			return c, false
		}
		c.Comments = replaceAt(c.Comments, i, comment)
		return c, true
	})
}

// DeleteComment removes a comment from a card.
func DeleteComment(lists []types.List, listID, cardID, commentID string) []types.List {
	return withCard(lists, listID, cardID, func(c types.Card) (types.Card, bool) {
		i := indexOfComment(c.Comments, commentID)
		if i < 0 {
			return c, false
		}
		c.Comments = removeAt(c.Comments, i)
		return c, true
	})
}

func indexOfCheckbox(cbs []types.Checkbox, id string) int {
	for i := range cbs {
		if cbs[i].ID == id {
			return i
		}
	}
	return -1
}

func indexOfComment(comments []types.Comment, id string) int {
	for i := range comments {
		if comments[i].ID == id {
			return i
		}
	}
	return -1
}
