package transform

import "github.com/mesh-intelligence/kanban/pkg/types"

// UpdateSettings replaces the board settings.
func UpdateSettings(b types.Board, settings types.Settings) types.Board {
	settings.Labels = emptyIfNil(settings.Labels)
	b.Settings = settings
	return b
}

// AddCatalogLabel adds a label to the board catalog. Blank titles, invalid
// colors, and ids or titles already in the catalog are rejected.
func AddCatalogLabel(b types.Board, label types.Label) types.Board {
	if blank(label.Title) || !label.Color.Valid() {
		return b
	}
	for _, l := range b.Settings.Labels {
		if l.ID == label.ID || l.Title == label.Title {
			return b
		}
	}
	b.Settings.Labels = appendNew(b.Settings.Labels, label)
	return b
}

// UpdateCatalogLabel replaces the catalog label with the same id. Copies
// already attached to cards are not touched; use PropagateLabel for that.
func UpdateCatalogLabel(b types.Board, label types.Label) types.Board {
	if blank(label.Title) || !label.Color.Valid() {
		return b
	}
	i := indexOfLabel(b.Settings.Labels, label.ID)
	if i < 0 {
		return b
	}
	b.Settings.Labels = replaceAt(b.Settings.Labels, i, label)
	return b
}

// DeleteCatalogLabel removes a label from the catalog only.
func DeleteCatalogLabel(b types.Board, labelID string) types.Board {
	i := indexOfLabel(b.Settings.Labels, labelID)
	if i < 0 {
		return b
	}
	b.Settings.Labels = removeAt(b.Settings.Labels, i)
	return b
}

// PropagateLabel rewrites every copy of label (matched by id) attached to
// active or archived cards.
func PropagateLabel(b types.Board, label types.Label) types.Board {
	if blank(label.Title) {
		return b
	}
	return mapBoardCards(b, func(c types.Card) (types.Card, bool) {
		i := indexOfLabel(c.Labels, label.ID)
		if i < 0 || c.Labels[i] == label {
			return c, false
		}
		c.Labels = replaceAt(c.Labels, i, label)
		return c, true
	})
}

// DetachLabel removes every copy of a label (matched by id) from active and
// archived cards.
func DetachLabel(b types.Board, labelID string) types.Board {
	return mapBoardCards(b, func(c types.Card) (types.Card, bool) {
		i := indexOfLabel(c.Labels, labelID)
		if i < 0 {
			return c, false
		}
		c.Labels = removeAt(c.Labels, i)
		return c, true
	})
}

// mapBoardCards applies fn to every active and archived card, copying only
// the lists and slices that actually change.
func mapBoardCards(b types.Board, fn func(types.Card) (types.Card, bool)) types.Board {
	lists := b.Lists
	for li := range b.Lists {
		cards := mapCards(b.Lists[li].Cards, fn)
		if Same(cards, b.Lists[li].Cards) {
			continue
		}
		if Same(lists, b.Lists) {
			lists = appendNew(b.Lists)
		}
		lists[li].Cards = cards
	}
	b.Lists = lists
	b.Archive.Cards = mapCards(b.Archive.Cards, fn)
	return b
}

func mapCards(cards []types.Card, fn func(types.Card) (types.Card, bool)) []types.Card {
	out := cards
	for i, c := range cards {
		next, changed := fn(c)
		if !changed {
			continue
		}
		if Same(out, cards) {
			out = appendNew(cards)
		}
		out[i] = next
	}
	return out
}

func indexOfLabel(labels []types.Label, id string) int {
	for i := range labels {
		if labels[i].ID == id {
			return i
		}
	}
	return -1
}
