package transform

import "github.com/mesh-intelligence/kanban/pkg/types"

// AddList appends list. Blank titles and ids already in use are rejected.
// The cards of list are re-homed to it.
func AddList(lists []types.List, list types.List) []types.List {
	if blank(list.Title) || types.IndexOfList(lists, list.ID) >= 0 {
		return lists
	}
	list.Cards = rehome(emptyIfNil(list.Cards), list.ID)
	return appendNew(lists, list)
}

// UpdateList replaces the list with the same id. A nil Cards keeps the
// stored cards, so a rename only needs id and title.
func UpdateList(lists []types.List, list types.List) []types.List {
	if blank(list.Title) {
		return lists
	}
	i := types.IndexOfList(lists, list.ID)
	if i < 0 {
		return lists
	}
	if list.Cards == nil {
		list.Cards = lists[i].Cards
	} else {
		list.Cards = rehome(list.Cards, list.ID)
	}
	return replaceAt(lists, i, list)
}

// RenameList sets the title of the list with the given id.
func RenameList(lists []types.List, listID, title string) []types.List {
	return UpdateList(lists, types.List{ID: listID, Title: title})
}

// MoveList moves the list at from to index to of the shortened slice.
func MoveList(lists []types.List, from, to int) []types.List {
	return Reinsert(lists, from, to)
}

// rehome returns cards with ListID set to listID, copying only if needed.
func rehome(cards []types.Card, listID string) []types.Card {
	for i := range cards {
		if cards[i].ListID != listID {
			out := make([]types.Card, len(cards))
			copy(out, cards)
			for j := i; j < len(out); j++ {
				out[j].ListID = listID
			}
			return out
		}
	}
	return cards
}
