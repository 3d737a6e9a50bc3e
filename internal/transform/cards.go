package transform

import (
	"slices"
	"time"

	"github.com/mesh-intelligence/kanban/pkg/types"
)

// AddCards appends cards to the list with the given id. Cards with blank
// titles, and cards whose id is already on the board or repeated in the
// batch, are dropped. Each kept card gets ListID set to listID. When no card
// survives the filter the input is returned unchanged.
func AddCards(lists []types.List, listID string, cards ...types.Card) []types.List {
	li := types.IndexOfList(lists, listID)
	if li < 0 {
		return lists
	}
	seen := make(map[string]bool)
	for _, l := range lists {
		for _, c := range l.Cards {
			seen[c.ID] = true
		}
	}
	var kept []types.Card
	for _, c := range cards {
		if blank(c.Title) || seen[c.ID] {
			continue
		}
		seen[c.ID] = true
		c.ListID = listID
		c.Labels = emptyIfNil(c.Labels)
		c.Checkboxes = emptyIfNil(c.Checkboxes)
		c.Comments = emptyIfNil(c.Comments)
		kept = append(kept, c)
	}
	if len(kept) == 0 {
		return lists
	}
	list := lists[li]
	list.Cards = appendNew(list.Cards, kept...)
	return replaceAt(lists, li, list)
}

// AddCard appends a single card; see AddCards.
func AddCard(lists []types.List, listID string, card types.Card) []types.List {
	return AddCards(lists, listID, card)
}

// UpdateCard replaces the card with the same id in the given list. The
// card's ListID is kept pointing at that list.
func UpdateCard(lists []types.List, listID string, card types.Card) []types.List {
	if blank(card.Title) {
		return lists
	}
	return withCard(lists, listID, card.ID, func(types.Card) (types.Card, bool) {
		card.ListID = listID
		return card, true
	})
}

// SetDueDate sets or, with nil, clears a card's due date.
func SetDueDate(lists []types.List, listID, cardID string, due *time.Time) []types.List {
	return withCard(lists, listID, cardID, func(c types.Card) (types.Card, bool) {
		if due == nil {
			if c.DueDate == nil {
				return c, false
			}
			c.DueDate = nil
			return c, true
		}
		d := *due
		c.DueDate = &d
		return c, true
	})
}

// CopyCard appends a duplicate of a card to the same list under newID.
// Labels, checkboxes (including their checked state) and comments are
// copied verbatim.
func CopyCard(lists []types.List, listID, cardID, newID string) []types.List {
	li := types.IndexOfList(lists, listID)
	if li < 0 || newID == "" {
		return lists
	}
	ci := types.IndexOfCard(lists[li].Cards, cardID)
	if ci < 0 {
		return lists
	}
	for _, l := range lists {
		if types.IndexOfCard(l.Cards, newID) >= 0 {
			return lists
		}
	}
	dup := lists[li].Cards[ci]
	dup.ID = newID
	dup.Labels = slices.Clone(emptyIfNil(dup.Labels))
	dup.Checkboxes = slices.Clone(emptyIfNil(dup.Checkboxes))
	dup.Comments = slices.Clone(emptyIfNil(dup.Comments))
	if dup.DueDate != nil {
		d := *dup.DueDate
		dup.DueDate = &d
	}
	list := lists[li]
	list.Cards = appendNew(list.Cards, dup)
	return replaceAt(lists, li, list)
}

// MoveCard moves the card at from to index to of the shortened card slice
// of the same list.
func MoveCard(lists []types.List, listID string, from, to int) []types.List {
	li := types.IndexOfList(lists, listID)
	if li < 0 {
		return lists
	}
	moved := Reinsert(lists[li].Cards, from, to)
	if Same(moved, lists[li].Cards) {
		return lists
	}
	list := lists[li]
	list.Cards = moved
	return replaceAt(lists, li, list)
}

// MoveCardAcrossList moves the card at from in one list to index to of
// another and points its ListID at the destination. Moving within a single
// list behaves as MoveCard.
func MoveCardAcrossList(lists []types.List, fromListID string, from int, toListID string, to int) []types.List {
	if fromListID == toListID {
		return MoveCard(lists, fromListID, from, to)
	}
	fi := types.IndexOfList(lists, fromListID)
	ti := types.IndexOfList(lists, toListID)
	if fi < 0 || ti < 0 || from < 0 || from >= len(lists[fi].Cards) {
		return lists
	}
	src, dst := lists[fi], lists[ti]
	card := src.Cards[from]
	card.ListID = dst.ID
	src.Cards = removeAt(src.Cards, from)
	dst.Cards = insertAt(dst.Cards, to, card)

	out := replaceAt(lists, fi, src)
	out[ti] = dst
	return out
}

// MoveAllCards appends every card of one list to another, in order.
func MoveAllCards(lists []types.List, fromListID, toListID string) []types.List {
	if fromListID == toListID {
		return lists
	}
	fi := types.IndexOfList(lists, fromListID)
	ti := types.IndexOfList(lists, toListID)
	if fi < 0 || ti < 0 || len(lists[fi].Cards) == 0 {
		return lists
	}
	src, dst := lists[fi], lists[ti]
	dst.Cards = appendNew(dst.Cards, rehome(src.Cards, dst.ID)...)
	src.Cards = []types.Card{}

	out := replaceAt(lists, fi, src)
	out[ti] = dst
	return out
}

// DeleteCard permanently removes a card from the archived cards.
func DeleteCard(archived []types.Card, cardID string) []types.Card {
	i := types.IndexOfCard(archived, cardID)
	if i < 0 {
		return archived
	}
	return removeAt(archived, i)
}
