package transform

import "github.com/mesh-intelligence/kanban/pkg/types"

// Lists lifts a list transform to a board transform.
func Lists(fn func([]types.List) []types.List) func(types.Board) types.Board {
	return func(b types.Board) types.Board {
		b.Lists = fn(b.Lists)
		return b
	}
}

// ArchiveList removes a list from the board. The list, without its cards,
// is appended to the archived lists and its cards to the archived cards.
func ArchiveList(b types.Board, listID string) types.Board {
	li := b.FindList(listID)
	if li < 0 {
		return b
	}
	list := b.Lists[li]
	b.Lists = removeAt(b.Lists, li)
	b.Archive.Lists = appendNew(b.Archive.Lists, types.ArchiveList{ID: list.ID, Title: list.Title})
	b.Archive.Cards = appendNew(b.Archive.Cards, list.Cards...)
	return b
}

// ArchiveAllCardsInList moves every card of a list to the archive and
// leaves the list active and empty.
func ArchiveAllCardsInList(b types.Board, listID string) types.Board {
	li := b.FindList(listID)
	if li < 0 || len(b.Lists[li].Cards) == 0 {
		return b
	}
	list := b.Lists[li]
	b.Archive.Cards = appendNew(b.Archive.Cards, list.Cards...)
	list.Cards = []types.Card{}
	b.Lists = replaceAt(b.Lists, li, list)
	return b
}

// RestoreList brings an archived list back at the end of the board and
// reattaches every archived card whose ListID matches it.
func RestoreList(b types.Board, listID string) types.Board {
	ai := indexOfArchiveList(b.Archive.Lists, listID)
	if ai < 0 || b.FindList(listID) >= 0 {
		return b
	}
	ref := b.Archive.Lists[ai]
	kept, cards := removeWhere(b.Archive.Cards, func(c types.Card) bool {
		return c.ListID == listID
	})
	b.Archive.Lists = removeAt(b.Archive.Lists, ai)
	b.Archive.Cards = kept
	b.Lists = appendNew(b.Lists, types.List{ID: ref.ID, Title: ref.Title, Cards: emptyIfNil(cards)})
	return b
}

// RemoveList permanently drops an archived list entry. Archived cards that
// came from it stay in the archive.
func RemoveList(b types.Board, listID string) types.Board {
	ai := indexOfArchiveList(b.Archive.Lists, listID)
	if ai < 0 {
		return b
	}
	b.Archive.Lists = removeAt(b.Archive.Lists, ai)
	return b
}

// ArchiveCard moves a card from a list to the archived cards.
func ArchiveCard(b types.Board, listID, cardID string) types.Board {
	li := b.FindList(listID)
	if li < 0 {
		return b
	}
	ci := types.IndexOfCard(b.Lists[li].Cards, cardID)
	if ci < 0 {
		return b
	}
	list := b.Lists[li]
	card := list.Cards[ci]
	list.Cards = removeAt(list.Cards, ci)
	b.Lists = replaceAt(b.Lists, li, list)
	b.Archive.Cards = appendNew(b.Archive.Cards, card)
	return b
}

// RestoreCard moves an archived card to the end of the active list named
// by its ListID. When that list is not active the card stays archived.
func RestoreCard(b types.Board, cardID string) types.Board {
	ai := types.IndexOfCard(b.Archive.Cards, cardID)
	if ai < 0 {
		return b
	}
	card := b.Archive.Cards[ai]
	li := b.FindList(card.ListID)
	if li < 0 {
		return b
	}
	list := b.Lists[li]
	list.Cards = appendNew(list.Cards, card)
	b.Lists = replaceAt(b.Lists, li, list)
	b.Archive.Cards = removeAt(b.Archive.Cards, ai)
	return b
}

// DeleteArchivedCard permanently removes a card from the archive.
func DeleteArchivedCard(b types.Board, cardID string) types.Board {
	b.Archive.Cards = DeleteCard(b.Archive.Cards, cardID)
	return b
}

func indexOfArchiveList(lists []types.ArchiveList, id string) int {
	for i := range lists {
		if lists[i].ID == id {
			return i
		}
	}
	return -1
}
