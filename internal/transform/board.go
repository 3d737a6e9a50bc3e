package transform

import "github.com/mesh-intelligence/kanban/pkg/types"

// AddListToBoard adds list as AddList does and also rejects an id held by
// an archived list.
func AddListToBoard(b types.Board, list types.List) types.Board {
	if indexOfArchiveList(b.Archive.Lists, list.ID) >= 0 {
		return b
	}
	b.Lists = AddList(b.Lists, list)
	return b
}

// AddCardsToBoard adds cards as AddCards does and also drops cards whose id
// is held by an archived card.
func AddCardsToBoard(b types.Board, listID string, cards ...types.Card) types.Board {
	kept := make([]types.Card, 0, len(cards))
	for _, c := range cards {
		if types.IndexOfCard(b.Archive.Cards, c.ID) < 0 {
			kept = append(kept, c)
		}
	}
	b.Lists = AddCards(b.Lists, listID, kept...)
	return b
}

// CopyCardOnBoard copies a card as CopyCard does and also rejects a newID
// held by an archived card.
func CopyCardOnBoard(b types.Board, listID, cardID, newID string) types.Board {
	if types.IndexOfCard(b.Archive.Cards, newID) >= 0 {
		return b
	}
	b.Lists = CopyCard(b.Lists, listID, cardID, newID)
	return b
}
