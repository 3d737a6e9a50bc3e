package transform

import (
	"fmt"

	"github.com/mesh-intelligence/kanban/pkg/types"
)

// fixedIDs returns a generator yielding ids in order, then numbered ids.
func fixedIDs(ids ...string) func() string {
	n := 0
	return func() string {
		n++
		if n <= len(ids) {
			return ids[n-1]
		}
		return fmt.Sprintf("gen-%d", n)
	}
}

// emptyBoard is the four-default-list board with readable list ids.
func emptyBoard() types.Board {
	return types.NewBoard(fixedIDs("backlog", "todo", "doing", "done"))
}

func card(id, title string) types.Card {
	c := types.NewCard(id, "")
	c.Title = title
	return c
}

// boardWithCards puts cards c1..c3 in backlog and c4 in todo.
func boardWithCards() types.Board {
	b := emptyBoard()
	b.Lists = AddCards(b.Lists, "backlog", card("c1", "one"), card("c2", "two"), card("c3", "three"))
	b.Lists = AddCards(b.Lists, "todo", card("c4", "four"))
	return b
}

func cardIDs(cards []types.Card) []string {
	ids := make([]string, 0, len(cards))
	for _, c := range cards {
		ids = append(ids, c.ID)
	}
	return ids
}

func listIDs(lists []types.List) []string {
	ids := make([]string, 0, len(lists))
	for _, l := range lists {
		ids = append(ids, l.ID)
	}
	return ids
}

func totalCards(b types.Board) int {
	return b.CardCount() + len(b.Archive.Cards)
}
