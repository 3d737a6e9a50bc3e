package types

// Default list titles of a freshly created board, in column order.
var DefaultListTitles = []string{"Backlog", "To Do", "Doing", "Done"}

// Board is the root aggregate of a document.
type Board struct {
	Lists    []List   `json:"lists"`
	Archive  Archive  `json:"archive"`
	Settings Settings `json:"settings"`
}

// Archive holds archived lists (without their cards) and archived cards.
type Archive struct {
	Lists []ArchiveList `json:"lists"`
	Cards []Card        `json:"cards"`
}

// Settings holds the board-level label catalog.
type Settings struct {
	Labels []Label `json:"labels"`
}

// List is a board column. Card order is significant.
type List struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Cards []Card `json:"cards"`
}

// ArchiveList is a List stripped of its cards.
type ArchiveList struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// NewBoard returns the canonical empty board: one empty list per
// DefaultListTitles entry, an empty archive and an empty label catalog.
// newID supplies the list ids; pass NewID outside of tests.
func NewBoard(newID func() string) Board {
	lists := make([]List, 0, len(DefaultListTitles))
	for _, title := range DefaultListTitles {
		lists = append(lists, List{ID: newID(), Title: title, Cards: []Card{}})
	}
	return Board{
		Lists:    lists,
		Archive:  Archive{Lists: []ArchiveList{}, Cards: []Card{}},
		Settings: Settings{Labels: []Label{}},
	}
}

// FindList returns the index of the active list with the given id, or -1.
func (b Board) FindList(id string) int {
	return IndexOfList(b.Lists, id)
}

// FindCard returns the position of the active card with the given id as
// (list index, card index), or (-1, -1) when no active list holds it.
func (b Board) FindCard(id string) (int, int) {
	for i, l := range b.Lists {
		if j := IndexOfCard(l.Cards, id); j >= 0 {
			return i, j
		}
	}
	return -1, -1
}

// CardCount returns the number of cards in active lists.
func (b Board) CardCount() int {
	n := 0
	for _, l := range b.Lists {
		n += len(l.Cards)
	}
	return n
}

// IndexOfList returns the index of the list with the given id, or -1.
func IndexOfList(lists []List, id string) int {
	for i := range lists {
		if lists[i].ID == id {
			return i
		}
	}
	return -1
}

// IndexOfCard returns the index of the card with the given id, or -1.
func IndexOfCard(cards []Card, id string) int {
	for i := range cards {
		if cards[i].ID == id {
			return i
		}
	}
	return -1
}
