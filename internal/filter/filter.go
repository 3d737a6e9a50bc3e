// Package filter selects the cards a board view shows: a label predicate
// combined with an optional text ranking.
package filter

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/mesh-intelligence/kanban/pkg/types"
)

// LabelSet is a set of label titles.
type LabelSet map[string]struct{}

// NewLabelSet returns a set holding titles.
func NewLabelSet(titles ...string) LabelSet {
	set := make(LabelSet, len(titles))
	for _, t := range titles {
		set[t] = struct{}{}
	}
	return set
}

// LabelMatch reports whether card passes the label filter: the set is
// empty, or some label on the card has a title in the set. Labels are
// compared by title, so distinct labels sharing a title are not told apart.
func LabelMatch(card types.Card, selected LabelSet) bool {
	if len(selected) == 0 {
		return true
	}
	for _, l := range card.Labels {
		if _, ok := selected[l.Title]; ok {
			return true
		}
	}
	return false
}

// Ranker orders the cards matching a text query, best first. Cards that do
// not match are left out.
type Ranker interface {
	Rank(query string, cards []types.Card) []types.Card
}

// RankerFunc adapts a function to Ranker.
type RankerFunc func(query string, cards []types.Card) []types.Card

func (f RankerFunc) Rank(query string, cards []types.Card) []types.Card { return f(query, cards) }

// Cards returns the cards a view should show. Without a query it keeps the
// cards passing LabelMatch in their given order. With a query it keeps the
// ranker's result, in ranker order, minus cards failing LabelMatch.
func Cards(cards []types.Card, query string, selected LabelSet, ranker Ranker) []types.Card {
	candidates := cards
	if strings.TrimSpace(query) != "" && ranker != nil {
		candidates = ranker.Rank(query, cards)
	}
	out := make([]types.Card, 0, len(candidates))
	for _, c := range candidates {
		if LabelMatch(c, selected) {
			out = append(out, c)
		}
	}
	return out
}

// Substring is a Ranker matching the query case-insensitively against the
// title, description and comments of each card. Title hits rank before
// hits elsewhere; ties keep board order.
var Substring Ranker = RankerFunc(substringRank)

func substringRank(query string, cards []types.Card) []types.Card {
	fold := cases.Fold()
	q := fold.String(strings.TrimSpace(query))
	var inTitle, elsewhere []types.Card
	for _, c := range cards {
		switch {
		case strings.Contains(fold.String(c.Title), q):
			inTitle = append(inTitle, c)
		case strings.Contains(fold.String(c.Description), q) || commentsContain(c.Comments, q, fold):
			elsewhere = append(elsewhere, c)
		}
	}
	return append(inTitle, elsewhere...)
}

func commentsContain(comments []types.Comment, q string, fold cases.Caser) bool {
	for _, cm := range comments {
		if strings.Contains(fold.String(cm.Comment), q) {
			return true
		}
	}
	return false
}

// BoardCards returns every card on the active lists of b in board order.
func BoardCards(b types.Board) []types.Card {
	out := make([]types.Card, 0, b.CardCount())
	for _, l := range b.Lists {
		out = append(out, l.Cards...)
	}
	return out
}
