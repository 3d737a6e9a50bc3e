package transform

import (
	"strings"

	"github.com/mesh-intelligence/kanban/pkg/types"
)

// ParseCardLines turns pasted text into one card per line, ready for
// AddCards. A line of the form "label:title" whose prefix matches the title
// of a catalog label gets a copy of that label and the remaining text as
// its title; any other line is used whole. Blank lines produce blank cards,
// which AddCards drops.
func ParseCardLines(text, listID string, catalog []types.Label, newID func() string) []types.Card {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	cards := make([]types.Card, 0, len(lines))
	for _, line := range lines {
		card := types.NewCard(newID(), listID)
		card.Title = strings.TrimSpace(line)
		if prefix, rest, ok := strings.Cut(line, ":"); ok {
			prefix = strings.TrimSpace(prefix)
			rest = strings.TrimSpace(rest)
			if i := indexOfLabelTitle(catalog, prefix); i >= 0 && rest != "" {
				card.Title = rest
				card.Labels = []types.Label{catalog[i]}
			}
		}
		cards = append(cards, card)
	}
	return cards
}

func indexOfLabelTitle(labels []types.Label, title string) int {
	if title == "" {
		return -1
	}
	for i := range labels {
		if labels[i].Title == title {
			return i
		}
	}
	return -1
}
