package transform

import (
	"strings"

	"github.com/mesh-intelligence/kanban/pkg/types"
)

// Same reports whether a and b are the identical slice: same length and,
// when non-empty, the same first element in memory.
func Same[T any](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	return len(a) == 0 || &a[0] == &b[0]
}

// Reinsert removes the element at from and inserts it at to in the
// shortened slice. to is clamped into range. An out-of-range from, or a
// move that lands on the same position, returns items unchanged.
func Reinsert[T any](items []T, from, to int) []T {
	if from < 0 || from >= len(items) {
		return items
	}
	to = clamp(to, len(items)-1)
	if to == from {
		return items
	}
	item := items[from]
	return insertAt(removeAt(items, from), to, item)
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func clamp(i, hi int) int {
	if i < 0 {
		return 0
	}
	if i > hi {
		return hi
	}
	return i
}

// appendNew returns a fresh slice holding s followed by items.
func appendNew[T any](s []T, items ...T) []T {
	out := make([]T, 0, len(s)+len(items))
	out = append(out, s...)
	return append(out, items...)
}

func replaceAt[T any](s []T, i int, v T) []T {
	out := make([]T, len(s))
	copy(out, s)
	out[i] = v
	return out
}

func removeAt[T any](s []T, i int) []T {
	out := make([]T, 0, len(s)-1)
	out = append(out, s[:i]...)
	return append(out, s[i+1:]...)
}

func insertAt[T any](s []T, i int, v T) []T {
	i = clamp(i, len(s))
	out := make([]T, 0, len(s)+1)
	out = append(out, s[:i]...)
	out = append(out, v)
	return append(out, s[i:]...)
}

// removeWhere returns s without the elements matching drop, plus the
// removed elements in order. s is returned as is when nothing matches.
func removeWhere[T any](s []T, drop func(T) bool) (kept, removed []T) {
	for i, v := range s {
		if drop(v) {
			if kept == nil {
				kept = make([]T, 0, len(s))
				kept = append(kept, s[:i]...)
			}
			removed = append(removed, v)
			continue
		}
		if kept != nil {
			kept = append(kept, v)
		}
	}
	if removed == nil {
		return s, nil
	}
	return kept, removed
}

// emptyIfNil keeps encoded documents free of null collections.
func emptyIfNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// withCard locates a card by list id and card id and replaces it with the
// result of fn. fn reports false to reject the change.
func withCard(lists []types.List, listID, cardID string, fn func(types.Card) (types.Card, bool)) []types.List {
	li := types.IndexOfList(lists, listID)
	if li < 0 {
		return lists
	}
	ci := types.IndexOfCard(lists[li].Cards, cardID)
	if ci < 0 {
		return lists
	}
	card, ok := fn(lists[li].Cards[ci])
	if !ok {
		return lists
	}
	list := lists[li]
	list.Cards = replaceAt(list.Cards, ci, card)
	return replaceAt(lists, li, list)
}
