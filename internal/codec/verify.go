package codec

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mesh-intelligence/kanban/pkg/types"
)

// Board invariants the schema cannot express.
var (
	ErrDuplicateID  = errors.New("duplicate id")
	ErrListMismatch = errors.New("card listId does not match its list")
	ErrInvalidColor = errors.New("invalid label color")
	ErrBlankTitle   = errors.New("blank title")
)

// Verify reports every invariant violation in b. Ids must be unique among
// lists (active and archived) and among cards (active and archived); an
// active card's ListID must name the list holding it; label colors must be
// in the palette. Decode does not call Verify.
func Verify(b types.Board) []error {
	var errs []error
	fail := func(path string, err error, detail string) {
		if detail != "" {
			err = fmt.Errorf("%w: %s", err, detail)
		}
		errs = append(errs, fmt.Errorf("%s: %w", path, err))
	}

	listIDs := make(map[string]string)
	cardIDs := make(map[string]string)
	claim := func(seen map[string]string, id, path string) {
		if prev, ok := seen[id]; ok {
			fail(path, ErrDuplicateID, fmt.Sprintf("%q also at %s", id, prev))
			return
		}
		seen[id] = path
	}

	checkLabels := func(path string, labels []types.Label) {
		for i, l := range labels {
			if !l.Color.Valid() {
				fail(fmt.Sprintf("%s[%d].color", path, i), ErrInvalidColor, string(l.Color))
			}
		}
	}
	checkCard := func(path string, c types.Card) {
		claim(cardIDs, c.ID, path)
		if strings.TrimSpace(c.Title) == "" {
			fail(path+".title", ErrBlankTitle, "")
		}
		checkLabels(path+".labels", c.Labels)
	}

	for i, l := range b.Lists {
		path := fmt.Sprintf("lists[%d]", i)
		claim(listIDs, l.ID, path)
		if strings.TrimSpace(l.Title) == "" {
			fail(path+".title", ErrBlankTitle, "")
		}
		for j, c := range l.Cards {
			cpath := fmt.Sprintf("%s.cards[%d]", path, j)
			checkCard(cpath, c)
			if c.ListID != l.ID {
				fail(cpath+".listId", ErrListMismatch, fmt.Sprintf("%q in list %q", c.ListID, l.ID))
			}
		}
	}
	for i, l := range b.Archive.Lists {
		claim(listIDs, l.ID, fmt.Sprintf("archive.lists[%d]", i))
	}
	for i, c := range b.Archive.Cards {
		checkCard(fmt.Sprintf("archive.cards[%d]", i), c)
	}

	catalog := make(map[string]string)
	for i, l := range b.Settings.Labels {
		claim(catalog, l.ID, fmt.Sprintf("settings.labels[%d]", i))
	}
	checkLabels("settings.labels", b.Settings.Labels)
	return errs
}
