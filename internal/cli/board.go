package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/kanban/internal/codec"
	"github.com/mesh-intelligence/kanban/internal/docsync"
	"github.com/mesh-intelligence/kanban/internal/document"
	"github.com/mesh-intelligence/kanban/internal/paths"
	"github.com/mesh-intelligence/kanban/pkg/types"
)

// Errors reported for rejected command arguments.
var (
	ErrListNotFound = errors.New("list not found")
	ErrCardNotFound = errors.New("card not found")
	ErrLabelUnknown = errors.New("label not in catalog")
	ErrRejected     = errors.New("change rejected")
)

// openDoc resolves name against the configured extension and opens the
// board document.
func (a *app) openDoc(name string) (*document.File, error) {
	path, err := paths.ResolveDocument(name, a.cfg.Extension)
	if err != nil {
		return nil, sysError(fmt.Errorf("resolve %s: %w", name, err))
	}
	doc, err := document.OpenFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, userError(fmt.Errorf("%s: no such board", path))
	}
	if err != nil {
		return nil, sysError(err)
	}
	return doc, nil
}

// readBoard opens and decodes a board document without starting a session.
func (a *app) readBoard(name string) (*document.File, types.Board, error) {
	doc, err := a.openDoc(name)
	if err != nil {
		return nil, types.Board{}, err
	}
	b, err := codec.Decode(doc.Text())
	if err != nil {
		return nil, types.Board{}, userError(fmt.Errorf("%s: %w", doc.Name(), err))
	}
	return doc, b, nil
}

// mutate applies fn to the named board through a session round trip. An
// error from fn aborts the edit before anything is sent, so the document is
// left byte for byte as it was, and is reported as a user error.
func (a *app) mutate(cmd *cobra.Command, name string, fn func(types.Board) (types.Board, error)) (types.Board, error) {
	doc, err := a.openDoc(name)
	if err != nil {
		return types.Board{}, err
	}

	var fnErr error
	b, stats, err := docsync.Edit(cmd.Context(), doc, a.logger, func(b types.Board) (types.Board, error) {
		next, err := fn(b)
		fnErr = err
		return next, err
	})
	switch {
	case fnErr != nil:
		return types.Board{}, userError(fnErr)
	case errors.Is(err, codec.ErrInvalidInput):
		return types.Board{}, userError(fmt.Errorf("%s: %w", doc.Name(), err))
	case err != nil:
		return types.Board{}, sysError(err)
	}
	a.logger.Debug("edit finished", "doc", doc.Name(), "writes", stats.Writes, "skipped", stats.SkippedIdentical)
	return b, nil
}

func (a *app) printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return sysError(fmt.Errorf("marshal output: %w", err))
	}
	fmt.Fprintln(w, string(data))
	return nil
}

// printBoard writes the board as encoded JSON or as a text outline.
func (a *app) printBoard(w io.Writer, b types.Board) error {
	if a.flags.jsonMode {
		data, err := codec.Encode(b)
		if err != nil {
			return sysError(err)
		}
		_, err = w.Write(data)
		return err
	}
	for _, l := range b.Lists {
		fmt.Fprintf(w, "%s (%s)\n", l.Title, l.ID)
		for _, c := range l.Cards {
			fmt.Fprintf(w, "  %s\n", cardLine(c))
		}
	}
	if n := len(b.Archive.Cards) + len(b.Archive.Lists); n > 0 {
		fmt.Fprintf(w, "archived: %d lists, %d cards\n", len(b.Archive.Lists), len(b.Archive.Cards))
	}
	return nil
}

// cardLine formats a card as "id  title  [labels]  due date  checked/total".
func cardLine(c types.Card) string {
	parts := []string{c.ID, c.Title}
	if len(c.Labels) > 0 {
		titles := make([]string, len(c.Labels))
		for i, l := range c.Labels {
			titles[i] = l.Title
		}
		parts = append(parts, "["+strings.Join(titles, ", ")+"]")
	}
	if c.DueDate != nil {
		parts = append(parts, "due "+c.DueDate.Format("2006-01-02"))
	}
	if checked, total := c.Progress(); total > 0 {
		parts = append(parts, fmt.Sprintf("%d/%d", checked, total))
	}
	return strings.Join(parts, "  ")
}

// findList returns the index of the active list with the given id or an
// error naming it.
func findList(b types.Board, listID string) (int, error) {
	i := b.FindList(listID)
	if i < 0 {
		return -1, fmt.Errorf("%w: %s", ErrListNotFound, listID)
	}
	return i, nil
}
