package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/kanban/internal/document"
	"github.com/mesh-intelligence/kanban/internal/index"
	"github.com/mesh-intelligence/kanban/pkg/types"
)

// buildIndex recreates the card index in the data directory and loads the
// named boards into it. The caller closes the index.
func (a *app) buildIndex(cmd *cobra.Command, names []string) (*index.Index, error) {
	idx, err := index.Open(a.cfg.DataDir)
	if err != nil {
		return nil, sysError(err)
	}
	for _, name := range names {
		doc, b, err := a.readBoard(name)
		if err != nil {
			idx.Close()
			return nil, err
		}
		if err := idx.Load(cmd.Context(), doc.Name(), b); err != nil {
			idx.Close()
			return nil, userError(fmt.Errorf("index %s: %w", doc.Name(), err))
		}
		a.logger.Debug("indexed", "doc", doc.Name(), "cards", b.CardCount())
	}
	return idx, nil
}

func (a *app) newIndexCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "index <file>...",
		Short: "Rebuild the card index from board documents",
		Long: "Recreates index.db in the data directory from the active cards of the\n" +
			"given boards. The documents remain the source of truth.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := a.buildIndex(cmd, args)
			if err != nil {
				return err
			}
			defer idx.Close()

			n, err := idx.Count(cmd.Context())
			if err != nil {
				return sysError(err)
			}
			if a.flags.jsonMode {
				return a.printJSON(cmd.OutOrStdout(), map[string]any{
					"path":      idx.Path(),
					"documents": len(args),
					"cards":     n,
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Indexed %d cards from %d documents into %s\n", n, len(args), idx.Path())
			return nil
		},
	}
}

func (a *app) newDueCmd() *cobra.Command {
	var before string
	cmd := &cobra.Command{
		Use:   "due <file>...",
		Short: "List cards due before a date",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cutoff := time.Now().UTC()
			if before != "" {
				t, err := types.ParseTimestamp(before)
				if err != nil {
					return userError(err)
				}
				cutoff = t
			}
			idx, err := a.buildIndex(cmd, args)
			if err != nil {
				return err
			}
			defer idx.Close()

			entries, err := idx.Due(cmd.Context(), cutoff)
			if err != nil {
				return sysError(err)
			}
			return a.printEntries(cmd.OutOrStdout(), entries)
		},
	}
	cmd.Flags().StringVar(&before, "before", "", "cutoff date (default: now)")
	return cmd
}

func (a *app) newFindCmd() *cobra.Command {
	var label string
	cmd := &cobra.Command{
		Use:   "find --label <title> <file>...",
		Short: "List cards carrying a label across boards",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := a.buildIndex(cmd, args)
			if err != nil {
				return err
			}
			defer idx.Close()

			entries, err := idx.ByLabel(cmd.Context(), label)
			if err != nil {
				return sysError(err)
			}
			return a.printEntries(cmd.OutOrStdout(), entries)
		},
	}
	cmd.Flags().StringVar(&label, "label", "", "label title to look for")
	_ = cmd.MarkFlagRequired("label")
	return cmd
}

type entryJSON struct {
	Doc       string     `json:"doc"`
	CardID    string     `json:"card_id"`
	ListID    string     `json:"list_id"`
	ListTitle string     `json:"list_title"`
	Position  int        `json:"position"`
	Title     string     `json:"title"`
	DueDate   *time.Time `json:"due_date,omitempty"`
	Checked   int        `json:"checked"`
	Total     int        `json:"total"`
}

func (a *app) printEntries(w io.Writer, entries []index.Entry) error {
	if a.flags.jsonMode {
		out := make([]entryJSON, len(entries))
		for i, e := range entries {
			out[i] = entryJSON(e)
		}
		return a.printJSON(w, out)
	}
	for _, e := range entries {
		line := fmt.Sprintf("%s  %s  %s  %s", document.Title(e.Doc), e.ListTitle, e.CardID, e.Title)
		if e.DueDate != nil {
			line += "  due " + e.DueDate.Format("2006-01-02")
		}
		fmt.Fprintln(w, line)
	}
	return nil
}
