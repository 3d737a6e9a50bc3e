package cli

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/kanban/internal/filter"
	"github.com/mesh-intelligence/kanban/pkg/types"
)

func (a *app) newShowCmd() *cobra.Command {
	var (
		labels []string
		search string
	)
	cmd := &cobra.Command{
		Use:   "show <file>",
		Short: "Print the lists and cards of a board",
		Long: "Prints every active list with its cards. --label keeps cards carrying at\n" +
			"least one of the given label titles; --search keeps cards whose title,\n" +
			"description or comments contain the text.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, b, err := a.readBoard(args[0])
			if err != nil {
				return err
			}
			return a.printBoard(cmd.OutOrStdout(), filterBoard(b, search, filter.NewLabelSet(labels...)))
		},
	}
	cmd.Flags().StringArrayVar(&labels, "label", nil, "show only cards with this label title (repeatable)")
	cmd.Flags().StringVar(&search, "search", "", "show only cards matching this text")
	return cmd
}

// filterBoard returns b with each list's cards narrowed by the query and
// the selected labels.
func filterBoard(b types.Board, query string, selected filter.LabelSet) types.Board {
	if query == "" && len(selected) == 0 {
		return b
	}
	lists := make([]types.List, len(b.Lists))
	for i, l := range b.Lists {
		l.Cards = filter.Cards(l.Cards, query, selected, filter.Substring)
		lists[i] = l
	}
	b.Lists = lists
	return b
}
