package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/kanban/internal/transform"
	"github.com/mesh-intelligence/kanban/pkg/types"
)

func (a *app) newLabelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "label",
		Short: "Manage the label catalog and card labels",
	}
	cmd.AddCommand(
		a.newLabelAddCmd(),
		a.newLabelAttachCmd(),
		a.newLabelDeleteCmd(),
	)
	return cmd
}

func (a *app) newLabelAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <file> <title> <color>",
		Short: "Add a label to the board catalog",
		Long:  "Colors are palette names (green, yellow, orange, red, purple, blue, sky,\nlime, pink, black) or their hex values.",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			color, err := types.ParseColor(args[2])
			if err != nil {
				return userError(err)
			}
			label := types.Label{ID: a.newID(), Title: args[1], Color: color}
			_, err = a.mutate(cmd, args[0], func(b types.Board) (types.Board, error) {
				next := transform.AddCatalogLabel(b, label)
				if transform.Same(b.Settings.Labels, next.Settings.Labels) {
					return b, fmt.Errorf("%w: label %q is blank or already in the catalog", ErrRejected, label.Title)
				}
				return next, nil
			})
			if err != nil {
				return err
			}
			return a.printCreated(cmd, "label", label.ID)
		},
	}
}

func (a *app) newLabelAttachCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "attach <file> <list-id> <card-id> <label-title>",
		Short: "Attach a catalog label to a card",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			listID, cardID, title := args[1], args[2], args[3]
			b, err := a.mutate(cmd, args[0], func(b types.Board) (types.Board, error) {
				if err := findCard(b, listID, cardID); err != nil {
					return b, err
				}
				label, ok := catalogLabel(b, title)
				if !ok {
					return b, fmt.Errorf("%w: %q", ErrLabelUnknown, title)
				}
				return transform.Lists(func(lists []types.List) []types.List {
					return transform.AddLabel(lists, listID, cardID, label)
				})(b), nil
			})
			if err != nil {
				return err
			}
			return a.printBoard(cmd.OutOrStdout(), b)
		},
	}
}

func (a *app) newLabelDeleteCmd() *cobra.Command {
	var detach bool
	cmd := &cobra.Command{
		Use:   "delete <file> <label-title>",
		Short: "Remove a label from the catalog",
		Long:  "Removes a label from the catalog. With --detach every card copy of the label is removed as well.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := args[1]
			b, err := a.mutate(cmd, args[0], func(b types.Board) (types.Board, error) {
				label, ok := catalogLabel(b, title)
				if !ok {
					return b, fmt.Errorf("%w: %q", ErrLabelUnknown, title)
				}
				b = transform.DeleteCatalogLabel(b, label.ID)
				if detach {
					b = transform.DetachLabel(b, label.ID)
				}
				return b, nil
			})
			if err != nil {
				return err
			}
			return a.printBoard(cmd.OutOrStdout(), b)
		},
	}
	cmd.Flags().BoolVar(&detach, "detach", false, "also remove the label from every card")
	return cmd
}

func catalogLabel(b types.Board, title string) (types.Label, bool) {
	for _, l := range b.Settings.Labels {
		if l.Title == title {
			return l, true
		}
	}
	return types.Label{}, false
}
