package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/kanban/internal/transform"
	"github.com/mesh-intelligence/kanban/pkg/types"
)

func (a *app) newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Add, move, rename, archive and restore lists",
	}
	cmd.AddCommand(
		a.newListAddCmd(),
		a.newListMoveCmd(),
		a.newListRenameCmd(),
		a.newListArchiveCmd(),
		a.newListRestoreCmd(),
		a.newListRemoveCmd(),
	)
	return cmd
}

func (a *app) newListAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <file> <title>",
		Short: "Append a list",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := args[1]
			if strings.TrimSpace(title) == "" {
				return userError(fmt.Errorf("%w: list title is blank", ErrRejected))
			}
			list := types.List{ID: a.newID(), Title: title, Cards: []types.Card{}}
			_, err := a.mutate(cmd, args[0], func(b types.Board) (types.Board, error) {
				next := transform.AddListToBoard(b, list)
				if transform.Same(b.Lists, next.Lists) {
					return b, fmt.Errorf("%w: list %s already exists", ErrRejected, list.ID)
				}
				return next, nil
			})
			if err != nil {
				return err
			}
			return a.printCreated(cmd, "list", list.ID)
		},
	}
}

func (a *app) newListMoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move <file> <from> <to>",
		Short: "Move the list at position from to position to",
		Long:  "Positions count from 0. A target past the end moves the list to the end.",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to, err := parsePositions(args[1], args[2])
			if err != nil {
				return err
			}
			b, err := a.mutate(cmd, args[0], func(b types.Board) (types.Board, error) {
				if from >= len(b.Lists) {
					return b, fmt.Errorf("%w: no list at position %d", ErrListNotFound, from)
				}
				return transform.Lists(func(lists []types.List) []types.List {
					return transform.MoveList(lists, from, to)
				})(b), nil
			})
			if err != nil {
				return err
			}
			return a.printBoard(cmd.OutOrStdout(), b)
		},
	}
}

func (a *app) newListRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <file> <list-id> <title>",
		Short: "Change the title of a list",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			listID, title := args[1], args[2]
			if strings.TrimSpace(title) == "" {
				return userError(fmt.Errorf("%w: list title is blank", ErrRejected))
			}
			b, err := a.mutate(cmd, args[0], func(b types.Board) (types.Board, error) {
				if _, err := findList(b, listID); err != nil {
					return b, err
				}
				return transform.Lists(func(lists []types.List) []types.List {
					return transform.RenameList(lists, listID, title)
				})(b), nil
			})
			if err != nil {
				return err
			}
			return a.printBoard(cmd.OutOrStdout(), b)
		},
	}
}

func (a *app) newListArchiveCmd() *cobra.Command {
	var cardsOnly bool
	cmd := &cobra.Command{
		Use:   "archive <file> <list-id>",
		Short: "Archive a list and its cards",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			listID := args[1]
			b, err := a.mutate(cmd, args[0], func(b types.Board) (types.Board, error) {
				if _, err := findList(b, listID); err != nil {
					return b, err
				}
				if cardsOnly {
					return transform.ArchiveAllCardsInList(b, listID), nil
				}
				return transform.ArchiveList(b, listID), nil
			})
			if err != nil {
				return err
			}
			return a.printBoard(cmd.OutOrStdout(), b)
		},
	}
	cmd.Flags().BoolVar(&cardsOnly, "cards", false, "archive only the cards and keep the list")
	return cmd
}

func (a *app) newListRestoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore <file> <list-id>",
		Short: "Restore an archived list with its archived cards",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			listID := args[1]
			b, err := a.mutate(cmd, args[0], func(b types.Board) (types.Board, error) {
				if !archivedList(b, listID) {
					return b, fmt.Errorf("%w: %s is not archived", ErrListNotFound, listID)
				}
				return transform.RestoreList(b, listID), nil
			})
			if err != nil {
				return err
			}
			return a.printBoard(cmd.OutOrStdout(), b)
		},
	}
}

func (a *app) newListRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <file> <list-id>",
		Short: "Delete an archived list for good",
		Long:  "Removes an archived list. Its archived cards stay in the archive.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			listID := args[1]
			b, err := a.mutate(cmd, args[0], func(b types.Board) (types.Board, error) {
				if !archivedList(b, listID) {
					return b, fmt.Errorf("%w: %s is not archived", ErrListNotFound, listID)
				}
				return transform.RemoveList(b, listID), nil
			})
			if err != nil {
				return err
			}
			return a.printBoard(cmd.OutOrStdout(), b)
		},
	}
}

func archivedList(b types.Board, listID string) bool {
	for _, l := range b.Archive.Lists {
		if l.ID == listID {
			return true
		}
	}
	return false
}

// parsePositions parses two non-negative list or card positions.
func parsePositions(fromArg, toArg string) (int, int, error) {
	from, err := strconv.Atoi(fromArg)
	if err != nil || from < 0 {
		return 0, 0, userError(fmt.Errorf("invalid position %q", fromArg))
	}
	to, err := strconv.Atoi(toArg)
	if err != nil || to < 0 {
		return 0, 0, userError(fmt.Errorf("invalid position %q", toArg))
	}
	return from, to, nil
}

// printCreated reports the id of a new entity.
func (a *app) printCreated(cmd *cobra.Command, kind string, ids ...string) error {
	if a.flags.jsonMode {
		return a.printJSON(cmd.OutOrStdout(), map[string]any{"kind": kind, "ids": ids})
	}
	for _, id := range ids {
		fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s\n", kind, id)
	}
	return nil
}
