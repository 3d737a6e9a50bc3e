package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/kanban/internal/transform"
	"github.com/mesh-intelligence/kanban/pkg/types"
)

func (a *app) newCardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "card",
		Short: "Add, move, archive and edit cards",
	}
	cmd.AddCommand(
		a.newCardAddCmd(),
		a.newCardMoveCmd(),
		a.newCardCopyCmd(),
		a.newCardArchiveCmd(),
		a.newCardRestoreCmd(),
		a.newCardDeleteCmd(),
		a.newCardDueCmd(),
		a.newCardCommentCmd(),
		a.newCardTaskCmd(),
	)
	return cmd
}

func (a *app) newCardAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <file> <list-id> <text>",
		Short: "Add one card per line of text",
		Long: "Adds one card per non-blank line of text to the end of a list. A line\n" +
			"\"bug:Fix login\" whose prefix names a catalog label gets that label and\n" +
			"the title \"Fix login\". Pass - as text to read the lines from stdin.",
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			listID, text := args[1], args[2]
			if text == "-" {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return sysError(fmt.Errorf("read stdin: %w", err))
				}
				text = string(data)
			}

			var added []string
			_, err := a.mutate(cmd, args[0], func(b types.Board) (types.Board, error) {
				li, err := findList(b, listID)
				if err != nil {
					return b, err
				}
				cards := transform.ParseCardLines(text, listID, b.Settings.Labels, a.newID)
				next := transform.AddCardsToBoard(b, listID, cards...)
				if transform.Same(b.Lists, next.Lists) {
					return b, fmt.Errorf("%w: no cards to add", ErrRejected)
				}
				for _, c := range cards {
					if types.IndexOfCard(next.Lists[li].Cards, c.ID) >= 0 && types.IndexOfCard(b.Lists[li].Cards, c.ID) < 0 {
						added = append(added, c.ID)
					}
				}
				return next, nil
			})
			if err != nil {
				return err
			}
			return a.printCreated(cmd, "card", added...)
		},
	}
}

func (a *app) newCardMoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move <file> <from-list> <from> <to-list> <to>",
		Short: "Move a card by position, within a list or to another list",
		Long:  "Positions count from 0. A target past the end appends the card.",
		Args:  cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			fromList, toList := args[1], args[3]
			from, to, err := parsePositions(args[2], args[4])
			if err != nil {
				return err
			}
			b, err := a.mutate(cmd, args[0], func(b types.Board) (types.Board, error) {
				li, err := findList(b, fromList)
				if err != nil {
					return b, err
				}
				if _, err := findList(b, toList); err != nil {
					return b, err
				}
				if from >= len(b.Lists[li].Cards) {
					return b, fmt.Errorf("%w: no card at position %d of %s", ErrCardNotFound, from, fromList)
				}
				return transform.Lists(func(lists []types.List) []types.List {
					return transform.MoveCardAcrossList(lists, fromList, from, toList, to)
				})(b), nil
			})
			if err != nil {
				return err
			}
			return a.printBoard(cmd.OutOrStdout(), b)
		},
	}
}

func (a *app) newCardCopyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "copy <file> <list-id> <card-id>",
		Short: "Duplicate a card at the end of its list",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			listID, cardID := args[1], args[2]
			newID := a.newID()
			_, err := a.mutate(cmd, args[0], func(b types.Board) (types.Board, error) {
				if err := findCard(b, listID, cardID); err != nil {
					return b, err
				}
				next := transform.CopyCardOnBoard(b, listID, cardID, newID)
				if transform.Same(b.Lists, next.Lists) {
					return b, fmt.Errorf("%w: id %s is already in use", ErrRejected, newID)
				}
				return next, nil
			})
			if err != nil {
				return err
			}
			return a.printCreated(cmd, "card", newID)
		},
	}
}

func (a *app) newCardArchiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "archive <file> <list-id> <card-id>",
		Short: "Move a card to the archive",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			listID, cardID := args[1], args[2]
			b, err := a.mutate(cmd, args[0], func(b types.Board) (types.Board, error) {
				if err := findCard(b, listID, cardID); err != nil {
					return b, err
				}
				return transform.ArchiveCard(b, listID, cardID), nil
			})
			if err != nil {
				return err
			}
			return a.printBoard(cmd.OutOrStdout(), b)
		},
	}
}

func (a *app) newCardRestoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore <file> <card-id>",
		Short: "Return an archived card to its list",
		Long:  "Restores an archived card to the end of the list it came from. The list must be active.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cardID := args[1]
			b, err := a.mutate(cmd, args[0], func(b types.Board) (types.Board, error) {
				i := types.IndexOfCard(b.Archive.Cards, cardID)
				if i < 0 {
					return b, fmt.Errorf("%w: %s is not archived", ErrCardNotFound, cardID)
				}
				if _, err := findList(b, b.Archive.Cards[i].ListID); err != nil {
					return b, fmt.Errorf("restore %s: %w", cardID, err)
				}
				return transform.RestoreCard(b, cardID), nil
			})
			if err != nil {
				return err
			}
			return a.printBoard(cmd.OutOrStdout(), b)
		},
	}
}

func (a *app) newCardDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <file> <card-id>",
		Short: "Delete an archived card for good",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cardID := args[1]
			b, err := a.mutate(cmd, args[0], func(b types.Board) (types.Board, error) {
				if types.IndexOfCard(b.Archive.Cards, cardID) < 0 {
					if li, _ := b.FindCard(cardID); li >= 0 {
						return b, fmt.Errorf("%w: archive %s before deleting it", ErrRejected, cardID)
					}
					return b, fmt.Errorf("%w: %s", ErrCardNotFound, cardID)
				}
				return transform.DeleteArchivedCard(b, cardID), nil
			})
			if err != nil {
				return err
			}
			return a.printBoard(cmd.OutOrStdout(), b)
		},
	}
}

func (a *app) newCardDueCmd() *cobra.Command {
	var clearDue bool
	cmd := &cobra.Command{
		Use:   "due <file> <list-id> <card-id> [date]",
		Short: "Set or clear the due date of a card",
		Long:  "Accepts RFC 3339 timestamps or plain dates such as 2025-06-01. Use --clear to remove the date.",
		Args:  cobra.RangeArgs(3, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			listID, cardID := args[1], args[2]
			var due *time.Time
			switch {
			case clearDue && len(args) == 4:
				return userError(fmt.Errorf("--clear takes no date"))
			case !clearDue && len(args) == 3:
				return userError(fmt.Errorf("a date or --clear is required"))
			case !clearDue:
				t, err := types.ParseTimestamp(args[3])
				if err != nil {
					return userError(err)
				}
				due = &t
			}
			b, err := a.mutate(cmd, args[0], func(b types.Board) (types.Board, error) {
				if err := findCard(b, listID, cardID); err != nil {
					return b, err
				}
				return transform.Lists(func(lists []types.List) []types.List {
					return transform.SetDueDate(lists, listID, cardID, due)
				})(b), nil
			})
			if err != nil {
				return err
			}
			return a.printBoard(cmd.OutOrStdout(), b)
		},
	}
	cmd.Flags().BoolVar(&clearDue, "clear", false, "remove the due date")
	return cmd
}

func (a *app) newCardCommentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "comment <file> <list-id> <card-id> <text>",
		Short: "Append a comment to a card",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			listID, cardID := args[1], args[2]
			comment := types.Comment{ID: a.newID(), Comment: args[3]}
			if strings.TrimSpace(comment.Comment) == "" {
				return userError(fmt.Errorf("%w: comment is blank", ErrRejected))
			}
			_, err := a.mutate(cmd, args[0], func(b types.Board) (types.Board, error) {
				if err := findCard(b, listID, cardID); err != nil {
					return b, err
				}
				return transform.Lists(func(lists []types.List) []types.List {
					return transform.AddComment(lists, listID, cardID, comment)
				})(b), nil
			})
			if err != nil {
				return err
			}
			return a.printCreated(cmd, "comment", comment.ID)
		},
	}
}

func (a *app) newCardTaskCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "task <file> <list-id> <card-id> <title>",
		Short: "Append an unchecked checkbox to a card",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			listID, cardID := args[1], args[2]
			cb := types.Checkbox{ID: a.newID(), Title: args[3]}
			if strings.TrimSpace(cb.Title) == "" {
				return userError(fmt.Errorf("%w: checkbox title is blank", ErrRejected))
			}
			_, err := a.mutate(cmd, args[0], func(b types.Board) (types.Board, error) {
				if err := findCard(b, listID, cardID); err != nil {
					return b, err
				}
				return transform.Lists(func(lists []types.List) []types.List {
					return transform.AddCheckbox(lists, listID, cardID, cb)
				})(b), nil
			})
			if err != nil {
				return err
			}
			return a.printCreated(cmd, "checkbox", cb.ID)
		},
	}
}

// findCard checks that the active list listID holds cardID.
func findCard(b types.Board, listID, cardID string) error {
	li, err := findList(b, listID)
	if err != nil {
		return err
	}
	if types.IndexOfCard(b.Lists[li].Cards, cardID) < 0 {
		return fmt.Errorf("%w: %s in list %s", ErrCardNotFound, cardID, listID)
	}
	return nil
}
