package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/kanban/internal/codec"
	"github.com/mesh-intelligence/kanban/internal/document"
	"github.com/mesh-intelligence/kanban/internal/paths"
	"github.com/mesh-intelligence/kanban/pkg/types"
)

func (a *app) newNewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new <file>",
		Short: "Create a board with the default lists",
		Long: "Creates a board document with the lists Backlog, To Do, Doing and Done.\n" +
			"An existing file is never overwritten.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := paths.ResolveDocument(args[0], a.cfg.Extension)
			if err != nil {
				return sysError(err)
			}
			b := types.NewBoard(a.newID)
			data, err := codec.Encode(b)
			if err != nil {
				return sysError(err)
			}
			doc, err := document.CreateFile(path, data)
			if errors.Is(err, document.ErrExists) {
				return userError(fmt.Errorf("%s: %w", path, err))
			}
			if err != nil {
				return sysError(err)
			}
			a.logger.Info("created board", "path", doc.Path())

			if a.flags.jsonMode {
				return a.printBoard(cmd.OutOrStdout(), b)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s (%s)\n", doc.Path(), document.Title(doc.Name()))
			return nil
		},
	}
}
