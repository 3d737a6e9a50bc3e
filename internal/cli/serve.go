package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/kanban/internal/docsync"
)

func (a *app) newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve <file>",
		Short: "Serve a board to a session over stdin and stdout",
		Long: "Acts as the document authority for one board. Messages are newline\n" +
			"delimited JSON: the session sends load and edit, the authority answers\n" +
			"load with update and writes each new board state back to the file.\n" +
			"Notifications and open requests are logged to stderr.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.openDoc(args[0])
			if err != nil {
				return err
			}
			logger := a.logger.With("doc", doc.Name())
			authority := docsync.NewAuthority(doc,
				docsync.WithLogger(logger),
				docsync.WithNotifier(docsync.NotifierFunc(func(msg string) {
					logger.Info(msg)
				})),
				docsync.WithOpener(docsync.OpenerFunc(func(url string) error {
					logger.Info("open requested", "url", url)
					return nil
				})),
			)
			conn := docsync.NewStreamConn(cmd.InOrStdin(), cmd.OutOrStdout())
			defer conn.Close()

			logger.Debug("serving", "path", doc.Path())
			if err := authority.Serve(cmd.Context(), conn); err != nil {
				return sysError(fmt.Errorf("serve %s: %w", doc.Name(), err))
			}
			stats := authority.Stats()
			logger.Debug("session ended", "loads", stats.Loads, "writes", stats.Writes, "write_errors", stats.WriteErrors)
			return nil
		},
	}
}
