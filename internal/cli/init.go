package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func (a *app) newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the configuration file and data directory",
		Long: "Writes config.yaml with default values to the configuration directory\n" +
			"unless it already exists, and creates the data directory.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := os.MkdirAll(a.cfg.DataDir, 0o755); err != nil {
				return sysError(fmt.Errorf("create data dir: %w", err))
			}
			configPath := filepath.Join(a.configDir, configFileExt)
			if a.flags.jsonMode {
				return a.printJSON(cmd.OutOrStdout(), map[string]string{
					"config":   configPath,
					"data_dir": a.cfg.DataDir,
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Config: %s\nData:   %s\n", configPath, a.cfg.DataDir)
			return nil
		},
	}
}
