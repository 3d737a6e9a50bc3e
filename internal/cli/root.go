// Package cli implements the kanban command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/kanban/internal/logging"
	"github.com/mesh-intelligence/kanban/internal/paths"
	"github.com/mesh-intelligence/kanban/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	logLevel  string
	jsonMode  bool
}

// app is the state shared by the commands of one root command.
type app struct {
	flags     rootFlags
	cfg       types.Config
	configDir string
	logger    *log.Logger
	newID     func() string
}

// exitError carries the process exit code of a failed command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func userError(err error) error { return &exitError{code: exitUserError, err: err} }
func sysError(err error) error  { return &exitError{code: exitSysError, err: err} }

// NewRootCmd creates the top-level "kanban" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&app{newID: types.NewID})
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "kanban",
		Short: "Edit kanban board documents",
		Long: "Kanban reads and edits boards stored as JSON documents: ordered lists\n" +
			"of cards with labels, checklists and comments.",
		Version:           Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&a.flags.dataDir, "data-dir", "", "data directory for the card index (default: platform data dir)")
	root.PersistentFlags().StringVar(&a.flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	root.PersistentFlags().BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(
		newVersionCmd(),
		a.newInitCmd(),
		a.newNewCmd(),
		a.newShowCmd(),
		a.newCheckCmd(),
		a.newListCmd(),
		a.newCardCmd(),
		a.newLabelCmd(),
		a.newServeCmd(),
		a.newIndexCmd(),
		a.newDueCmd(),
		a.newFindCmd(),
	)
	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	os.Exit(exitCode(root.Execute(), root.ErrOrStderr()))
}

// exitCode reports err on stderr and maps it to a process exit code.
// Errors without an explicit code come from argument parsing.
func exitCode(err error, stderr io.Writer) int {
	if err == nil {
		return exitSuccess
	}
	fmt.Fprintln(stderr, "kanban:", err)
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitUserError
}

// setup loads configuration and builds the logger before any subcommand
// runs.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "version" {
		return nil
	}
	if err := loadDotEnv(); err != nil {
		return sysError(err)
	}

	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve config dir: %w", err))
	}
	v, err := loadConfig(configDir)
	if err != nil {
		return sysError(err)
	}

	cfg := types.Config{
		DataDir:   v.GetString(cfgKeyDataDir),
		LogLevel:  v.GetString(cfgKeyLogLevel),
		Extension: v.GetString(cfgKeyExtension),
	}
	if a.flags.logLevel != "" {
		cfg.LogLevel = a.flags.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return userError(fmt.Errorf("config: %w", err))
	}
	cfg = cfg.WithDefaults()

	cfg.DataDir, err = paths.ResolveDataDir(a.flags.dataDir, cfg.DataDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve data dir: %w", err))
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return userError(err)
	}
	opts := logging.DefaultOptions()
	opts.Level = level
	a.logger = logging.New(cmd.ErrOrStderr(), opts)
	a.cfg = cfg
	a.configDir = configDir
	a.logger.Debug("configured", "config_dir", configDir, "data_dir", cfg.DataDir, "extension", cfg.Extension)
	return nil
}
