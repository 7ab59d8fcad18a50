package commands

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/wallet/internal/buildinfo"
)

// globalOptions holds the persistent flags shared by every command.
type globalOptions struct {
	dir        string
	configPath string
	file       string
	debug      bool
}

// NewRootCommand creates the root CLI command with all subcommands registered.
// Run without a subcommand it starts the interactive menu.
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "wallet",
		Short:   "Personal income and expense ledger",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		Args:    cobra.NoArgs,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(cmd.ErrOrStderr(), opts.debug)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMenu(cmd, opts)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&opts.dir, "dir", ".", "project directory")
	pf.StringVar(&opts.configPath, "config", "", "config file (default <dir>/wallet.yaml)")
	pf.StringVar(&opts.file, "file", "", "ledger file, overrides ledger.file")
	pf.BoolVar(&opts.debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(
		newMenuCommand(opts),
		newInitCommand(opts),
		newAddCommand(opts),
		newEditCommand(opts),
		newSearchCommand(opts),
		newBalanceCommand(opts),
		newListCommand(opts),
		newCheckCommand(opts),
		newExportCommand(opts),
		newImportCommand(opts),
		newLogCommand(opts),
	)

	return rootCmd
}

// setupLogging points the global logger at w. Only warnings and errors are
// shown unless debug is set.
func setupLogging(w io.Writer, debug bool) {
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).With().Timestamp().Logger()
}
