package commands

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/wallet/internal/config"
	"github.com/cleared-dev/wallet/internal/gitops"
	"github.com/cleared-dev/wallet/internal/locale"
	"github.com/cleared-dev/wallet/internal/store"
)

func newInitCommand(opts *globalOptions) *cobra.Command {
	var localeName string
	var useGit bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new wallet project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := opts.dir
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(cmd.OutOrStdout(), absDir, localeName, useGit)
		},
	}

	cmd.Flags().StringVar(&localeName, "locale", locale.English.Name, "ledger labels: en or ru")
	cmd.Flags().BoolVar(&useGit, "git", false, "create a git repository and commit every change")

	return cmd
}

func runInit(out io.Writer, dir, localeName string, useGit bool) error {
	loc, err := locale.Lookup(localeName)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return fmt.Errorf("%s already exists", cfgPath)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking config: %w", err)
	}

	// Write wallet.yaml.
	cfg := config.Default()
	cfg.Ledger.Locale = loc.Name
	cfg.Git.AutoCommit = useGit
	if err := config.Save(cfgPath, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Create the empty ledger.
	st := store.New(resolve(dir, cfg.Ledger.File), loc, store.Options{})
	if err := st.Create(); err != nil {
		return err
	}

	if !useGit {
		fmt.Fprintf(out, "Initialized wallet at %s\n", dir)
		return nil
	}

	// The activity log stays out of history.
	gitignore := cfg.Activity.File + "\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}

	if err := gitops.Init(dir); err != nil {
		return fmt.Errorf("git init: %w", err)
	}

	hash, err := gitops.CommitAll(dir, "init: Initialize wallet", cfg.Git.AuthorName, cfg.Git.AuthorEmail)
	if err != nil {
		return fmt.Errorf("initial commit: %w", err)
	}

	fmt.Fprintf(out, "Initialized wallet at %s (%s)\n", dir, hash)
	return nil
}
