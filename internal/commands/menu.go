package commands

import (
	"github.com/spf13/cobra"

	"github.com/cleared-dev/wallet/internal/session"
)

func newMenuCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Add, edit or search records interactively, then show totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMenu(cmd, opts)
		},
	}
}

func runMenu(cmd *cobra.Command, opts *globalOptions) error {
	p, err := openProject(opts)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	return session.New(p.svc, session.NewLinePrompter(cmd.InOrStdin(), out), out).Run()
}
