package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/wallet/internal/ledger"
	"github.com/cleared-dev/wallet/internal/session"
)

func newListCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print every record followed by the totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(opts)
			if err != nil {
				return err
			}
			records, err := p.svc.Load()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, tx := range records {
				fmt.Fprintln(out, session.Line(p.loc, tx))
			}
			if len(records) > 0 {
				fmt.Fprintln(out)
			}
			session.PrintTotals(out, time.Now(), ledger.ComputeTotals(records))
			return nil
		},
	}
}
