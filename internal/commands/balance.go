package commands

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/wallet/internal/ledger"
	"github.com/cleared-dev/wallet/internal/session"
)

func newBalanceCommand(opts *globalOptions) *cobra.Command {
	var asOf string

	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Show income, expenses and balance",
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
			if asOf != "" {
				day, err := parseDate(asOf)
				if err != nil {
					return err
				}
				records = ledger.Until(records, day)
			}
			session.PrintTotals(cmd.OutOrStdout(), time.Now(), ledger.ComputeTotals(records))
			return nil
		},
	}

	cmd.Flags().StringVar(&asOf, "as-of", "", "ignore records dated after this day (DD.MM.YYYY)")

	return cmd
}
