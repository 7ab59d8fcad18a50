package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/wallet/internal/session"
)

func newAddCommand(opts *globalOptions) *cobra.Command {
	var rec recordFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Append a record to the ledger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(opts)
			if err != nil {
				return err
			}
			tx, err := rec.transaction(p.loc, true)
			if err != nil {
				return err
			}
			if err := p.svc.Add(tx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Added", session.Line(p.loc, tx))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&rec.date, "date", "", "record date, DD.MM.YYYY (required)")
	f.StringVar(&rec.category, "category", "", "Income or Expense (required)")
	f.Int64Var(&rec.amount, "amount", 0, "whole amount (required)")
	f.StringVar(&rec.description, "description", "", "free text")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}
