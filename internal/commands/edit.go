package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/wallet/internal/session"
)

func newEditCommand(opts *globalOptions) *cobra.Command {
	var target, replacement recordFlags

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Replace the first record matching all four fields",
		Long: `Replace the first record whose date, category, amount and description
all equal the given values. The ledger file is rewritten.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(opts)
			if err != nil {
				return err
			}
			old, err := target.transaction(p.loc, false)
			if err != nil {
				return err
			}
			tx, err := replacement.transaction(p.loc, true)
			if err != nil {
				return fmt.Errorf("new record: %w", err)
			}
			if err := p.svc.Edit(old, tx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Updated", session.Line(p.loc, tx))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&target.date, "date", "", "date of the record to edit (required)")
	f.StringVar(&target.category, "category", "", "category of the record to edit (required)")
	f.Int64Var(&target.amount, "amount", 0, "amount of the record to edit (required)")
	f.StringVar(&target.description, "description", "", "description of the record to edit")
	f.StringVar(&replacement.date, "new-date", "", "new date (required)")
	f.StringVar(&replacement.category, "new-category", "", "new category (required)")
	f.Int64Var(&replacement.amount, "new-amount", 0, "new amount (required)")
	f.StringVar(&replacement.description, "new-description", "", "new description")
	for _, name := range []string{"date", "category", "amount", "new-date", "new-category", "new-amount"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}
