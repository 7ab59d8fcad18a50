package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/wallet/internal/ledger"
	"github.com/cleared-dev/wallet/internal/session"
)

func newSearchCommand(opts *globalOptions) *cobra.Command {
	var by string

	cmd := &cobra.Command{
		Use:   "search <term>",
		Short: "List records matching a category, date or amount",
		Long: `List records matching term.

  --by category  case-insensitive substring of the category name
  --by date      exact DD.MM.YYYY date
  --by amount    exact amount`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(opts)
			if err != nil {
				return err
			}
			results, err := p.svc.Search(args[0], ledger.ParseSearchKind(by, p.loc))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(results) == 0 {
				fmt.Fprintln(out, "No records found.")
				return nil
			}
			for _, tx := range results {
				fmt.Fprintln(out, session.Line(p.loc, tx))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&by, "by", string(ledger.KindCategory), "field to match: category, date or amount")

	return cmd
}
