package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/wallet/internal/ledger"
)

func newCheckCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Parse the ledger and report rule violations",
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
			verrs := ledger.Validate(records)
			for _, ve := range verrs {
				fmt.Fprintln(out, ve.Error())
			}
			if len(verrs) > 0 {
				return fmt.Errorf("%s: %d violation(s)", p.store.Path(), len(verrs))
			}
			fmt.Fprintf(out, "%s: %d records OK\n", p.store.Path(), len(records))
			return nil
		},
	}
}
