package commands

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/wallet/internal/export"
)

func newExportCommand(opts *globalOptions) *cobra.Command {
	var format, output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the ledger as CSV or XLSX",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			p, err := openProject(opts)
			if err != nil {
				return err
			}
			records, err := p.svc.Load()
			if err != nil {
				return err
			}

			if output == "" || output == "-" {
				return export.Write(cmd.OutOrStdout(), f, p.loc, records)
			}

			file, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("creating %s: %w", output, err)
			}
			if err := export.Write(file, f, p.loc, records); err != nil {
				file.Close()
				return err
			}
			if err := file.Close(); err != nil {
				return fmt.Errorf("closing %s: %w", output, err)
			}
			log.Debug().Str("path", output).Str("format", string(f)).Int("records", len(records)).Msg("exported")
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d records to %s\n", len(records), output)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", string(export.FormatCSV), "csv or xlsx")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")

	return cmd
}
