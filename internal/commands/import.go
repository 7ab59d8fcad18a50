package commands

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/wallet/internal/importer"
	"github.com/cleared-dev/wallet/internal/model"
)

func newImportCommand(opts *globalOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "import [file.csv ...]",
		Short: "Append transactions from bank CSV exports",
		Long: `Append transactions from bank CSV exports. Money in becomes Income,
money out becomes Expense, amounts are rounded to whole units. Rows already in
the ledger are skipped.

Without arguments every CSV in <dir>/import/ is imported and then moved to
<dir>/import/processed/.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := importer.DefaultRegistry().Get(format)
			if parser == nil {
				return fmt.Errorf("unknown import format %q", format)
			}
			p, err := openProject(opts)
			if err != nil {
				return err
			}

			scanned := len(args) == 0
			paths := args
			if scanned {
				files, err := importer.Scan(p.dir)
				if err != nil {
					return err
				}
				for _, fi := range files {
					paths = append(paths, fi.Path)
				}
				if len(paths) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "Nothing to import.")
					return nil
				}
			}

			existing, err := p.svc.Load()
			if err != nil {
				return err
			}

			for _, path := range paths {
				added, total, err := importFile(p, parser, path, existing)
				if err != nil {
					return err
				}
				existing = append(existing, added...)
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d of %d rows from %s\n", len(added), total, filepath.Base(path))

				if scanned {
					if err := importer.MarkProcessed(p.dir, filepath.Base(path)); err != nil {
						return err
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "chase", "bank CSV format")

	return cmd
}

// importFile appends the rows of path that are not yet in existing. It returns
// the appended records and the number of rows read.
func importFile(p *project, parser importer.Parser, path string, existing []model.Transaction) ([]model.Transaction, int, error) {
	rows, err := importer.ParseFile(path, parser)
	if err != nil {
		return nil, 0, err
	}

	fresh := importer.Fresh(existing, importer.ConvertAll(rows))
	for i, tx := range fresh {
		if err := p.svc.Add(tx); err != nil {
			return fresh[:i], len(rows), fmt.Errorf("importing %s: %w", filepath.Base(path), err)
		}
	}
	log.Debug().Str("file", path).Int("rows", len(rows)).Int("added", len(fresh)).Msg("import finished")
	return fresh, len(rows), nil
}
