package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/wallet/internal/activity"
)

func newLogCommand(opts *globalOptions) *cobra.Command {
	var limit int
	var action string

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show the history of ledger changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(opts)
			if err != nil {
				return err
			}
			entries, err := activity.Read(resolve(p.dir, p.cfg.Activity.File))
			if err != nil {
				return err
			}

			if action != "" {
				var kept []activity.Entry
				for _, e := range entries {
					if strings.EqualFold(e.Action, action) {
						kept = append(kept, e)
					}
				}
				entries = kept
			}
			if limit > 0 && len(entries) > limit {
				entries = entries[len(entries)-limit:]
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No activity recorded.")
				return nil
			}
			for _, e := range entries {
				line := fmt.Sprintf("%s %-4s %s %s %d %q",
					e.Timestamp.Format(time.RFC3339), e.Action, e.Date, e.Category, e.Amount, e.Description)
				if e.Details != "" {
					line += " (" + e.Details + ")"
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "show only the last N entries")
	cmd.Flags().StringVar(&action, "action", "", "show only add or edit entries")

	return cmd
}
