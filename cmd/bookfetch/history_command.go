package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"bookfetch/internal/ledger"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent download runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := ledger.Open(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.RecentRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No download history")
				return nil
			}

			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				finished := "-"
				if !run.FinishedAt.IsZero() {
					finished = run.FinishedAt.Local().Format(time.DateTime)
				}
				rows = append(rows, []string{
					run.StartedAt.Local().Format(time.DateTime),
					finished,
					run.Catalog,
					run.Format,
					fmt.Sprintf("%d", run.Downloaded),
					fmt.Sprintf("%d", run.Skipped),
					fmt.Sprintf("%d", run.Failed),
					humanBytes(run.TotalBytes),
				})
			}
			fmt.Fprint(out, renderTable(
				[]string{"Started", "Finished", "Catalog", "Format", "Downloaded", "Skipped", "Failed", "Size"},
				rows, 4, 5, 6, 7))
			fmt.Fprintln(out)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to show")
	return cmd
}
