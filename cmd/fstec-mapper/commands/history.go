package commands

import (
	"fmt"

	"github.com/Erokhin-Danila/fstec-threat-mapping/cmd/fstec-mapper/globals"
	"github.com/Erokhin-Danila/fstec-threat-mapping/cmd/fstec-mapper/utils"
	"github.com/Erokhin-Danila/fstec-threat-mapping/lib/timezone"
	"github.com/Erokhin-Danila/fstec-threat-mapping/lib/util/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	historyCmd.Flags().Int("limit", 20, "The maximum number of runs to show.")
	rootCmd.AddCommand(historyCmd)
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Lists the runs recorded with 'run --use-store', newest first.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		limit, err := cmd.Flags().GetInt("limit")
		if err != nil {
			serviceutil.Fatal("invalid flag", err)
		}

		store, err := globals.Get(cmd.Context()).Store(cmd.Context())
		if err != nil {
			serviceutil.Fatal("failed to open override store", err)
		}
		runs, err := store.ListRuns(cmd.Context(), limit)
		if err != nil {
			serviceutil.Fatal("failed to list runs", err)
		}

		t := utils.NewTable()
		t.AppendHeader(table.Row{"Started", "Run", "Threshold", "Top K", "Old", "New", "Auto", "Review", "No match"})
		for _, r := range runs {
			t.AppendRow(table.Row{
				timezone.Format(r.StartedAt),
				r.ID,
				fmt.Sprintf("%.1f", r.Threshold),
				r.TopK,
				r.OldCount,
				r.NewCount,
				r.Auto,
				r.ManualReview,
				r.NoMatch,
			})
		}
		t.Render()
	},
}
