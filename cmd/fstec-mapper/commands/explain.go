package commands

import (
	"fmt"

	"github.com/Erokhin-Danila/fstec-threat-mapping/cmd/fstec-mapper/globals"
	"github.com/Erokhin-Danila/fstec-threat-mapping/cmd/fstec-mapper/utils"
	"github.com/Erokhin-Danila/fstec-threat-mapping/lib/catalog"
	"github.com/Erokhin-Danila/fstec-threat-mapping/lib/util/serviceutil"
	"github.com/Erokhin-Danila/fstec-threat-mapping/services/mapper"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	explainCmd.Flags().String("old", "", "Path to the old catalog (csv or xlsx).")
	explainCmd.Flags().String("new", "", "Path to the new catalog (csv or xlsx).")
	explainCmd.MarkFlagRequired("old")
	explainCmd.MarkFlagRequired("new")

	rootCmd.AddCommand(explainCmd)
}

func findEntry(entries []mapper.Entry, id string) (mapper.Entry, error) {
	for _, e := range entries {
		if e.ID == id {
			return e, nil
		}
	}
	if suggestion, ok := catalog.SuggestID(entries, id); ok {
		return mapper.Entry{}, fmt.Errorf("no entry with id %q, did you mean %q?", id, suggestion)
	}
	return mapper.Entry{}, fmt.Errorf("no entry with id %q", id)
}

var explainCmd = &cobra.Command{
	Use:   "explain --old <file> --new <file> <old id> <new id>",
	Short: "Prints every signal that makes up the score of one pair of entries.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		value := globals.Get(cmd.Context())
		loader := catalog.NewLoader(value.Tel)

		oldPath, _ := cmd.Flags().GetString("old")
		newPath, _ := cmd.Flags().GetString("new")

		olds, err := loader.Load(oldPath, catalog.Old)
		if err != nil {
			serviceutil.Fatal("failed to load old catalog", err)
		}
		news, err := loader.Load(newPath, catalog.New)
		if err != nil {
			serviceutil.Fatal("failed to load new catalog", err)
		}

		old, err := findEntry(olds, args[0])
		if err != nil {
			serviceutil.Fatal("old catalog", err)
		}
		target, err := findEntry(news, args[1])
		if err != nil {
			serviceutil.Fatal("new catalog", err)
		}

		scorer := mapper.NewScorer(value.Rules, value.Config.Weights)
		b := scorer.Explain(old, target)

		t := utils.NewTable()
		t.AppendHeader(table.Row{"Signal", "Value"})
		t.AppendRows([]table.Row{
			{"old categories", value.Rules.Classify(old.Text()).String()},
			{"new prefix", mapper.TwoLevelPrefix(target.ID)},
			{"name similarity", fmt.Sprintf("%.1f", b.Name)},
			{"description similarity", fmt.Sprintf("%.1f", b.Description)},
			{"keyword overlap", fmt.Sprintf("%.1f", b.Keywords)},
			{"weighted base", fmt.Sprintf("%.2f", b.Base)},
			{"category heuristic", fmt.Sprintf("%.1f", b.Heuristic)},
		})
		t.AppendFooter(table.Row{"score", fmt.Sprintf("%.2f", b.Final)})
		t.Render()
	},
}
