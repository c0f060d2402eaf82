package review

import (
	"fmt"
	"os"

	"github.com/Erokhin-Danila/fstec-threat-mapping/cmd/fstec-mapper/globals"
	"github.com/Erokhin-Danila/fstec-threat-mapping/cmd/fstec-mapper/pipeline"
	"github.com/Erokhin-Danila/fstec-threat-mapping/cmd/fstec-mapper/utils"
	"github.com/Erokhin-Danila/fstec-threat-mapping/lib/util/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

const suggestionsFile = "review_suggestions.txt"

func init() {
	pipeline.RegisterEngineFlags(suggestCmd)
	suggestCmd.Flags().Bool("write", false, fmt.Sprintf("Write the suggestions to an edit file by the name of '%s'", suggestionsFile))

	RootCmd.AddCommand(suggestCmd)
}

var suggestCmd = &cobra.Command{
	Use:   "suggest --old <file> --new <file> [--write]",
	Short: "Lists the entries that need manual review with their best candidate.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		write, err := cmd.Flags().GetBool("write")
		if err != nil {
			serviceutil.Fatal("invalid flag", err)
		}

		value := globals.Get(cmd.Context())
		params, err := pipeline.ParamsFromFlags(cmd)
		if err != nil {
			serviceutil.Fatal("invalid flag", err)
		}
		engine, err := pipeline.EngineFromFlags(cmd, value.Config.Config, value.Rules, value.Tel)
		if err != nil {
			serviceutil.Fatal("failed to create engine", err)
		}

		res, err := pipeline.Pipeline{Engine: engine, Tel: value.Tel}.Run(cmd.Context(), params)
		if err != nil {
			serviceutil.Fatal("mapping failed", err)
		}
		file := suggestions(params.OldPath, params.NewPath, res.Output.Rows)

		if write {
			_, err = os.Stat(suggestionsFile)
			if err == nil {
				serviceutil.Fatal(
					"refusing to overwrite",
					fmt.Errorf("a file called '%s' already exists, rather than overwrite it, I am aborting now", suggestionsFile),
				)
			}
			err = os.WriteFile(suggestionsFile, []byte(file.String()), 0644)
			if err != nil {
				serviceutil.Fatal("failed to write suggestions", err)
			}
		}

		t := utils.NewTable()
		t.AppendHeader(table.Row{"Old id", "Suggested", "Score and candidates"})
		for _, line := range file.actions {
			t.AppendRow(table.Row{line.oldID, line.newID, line.comment})
		}
		t.Render()
	},
}
