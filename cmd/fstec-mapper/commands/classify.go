package commands

import (
	"strings"

	"github.com/Erokhin-Danila/fstec-threat-mapping/cmd/fstec-mapper/globals"
	"github.com/Erokhin-Danila/fstec-threat-mapping/cmd/fstec-mapper/utils"
	"github.com/Erokhin-Danila/fstec-threat-mapping/lib/rules"
	"github.com/Erokhin-Danila/fstec-threat-mapping/lib/textutil"
	"github.com/Erokhin-Danila/fstec-threat-mapping/lib/util/serviceutil"
	"github.com/Erokhin-Danila/fstec-threat-mapping/services/mapper"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	classifyCmd.Flags().String("rules", "", "Path to a rule table (json5 or yaml), replaces the configured one.")
	rootCmd.AddCommand(classifyCmd)
}

var classifyCmd = &cobra.Command{
	Use:   "classify <text>...",
	Short: "Prints the categories and keywords the engine sees in a text.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ruleTable := globals.Get(cmd.Context()).Rules
		if cmd.Flags().Changed("rules") {
			path, err := cmd.Flags().GetString("rules")
			if err != nil {
				serviceutil.Fatal("invalid flag", err)
			}
			ruleTable, err = rules.Load(path)
			if err != nil {
				serviceutil.Fatal("failed to load rules", err)
			}
		}

		text := textutil.Normalize(strings.Join(args, " "))
		keywords := mapper.ExtractKeywords(text)

		t := utils.NewTable()
		t.AppendHeader(table.Row{"Text", "Categories", "Keywords"})
		t.AppendRow(table.Row{
			utils.Truncate(text, 60),
			ruleTable.Classify(text).String(),
			strings.Join(keywords.Sorted(), ", "),
		})
		t.Render()
	},
}
