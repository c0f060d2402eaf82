package overrides

import (
	"github.com/Erokhin-Danila/fstec-threat-mapping/cmd/fstec-mapper/globals"
	"github.com/Erokhin-Danila/fstec-threat-mapping/cmd/fstec-mapper/utils"
	"github.com/Erokhin-Danila/fstec-threat-mapping/lib/util/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Prints every manual decision in the override store.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		store, err := globals.Get(cmd.Context()).Store(cmd.Context())
		if err != nil {
			serviceutil.Fatal("failed to open override store", err)
		}
		list, err := store.List(cmd.Context())
		if err != nil {
			serviceutil.Fatal("failed to list overrides", err)
		}

		t := utils.NewTable()
		t.AppendHeader(table.Row{"Old id", "New id"})
		for _, o := range list {
			t.AppendRow(table.Row{o.OldID, o.NewID})
		}
		t.Render()
	},
}
