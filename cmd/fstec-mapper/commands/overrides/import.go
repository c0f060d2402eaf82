package overrides

import (
	"fmt"

	"github.com/Erokhin-Danila/fstec-threat-mapping/cmd/fstec-mapper/globals"
	"github.com/Erokhin-Danila/fstec-threat-mapping/lib/util/serviceutil"
	"github.com/Erokhin-Danila/fstec-threat-mapping/services/overrides"

	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(importCmd)
}

var importCmd = &cobra.Command{
	Use:   "import <file path>",
	Short: "Adds the decisions of a csv or xlsx file with old_id and new_id columns to the override store.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		list, err := overrides.ReadFile(args[0])
		if err != nil {
			serviceutil.Fatal("failed to read overrides", err)
		}

		store, err := globals.Get(cmd.Context()).Store(cmd.Context())
		if err != nil {
			serviceutil.Fatal("failed to open override store", err)
		}
		err = store.Import(cmd.Context(), list)
		if err != nil {
			serviceutil.Fatal("failed to import overrides", err)
		}
		fmt.Printf("Imported %d overrides.\n", len(list))
	},
}
