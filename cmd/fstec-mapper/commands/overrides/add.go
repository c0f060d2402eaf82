package overrides

import (
	"github.com/Erokhin-Danila/fstec-threat-mapping/cmd/fstec-mapper/globals"
	"github.com/Erokhin-Danila/fstec-threat-mapping/lib/util/serviceutil"
	"github.com/Erokhin-Danila/fstec-threat-mapping/services/mapper"

	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(addCmd)
}

var addCmd = &cobra.Command{
	Use:   "add <old id> <new id>",
	Short: "Maps an old id to a new id regardless of what the engine decides.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		store, err := globals.Get(cmd.Context()).Store(cmd.Context())
		if err != nil {
			serviceutil.Fatal("failed to open override store", err)
		}
		err = store.Add(cmd.Context(), mapper.Override{OldID: args[0], NewID: args[1]})
		if err != nil {
			serviceutil.Fatal("failed to add override", err)
		}
	},
}
