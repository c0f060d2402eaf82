package overrides

import (
	"fmt"

	"github.com/Erokhin-Danila/fstec-threat-mapping/cmd/fstec-mapper/globals"
	"github.com/Erokhin-Danila/fstec-threat-mapping/lib/util/serviceutil"

	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(delCmd)
}

var delCmd = &cobra.Command{
	Use:   "del <old id>",
	Short: "Deletes the manual decision for an old id.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		store, err := globals.Get(cmd.Context()).Store(cmd.Context())
		if err != nil {
			serviceutil.Fatal("failed to open override store", err)
		}
		existed, err := store.Delete(cmd.Context(), args[0])
		if err != nil {
			serviceutil.Fatal("failed to delete override", err)
		}
		if !existed {
			fmt.Printf("There was no override for %s.\n", args[0])
		}
	},
}
