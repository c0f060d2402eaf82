package review

import (
	"fmt"
	"os"

	"github.com/Erokhin-Danila/fstec-threat-mapping/cmd/fstec-mapper/globals"
	"github.com/Erokhin-Danila/fstec-threat-mapping/lib/util/serviceutil"
	"github.com/Erokhin-Danila/fstec-threat-mapping/services/mapper"

	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(applyCmd)
}

var applyCmd = &cobra.Command{
	Use:   "apply <file path>",
	Short: "Applies the actions in an edit action file to the override store.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		f, err := os.Open(args[0])
		if err != nil {
			serviceutil.Fatal("failed to open action file", err)
		}
		file, err := newActionFile(f)
		f.Close()
		if err != nil {
			serviceutil.Fatal("failed to parse action file", err)
		}

		store, err := globals.Get(cmd.Context()).Store(cmd.Context())
		if err != nil {
			serviceutil.Fatal("failed to open override store", err)
		}

		failed := 0
		for i, line := range file.actions {
			if line.directive == actionKeep {
				continue
			}
			fmt.Printf("%s (#%d)\n", line.String(), i+1)

			err = nil
			switch line.directive {
			case actionAdd:
				err = store.Add(cmd.Context(), mapper.Override{OldID: line.oldID, NewID: line.newID})
			case actionDelete:
				_, err = store.Delete(cmd.Context(), line.oldID)
			}
			if err != nil {
				failed++
				fmt.Printf("[ERROR] %s (#%d): %v\n", line.directive, i+1, err)
			}
		}

		if failed > 0 {
			serviceutil.Fatal("some actions failed", fmt.Errorf("%d of %d actions failed", failed, len(file.actions)))
		}
		fmt.Println("complete.")
	},
}
