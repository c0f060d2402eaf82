package overrides

import (
	"github.com/spf13/cobra"
)

var RootCmd = &cobra.Command{
	Use:   "overrides",
	Short: "The 'overrides' subcommand manages the manual decisions kept in the override store.",
}
