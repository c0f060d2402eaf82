package review

import (
	"github.com/spf13/cobra"
)

var RootCmd = &cobra.Command{
	Use:   "review",
	Short: "The 'review' subcommand lets you settle many manual_review entries at once in a git rebase-esque style.",
}
