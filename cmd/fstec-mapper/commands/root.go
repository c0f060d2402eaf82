package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/Erokhin-Danila/fstec-threat-mapping/cmd/fstec-mapper/commands/overrides"
	"github.com/Erokhin-Danila/fstec-threat-mapping/cmd/fstec-mapper/commands/review"
	"github.com/Erokhin-Danila/fstec-threat-mapping/cmd/fstec-mapper/globals"
	"github.com/Erokhin-Danila/fstec-threat-mapping/lib/telemetry"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.PersistentFlags().String("config", "", fmt.Sprintf("Path to the config file, by default %s is searched for upwards from the working directory.", globals.ConfigName))
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log debug information.")

	rootCmd.AddCommand(overrides.RootCmd)
	rootCmd.AddCommand(review.RootCmd)
}

var rootCmd = &cobra.Command{
	Use:   "fstec-mapper",
	Short: "fstec-mapper maps the identifiers of the old FSTEC threat catalog onto the new one.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, err := cmd.Flags().GetBool("verbose")
		if err != nil {
			return err
		}
		telemetry.InitSlog(os.Stderr, verbose)

		configPath, err := cmd.Flags().GetString("config")
		if err != nil {
			return err
		}
		value, err := globals.Load(cmd.Context(), configPath)
		if err != nil {
			return err
		}
		if value.ConfigPath != "" {
			value.Tel.ReportDebug("using config", value.ConfigPath)
		}

		cmd.SetContext(globals.Set(cmd.Context(), value))
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return globals.Get(cmd.Context()).Close(context.WithoutCancel(cmd.Context()))
	},
	SilenceUsage: true,
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
