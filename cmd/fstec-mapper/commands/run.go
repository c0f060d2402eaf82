package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/Erokhin-Danila/fstec-threat-mapping/cmd/fstec-mapper/globals"
	"github.com/Erokhin-Danila/fstec-threat-mapping/cmd/fstec-mapper/pipeline"
	"github.com/Erokhin-Danila/fstec-threat-mapping/lib/report"
	"github.com/Erokhin-Danila/fstec-threat-mapping/lib/telemetry"
	"github.com/Erokhin-Danila/fstec-threat-mapping/lib/util/serviceutil"
	"github.com/Erokhin-Danila/fstec-threat-mapping/services/overrides"

	"github.com/spf13/cobra"
)

func init() {
	pipeline.RegisterEngineFlags(runCmd)
	runCmd.Flags().String("out", "enhanced_mapping_result.xlsx", "Where to write the per entry result (xlsx or csv).")
	runCmd.Flags().String("mapping-out", "", "Where to write the final old_id -> new_id table (xlsx or csv).")
	runCmd.Flags().String("overrides", "", "A csv or xlsx file with old_id and new_id columns of manual decisions.")
	runCmd.Flags().Bool("use-store", false, "Apply the decisions in the override store and record the run in its history.")

	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run --old <file> --new <file>",
	Short: "Maps every entry of the old catalog onto the new catalog.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		value := globals.Get(ctx)

		out, err := cmd.Flags().GetString("out")
		if err != nil {
			serviceutil.Fatal("invalid flag", err)
		}
		mappingOut, err := cmd.Flags().GetString("mapping-out")
		if err != nil {
			serviceutil.Fatal("invalid flag", err)
		}
		useStore, err := cmd.Flags().GetBool("use-store")
		if err != nil {
			serviceutil.Fatal("invalid flag", err)
		}

		params, err := pipeline.ParamsFromFlags(cmd)
		if err != nil {
			serviceutil.Fatal("invalid flag", err)
		}
		params.UseStore = useStore
		params.OverridesPath, err = cmd.Flags().GetString("overrides")
		if err != nil {
			serviceutil.Fatal("invalid flag", err)
		}

		engine, err := pipeline.EngineFromFlags(cmd, value.Config.Config, value.Rules, value.Tel)
		if err != nil {
			serviceutil.Fatal("failed to create engine", err)
		}

		p := pipeline.Pipeline{Engine: engine, Tel: value.Tel}
		if useStore {
			store, err := value.Store(ctx)
			if err != nil {
				serviceutil.Fatal("failed to open override store", err)
			}
			p.Store = &store
		}

		if value.TelemetryEnabled() {
			perfCtx, cancel := context.WithCancel(ctx)
			defer cancel()
			telemetry.InstrumentPerfStats(perfCtx, time.Second)
		}

		startedAt := time.Now()
		res, err := p.Run(ctx, params)
		if err != nil {
			serviceutil.Fatal("mapping failed", err)
		}
		fmt.Printf(
			"Loaded %d old and %d new entries, ranked in %s.\n",
			len(res.Olds), len(res.News), res.Took.Round(time.Millisecond),
		)

		err = report.Write(out, res.Output.Rows)
		if err != nil {
			serviceutil.Fatal("failed to write result", err)
		}
		fmt.Printf("Result written to %s\n", out)

		if mappingOut != "" {
			err = report.WriteMapping(mappingOut, res.Output.Table)
			if err != nil {
				serviceutil.Fatal("failed to write mapping table", err)
			}
			fmt.Printf("Mapping table written to %s\n", mappingOut)
		}

		stats := report.Summarize(res.Output.Rows)
		report.RenderStats(os.Stdout, stats)

		if useStore {
			config := engine.Config()
			run, err := p.Store.RecordRun(ctx, overrides.Run{
				StartedAt:    startedAt,
				Threshold:    config.Threshold,
				TopK:         config.TopK,
				OldCount:     len(res.Olds),
				NewCount:     len(res.News),
				Auto:         stats.Auto,
				ManualReview: stats.ManualReview,
				NoMatch:      stats.NoMatch,
			})
			if err != nil {
				serviceutil.Fatal("failed to record run", err)
			}
			value.Tel.ReportDebug("recorded run", run.ID)
		}
	},
}
