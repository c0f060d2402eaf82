package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/Erokhin-Danila/fstec-threat-mapping/lib/catalog"
	"github.com/Erokhin-Danila/fstec-threat-mapping/lib/rules"
	"github.com/Erokhin-Danila/fstec-threat-mapping/lib/telemetry"
	"github.com/Erokhin-Danila/fstec-threat-mapping/services/mapper"
	"github.com/Erokhin-Danila/fstec-threat-mapping/services/overrides"

	"github.com/spf13/cobra"
)

// Params are the inputs of one mapping run.
type Params struct {
	OldPath string
	NewPath string
	// optional csv/xlsx of manual decisions
	OverridesPath string
	// read decisions from the override store before OverridesPath
	UseStore bool
}

type Result struct {
	Olds   []mapper.Entry
	News   []mapper.Entry
	Output mapper.Output
	Took   time.Duration
}

// Pipeline runs the engine over two catalog files.
type Pipeline struct {
	Engine mapper.Engine
	Tel    telemetry.API
	// nil unless decisions are read from the store
	Store *overrides.Store
}

func (p Pipeline) Run(ctx context.Context, params Params) (Result, error) {
	loader := catalog.NewLoader(p.Tel)

	olds, err := loader.Load(params.OldPath, catalog.Old)
	if err != nil {
		return Result{}, fmt.Errorf("failed to load old catalog: %w", err)
	}
	news, err := loader.Load(params.NewPath, catalog.New)
	if err != nil {
		return Result{}, fmt.Errorf("failed to load new catalog: %w", err)
	}

	var decisions []mapper.Override
	if params.UseStore {
		if p.Store == nil {
			return Result{}, fmt.Errorf("decisions were requested from the store but no store is open")
		}
		stored, err := p.Store.List(ctx)
		if err != nil {
			return Result{}, fmt.Errorf("failed to list stored overrides: %w", err)
		}
		decisions = append(decisions, stored...)
	}
	if params.OverridesPath != "" {
		fromFile, err := overrides.ReadFile(params.OverridesPath)
		if err != nil {
			return Result{}, fmt.Errorf("failed to read overrides: %w", err)
		}
		decisions = append(decisions, fromFile...)
	}

	start := time.Now()
	out, err := p.Engine.Run(ctx, olds, news, decisions)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Olds:   olds,
		News:   news,
		Output: out,
		Took:   time.Since(start),
	}, nil
}

// RegisterEngineFlags adds the flags that tune the engine to cmd.
func RegisterEngineFlags(cmd *cobra.Command) {
	cmd.Flags().String("old", "", "Path to the old catalog (csv or xlsx).")
	cmd.Flags().String("new", "", "Path to the new catalog (csv or xlsx).")
	cmd.Flags().Float64("threshold", mapper.DefaultThreshold, "Minimum best score for an automatic mapping.")
	cmd.Flags().Int("topk", mapper.DefaultConfig().TopK, "Number of candidates kept per old entry.")
	cmd.Flags().Int("workers", 0, "Number of old entries ranked in parallel, 0 means one per cpu.")
	cmd.Flags().String("rules", "", "Path to a rule table (json5 or yaml), replaces the configured one.")
	cmd.MarkFlagRequired("old")
	cmd.MarkFlagRequired("new")
}

// EngineFromFlags applies the flags that were set over config and builds
// an engine.
func EngineFromFlags(cmd *cobra.Command, config mapper.Config, table *mapper.RuleTable, tel telemetry.API) (mapper.Engine, error) {
	flags := cmd.Flags()
	var err error
	if flags.Changed("threshold") {
		config.Threshold, err = flags.GetFloat64("threshold")
		if err != nil {
			return mapper.Engine{}, err
		}
	}
	if flags.Changed("topk") {
		config.TopK, err = flags.GetInt("topk")
		if err != nil {
			return mapper.Engine{}, err
		}
	}
	if flags.Changed("workers") {
		config.Workers, err = flags.GetInt("workers")
		if err != nil {
			return mapper.Engine{}, err
		}
	}
	if flags.Changed("rules") {
		path, err := flags.GetString("rules")
		if err != nil {
			return mapper.Engine{}, err
		}
		table, err = rules.Load(path)
		if err != nil {
			return mapper.Engine{}, err
		}
	}
	return mapper.NewEngine(table, config, tel)
}

// ParamsFromFlags reads the catalog paths registered by
// RegisterEngineFlags.
func ParamsFromFlags(cmd *cobra.Command) (Params, error) {
	oldPath, err := cmd.Flags().GetString("old")
	if err != nil {
		return Params{}, err
	}
	newPath, err := cmd.Flags().GetString("new")
	if err != nil {
		return Params{}, err
	}
	return Params{OldPath: oldPath, NewPath: newPath}, nil
}
