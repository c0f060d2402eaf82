package mapper

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"

	"github.com/Erokhin-Danila/fstec-threat-mapping/internal/assert"
	"github.com/Erokhin-Danila/fstec-threat-mapping/lib/telemetry"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/sync/errgroup"
)

var tracer = otel.Tracer("fstec.services.mapper")
var meter = otel.Meter("fstec.services.mapper")
var entriesCounter, _ = meter.Int64Counter("mapper.entries")
var bestScoreHistogram, _ = meter.Float64Histogram("mapper.best_score")

const progressEvery = 10

type Config struct {
	Threshold float64 `json:"threshold"`
	TopK      int     `json:"top_k"`
	// 0 means one worker per cpu
	Workers int     `json:"workers"`
	Weights Weights `json:"weights"`
}

func DefaultConfig() Config {
	return Config{
		Threshold: DefaultThreshold,
		TopK:      5,
		Weights:   DefaultWeights(),
	}
}

func (c Config) Validate() error {
	if c.TopK < 1 {
		return fmt.Errorf("top_k must be positive, got %d", c.TopK)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	return c.Weights.Validate()
}

type Engine struct {
	rules  *RuleTable
	config Config
	ranker Ranker
	tel    telemetry.API
}

func NewEngine(rules *RuleTable, config Config, tel telemetry.API) (Engine, error) {
	assert.NotNil(rules, "rules")
	assert.NotNil(tel, "tel")

	err := config.Validate()
	if err != nil {
		return Engine{}, err
	}

	return Engine{
		rules:  rules,
		config: config,
		ranker: NewRanker(NewScorer(rules, config.Weights)),
		tel:    telemetry.NewScopedAPI("mapper", tel),
	}, nil
}

func (e Engine) Config() Config {
	return e.config
}

func (e Engine) workers() int {
	if e.config.Workers > 0 {
		return e.config.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// Candidates ranks every old entry against the new catalog. Old entries
// are ranked in parallel, the results come back in the order of olds.
func (e Engine) Candidates(ctx context.Context, olds, news []Entry) ([]Result, error) {
	ctx, span := tracer.Start(ctx, "Engine.Candidates")
	defer span.End()

	idx := NewIndex(e.rules, news)
	e.tel.ReportDebug("classified new catalog", len(news))

	results := make([]Result, len(olds))
	total := int64(len(olds))
	var done atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers())
	for i, old := range olds {
		g.Go(func() error {
			err := gctx.Err()
			if err != nil {
				return err
			}
			results[i] = e.ranker.Rank(old, idx, e.config.TopK)

			n := done.Add(1)
			if n%progressEvery == 0 || n == total {
				e.tel.ReportCount("engine.progress", n)
			}
			return nil
		})
	}
	err := g.Wait()
	if err != nil {
		return nil, err
	}
	return results, nil
}

type Output struct {
	Rows []Row
	// auto mappings with overrides applied
	Table Table
}

// Run ranks, decides and applies overrides. Overrides are only applied
// once every old entry has been ranked.
func (e Engine) Run(ctx context.Context, olds, news []Entry, overrides []Override) (Output, error) {
	ctx, span := tracer.Start(ctx, "Engine.Run")
	defer span.End()

	results, err := e.Candidates(ctx, olds, news)
	if err != nil {
		return Output{}, err
	}

	rows, table := Decide(results, e.config.Threshold)
	for _, r := range rows {
		entriesCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("status", string(r.Status))))
		bestScoreHistogram.Record(ctx, r.BestScore)
	}

	for _, o := range overrides {
		prev, ok := table[o.OldID]
		if ok && prev != o.NewID {
			e.tel.ReportWarning("engine.override", o.OldID, prev, o.NewID)
		}
	}
	table = ApplyOverrides(table, overrides)

	return Output{Rows: rows, Table: table}, nil
}
