package mapper

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/Erokhin-Danila/fstec-threat-mapping/lib/telemetry"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

var testOld = []Entry{
	NewEntry("УБИ.001", "Угроза утечки данных", "Утечка информации через съемные носители"),
	NewEntry("УБИ.002", "Угроза несанкционированного доступа", "Доступ к данным без авторизации"),
	NewEntry("УБИ.003", "Угроза отказа в обслуживании", "Перегрузка сервера запросами"),
	NewEntry("УБИ.004", "zzzz", ""),
}

var testNew = []Entry{
	NewEntry("1.2.1", "Утечка информации через съемные носители", ""),
	NewEntry("1.2.2", "Утечка данных по каналам связи", "Перехват трафика"),
	NewEntry("2.1.1", "Несанкционированный доступ к данным", "Доступ без авторизации"),
	NewEntry("3.1.1", "Отказ в обслуживании", "Перегрузка сервера"),
}

func newTestEngine(t *testing.T, config Config) (Engine, *telemetry.Recorder) {
	t.Helper()
	rec := &telemetry.Recorder{}
	rules := NewRuleTable(map[string][]string{
		"утечк":  {"1.2."},
		"доступ": {"2.1."},
	})
	engine, err := NewEngine(rules, config, rec)
	if err != nil {
		t.Fatal(err)
	}
	return engine, rec
}

func TestEngineConfig(t *testing.T) {
	rules := NewRuleTable(nil)

	config := DefaultConfig()
	config.TopK = 0
	_, err := NewEngine(rules, config, &telemetry.Recorder{})
	require.Error(t, err)

	config = DefaultConfig()
	config.Workers = -1
	_, err = NewEngine(rules, config, &telemetry.Recorder{})
	require.Error(t, err)

	require.Panics(t, func() {
		NewEngine(nil, DefaultConfig(), &telemetry.Recorder{})
	})
}

func TestEngineCandidatesKeepOrder(t *testing.T) {
	config := DefaultConfig()
	config.Workers = 3
	engine, rec := newTestEngine(t, config)

	var olds []Entry
	for i := 0; i < 25; i++ {
		e := testOld[i%len(testOld)]
		olds = append(olds, NewEntry(fmt.Sprintf("%s-%d", e.ID, i), e.Name, e.Description))
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	results, err := engine.Candidates(ctx, olds, testNew)
	if err != nil {
		t.Fatal(err)
	}
	require.Len(t, results, len(olds))

	idx := NewIndex(engine.rules, testNew)
	for i, old := range olds {
		require.Equal(t, old.ID, results[i].OldID)
		diff := cmp.Diff(engine.ranker.Rank(old, idx, config.TopK), results[i])
		if diff != "" {
			t.Fatal(diff)
		}
		requireRanked(t, results[i].Candidates, config.TopK)
	}

	counts := rec.Find("count")
	require.NotEmpty(t, counts)
	require.Equal(t, "mapper: engine.progress", counts[0].ID)
}

func TestEngineRun(t *testing.T) {
	engine, rec := newTestEngine(t, DefaultConfig())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	out, err := engine.Run(ctx, testOld, testNew, []Override{
		{OldID: "УБИ.001", NewID: "1.2.2"},
		{OldID: "УБИ.004", NewID: "9.9.9"},
	})
	if err != nil {
		t.Fatal(err)
	}
	require.Len(t, out.Rows, len(testOld))

	// the "утечк" rule puts the old entry in 1.2., both 1.2.x entries score
	// 100 and the first one in catalog order wins
	require.Equal(t, StatusAuto, out.Rows[0].Status)
	require.Equal(t, "1.2.1", out.Rows[0].Best.NewID)
	require.Equal(t, 100.0, out.Rows[0].BestScore)

	require.Equal(t, StatusAuto, out.Rows[1].Status)
	require.Equal(t, "2.1.1", out.Rows[1].Best.NewID)

	require.Equal(t, StatusNoMatch, out.Rows[3].Status)
	require.Nil(t, out.Rows[3].Best)

	require.Equal(t, "1.2.2", out.Table["УБИ.001"])
	require.Equal(t, "2.1.1", out.Table["УБИ.002"])
	require.Equal(t, "9.9.9", out.Table["УБИ.004"])

	warnings := rec.Find("warning")
	require.Len(t, warnings, 1)
	require.Equal(t, []any{"УБИ.001", "1.2.1", "1.2.2"}, warnings[0].Params)
}

func TestEngineCanceled(t *testing.T) {
	engine, _ := newTestEngine(t, DefaultConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := engine.Run(ctx, testOld, testNew, nil)
	require.ErrorIs(t, err, context.Canceled)
}
