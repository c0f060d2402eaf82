package mapper

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScoreWithoutRules(t *testing.T) {
	scorer := NewScorer(NewRuleTable(nil), DefaultWeights())

	old := NewEntry("1", "Угроза утечки данных", "")
	target := NewEntry("1.2.3", "Утечка данных через съемные носители", "")

	b := scorer.Explain(old, target)
	require.Equal(t, 0.0, b.Heuristic)
	require.Equal(t, 0.0, b.Description)
	// only "данных" is shared
	require.Equal(t, 20.0, b.Keywords)
	require.Greater(t, b.Name, 0.0)
	require.Less(t, b.Name, 100.0)
	require.InDelta(t, 0.5*b.Name+0.2*20, b.Base, 1e-9)
	require.Equal(t, b.Base, b.Final)
	require.Equal(t, b.Final, scorer.Score(old, target))
}

func TestScoreSignals(t *testing.T) {
	scorer := NewScorer(NewRuleTable(nil), DefaultWeights())

	{
		old := NewEntry("1", "Утечка данных", "")
		target := NewEntry("1.1.1", "утечка   данных", "")
		b := scorer.Explain(old, target)
		require.Equal(t, 100.0, b.Name)
		require.Equal(t, 40.0, b.Keywords)
		require.InDelta(t, 58.0, b.Final, 1e-9)
	}
	{
		old := NewEntry("1", "Утечка данных", "Перехват трафика")
		target := NewEntry("1.1.1", "утечка данных", "перехват трафика")
		b := scorer.Explain(old, target)
		require.Equal(t, 100.0, b.Description)
		require.Equal(t, 80.0, b.Keywords)
		require.InDelta(t, 96.0, b.Final, 1e-9)
	}
	{
		// description is ignored unless both sides have one
		old := NewEntry("1", "Утечка данных", "")
		target := NewEntry("1.1.1", "утечка данных", "перехват трафика")
		b := scorer.Explain(old, target)
		require.Equal(t, 0.0, b.Description)
	}
	{
		// keyword score is capped at 100
		old := NewEntry("1", "альфа бета гамма дельта эпсилон дзета", "")
		target := NewEntry("1.1.1", "альфа бета гамма дельта эпсилон дзета", "")
		require.Equal(t, 100.0, scorer.Explain(old, target).Keywords)
		require.InDelta(t, 70.0, scorer.Score(old, target), 1e-9)
	}
	{
		old := NewEntry("1", "", "")
		target := NewEntry("1.1.1", "", "")
		require.Equal(t, 0.0, scorer.Score(old, target))
	}
}

func TestScoreHeuristic(t *testing.T) {
	scorer := NewScorer(NewRuleTable(map[string][]string{"утечк": {"1.2."}}), DefaultWeights())
	old := NewEntry("1", "Угроза утечки", "")

	{
		b := scorer.Explain(old, NewEntry("1.2.5", "Отказ в обслуживании", ""))
		require.Equal(t, 100.0, b.Heuristic)
		require.Equal(t, 100.0, b.Final)
	}
	{
		b := scorer.Explain(old, NewEntry("1.7.1", "Отказ в обслуживании", ""))
		require.Equal(t, 70.0, b.Heuristic)
		require.Equal(t, 70.0, b.Final)
	}
	{
		b := scorer.Explain(old, NewEntry("3.1.1", "Отказ в обслуживании", ""))
		require.Equal(t, 0.0, b.Heuristic)
		require.Equal(t, b.Base, b.Final)
	}
	{
		// the heuristic never lowers a strong text match
		b := scorer.Explain(NewEntry("1", "Угроза утечки", "Перехват трафика"), NewEntry("1.7.1", "угроза утечки", "перехват трафика"))
		require.Equal(t, 70.0, b.Heuristic)
		require.Greater(t, b.Final, 70.0)
		require.Equal(t, b.Base, b.Final)
	}
}

func TestScoreCustomWeights(t *testing.T) {
	w := DefaultWeights()
	w.CoarseCategory = 50
	w.KeywordStep = 10
	scorer := NewScorer(NewRuleTable(map[string][]string{"утечк": {"1.2."}}), w)

	b := scorer.Explain(NewEntry("1", "Утечка данных", ""), NewEntry("1.3.1", "утечка данных", ""))
	require.Equal(t, 50.0, b.Heuristic)
	require.Equal(t, 20.0, b.Keywords)
	require.InDelta(t, 54.0, b.Final, 1e-9)

	w.Name = 3
	require.NoError(t, w.Validate())
	over := NewScorer(NewRuleTable(nil), w)
	require.Equal(t, 100.0, over.Score(NewEntry("1", "утечка", ""), NewEntry("1.1.1", "утечка", "")))

	w.KeywordStep = -1
	require.Error(t, w.Validate())
	w = DefaultWeights()
	w.CoarseCategory = 101
	require.Error(t, w.Validate())
}

func TestScoreBounds(t *testing.T) {
	scorer := NewScorer(testRules(), DefaultWeights())
	entries := []Entry{
		NewEntry("1", "Угроза утечки данных", "Утечка через съемные носители"),
		NewEntry("1.2.1", "Несанкционированный доступ", ""),
		NewEntry("2.1", "", "доступ к данным"),
		NewEntry("", "x", "y"),
		NewEntry("9.9.9.9", "malware spoofing ddos", "атака на сервер"),
	}
	for _, a := range entries {
		for _, b := range entries {
			score := scorer.Score(a, b)
			require.GreaterOrEqual(t, score, 0.0)
			require.LessOrEqual(t, score, 100.0)
			require.Equal(t, score, scorer.Score(a, b))
			require.GreaterOrEqual(t, score, scorer.Explain(a, b).Heuristic)
		}
	}
}
