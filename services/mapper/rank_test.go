package mapper

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

var ignoreScore = cmpopts.IgnoreFields(Candidate{}, "Score")

func ids(candidates []Candidate) []string {
	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = c.NewID
	}
	return out
}

func requireRanked(t *testing.T, candidates []Candidate, topK int) {
	t.Helper()
	require.LessOrEqual(t, len(candidates), topK)
	seen := map[string]bool{}
	for i, c := range candidates {
		require.False(t, seen[c.NewID], "duplicate candidate %s", c.NewID)
		seen[c.NewID] = true
		if i > 0 {
			require.GreaterOrEqual(t, candidates[i-1].Score, c.Score)
		}
	}
}

func TestRankWithoutRules(t *testing.T) {
	rules := NewRuleTable(nil)
	ranker := NewRanker(NewScorer(rules, DefaultWeights()))
	news := []Entry{
		NewEntry("1.1.1", "Утечка данных", ""),
		NewEntry("2.1.1", "zzzz qqqq", ""),
		NewEntry("1.1.2", "Данных утечка через носители", ""),
		NewEntry("1.1.3", "Утечка", ""),
	}
	idx := NewIndex(rules, news)
	old := NewEntry("7", "Утечка данных", "описание")

	res := ranker.Rank(old, idx, 5)
	requireRanked(t, res.Candidates, 5)
	// 1.1.1 and 1.1.2 tie at 58 and keep the catalog order
	require.Equal(t, []string{"1.1.1", "1.1.2", "1.1.3"}, ids(res.Candidates))
	require.InDelta(t, 58.0, res.Candidates[0].Score, 1e-9)
	require.InDelta(t, 58.0, res.Candidates[1].Score, 1e-9)
	require.InDelta(t, 54.0, res.Candidates[2].Score, 1e-9)

	require.Equal(t, "7", res.OldID)
	require.Equal(t, "Утечка данных", res.OldName)
	require.Equal(t, "описание", res.OldDescription)
	require.Empty(t, res.OldCategories)

	top2 := ranker.Rank(old, idx, 2)
	require.Equal(t, []string{"1.1.1", "1.1.2"}, ids(top2.Candidates))
}

func TestRankPriority(t *testing.T) {
	rules := NewRuleTable(map[string][]string{"утечк": {"1.2."}})
	news := []Entry{
		NewEntry("3.1.1", "Утечка данных", ""),
		NewEntry("1.2.1", "zzzz", ""),
		NewEntry("1.5.1", "qqqq", ""),
		NewEntry("3.2.1", "zzzz qqqq", ""),
	}
	idx := NewIndex(rules, news)
	old := NewEntry("7", "Утечка данных", "")

	ranker := NewRanker(NewScorer(rules, DefaultWeights()))
	res := ranker.Rank(old, idx, 5)
	requireRanked(t, res.Candidates, 5)

	diff := cmp.Diff(
		[]Candidate{
			{NewID: "1.2.1", NewName: "zzzz", Score: 100},
			{NewID: "1.5.1", NewName: "qqqq", Score: 70},
			{NewID: "3.1.1", NewName: "Утечка данных", Score: 58},
		},
		res.Candidates,
		cmpopts.EquateApprox(0, 1e-9),
	)
	if diff != "" {
		t.Fatal(diff)
	}
	require.Equal(t, CategorySet{"1.2.": {}}, res.OldCategories)

	// the prioritized bucket wins the single slot
	top1 := ranker.Rank(old, idx, 1)
	require.Equal(t, []string{"1.2.1"}, ids(top1.Candidates))
}

func TestRankPriorityBelowFloor(t *testing.T) {
	rules := NewRuleTable(map[string][]string{"утечк": {"1.2."}})
	w := DefaultWeights()
	w.CoarseCategory = 25
	ranker := NewRanker(NewScorer(rules, w))

	news := []Entry{
		// in class but under the priority floor, both fall back to the other bucket
		NewEntry("1.5.1", "qqqq", ""),
		NewEntry("1.6.1", "wwww", ""),
	}
	res := ranker.Rank(NewEntry("7", "Утечка данных", ""), NewIndex(rules, news), 5)
	require.Equal(t, []string{"1.5.1", "1.6.1"}, ids(res.Candidates))
	require.InDelta(t, 25.0, res.Candidates[0].Score, 1e-9)

	w.CoarseCategory = 20
	ranker = NewRanker(NewScorer(rules, w))
	res = ranker.Rank(NewEntry("7", "Утечка данных", ""), NewIndex(rules, news), 5)
	require.Empty(t, res.Candidates)
}

func TestRankEmpty(t *testing.T) {
	rules := NewRuleTable(nil)
	ranker := NewRanker(NewScorer(rules, DefaultWeights()))

	res := ranker.Rank(NewEntry("1", "Утечка", ""), NewIndex(rules, nil), 5)
	require.Empty(t, res.Candidates)

	res = ranker.Rank(NewEntry("1", "", ""), NewIndex(rules, []Entry{NewEntry("1.1.1", "Утечка", "")}), 5)
	require.Empty(t, res.Candidates)
}

func TestClassifyAll(t *testing.T) {
	rules := testRules()
	news := []Entry{
		NewEntry("1.2.1", "Утечка информации", ""),
		NewEntry("2.1.1", "Отказ", "в обслуживании"),
	}
	diff := cmp.Diff(
		map[string]CategorySet{
			"1.2.1": {"1.2.": {}, "1.5.": {}},
			"2.1.1": {},
		},
		ClassifyAll(rules, news),
	)
	if diff != "" {
		t.Fatal(diff)
	}

	idx := NewIndex(rules, news)
	require.Equal(t, ClassifyAll(rules, news), idx.Categories)
}

func TestTopK(t *testing.T) {
	top := newTopK(3)
	for i, s := range []float64{10, 50, 30, 50, 90, 10} {
		top.push(Candidate{NewID: string(rune('a' + i)), Score: s})
	}
	diff := cmp.Diff(
		[]Candidate{{NewID: "e"}, {NewID: "b"}, {NewID: "d"}},
		top.items,
		ignoreScore,
	)
	if diff != "" {
		t.Fatal(diff)
	}

	zero := newTopK(0)
	zero.push(Candidate{NewID: "a", Score: 100})
	require.Empty(t, zero.items)
}
