package mapper

import (
	"slices"
	"sort"
)

const (
	// candidates in the old entry's class need to beat this to be prioritized
	priorityFloor = 30
	// every other candidate needs to beat this to be considered at all
	candidateFloor = 20
)

// Index is the new catalog prepared for ranking. Classification and
// keyword extraction of new entries happen once here instead of once per
// old entry. An Index is read-only after NewIndex returns.
type Index struct {
	Entries []Entry
	// categories of each new entry by id
	Categories map[string]CategorySet

	keywords []KeywordSet
	prefixes []string
}

func NewIndex(rules *RuleTable, entries []Entry) *Index {
	idx := &Index{
		Entries:    entries,
		Categories: ClassifyAll(rules, entries),
		keywords:   make([]KeywordSet, len(entries)),
		prefixes:   make([]string, len(entries)),
	}
	for i, e := range entries {
		idx.keywords[i] = ExtractKeywords(e.Text())
		idx.prefixes[i] = TwoLevelPrefix(e.ID)
	}
	return idx
}

// ClassifyAll classifies every entry, keyed by id.
func ClassifyAll(rules *RuleTable, entries []Entry) map[string]CategorySet {
	out := make(map[string]CategorySet, len(entries))
	for _, e := range entries {
		out[e.ID] = rules.Classify(e.Text())
	}
	return out
}

// topK keeps the k best candidates seen so far, ordered by descending
// score. Candidates with equal scores stay in the order they were pushed.
type topK struct {
	k     int
	items []Candidate
}

func newTopK(k int) *topK {
	return &topK{k: k, items: make([]Candidate, 0, max(k, 0))}
}

func (t *topK) push(c Candidate) {
	// insert after every candidate with a score >= c.Score
	i := sort.Search(len(t.items), func(i int) bool {
		return t.items[i].Score < c.Score
	})
	if i >= t.k {
		return
	}
	t.items = slices.Insert(t.items, i, c)
	if len(t.items) > t.k {
		t.items = t.items[:t.k]
	}
}

type Ranker struct {
	scorer Scorer
}

func NewRanker(scorer Scorer) Ranker {
	return Ranker{scorer: scorer}
}

// Rank scores old against every entry of the index and returns at most
// topK candidates ordered by descending score.
//
// New entries in the same top level class as one of the old entry's
// categories are kept in a separate bucket with a higher floor, the best
// of both buckets are then merged. A strong candidate outside the class
// can therefore still win.
func (r Ranker) Rank(old Entry, idx *Index, topK int) Result {
	oldCategories := r.scorer.rules.Classify(old.Text())
	oldKeywords := ExtractKeywords(old.Text())

	prioritized := newTopK(topK)
	other := newTopK(topK)

	for i, e := range idx.Entries {
		prefix := idx.prefixes[i]
		score := r.scorer.breakdown(old, e, oldCategories, oldKeywords, idx.keywords[i], prefix).Final
		c := Candidate{NewID: e.ID, NewName: e.Name, Score: score}

		isPriority := len(oldCategories) > 0 && sharesClass(prefix, oldCategories)
		switch {
		case isPriority && score > priorityFloor:
			prioritized.push(c)
		case score > candidateFloor:
			other.push(c)
		}
	}

	merged := newTopK(topK)
	for _, c := range prioritized.items {
		merged.push(c)
	}
	for _, c := range other.items {
		merged.push(c)
	}

	return Result{
		OldID:          old.ID,
		OldName:        old.Name,
		OldDescription: old.Description,
		Candidates:     merged.items,
		OldCategories:  oldCategories,
	}
}
