package mapper

import (
	"fmt"

	"github.com/Erokhin-Danila/fstec-threat-mapping/lib/fuzzy"
)

// Weights are the tunables of the combined score. The defaults were chosen
// by hand on the FSTEC catalogs and have no derivation beyond that.
type Weights struct {
	Name        float64 `json:"name"`
	Description float64 `json:"description"`
	Keywords    float64 `json:"keywords"`
	// score given when the new entry only shares the top level class with
	// one of the old entry's categories
	CoarseCategory float64 `json:"coarse_category"`
	// points per shared keyword, capped at 100
	KeywordStep float64 `json:"keyword_step"`
}

func DefaultWeights() Weights {
	return Weights{
		Name:           0.5,
		Description:    0.3,
		Keywords:       0.2,
		CoarseCategory: 70,
		KeywordStep:    20,
	}
}

func (w Weights) Validate() error {
	for _, v := range []float64{w.Name, w.Description, w.Keywords, w.CoarseCategory, w.KeywordStep} {
		if v < 0 {
			return fmt.Errorf("weights must not be negative: %+v", w)
		}
	}
	if w.CoarseCategory > 100 {
		return fmt.Errorf("coarse category score must be at most 100, got %v", w.CoarseCategory)
	}
	return nil
}

const exactCategoryScore = 100

// Breakdown keeps each signal of a score, for the classify command and
// for tests.
type Breakdown struct {
	Name        float64
	Description float64
	Keywords    float64
	Heuristic   float64
	Base        float64
	Final       float64
}

type Scorer struct {
	rules   *RuleTable
	weights Weights
}

func NewScorer(rules *RuleTable, weights Weights) Scorer {
	return Scorer{rules: rules, weights: weights}
}

// Score compares an old entry against a new one, the result is in [0, 100].
func (s Scorer) Score(old, target Entry) float64 {
	return s.Explain(old, target).Final
}

// Explain is Score with every intermediate signal.
func (s Scorer) Explain(old, target Entry) Breakdown {
	return s.breakdown(
		old, target,
		s.rules.Classify(old.Text()),
		ExtractKeywords(old.Text()),
		ExtractKeywords(target.Text()),
		TwoLevelPrefix(target.ID),
	)
}

func (s Scorer) breakdown(old, target Entry, oldCategories CategorySet, oldKeywords, newKeywords KeywordSet, newPrefix string) Breakdown {
	var b Breakdown

	b.Name = fuzzy.TokenSetRatio(old.NameClean, target.NameClean)
	if old.DescriptionClean != "" && target.DescriptionClean != "" {
		b.Description = fuzzy.TokenSetRatio(old.DescriptionClean, target.DescriptionClean)
	}

	b.Heuristic = s.heuristic(newPrefix, oldCategories)

	if len(oldKeywords) > 0 && len(newKeywords) > 0 {
		b.Keywords = min(100, s.weights.KeywordStep*float64(oldKeywords.Overlap(newKeywords)))
	}

	b.Base = s.weights.Name*b.Name + s.weights.Description*b.Description + s.weights.Keywords*b.Keywords
	// the category signal can only raise the score
	b.Final = min(100, max(b.Base, b.Heuristic))
	return b
}

func (s Scorer) heuristic(prefix string, oldCategories CategorySet) float64 {
	if len(oldCategories) == 0 {
		return 0
	}
	if oldCategories.Has(prefix) {
		return exactCategoryScore
	}
	if sharesClass(prefix, oldCategories) {
		return s.weights.CoarseCategory
	}
	return 0
}
