package mapper

import (
	"slices"
	"strings"
)

type Rule struct {
	Keyword    string
	Categories []string
}

// RuleTable associates keyword substrings with category prefixes. It is
// built once and never modified, so a single *RuleTable is shared by every
// worker.
type RuleTable struct {
	rules []Rule
}

// NewRuleTable lowercases keywords and merges the categories of keywords
// that collide after lowercasing. Empty keywords are dropped since they
// would match every text, and so are keywords without categories.
func NewRuleTable(rules map[string][]string) *RuleTable {
	merged := make(map[string][]string, len(rules))
	for keyword, categories := range rules {
		keyword = strings.ToLower(strings.TrimSpace(keyword))
		if keyword == "" {
			continue
		}
		for _, c := range categories {
			c = strings.TrimSpace(c)
			if c == "" || slices.Contains(merged[keyword], c) {
				continue
			}
			merged[keyword] = append(merged[keyword], c)
		}
	}

	table := &RuleTable{rules: make([]Rule, 0, len(merged))}
	for keyword, categories := range merged {
		slices.Sort(categories)
		table.rules = append(table.rules, Rule{Keyword: keyword, Categories: categories})
	}
	slices.SortFunc(table.rules, func(a, b Rule) int {
		return strings.Compare(a.Keyword, b.Keyword)
	})
	return table
}

func (t *RuleTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rules)
}

// Rules returns a copy of the rules ordered by keyword.
func (t *RuleTable) Rules() []Rule {
	if t == nil {
		return nil
	}
	out := make([]Rule, len(t.rules))
	for i, r := range t.rules {
		out[i] = Rule{Keyword: r.Keyword, Categories: slices.Clone(r.Categories)}
	}
	return out
}

// Classify returns the union of the categories of every rule whose keyword
// occurs anywhere in the lowercased text. An empty set means the rules
// have no opinion about the text.
func (t *RuleTable) Classify(text string) CategorySet {
	set := CategorySet{}
	if t == nil || text == "" {
		return set
	}
	text = strings.ToLower(text)
	for _, r := range t.rules {
		if !strings.Contains(text, r.Keyword) {
			continue
		}
		for _, c := range r.Categories {
			set[c] = struct{}{}
		}
	}
	return set
}

// TwoLevelPrefix returns the first two dot separated components of a new
// catalog id followed by a dot, "1.2.3" -> "1.2.".
func TwoLevelPrefix(id string) string {
	parts := strings.SplitN(id, ".", 3)
	if len(parts) > 2 {
		parts = parts[:2]
	}
	return strings.Join(parts, ".") + "."
}

func leadingComponent(category string) string {
	lead, _, _ := strings.Cut(category, ".")
	return lead
}

// sharesClass reports whether prefix falls under the top level class of
// any of the categories.
func sharesClass(prefix string, categories CategorySet) bool {
	for c := range categories {
		if strings.HasPrefix(prefix, leadingComponent(c)+".") {
			return true
		}
	}
	return false
}
