package mapper

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func testRules() *RuleTable {
	return NewRuleTable(map[string][]string{
		"утечк":  {"1.2."},
		"УТЕЧК":  {"1.5.", "1.2."},
		"доступ": {"2.3.", "2.1."},
		"":       {"9.9."},
		"пусто":  {},
	})
}

func TestNewRuleTable(t *testing.T) {
	rules := testRules()
	require.Equal(t, 2, rules.Len())

	diff := cmp.Diff(
		[]Rule{
			{Keyword: "доступ", Categories: []string{"2.1.", "2.3."}},
			{Keyword: "утечк", Categories: []string{"1.2.", "1.5."}},
		},
		rules.Rules(),
	)
	if diff != "" {
		t.Fatal(diff)
	}
}

func TestClassify(t *testing.T) {
	rules := testRules()

	testCases := []struct {
		text     string
		expected CategorySet
	}{
		{text: "угроза утечки данных", expected: CategorySet{"1.2.": {}, "1.5.": {}}},
		{text: "Несанкционированный ДОСТУП", expected: CategorySet{"2.1.": {}, "2.3.": {}}},
		{text: "утечка и доступ", expected: CategorySet{"1.2.": {}, "1.5.": {}, "2.1.": {}, "2.3.": {}}},
		// substring, not a word match
		{text: "бездоступный", expected: CategorySet{"2.1.": {}, "2.3.": {}}},
		{text: "отказ в обслуживании", expected: CategorySet{}},
		{text: "", expected: CategorySet{}},
	}
	for _, test := range testCases {
		diff := cmp.Diff(test.expected, rules.Classify(test.text))
		if diff != "" {
			t.Fatalf("%q: %s", test.text, diff)
		}
	}

	var nilTable *RuleTable
	require.Empty(t, nilTable.Classify("утечка"))
}

func TestCategorySetString(t *testing.T) {
	require.Equal(t, "не определены", CategorySet{}.String())
	require.Equal(t, "1.2., 2.1.", CategorySet{"2.1.": {}, "1.2.": {}}.String())
}

func TestTwoLevelPrefix(t *testing.T) {
	testCases := map[string]string{
		"1.2.3":       "1.2.",
		"1.2":         "1.2.",
		"1":           "1.",
		"10.20.30.40": "10.20.",
		"":            ".",
	}
	for id, expected := range testCases {
		require.Equal(t, expected, TwoLevelPrefix(id), id)
	}
}

func TestSharesClass(t *testing.T) {
	cats := CategorySet{"1.2.": {}, "3.": {}}
	require.True(t, sharesClass("1.7.", cats))
	require.True(t, sharesClass("3.1.", cats))
	require.False(t, sharesClass("2.1.", cats))
	// "1." must not match class "10."
	require.False(t, sharesClass("10.1.", cats))
	require.False(t, sharesClass("1.2.", CategorySet{}))
}
