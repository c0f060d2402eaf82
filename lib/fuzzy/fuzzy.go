package fuzzy

import (
	"math"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Process lowercases the string, replaces everything that is not a letter
// or a digit with whitespace and trims the result.
func Process(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return ' '
	}, s)
	return strings.TrimSpace(s)
}

// lcsLength returns the length in runes of the longest common subsequence
// of a and b. Only two rows of the table are kept, sized by the shorter
// string.
func lcsLength(a, b []rune) int {
	if len(a) < len(b) {
		a, b = b, a
	}
	if len(b) == 0 {
		return 0
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for _, ra := range a {
		for j, rb := range b {
			switch {
			case ra == rb:
				curr[j+1] = prev[j] + 1
			case prev[j+1] >= curr[j]:
				curr[j+1] = prev[j+1]
			default:
				curr[j+1] = curr[j]
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

// indel returns the insertion/deletion distance between a and b, which is
// the edit distance when substitutions are not allowed.
func indel(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)
	return len(ra) + len(rb) - 2*lcsLength(ra, rb)
}

func normalized(dist, lensum int) float64 {
	if lensum == 0 {
		return 100
	}
	return 100 * (1 - float64(dist)/float64(lensum))
}

// Ratio is the InDel similarity of two strings scaled to [0, 100].
func Ratio(a, b string) float64 {
	return normalized(indel(a, b), utf8.RuneCountInString(a)+utf8.RuneCountInString(b))
}

func tokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range strings.Fields(s) {
		set[tok] = struct{}{}
	}
	return set
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// TokenSetRatio compares two strings by their sets of words. The shared
// words are compared against each side's leftovers and the best of the
// three ratios wins, so "a b c" vs "c a" scores 100 and word order or
// repetition never matters. The result is rounded to a whole number in
// [0, 100]; an empty side (after processing) scores 0.
func TokenSetRatio(a, b string) float64 {
	a = Process(a)
	b = Process(b)
	if a == "" || b == "" {
		return 0
	}

	setA := tokenSet(a)
	setB := tokenSet(b)

	intersection := make(map[string]struct{})
	diffAB := make(map[string]struct{})
	diffBA := make(map[string]struct{})
	for tok := range setA {
		if _, ok := setB[tok]; ok {
			intersection[tok] = struct{}{}
			continue
		}
		diffAB[tok] = struct{}{}
	}
	for tok := range setB {
		if _, ok := setA[tok]; !ok {
			diffBA[tok] = struct{}{}
		}
	}

	if len(intersection) > 0 && (len(diffAB) == 0 || len(diffBA) == 0) {
		return 100
	}

	sect := strings.Join(sortedKeys(intersection), " ")
	ab := strings.Join(sortedKeys(diffAB), " ")
	ba := strings.Join(sortedKeys(diffBA), " ")

	sectLen := utf8.RuneCountInString(sect)
	abLen := utf8.RuneCountInString(ab)
	baLen := utf8.RuneCountInString(ba)

	sep := 0
	if sectLen > 0 {
		sep = 1
	}
	sectABLen := sectLen + sep + abLen
	sectBALen := sectLen + sep + baLen

	// sect+ab vs sect+ba only differs in the leftovers
	result := normalized(indel(ab, ba), sectABLen+sectBALen)
	if sectLen > 0 {
		result = max(
			result,
			normalized(sep+abLen, sectLen+sectABLen),
			normalized(sep+baLen, sectLen+sectBALen),
		)
	}

	return math.RoundToEven(result)
}
