package textutil

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

var lower = cases.Lower(language.Russian)

// Normalize folds compatibility characters (NFKC), lowercases and collapses
// runs of whitespace into a single space.
func Normalize(text string) string {
	text = norm.NFKC.String(text)
	text = lower.String(text)
	text = whitespaceRegex.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// MatchName reports whether the normalized name contains any of the
// matchers.
func MatchName(name string, matchers []string) bool {
	name = Normalize(name)
	for _, m := range matchers {
		if strings.Contains(name, m) {
			return true
		}
	}
	return false
}
