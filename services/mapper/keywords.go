package mapper

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const minKeywordLength = 4

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsMark(r)
}

func isKeywordRune(r rune) bool {
	return (r >= 'а' && r <= 'я') || (r >= 'a' && r <= 'z')
}

// ExtractKeywords returns the distinct words of text that consist only of
// lowercase cyrillic (а-я) or latin letters and are at least four letters
// long. A word is a maximal run of letters, digits and underscores, so
// "ddos2023" or "ёмкость" are not keywords and are not split either.
func ExtractKeywords(text string) KeywordSet {
	set := KeywordSet{}
	if text == "" {
		return set
	}

	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !isWordRune(r)
	})
	for _, w := range words {
		if utf8.RuneCountInString(w) < minKeywordLength {
			continue
		}
		if strings.IndexFunc(w, func(r rune) bool { return !isKeywordRune(r) }) >= 0 {
			continue
		}
		set[w] = struct{}{}
	}
	return set
}
