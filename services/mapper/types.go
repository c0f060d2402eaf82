package mapper

import (
	"slices"
	"strings"

	"github.com/Erokhin-Danila/fstec-threat-mapping/lib/textutil"
)

// Entry is one record of either catalog. The clean fields are what every
// matching step looks at.
type Entry struct {
	ID               string
	Name             string
	Description      string
	NameClean        string
	DescriptionClean string
}

func NewEntry(id, name, description string) Entry {
	return Entry{
		ID:               id,
		Name:             name,
		Description:      description,
		NameClean:        textutil.Normalize(name),
		DescriptionClean: textutil.Normalize(description),
	}
}

// Text is the text that classification and keyword extraction run on.
func (e Entry) Text() string {
	return e.NameClean + " " + e.DescriptionClean
}

// CategorySet is a set of category prefixes like "1.2.".
type CategorySet map[string]struct{}

func (s CategorySet) Has(category string) bool {
	_, ok := s[category]
	return ok
}

func (s CategorySet) Sorted() []string {
	out := make([]string, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	slices.Sort(out)
	return out
}

// String is the audit form written to the result file.
func (s CategorySet) String() string {
	if len(s) == 0 {
		return "не определены"
	}
	return strings.Join(s.Sorted(), ", ")
}

type KeywordSet map[string]struct{}

func (s KeywordSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// Overlap counts the keywords present in both sets.
func (s KeywordSet) Overlap(other KeywordSet) int {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}
	n := 0
	for k := range small {
		if _, ok := large[k]; ok {
			n++
		}
	}
	return n
}

type Candidate struct {
	NewID   string
	NewName string
	Score   float64
}

// Result is the ranked candidate list of one old entry.
type Result struct {
	OldID          string
	OldName        string
	OldDescription string
	Candidates     []Candidate
	OldCategories  CategorySet
}

type Status string

const (
	StatusAuto         Status = "auto"
	StatusManualReview Status = "manual_review"
	StatusNoMatch      Status = "no_match"
)

// Row is a decided Result, ready for tabular output.
type Row struct {
	Result
	// nil when there were no candidates
	Best      *Candidate
	BestScore float64
	Status    Status
	TopK      string
}

// Table maps old ids to new ids.
type Table map[string]string

// Override is a human decision that replaces the automatic mapping.
type Override struct {
	OldID string
	NewID string
}
