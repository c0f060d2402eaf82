package catalog

import (
	"strings"
	"unicode"

	"github.com/Erokhin-Danila/fstec-threat-mapping/lib/textutil"
)

type Kind int

const (
	// the flat catalog being migrated away from
	Old Kind = iota
	// the hierarchical catalog being migrated to
	New
)

func (k Kind) String() string {
	if k == New {
		return "new"
	}
	return "old"
}

// Columns holds the index of each field in a table, -1 when absent.
type Columns struct {
	ID          int
	Name        int
	Description int
}

func (c Columns) found() int {
	n := 0
	for _, col := range []int{c.ID, c.Name, c.Description} {
		if col >= 0 {
			n++
		}
	}
	return n
}

var (
	oldIDHeaders          = []string{"идентификатор", "уби"}
	oldNameHeaders        = []string{"наименование", "название"}
	oldDescriptionHeaders = []string{"описание"}

	newIDHeaders          = []string{"идентификатор", "код", "id"}
	newNameHeaders        = []string{"наименование", "название", "name"}
	newDescriptionHeaders = []string{"описание", "description"}
)

// findHeader tries each pattern in order and returns the first unused
// column whose header contains it.
func findHeader(headers []string, patterns []string, used map[int]bool) int {
	for _, p := range patterns {
		for i, h := range headers {
			if used[i] {
				continue
			}
			if textutil.MatchName(h, []string{p}) {
				used[i] = true
				return i
			}
		}
	}
	return -1
}

func detectByHeaders(headers []string, id, name, description []string) (Columns, map[int]bool) {
	used := make(map[int]bool)
	return Columns{
		ID:          findHeader(headers, id, used),
		Name:        findHeader(headers, name, used),
		Description: findHeader(headers, description, used),
	}, used
}

func positional(width int) Columns {
	c := Columns{ID: -1, Name: -1, Description: -1}
	if width >= 1 {
		c.ID = 0
	}
	if width >= 2 {
		c.Name = 1
	}
	if width >= 3 {
		c.Description = 2
	}
	return c
}

// looksHierarchical reports whether v starts with two numeric dot
// separated components, like "1.2" or "1.2.3".
func looksHierarchical(v string) bool {
	parts := strings.Split(strings.TrimSpace(v), ".")
	if len(parts) < 2 {
		return false
	}
	for _, p := range parts[:2] {
		if p == "" || strings.IndexFunc(p, func(r rune) bool { return !unicode.IsDigit(r) }) >= 0 {
			return false
		}
	}
	return true
}

// DetectColumns finds the id, name and description columns of a table.
//
// Headers are searched first. When that does not find all three, the old
// catalog falls back to the first three columns in order, and the new
// catalog looks for a column whose first value is a hierarchical id and
// hands the remaining columns to name and description in order.
func DetectColumns(t Table, kind Kind) Columns {
	if kind == Old {
		cols, _ := detectByHeaders(t.Headers, oldIDHeaders, oldNameHeaders, oldDescriptionHeaders)
		if cols.found() < 3 {
			return positional(len(t.Headers))
		}
		return cols
	}

	cols, used := detectByHeaders(t.Headers, newIDHeaders, newNameHeaders, newDescriptionHeaders)
	if cols.found() == 3 {
		return cols
	}

	if cols.ID < 0 && len(t.Rows) > 0 {
		for i := range t.Headers {
			if !used[i] && looksHierarchical(t.Cell(0, i)) {
				cols.ID = i
				used[i] = true
				break
			}
		}
	}
	for _, field := range []*int{&cols.Name, &cols.Description} {
		if *field >= 0 {
			continue
		}
		for i := range t.Headers {
			if !used[i] {
				*field = i
				used[i] = true
				break
			}
		}
	}
	return cols
}
