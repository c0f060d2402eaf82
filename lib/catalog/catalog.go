package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Erokhin-Danila/fstec-threat-mapping/internal/assert"
	"github.com/Erokhin-Danila/fstec-threat-mapping/lib/telemetry"
	"github.com/Erokhin-Danila/fstec-threat-mapping/services/mapper"
)

var ErrDuplicateID = errors.New("duplicate id")

type Loader struct {
	tel telemetry.API
}

func NewLoader(tel telemetry.API) Loader {
	assert.NotNil(tel, "tel")
	return Loader{tel: telemetry.NewScopedAPI("catalog", tel)}
}

// Load reads a catalog file into entries, in file order.
func (l Loader) Load(path string, kind Kind) ([]mapper.Entry, error) {
	assert.NotEmptyStr(path, "path")

	t, err := ReadTable(path)
	if err != nil {
		return nil, err
	}
	entries, err := l.Entries(t, kind)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}

// Entries converts table rows to entries. Blank rows are skipped, rows
// without an id are skipped with a warning and a repeated id is an error.
func (l Loader) Entries(t Table, kind Kind) ([]mapper.Entry, error) {
	cols := DetectColumns(t, kind)
	if cols.ID < 0 {
		return nil, fmt.Errorf("%s catalog: could not find an id column in %v", kind, t.Headers)
	}
	l.tel.ReportDebug(
		"detected columns",
		kind.String(), header(t, cols.ID), header(t, cols.Name), header(t, cols.Description),
	)

	entries := make([]mapper.Entry, 0, len(t.Rows))
	seen := make(map[string]int, len(t.Rows))
	for i := range t.Rows {
		id := strings.TrimSpace(t.Cell(i, cols.ID))
		name := strings.TrimSpace(t.Cell(i, cols.Name))
		description := strings.TrimSpace(t.Cell(i, cols.Description))

		if id == "" {
			if name != "" || description != "" {
				l.tel.ReportWarning("loader.entries", kind.String(), fmt.Sprintf("row %d has no id", i+2))
			}
			continue
		}
		prev, ok := seen[id]
		if ok {
			return nil, fmt.Errorf("%s catalog: %w %q on rows %d and %d", kind, ErrDuplicateID, id, prev+2, i+2)
		}
		seen[id] = i

		entries = append(entries, mapper.NewEntry(id, name, description))
	}

	l.tel.ReportCount(kind.String()+".entries", int64(len(entries)))
	return entries, nil
}

func header(t Table, col int) string {
	if col < 0 || col >= len(t.Headers) {
		return ""
	}
	return t.Headers[col]
}
