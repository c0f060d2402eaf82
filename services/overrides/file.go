package overrides

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Erokhin-Danila/fstec-threat-mapping/lib/catalog"
	"github.com/Erokhin-Danila/fstec-threat-mapping/services/mapper"
)

var ErrMissingColumns = errors.New("overrides file must contain columns 'old_id' and 'new_id'")

// ReadFile reads manual decisions from a .csv or .xlsx file with old_id
// and new_id columns, matched case-insensitively. Rows keep file order
// so that later rows win when merged.
func ReadFile(path string) ([]mapper.Override, error) {
	t, err := catalog.ReadTable(path)
	if err != nil {
		return nil, err
	}
	overrides, err := FromTable(t)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return overrides, nil
}

func FromTable(t catalog.Table) ([]mapper.Override, error) {
	oldCol, newCol := -1, -1
	for i, h := range t.Headers {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "old_id":
			if oldCol < 0 {
				oldCol = i
			}
		case "new_id":
			if newCol < 0 {
				newCol = i
			}
		}
	}
	if oldCol < 0 || newCol < 0 {
		return nil, ErrMissingColumns
	}

	var out []mapper.Override
	for i := range t.Rows {
		oldID := strings.TrimSpace(t.Cell(i, oldCol))
		newID := strings.TrimSpace(t.Cell(i, newCol))
		if oldID == "" || newID == "" {
			continue
		}
		out = append(out, mapper.Override{OldID: oldID, NewID: newID})
	}
	return out, nil
}
