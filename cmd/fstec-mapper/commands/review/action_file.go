package review

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/Erokhin-Danila/fstec-threat-mapping/services/mapper"
)

type directive string

const (
	actionSets   directive = "sets"
	actionKeep   directive = "keep"
	actionAdd    directive = "add"
	actionDelete directive = "del"
)

type actionLine struct {
	directive directive
	oldID     string
	newID     string
	comment   string
}

func (l actionLine) String() string {
	result := fmt.Sprintf(`%s "%s" "%s"`, l.directive, l.oldID, l.newID)
	if l.comment != "" {
		result += " # " + l.comment
	}
	return result
}

const editInstructions = `# This is a file where you can settle multiple
# manual_review entries at the same time.
#
# The format goes:
# <action> "<old id>" "<new id>"
#
# Where <action> can be:
# 'keep' = Do nothing with this line.
# 'add' = Store this mapping as an override.
# 'del' = Delete the stored override for the old id.
#
# Change the new id of a line to pick another candidate. When you want
# to apply the actions in this file, run:
#
# fstec-mapper review apply path/to/file.txt

sets "%[1]s" "%[2]s"

`

type actionFile struct {
	oldCatalog string
	newCatalog string
	actions    []actionLine
}

func (f actionFile) String() string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf(editInstructions, f.oldCatalog, f.newCatalog))
	for _, line := range f.actions {
		builder.WriteString(line.String() + "\n")
	}
	return builder.String()
}

// suggestions proposes the best candidate of every manual_review row, the
// runners-up are listed in the comment.
func suggestions(oldCatalog, newCatalog string, rows []mapper.Row) actionFile {
	file := actionFile{oldCatalog: oldCatalog, newCatalog: newCatalog}
	for _, row := range rows {
		if row.Status != mapper.StatusManualReview || row.Best == nil {
			continue
		}
		comment := fmt.Sprintf("%.2f %s", row.BestScore, row.Best.NewName)
		if len(row.Candidates) > 1 {
			others := make([]string, len(row.Candidates)-1)
			for i, c := range row.Candidates[1:] {
				others[i] = fmt.Sprintf("%s (%.1f)", c.NewID, c.Score)
			}
			comment += " | also: " + strings.Join(others, ", ")
		}
		file.actions = append(file.actions, actionLine{
			directive: actionAdd,
			oldID:     row.OldID,
			newID:     row.Best.NewID,
			comment:   comment,
		})
	}
	return file
}

var lineRegex = regexp.MustCompile(`^(\w+)\s*"([^"]+)"\s*"([^"]+)".*$`)

func parseLine(line string) (actionLine, bool, error) {
	line = strings.Trim(line, " \t")
	if len(line) == 0 {
		return actionLine{}, false, nil
	}
	if line[0] == '#' {
		return actionLine{}, false, nil
	}

	matches := lineRegex.FindStringSubmatch(line)
	if len(matches) == 0 {
		return actionLine{}, false, fmt.Errorf("line did not match regex")
	}

	d := directive(matches[1])
	switch d {
	case actionSets, actionKeep, actionAdd, actionDelete:
	default:
		return actionLine{}, false, fmt.Errorf("unknown action %q", d)
	}

	return actionLine{
		directive: d,
		oldID:     matches[2],
		newID:     matches[3],
	}, true, nil
}

func newActionFile(reader io.Reader) (actionFile, error) {
	s := bufio.NewScanner(reader)

	var file actionFile
	for i := 0; s.Scan(); i++ {
		line, ok, err := parseLine(s.Text())
		if err != nil {
			return actionFile{}, fmt.Errorf(
				"%v (error: line %d)",
				err, i+1,
			)
		}
		if !ok {
			continue
		}

		if line.directive == actionSets {
			file.oldCatalog = line.oldID
			file.newCatalog = line.newID
			continue
		}

		file.actions = append(file.actions, line)
	}
	if err := s.Err(); err != nil {
		return actionFile{}, err
	}

	return file, nil
}
