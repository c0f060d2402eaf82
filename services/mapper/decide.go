package mapper

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// GreyZone is the width of the manual_review band below the threshold.
const GreyZone = 20.0

const DefaultThreshold = 60.0

// StatusFor decides the status of a best score.
func StatusFor(score, threshold float64) Status {
	switch {
	case score >= threshold:
		return StatusAuto
	case score >= threshold-GreyZone:
		return StatusManualReview
	default:
		return StatusNoMatch
	}
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// FormatTopK flattens candidates into "id||name||score; ..." with scores
// rounded to one decimal.
func FormatTopK(candidates []Candidate) string {
	parts := make([]string, len(candidates))
	for i, c := range candidates {
		parts[i] = fmt.Sprintf(
			"%s||%s||%s",
			c.NewID, c.NewName,
			strconv.FormatFloat(round(c.Score, 1), 'f', 1, 64),
		)
	}
	return strings.Join(parts, "; ")
}

// Decide turns ranked results into rows, in the same order, and collects
// the auto mappings into a table.
func Decide(results []Result, threshold float64) ([]Row, Table) {
	rows := make([]Row, len(results))
	table := make(Table)

	for i, res := range results {
		row := Row{
			Result: res,
			TopK:   FormatTopK(res.Candidates),
		}
		if len(res.Candidates) > 0 {
			best := res.Candidates[0]
			row.Best = &best
			row.BestScore = best.Score
		}
		row.Status = StatusFor(row.BestScore, threshold)
		if row.Status == StatusAuto && row.Best != nil {
			table[res.OldID] = row.Best.NewID
		}
		rows[i] = row
	}

	return rows, table
}
