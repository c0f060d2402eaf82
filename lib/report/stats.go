package report

import (
	"fmt"
	"io"

	"github.com/Erokhin-Danila/fstec-threat-mapping/services/mapper"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

type Stats struct {
	Total        int
	Auto         int
	ManualReview int
	NoMatch      int
}

func Summarize(rows []mapper.Row) Stats {
	stats := Stats{Total: len(rows)}
	for _, row := range rows {
		switch row.Status {
		case mapper.StatusAuto:
			stats.Auto++
		case mapper.StatusManualReview:
			stats.ManualReview++
		case mapper.StatusNoMatch:
			stats.NoMatch++
		}
	}
	return stats
}

// Percent is n as a share of Total, 0 when there are no rows.
func (s Stats) Percent(n int) float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(n) / float64(s.Total) * 100
}

func RenderStats(w io.Writer, stats Stats) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})

	t.AppendHeader(table.Row{"Статус", "Количество", "Доля"})
	lines := []struct {
		label string
		n     int
	}{
		{"Автоматически сопоставлено", stats.Auto},
		{"Требуют ручной проверки", stats.ManualReview},
		{"Не найдено соответствий", stats.NoMatch},
	}
	for _, line := range lines {
		t.AppendRow(table.Row{line.label, line.n, fmt.Sprintf("%.1f%%", stats.Percent(line.n))})
	}
	t.AppendFooter(table.Row{"Всего", stats.Total, ""})
	t.Render()
}
