package cli

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/roach88/wad/internal/worktime"
)

var weekdayHeaders = table.Row{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun", "Total"}

// renderWeekly writes one title row and one duration row per week. Daily
// cells are graded against the daily thresholds, the total against the
// weekly target.
func renderWeekly(w io.Writer, summaries []worktime.WeekSummary, th worktime.Thresholds) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.Style().Format.Header = text.FormatDefault
	t.Style().Options.SeparateRows = true
	t.AppendHeader(weekdayHeaders)

	configs := make([]table.ColumnConfig, len(weekdayHeaders))
	for i := range configs {
		configs[i] = table.ColumnConfig{Number: i + 1, Align: text.AlignCenter, AlignHeader: text.AlignCenter}
	}
	t.SetColumnConfigs(configs)

	for _, s := range summaries {
		title := s.Week.Long()
		titleRow := make(table.Row, len(weekdayHeaders))
		for i := range titleRow {
			titleRow[i] = title
		}
		t.AppendRow(titleRow, table.RowConfig{AutoMerge: true, AutoMergeAlign: text.AlignCenter})

		row := make(table.Row, 0, len(weekdayHeaders))
		for _, d := range s.Days {
			total := d.Total()
			row = append(row, levelText(th.Day(total), worktime.FormatHHMM(total)))
		}
		total := s.Total()
		row = append(row, levelText(th.Week(total), worktime.FormatHHMM(total)))
		t.AppendRow(row)
	}

	t.Render()
}
