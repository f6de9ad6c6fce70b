package cli

import (
	"github.com/fatih/color"

	"github.com/roach88/wad/internal/absence"
	"github.com/roach88/wad/internal/worktime"
)

var (
	successText = color.New(color.FgGreen).SprintFunc()
	errorText   = color.New(color.FgRed).SprintFunc()
	warningText = color.New(color.FgYellow).SprintFunc()
	infoText    = color.New(color.FgCyan).SprintFunc()
	headerText  = color.New(color.Bold).SprintFunc()
	verboseText = color.New(color.FgHiMagenta).SprintFunc()

	dateText    = color.New(color.FgCyan).SprintFunc()
	idText      = color.New(color.FgHiBlack).SprintFunc()
	hoursText   = color.New(color.FgBlue).SprintFunc()
	projectText = color.New(color.FgCyan).SprintFunc()
)

var typeColors = map[absence.Kind]*color.Color{
	absence.KindVacation:          color.New(color.FgGreen),
	absence.KindSick:              color.New(color.FgRed),
	absence.KindOvertimeReduction: color.New(color.FgYellow),
	absence.KindHoliday:           color.New(color.FgMagenta),
	absence.KindOther:             color.New(color.FgWhite),
}

func typeText(t absence.Type) string {
	if c, ok := typeColors[t.Kind()]; ok {
		return c.Sprint(t.String())
	}
	return t.String()
}

var levelColors = map[worktime.Level]*color.Color{
	worktime.LevelNone:   color.New(color.Faint),
	worktime.LevelLow:    color.New(color.FgRed),
	worktime.LevelMedium: color.New(color.FgYellow),
	worktime.LevelGood:   color.New(color.FgGreen),
}

func levelText(l worktime.Level, s string) string {
	return levelColors[l].Sprint(s)
}

// recordLine renders a record for text output.
func recordLine(r absence.Record) string {
	line := idText(r.ID.String()) + " | " + hoursText(absence.FormatHours(r.Hours)) + " | " + typeText(r.Type)
	if note := r.NoteText(); note != "" {
		line += " | " + note
	}
	return line
}
