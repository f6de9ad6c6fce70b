package worktime

import (
	"time"

	"cloud.google.com/go/civil"

	"github.com/roach88/wad/internal/absence"
	"github.com/roach88/wad/internal/watson"
)

// DayBreakdown is one day's tracked time plus its absences.
type DayBreakdown struct {
	Date     civil.Date
	Worked   time.Duration
	Absences []absence.Record
}

// AbsenceDuration returns the summed absence hours.
func (b DayBreakdown) AbsenceDuration() time.Duration {
	return absence.TotalDuration(b.Absences)
}

// Total returns worked time plus absence time.
func (b DayBreakdown) Total() time.Duration {
	return b.Worked + b.AbsenceDuration()
}

// WeekSummary holds the breakdown of each day of a week.
type WeekSummary struct {
	Week Week
	Days [7]DayBreakdown
}

// Total sums all days of the week.
func (s WeekSummary) Total() time.Duration {
	var total time.Duration
	for _, d := range s.Days {
		total += d.Total()
	}
	return total
}

// Summarize builds a week summary from frames and absence records. Frames are
// assigned to the day they start on in loc; active frames count up to now.
// Records and frames outside the week are ignored.
func Summarize(week Week, frames watson.Frames, records []absence.Record, loc *time.Location, now time.Time) WeekSummary {
	worked := frames.DurationsByDate(loc, now)
	byDate := make(map[civil.Date][]absence.Record)
	for _, r := range records {
		if week.Contains(r.Date) {
			byDate[r.Date] = append(byDate[r.Date], r)
		}
	}

	s := WeekSummary{Week: week}
	for i, day := range week.Days() {
		s.Days[i] = DayBreakdown{Date: day, Worked: worked[day], Absences: byDate[day]}
	}
	return s
}
