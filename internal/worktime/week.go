// Package worktime combines tracked Watson time with recorded absences into
// daily and weekly totals.
package worktime

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"
)

// Week runs from Monday (Start) to Sunday (End), inclusive.
type Week struct {
	Start civil.Date
	End   civil.Date
}

// NewWeek returns the week starting on monday.
func NewWeek(monday civil.Date) Week {
	return Week{Start: monday, End: monday.AddDays(6)}
}

// WeekOf returns the week containing day.
func WeekOf(day civil.Date) Week {
	wd := day.In(time.UTC).Weekday()
	sinceMonday := (int(wd) + 6) % 7
	return NewWeek(day.AddDays(-sinceMonday))
}

// Offset returns the week n weeks before w. Negative n moves forward.
func (w Week) Offset(n int) Week {
	return NewWeek(w.Start.AddDays(-7 * n))
}

// LastNWeeks returns the n weeks ending with the week containing today,
// oldest first.
func LastNWeeks(today civil.Date, n int) []Week {
	if n <= 0 {
		return nil
	}
	current := WeekOf(today)
	weeks := make([]Week, n)
	for i := 0; i < n; i++ {
		weeks[n-1-i] = current.Offset(i)
	}
	return weeks
}

// Days returns the seven dates of w.
func (w Week) Days() [7]civil.Date {
	var days [7]civil.Date
	for i := range days {
		days[i] = w.Start.AddDays(i)
	}
	return days
}

// Contains reports whether d falls within w.
func (w Week) Contains(d civil.Date) bool {
	return !d.Before(w.Start) && !d.After(w.End)
}

// Short renders w as "15.01 - 21.01".
func (w Week) Short() string {
	return fmt.Sprintf("%02d.%02d - %02d.%02d", w.Start.Day, int(w.Start.Month), w.End.Day, int(w.End.Month))
}

// Long renders w as "15 - 21. January 2024", or
// "29. January - 4. February 2024" when the week spans two months.
func (w Week) Long() string {
	if w.Start.Month == w.End.Month {
		return fmt.Sprintf("%d - %d. %s %d", w.Start.Day, w.End.Day, w.Start.Month, w.Start.Year)
	}
	return fmt.Sprintf("%d. %s - %d. %s %d", w.Start.Day, w.Start.Month, w.End.Day, w.End.Month, w.Start.Year)
}

func (w Week) String() string {
	return w.Long()
}
