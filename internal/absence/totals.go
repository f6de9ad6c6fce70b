package absence

import (
	"math"
	"time"

	"cloud.google.com/go/civil"
)

// HoursDuration converts fractional hours to a duration in whole minutes.
func HoursDuration(hours float64) time.Duration {
	return time.Duration(math.Round(hours*60)) * time.Minute
}

// TotalHours sums the hours of records.
func TotalHours(records []Record) float64 {
	var total float64
	for _, r := range records {
		total += r.Hours
	}
	return total
}

// TotalDuration sums the records' durations.
// Each record is rounded to whole minutes before summing.
func TotalDuration(records []Record) time.Duration {
	var total time.Duration
	for _, r := range records {
		total += HoursDuration(r.Hours)
	}
	return total
}

// DurationsByDate sums record durations per date.
func DurationsByDate(records []Record) map[civil.Date]time.Duration {
	totals := make(map[civil.Date]time.Duration)
	for _, r := range records {
		totals[r.Date] += HoursDuration(r.Hours)
	}
	return totals
}
