package worktime

import (
	"fmt"
	"strings"
	"time"
)

// FormatHHMM renders d as "HH:MM", truncating seconds.
func FormatHHMM(d time.Duration) string {
	h := int64(d / time.Hour)
	m := int64(d%time.Hour) / int64(time.Minute)
	return fmt.Sprintf("%02d:%02d", h, m)
}

// FormatLong renders d as "2 hours and 5 minutes", "1 hour", "0 minutes".
func FormatLong(d time.Duration) string {
	h := int64(d / time.Hour)
	m := int64(d%time.Hour) / int64(time.Minute)

	switch {
	case h == 0 && m == 0:
		return "0 minutes"
	case h == 0:
		return plural(m, "minute")
	case m == 0:
		return plural(h, "hour")
	default:
		return plural(h, "hour") + " and " + plural(m, "minute")
	}
}

func plural(n int64, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// FormatSplit renders a day as worked time followed by absence time, e.g.
// "06:30 + 01:30 absence". Days without absences render as "06:30".
func FormatSplit(b DayBreakdown) string {
	var sb strings.Builder
	sb.WriteString(FormatHHMM(b.Worked))
	if len(b.Absences) > 0 {
		sb.WriteString(" + ")
		sb.WriteString(FormatHHMM(b.AbsenceDuration()))
		sb.WriteString(" absence")
	}
	return sb.String()
}
