package watson

import (
	"fmt"
	"sort"
	"time"

	"cloud.google.com/go/civil"
)

// Frame is one tracked interval as reported by `watson log --json`.
type Frame struct {
	ID      string     `json:"id"`
	Project string     `json:"project"`
	Start   time.Time  `json:"start"`
	Stop    *time.Time `json:"stop,omitempty"`
	Tags    []string   `json:"tags"`
}

// Active reports whether the frame is still running.
func (f Frame) Active() bool {
	return f.Stop == nil
}

// Duration returns Stop-Start, or now-Start for an active frame.
func (f Frame) Duration(now time.Time) time.Duration {
	if f.Stop != nil {
		return f.Stop.Sub(f.Start)
	}
	return now.Sub(f.Start)
}

// FormatClock renders d as H:MM:SS.
func FormatClock(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	s := (d % time.Minute) / time.Second
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}

// Frames is a list of frames.
type Frames []Frame

// TotalDuration sums the frame durations.
func (fs Frames) TotalDuration(now time.Time) time.Duration {
	var total time.Duration
	for _, f := range fs {
		total += f.Duration(now)
	}
	return total
}

// Active returns the running frames.
func (fs Frames) Active() Frames {
	var out Frames
	for _, f := range fs {
		if f.Active() {
			out = append(out, f)
		}
	}
	return out
}

// HasActive reports whether any frame is running.
func (fs Frames) HasActive() bool {
	for _, f := range fs {
		if f.Active() {
			return true
		}
	}
	return false
}

// ByProject groups frames by project name.
func (fs Frames) ByProject() map[string]Frames {
	out := make(map[string]Frames)
	for _, f := range fs {
		out[f.Project] = append(out[f.Project], f)
	}
	return out
}

// Projects returns the project names in alphabetical order.
func (fs Frames) Projects() []string {
	seen := make(map[string]bool)
	var names []string
	for _, f := range fs {
		if !seen[f.Project] {
			seen[f.Project] = true
			names = append(names, f.Project)
		}
	}
	sort.Strings(names)
	return names
}

// ByDate groups frames by the calendar day they start on in loc.
func (fs Frames) ByDate(loc *time.Location) map[civil.Date]Frames {
	out := make(map[civil.Date]Frames)
	for _, f := range fs {
		d := civil.DateOf(f.Start.In(loc))
		out[d] = append(out[d], f)
	}
	return out
}

// DurationsByDate sums frame durations per start day in loc.
func (fs Frames) DurationsByDate(loc *time.Location, now time.Time) map[civil.Date]time.Duration {
	out := make(map[civil.Date]time.Duration)
	for d, group := range fs.ByDate(loc) {
		out[d] = group.TotalDuration(now)
	}
	return out
}
