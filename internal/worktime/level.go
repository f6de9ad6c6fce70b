package worktime

import (
	"time"

	"github.com/roach88/wad/internal/absence"
)

// Level grades a duration against configured thresholds.
type Level int

const (
	// LevelNone is at or below the low threshold.
	LevelNone Level = iota
	// LevelLow is above low but below medium.
	LevelLow
	// LevelMedium is at least medium but below good.
	LevelMedium
	// LevelGood is at least good.
	LevelGood
)

func (l Level) String() string {
	switch l {
	case LevelLow:
		return "low"
	case LevelMedium:
		return "medium"
	case LevelGood:
		return "good"
	default:
		return "none"
	}
}

// Thresholds are the daily grading boundaries.
type Thresholds struct {
	Low    time.Duration
	Medium time.Duration
	Good   time.Duration
	// Weekly is the target for a whole week.
	Weekly time.Duration
}

// NewThresholds converts hour settings to durations.
func NewThresholds(low, medium, good, weekly float64) Thresholds {
	return Thresholds{
		Low:    absence.HoursDuration(low),
		Medium: absence.HoursDuration(medium),
		Good:   absence.HoursDuration(good),
		Weekly: absence.HoursDuration(weekly),
	}
}

// Day grades one day's total.
func (t Thresholds) Day(d time.Duration) Level {
	switch {
	case d >= t.Good:
		return LevelGood
	case d >= t.Medium:
		return LevelMedium
	case d > t.Low:
		return LevelLow
	default:
		return LevelNone
	}
}

// Week grades a weekly total: good at the weekly target, medium at half of it.
func (t Thresholds) Week(d time.Duration) Level {
	switch {
	case d <= 0:
		return LevelNone
	case d >= t.Weekly:
		return LevelGood
	case d >= t.Weekly/2:
		return LevelMedium
	default:
		return LevelLow
	}
}
