// Package selection resolves a date, plus an optional explicit identifier, to
// exactly one absence record.
//
// Resolution rules:
//   - No records on the date: *absence.NotFoundError.
//   - Explicit id: the exact match, or *absence.NotFoundError.
//   - No id and one record: that record, without prompting.
//   - No id and several records: an interactive single-choice prompt. If the
//     user cancels, the Result has StatusCancelled; this is not an error and
//     callers should exit quietly without mutating anything.
package selection

import (
	"errors"
	"fmt"

	"cloud.google.com/go/civil"

	"github.com/roach88/wad/internal/absence"
)

// ErrPromptCancelled is returned by a Prompter when the user aborts the prompt.
var ErrPromptCancelled = errors.New("selection cancelled")

// Prompter asks the user to pick one of several options.
type Prompter interface {
	// Choose returns the index of the chosen option, or ErrPromptCancelled.
	Choose(label string, options []string) (int, error)
}

// Source provides a date's records ordered by ID. *store.Store satisfies it.
type Source interface {
	Get(date civil.Date) ([]absence.Record, error)
}

// Status is the outcome of a selection.
type Status int

const (
	StatusSelected Status = iota + 1
	StatusCancelled
)

func (s Status) String() string {
	switch s {
	case StatusSelected:
		return "selected"
	case StatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Result is a selection outcome. Record is set only when Status is StatusSelected.
type Result struct {
	Status Status
	Record absence.Record
}

// Cancelled reports whether the user aborted the prompt.
func (r Result) Cancelled() bool {
	return r.Status == StatusCancelled
}

// Selector resolves dates to records.
type Selector struct {
	Source   Source
	Prompter Prompter
}

// Select resolves date and the optional id to one record.
func (s *Selector) Select(date civil.Date, id *absence.ID) (Result, error) {
	records, err := s.Source.Get(date)
	if err != nil {
		return Result{}, err
	}
	if len(records) == 0 {
		return Result{}, &absence.NotFoundError{Date: date}
	}

	if id != nil {
		for _, r := range records {
			if r.ID == *id {
				return Result{Status: StatusSelected, Record: r}, nil
			}
		}
		return Result{}, &absence.NotFoundError{Date: date, ID: id}
	}

	if len(records) == 1 {
		return Result{Status: StatusSelected, Record: records[0]}, nil
	}

	options := make([]string, len(records))
	for i, r := range records {
		options[i] = r.String()
	}

	label := fmt.Sprintf("Multiple absences found for %s. Select one", date)
	idx, err := s.Prompter.Choose(label, options)
	if errors.Is(err, ErrPromptCancelled) {
		return Result{Status: StatusCancelled}, nil
	}
	if err != nil {
		return Result{}, fmt.Errorf("select absence: %w", err)
	}
	if idx < 0 || idx >= len(records) {
		return Result{}, fmt.Errorf("select absence: choice %d out of range", idx)
	}
	return Result{Status: StatusSelected, Record: records[idx]}, nil
}
