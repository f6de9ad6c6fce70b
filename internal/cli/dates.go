package cli

import (
	"fmt"
	"strings"

	"cloud.google.com/go/civil"

	"github.com/roach88/wad/internal/absence"
)

// parseDate accepts YYYY-MM-DD, today, yesterday and tomorrow.
func parseDate(s string, today civil.Date) (civil.Date, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "today":
		return today, nil
	case "yesterday":
		return today.AddDays(-1), nil
	case "tomorrow":
		return today.AddDays(1), nil
	}
	d, err := civil.ParseDate(strings.TrimSpace(s))
	if err != nil || !d.IsValid() {
		return civil.Date{}, NewExitError(ExitFailure, fmt.Sprintf("invalid date %q: use YYYY-MM-DD, 'today', 'yesterday', or 'tomorrow'", s))
	}
	return d, nil
}

// parseIDFlag parses an optional --id value; empty means none.
func parseIDFlag(s string) (*absence.ID, error) {
	if s == "" {
		return nil, nil
	}
	id, err := absence.ParseID(s)
	if err != nil {
		return nil, WrapExitError(ExitFailure, fmt.Sprintf("invalid id %q", s), err)
	}
	return &id, nil
}
