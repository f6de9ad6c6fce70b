package store

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"slices"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/sirupsen/logrus"

	"github.com/roach88/wad/internal/absence"
)

// Get returns the records filed under date, ordered by ID ascending.
//
// A date without a file yields an empty slice and no error.
func (s *Store) Get(date civil.Date) ([]absence.Record, error) {
	records, err := s.load("get", date)
	if err != nil {
		return nil, err
	}
	sortByID(records)
	return records, nil
}

// Range returns all records filed between from and to inclusive, ordered by
// date and then by ID.
func (s *Store) Range(from, to civil.Date) ([]absence.Record, error) {
	var all []absence.Record
	for d := from; !d.After(to); d = d.AddDays(1) {
		records, err := s.Get(d)
		if err != nil {
			return nil, err
		}
		all = append(all, records...)
	}
	if all == nil {
		all = []absence.Record{}
	}
	return all, nil
}

// Dates returns the dates in year that have at least one record, ascending.
// Files whose names are not dates are ignored.
func (s *Store) Dates(year int) ([]civil.Date, error) {
	dir := s.yearDir(year)
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return []civil.Date{}, nil
	}
	if err != nil {
		return nil, &Error{Code: ErrCodeDirectoryAccess, Op: "dates", Path: dir, Err: err}
	}

	dates := make([]civil.Date, 0, len(entries))
	for _, entry := range entries {
		name, ok := strings.CutSuffix(entry.Name(), ".json")
		if entry.IsDir() || !ok {
			continue
		}
		d, err := civil.ParseDate(name)
		if err != nil || d.Year != year {
			continue
		}
		dates = append(dates, d)
	}
	slices.SortFunc(dates, compareDates)
	return dates, nil
}

// load reads a date's collection as stored, without re-sorting.
func (s *Store) load(op string, date civil.Date) ([]absence.Record, error) {
	path := s.FilePath(date)

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return []absence.Record{}, nil
	}
	if err != nil {
		return nil, &Error{Code: ErrCodeReadFailure, Op: op, Path: path, Err: err}
	}

	var records []absence.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, &Error{Code: ErrCodeSerialization, Op: op, Path: path, Err: err}
	}
	if records == nil {
		records = []absence.Record{}
	}

	s.log.WithFields(logrus.Fields{
		"date":  date.String(),
		"path":  path,
		"count": len(records),
	}).Debug("loaded absence file")
	return records, nil
}

func sortByID(records []absence.Record) {
	slices.SortStableFunc(records, func(a, b absence.Record) int {
		return a.ID.Compare(b.ID)
	})
}

func compareDates(a, b civil.Date) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	default:
		return 0
	}
}
