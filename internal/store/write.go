package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"cloud.google.com/go/civil"
	"github.com/sirupsen/logrus"

	"github.com/roach88/wad/internal/absence"
)

// Add files record under record.Date.
//
// The date's collection is loaded, the record appended, the collection
// re-sorted by ID and the file rewritten. The year directory is created if
// absent. Duplicate IDs are not detected.
func (s *Store) Add(record absence.Record) error {
	records, err := s.load("add", record.Date)
	if err != nil {
		return err
	}

	records = append(records, record)
	sortByID(records)

	if err := s.save("add", record.Date, records); err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{
		"date": record.Date.String(),
		"id":   record.ID.String(),
	}).Debug("absence added")
	return nil
}

// Remove deletes the record with id from date's collection.
//
// It reports whether a record was removed; false is not an error. When the
// collection becomes empty the date's file is deleted.
func (s *Store) Remove(date civil.Date, id absence.ID) (bool, error) {
	records, err := s.load("remove", date)
	if err != nil {
		return false, err
	}
	if len(records) == 0 {
		// A hand-edited "[]" file is removed too.
		if err := s.deleteFile("remove", date); err != nil {
			return false, err
		}
		return false, nil
	}

	kept := records[:0]
	for _, r := range records {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	removed := len(kept) != len(records)

	if len(kept) == 0 {
		if err := s.deleteFile("remove", date); err != nil {
			return false, err
		}
	} else if removed {
		if err := s.save("remove", date, kept); err != nil {
			return false, err
		}
	}

	s.log.WithFields(logrus.Fields{
		"date":    date.String(),
		"id":      id.String(),
		"removed": removed,
	}).Debug("absence remove")
	return removed, nil
}

// Update replaces the record in date's collection whose ID matches
// record.ID and rewrites the file.
//
// An ID that is not present leaves the collection unchanged; the returned
// bool reports whether a replacement happened. A record whose Date differs
// from date is refused with a ValidationError before anything is read.
func (s *Store) Update(date civil.Date, record absence.Record) (bool, error) {
	if record.Date != date {
		return false, &absence.ValidationError{
			Reason: fmt.Sprintf("record dated %s cannot be filed under %s", record.Date, date),
		}
	}

	records, err := s.load("update", date)
	if err != nil {
		return false, err
	}

	replaced := false
	for i := range records {
		if records[i].ID == record.ID {
			records[i] = record
			replaced = true
			break
		}
	}
	if !replaced {
		s.log.WithFields(logrus.Fields{
			"date": date.String(),
			"id":   record.ID.String(),
		}).Debug("update matched no record")
		return false, nil
	}

	sortByID(records)
	if err := s.save("update", date, records); err != nil {
		return false, err
	}
	return true, nil
}

// save writes a non-empty collection, creating the year directory if needed.
func (s *Store) save(op string, date civil.Date, records []absence.Record) error {
	dir := s.yearDir(date.Year)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return &Error{Code: ErrCodeDirectoryAccess, Op: op, Path: dir, Err: err}
	}

	path := s.FilePath(date)
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return &Error{Code: ErrCodeSerialization, Op: op, Path: path, Err: err}
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, filePerm); err != nil {
		return &Error{Code: ErrCodeWriteFailure, Op: op, Path: path, Err: err}
	}
	return nil
}

func (s *Store) deleteFile(op string, date civil.Date) error {
	path := s.FilePath(date)
	err := os.Remove(path)
	switch {
	case err == nil:
		s.log.WithField("path", path).Debug("removed empty absence file")
	case !errors.Is(err, fs.ErrNotExist):
		return &Error{Code: ErrCodeWriteFailure, Op: op, Path: path, Err: err}
	}
	return nil
}
