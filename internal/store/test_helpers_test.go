package store

import (
	"testing"

	"cloud.google.com/go/civil"

	"github.com/roach88/wad/internal/absence"
)

// createTestStore creates a store rooted in a fresh temporary directory.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	return s
}

func mustDate(t *testing.T, s string) civil.Date {
	t.Helper()
	d, err := civil.ParseDate(s)
	if err != nil {
		t.Fatalf("ParseDate(%q) failed: %v", s, err)
	}
	return d
}

func mustID(t *testing.T, s string) absence.ID {
	t.Helper()
	id, err := absence.ParseID(s)
	if err != nil {
		t.Fatalf("ParseID(%q) failed: %v", s, err)
	}
	return id
}

// createTestRecord creates a record with a fresh identifier and a fixed note.
func createTestRecord(t *testing.T, date string, typ absence.Type, hours float64) absence.Record {
	t.Helper()
	r, err := absence.NewRecord(absence.UUIDv7Generator{}, mustDate(t, date), hours, typ, "Test record")
	if err != nil {
		t.Fatalf("NewRecord() failed: %v", err)
	}
	return r
}
