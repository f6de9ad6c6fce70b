package store

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"cloud.google.com/go/civil"
	"github.com/sirupsen/logrus"
)

const (
	absencesDirName = "absences"
	dirPerm         = 0o755
	filePerm        = 0o644
)

// Store is the absence ledger rooted at a data directory.
//
// The store is a capability object: everything it touches lives under root,
// and it holds no other state.
type Store struct {
	root string
	log  logrus.FieldLogger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for debug events.
func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Store) {
		s.log = log
	}
}

// Open returns a store rooted at root, creating the directory if needed.
//
// This function is idempotent - safe to call multiple times.
func Open(root string, opts ...Option) (*Store, error) {
	s := &Store{root: root, log: discardLogger()}
	for _, opt := range opts {
		opt(s)
	}

	if err := os.MkdirAll(root, dirPerm); err != nil {
		return nil, &Error{Code: ErrCodeDirectoryAccess, Op: "open", Path: root, Err: err}
	}
	return s, nil
}

// Root returns the data directory.
func (s *Store) Root() string {
	return s.root
}

// AbsencesDir returns the directory holding the year shards.
func (s *Store) AbsencesDir() string {
	return filepath.Join(s.root, absencesDirName)
}

func (s *Store) yearDir(year int) string {
	return filepath.Join(s.AbsencesDir(), fmt.Sprintf("%04d", year))
}

// FilePath returns the file a date's records are stored in.
func (s *Store) FilePath(date civil.Date) string {
	return filepath.Join(s.yearDir(date.Year), date.String()+".json")
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
