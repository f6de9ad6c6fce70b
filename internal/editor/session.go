// Package editor runs the edit-in-external-editor protocol.
//
// A session serializes a value to a scratch file, hands the file to an
// external editor, reads it back by path, and classifies the result:
//
//	Opened -> EditedRaw -> Validated | Rejected | Unchanged
//
// Parse failures and editor failures are hard errors (*Error). Rejected and
// Unchanged are outcomes, not errors. Only a Validated outcome carries a value
// that callers may persist. The scratch file is removed on every exit path.
package editor

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Document is a value that can be edited as JSON.
type Document[T any] interface {
	// Equal reports whether the value is field-for-field equal to other.
	Equal(other T) bool
	// Validate decides whether the value may replace original.
	Validate(original T) error
}

// Status classifies a finished session.
type Status int

const (
	StatusValidated Status = iota + 1
	StatusRejected
	StatusUnchanged
)

func (s Status) String() string {
	switch s {
	case StatusValidated:
		return "validated"
	case StatusRejected:
		return "rejected"
	case StatusUnchanged:
		return "unchanged"
	default:
		return "unknown"
	}
}

// Outcome is the result of a session.
type Outcome[T any] struct {
	Status Status
	// Value is the edited value; only meaningful when Status is StatusValidated.
	Value T
	// Err is the validation error when Status is StatusRejected.
	Err error
}

// Reason returns the rejection message, or "".
func (o Outcome[T]) Reason() string {
	if o.Err == nil {
		return ""
	}
	return o.Err.Error()
}

// Session edits values through a Launcher.
type Session[T Document[T]] struct {
	launcher Launcher
	tempDir  string
	log      logrus.FieldLogger
}

// Option configures a Session.
type Option func(*options)

type options struct {
	tempDir string
	log     logrus.FieldLogger
}

// WithTempDir sets where scratch files are created. Default is os.TempDir().
func WithTempDir(dir string) Option {
	return func(o *options) { o.tempDir = dir }
}

// WithLogger sets the logger used for debug events.
func WithLogger(log logrus.FieldLogger) Option {
	return func(o *options) { o.log = log }
}

// NewSession returns a session that opens scratch files with launcher.
func NewSession[T Document[T]](launcher Launcher, opts ...Option) *Session[T] {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		o.log = l
	}
	return &Session[T]{launcher: launcher, tempDir: o.tempDir, log: o.log}
}

// Edit runs one edit of original.
func (s *Session[T]) Edit(ctx context.Context, original T) (Outcome[T], error) {
	data, err := json.MarshalIndent(original, "", "  ")
	if err != nil {
		return Outcome[T]{}, &Error{Kind: KindSerialization, Err: err}
	}
	data = append(data, '\n')

	f, err := os.CreateTemp(s.tempDir, "wad-*.json")
	if err != nil {
		return Outcome[T]{}, &Error{Kind: KindTempFile, Err: err}
	}
	path := f.Name()
	defer func() {
		if rmErr := os.Remove(path); rmErr != nil && !os.IsNotExist(rmErr) {
			s.log.WithError(rmErr).WithField("path", path).Warn("remove scratch file")
		}
	}()

	if _, err := f.Write(data); err != nil {
		f.Close()
		return Outcome[T]{}, &Error{Kind: KindTempFile, Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return Outcome[T]{}, &Error{Kind: KindTempFile, Path: path, Err: err}
	}

	log := s.log.WithField("path", path)
	log.Debug("launching editor")
	if err := s.launcher.Launch(ctx, path); err != nil {
		return Outcome[T]{}, &Error{Kind: KindEditorExecution, Path: path, Err: err}
	}

	// Editors commonly save by writing a new file and renaming it over the
	// old one, so read by path.
	edited, err := os.ReadFile(path)
	if err != nil {
		return Outcome[T]{}, &Error{Kind: KindTempFile, Path: path, Err: err}
	}

	var value T
	if err := json.Unmarshal(edited, &value); err != nil {
		return Outcome[T]{}, &Error{Kind: KindSerialization, Path: path, Err: err}
	}

	if value.Equal(original) {
		log.Debug("no changes")
		return Outcome[T]{Status: StatusUnchanged}, nil
	}
	if err := value.Validate(original); err != nil {
		log.WithError(err).Debug("edit rejected")
		return Outcome[T]{Status: StatusRejected, Err: err}, nil
	}

	log.Debug("edit validated")
	return Outcome[T]{Status: StatusValidated, Value: value}, nil
}
