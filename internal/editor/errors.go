package editor

import (
	"errors"
	"fmt"
)

// ErrorKind categorizes hard failures of an edit session.
type ErrorKind string

const (
	// KindSerialization indicates the value could not be encoded, or the
	// edited file could not be parsed back.
	KindSerialization ErrorKind = "SERIALIZATION_FAILURE"

	// KindTempFile indicates the scratch file could not be created, written or read.
	KindTempFile ErrorKind = "TEMP_FILE"

	// KindEditorExecution indicates the editor could not be started or exited non-zero.
	KindEditorExecution ErrorKind = "EDITOR_EXECUTION"
)

// Error is a hard failure of an edit session. The store is never touched when
// a session fails.
type Error struct {
	Kind ErrorKind
	Path string
	Err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind returns true if err is or wraps an editor Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var ee *Error
	if errors.As(err, &ee) {
		return ee.Kind == kind
	}
	return false
}
