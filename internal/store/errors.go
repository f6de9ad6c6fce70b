package store

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes store failures.
type ErrorCode string

const (
	// ErrCodeDirectoryAccess indicates a data or shard directory could not be created or listed.
	ErrCodeDirectoryAccess ErrorCode = "DIRECTORY_ACCESS"

	// ErrCodeReadFailure indicates a date file exists but could not be read.
	ErrCodeReadFailure ErrorCode = "READ_FAILURE"

	// ErrCodeWriteFailure indicates a date file could not be written or removed.
	ErrCodeWriteFailure ErrorCode = "WRITE_FAILURE"

	// ErrCodeSerialization indicates malformed file content or an unencodable record.
	ErrCodeSerialization ErrorCode = "SERIALIZATION_FAILURE"
)

// Error is a tagged store failure.
type Error struct {
	Code ErrorCode
	Op   string // "open", "get", "add", "remove", "update", "dates"
	Path string
	Err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s %s: %v", e.Code, e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsCode returns true if err is or wraps a store Error with the given code.
func IsCode(err error, code ErrorCode) bool {
	var se *Error
	if errors.As(err, &se) {
		return se.Code == code
	}
	return false
}
