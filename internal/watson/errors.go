package watson

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes Watson failures.
type ErrorCode string

const (
	// ErrCodeCommandNotFound indicates the watson executable is missing.
	ErrCodeCommandNotFound ErrorCode = "COMMAND_NOT_FOUND"

	// ErrCodeCommandFailed indicates watson exited with an error.
	ErrCodeCommandFailed ErrorCode = "COMMAND_FAILED"

	// ErrCodeVersionParse indicates unexpected `watson --version` output.
	ErrCodeVersionParse ErrorCode = "VERSION_PARSE"

	// ErrCodeDecode indicates `watson log --json` output could not be decoded.
	ErrCodeDecode ErrorCode = "DECODE_FAILURE"
)

// Error is a Watson failure.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch e.Code {
	case ErrCodeCommandNotFound:
		return "watson command not found - please install Watson CLI"
	case ErrCodeCommandFailed:
		return fmt.Sprintf("watson command failed: %s", e.Message)
	case ErrCodeVersionParse:
		return fmt.Sprintf("failed to parse watson version: %s", e.Message)
	}
	return fmt.Sprintf("%s: %v", e.Code, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsCode returns true if err is or wraps a watson Error with the given code.
func IsCode(err error, code ErrorCode) bool {
	var we *Error
	if errors.As(err, &we) {
		return we.Code == code
	}
	return false
}
