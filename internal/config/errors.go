package config

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes config failures.
type ErrorCode string

const (
	ErrCodeDirAccess     ErrorCode = "CONFIG_DIR_ACCESS"
	ErrCodeRead          ErrorCode = "CONFIG_READ"
	ErrCodeWrite         ErrorCode = "CONFIG_WRITE"
	ErrCodeSerialization ErrorCode = "CONFIG_SERIALIZATION"
	ErrCodeInvalidValue  ErrorCode = "INVALID_VALUE"
	ErrCodeUnknownKey    ErrorCode = "UNKNOWN_KEY"
	ErrCodeSchema        ErrorCode = "SCHEMA_VIOLATION"
)

// Error is a config failure.
type Error struct {
	Code  ErrorCode
	Path  string
	Key   string
	Value string
	Err   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch e.Code {
	case ErrCodeUnknownKey:
		return fmt.Sprintf("unknown config key: %s", e.Key)
	case ErrCodeInvalidValue:
		return fmt.Sprintf("invalid value for %s: %s", e.Key, e.Value)
	case ErrCodeSchema:
		return fmt.Sprintf("invalid config: %v", e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Code, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsCode returns true if err is or wraps a config Error with the given code.
func IsCode(err error, code ErrorCode) bool {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Code == code
	}
	return false
}
