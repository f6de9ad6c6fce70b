package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/roach88/wad/internal/absence"
	"github.com/roach88/wad/internal/config"
	"github.com/roach88/wad/internal/editor"
	"github.com/roach88/wad/internal/store"
	"github.com/roach88/wad/internal/watson"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution, including a cancelled selection
	ExitFailure      = 1 // Rejected input: validation failure, unknown record, rejected edit
	ExitCommandError = 2 // Environment failure: store, config, editor or watson unavailable
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
//
// Domain errors map to ExitFailure; store, config, editor and watson errors
// map to ExitCommandError. Anything else is ExitFailure.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitCode(err)
}

// ExitCode classifies an error that is not an ExitError.
func ExitCode(err error) int {
	var (
		storeErr  *store.Error
		configErr *config.Error
		editorErr *editor.Error
		watsonErr *watson.Error
	)
	switch {
	case absence.IsNotFound(err), absence.IsValidation(err):
		return ExitFailure
	case errors.As(err, &configErr):
		if configErr.Code == config.ErrCodeUnknownKey || configErr.Code == config.ErrCodeInvalidValue || configErr.Code == config.ErrCodeSchema {
			return ExitFailure
		}
		return ExitCommandError
	case errors.As(err, &storeErr), errors.As(err, &editorErr), errors.As(err, &watsonErr):
		return ExitCommandError
	default:
		return ExitFailure
	}
}

// errorCode returns a stable machine-readable code for JSON error output.
func errorCode(err error) string {
	var (
		storeErr  *store.Error
		configErr *config.Error
		editorErr *editor.Error
		watsonErr *watson.Error
	)
	switch {
	case absence.IsNotFound(err):
		return "NOT_FOUND"
	case absence.IsValidation(err):
		return "VALIDATION_FAILURE"
	case errors.As(err, &storeErr):
		return string(storeErr.Code)
	case errors.As(err, &configErr):
		return string(configErr.Code)
	case errors.As(err, &editorErr):
		return string(editorErr.Kind)
	case errors.As(err, &watsonErr):
		return string(watsonErr.Code)
	default:
		return "ERROR"
	}
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // Separate writer for verbose/diagnostic output (defaults to Writer)
	Verbose   bool
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status string    `json:"status"`          // "ok", "cancelled", "unchanged" or "error"
	Data   any       `json:"data,omitempty"`  // success payload
	Error  *CLIError `json:"error,omitempty"` // error details
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string `json:"code"`              // "NOT_FOUND", "READ_FAILURE", etc.
	Message string `json:"message"`           // human-readable message
	Details any    `json:"details,omitempty"` // additional context
}

// JSON reports whether output is machine-readable.
func (f *OutputFormatter) JSON() bool {
	return f.Format == "json"
}

// Success outputs a successful result in the configured format.
func (f *OutputFormatter) Success(data any) error {
	return f.status("ok", data)
}

func (f *OutputFormatter) status(status string, data any) error {
	if f.JSON() {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: status,
			Data:   data,
		})
	}

	fmt.Fprintln(f.Writer, data)
	return nil
}

// Cancelled reports an aborted interactive selection. Nothing was changed.
func (f *OutputFormatter) Cancelled() error {
	if f.JSON() {
		return f.status("cancelled", nil)
	}
	fmt.Fprintln(f.Writer, infoText("Selection cancelled"))
	return nil
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string, details any) error {
	if f.JSON() {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error: &CLIError{
				Code:    code,
				Message: message,
				Details: details,
			},
		})
	}

	fmt.Fprintf(f.Writer, "%s [%s]: %s\n", errorText("Error"), code, message)
	if f.Verbose && details != nil {
		fmt.Fprintf(f.Writer, "Details: %v\n", details)
	}
	return nil
}

// Fail reports err in the configured format.
func (f *OutputFormatter) Fail(err error) error {
	return f.Error(errorCode(err), err.Error(), nil)
}

// VerboseLog outputs a message only if verbose mode is enabled.
// When format is JSON, verbose logs go to ErrWriter to avoid corrupting JSON output.
func (f *OutputFormatter) VerboseLog(format string, args ...any) {
	if !f.Verbose {
		return
	}
	fmt.Fprintln(f.GetErrWriter(), verboseText(fmt.Sprintf(format, args...)))
}

// GetErrWriter returns the appropriate writer for diagnostic output.
// Returns ErrWriter if set, otherwise Writer.
func (f *OutputFormatter) GetErrWriter() io.Writer {
	if f.ErrWriter != nil {
		return f.ErrWriter
	}
	return f.Writer
}
