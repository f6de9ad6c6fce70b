package absence

import (
	"errors"
	"fmt"

	"cloud.google.com/go/civil"
)

// NotFoundError reports that no record exists for a date, or that none on
// the date carries the requested identifier.
type NotFoundError struct {
	Date civil.Date
	ID   *ID
}

func (e *NotFoundError) Error() string {
	if e.ID != nil {
		return fmt.Sprintf("no absence with id %s found for %s", e.ID, e.Date)
	}
	return fmt.Sprintf("no absences found for %s", e.Date)
}

// ValidationError carries the human-readable reason an edit or input was rejected.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Reason
}

// IsNotFound returns true if err is or wraps a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsValidation returns true if err is or wraps a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
