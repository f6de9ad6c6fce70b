package absence

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/go-playground/validator/v10"
)

// Record is a single logged absence.
type Record struct {
	ID    ID         `json:"id"`
	Date  civil.Date `json:"date"`
	Hours float64    `json:"hours" validate:"gte=0"`
	Type  Type       `json:"absence_type"`
	Note  *string    `json:"note"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report JSON names so reasons match what the user sees in the editor.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// NewRecord creates a record with a freshly minted identifier.
//
// The note is normalized; an empty note is stored as absent.
func NewRecord(gen IDGenerator, date civil.Date, hours float64, typ Type, note string) (Record, error) {
	r := Record{
		Date:  date,
		Hours: hours,
		Type:  typ,
		Note:  normalizeNote(note),
	}
	if err := r.Check(); err != nil {
		return Record{}, err
	}
	r.ID = gen.Generate()
	return r, nil
}

func normalizeNote(note string) *string {
	note = NormalizeText(note)
	if note == "" {
		return nil
	}
	return &note
}

// Check verifies the record's own field constraints.
func (r Record) Check() error {
	if !r.Date.IsValid() {
		return &ValidationError{Reason: fmt.Sprintf("date %s is not a valid calendar day", r.Date)}
	}
	if !r.Type.IsValid() {
		return &ValidationError{Reason: "absence_type is not a known absence type"}
	}
	if err := validate.Struct(r); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			if fe.Tag() == "gte" {
				return &ValidationError{Reason: fmt.Sprintf("%s must be >= %s, got %v", fe.Field(), fe.Param(), fe.Value())}
			}
			return &ValidationError{Reason: fmt.Sprintf("%s failed %q constraint", fe.Field(), fe.Tag())}
		}
		return fmt.Errorf("validate record: %w", err)
	}
	return nil
}

// Equal reports field-for-field equality.
func (r Record) Equal(other Record) bool {
	if r.ID != other.ID || r.Date != other.Date || r.Hours != other.Hours || r.Type != other.Type {
		return false
	}
	if r.Note == nil || other.Note == nil {
		return r.Note == nil && other.Note == nil
	}
	return *r.Note == *other.Note
}

// Validate decides whether r may replace original after an edit.
// The identifier and date must be unchanged and the fields must pass Check.
func (r Record) Validate(original Record) error {
	if r.ID != original.ID {
		return &ValidationError{Reason: fmt.Sprintf("id cannot be changed (was %s, got %s)", original.ID, r.ID)}
	}
	if r.Date != original.Date {
		return &ValidationError{Reason: fmt.Sprintf("date cannot be changed (was %s, got %s); remove and re-add the absence instead", original.Date, r.Date)}
	}
	return r.Check()
}

// NoteText returns the note or "".
func (r Record) NoteText() string {
	if r.Note == nil {
		return ""
	}
	return *r.Note
}

// String renders the record on one line; used for selection menus.
func (r Record) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s | %s | %s", r.ID, FormatHours(r.Hours), r.Type)
	if note := r.NoteText(); note != "" {
		fmt.Fprintf(&b, " | %s", note)
	}
	return b.String()
}

// FormatHours renders hours as "8 hours", "1 hour", "4.5 hours".
func FormatHours(h float64) string {
	s := strconv.FormatFloat(h, 'f', -1, 64)
	if h == 1 {
		return s + " hour"
	}
	return s + " hours"
}

type recordJSON struct {
	ID    *ID         `json:"id"`
	Date  *civil.Date `json:"date"`
	Hours *float64    `json:"hours"`
	Type  *Type       `json:"absence_type"`
	Note  *string     `json:"note"`
}

// UnmarshalJSON decodes a record, rejecting unknown fields and requiring
// every field except note. The note is normalized as in NewRecord.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw recordJSON
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	switch {
	case raw.ID == nil:
		return errMissingField("id")
	case raw.Date == nil:
		return errMissingField("date")
	case raw.Hours == nil:
		return errMissingField("hours")
	case raw.Type == nil:
		return errMissingField("absence_type")
	}

	*r = Record{
		ID:    *raw.ID,
		Date:  *raw.Date,
		Hours: *raw.Hours,
		Type:  *raw.Type,
	}
	if raw.Note != nil {
		r.Note = normalizeNote(*raw.Note)
	}
	return nil
}

func errMissingField(name string) error {
	return fmt.Errorf("missing field %q", name)
}
