package absence

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Kind enumerates the closed set of absence categories plus the open Other case.
type Kind int

const (
	KindVacation Kind = iota + 1
	KindSick
	KindOvertimeReduction
	KindHoliday
	KindOther
)

// Type is the absence category: one of the fixed kinds, or Other with a label.
//
// The zero Type is invalid. Construct values with the package variables or Other.
type Type struct {
	kind  Kind
	label string
}

var (
	Vacation          = Type{kind: KindVacation}
	Sick              = Type{kind: KindSick}
	OvertimeReduction = Type{kind: KindOvertimeReduction}
	Holiday           = Type{kind: KindHoliday}
)

// tag names are the persisted variant names.
var tagNames = map[Kind]string{
	KindVacation:          "Vacation",
	KindSick:              "Sick",
	KindOvertimeReduction: "OvertimeReduction",
	KindHoliday:           "Holiday",
	KindOther:             "Other",
}

// Other returns the open variant carrying a free-text label.
func Other(label string) Type {
	return Type{kind: KindOther, label: NormalizeText(label)}
}

// Kind returns the variant.
func (t Type) Kind() Kind { return t.kind }

// Label returns the Other label, or "" for fixed kinds.
func (t Type) Label() string { return t.label }

// IsValid reports whether t is one of the known variants. Other requires a label.
func (t Type) IsValid() bool {
	switch t.kind {
	case KindVacation, KindSick, KindOvertimeReduction, KindHoliday:
		return t.label == ""
	case KindOther:
		return t.label != ""
	default:
		return false
	}
}

// String returns a human-readable name.
func (t Type) String() string {
	switch t.kind {
	case KindVacation:
		return "Vacation"
	case KindSick:
		return "Sick"
	case KindOvertimeReduction:
		return "Overtime reduction"
	case KindHoliday:
		return "Holiday"
	case KindOther:
		return "Other: " + t.label
	default:
		return "Unknown"
	}
}

// ParseType parses the command-line spelling of a type:
// vacation, sick, overtime-reduction, holiday, or other:<label>.
func ParseType(s string) (Type, error) {
	switch strings.ToLower(s) {
	case "vacation":
		return Vacation, nil
	case "sick":
		return Sick, nil
	case "overtime-reduction":
		return OvertimeReduction, nil
	case "holiday":
		return Holiday, nil
	}
	if len(s) >= len("other:") && strings.EqualFold(s[:len("other:")], "other:") {
		t := Other(s[len("other:"):])
		if !t.IsValid() {
			return Type{}, fmt.Errorf("custom absence type needs a label, e.g. other:bereavement")
		}
		return t, nil
	}
	return Type{}, fmt.Errorf("invalid absence type %q: use vacation, sick, overtime-reduction, holiday, or other:<label>", s)
}

// MarshalJSON encodes fixed kinds as a bare string and Other as {"Other": label}.
func (t Type) MarshalJSON() ([]byte, error) {
	if !t.IsValid() {
		return nil, fmt.Errorf("cannot encode invalid absence type")
	}
	if t.kind == KindOther {
		return json.Marshal(map[string]string{tagNames[KindOther]: t.label})
	}
	return json.Marshal(tagNames[t.kind])
}

// UnmarshalJSON accepts the encodings produced by MarshalJSON.
func (t *Type) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		for kind, tag := range tagNames {
			if tag == name && kind != KindOther {
				*t = Type{kind: kind}
				return nil
			}
		}
		return fmt.Errorf("unknown absence type %q", name)
	}

	var tagged map[string]string
	if err := json.Unmarshal(data, &tagged); err != nil {
		return fmt.Errorf("absence type must be a variant name or {\"Other\": \"label\"}: %w", err)
	}
	label, ok := tagged[tagNames[KindOther]]
	if len(tagged) != 1 || !ok {
		return fmt.Errorf("absence type object must have exactly one key %q", tagNames[KindOther])
	}
	other := Other(label)
	if !other.IsValid() {
		return fmt.Errorf("custom absence type label must not be empty")
	}
	*t = other
	return nil
}
