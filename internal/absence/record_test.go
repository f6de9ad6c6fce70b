package absence

import (
	"encoding/json"
	"testing"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, s string) civil.Date {
	t.Helper()
	d, err := civil.ParseDate(s)
	require.NoError(t, err)
	return d
}

func newTestRecord(t *testing.T, date string, typ Type, hours float64, note string) Record {
	t.Helper()
	r, err := NewRecord(UUIDv7Generator{}, mustDate(t, date), hours, typ, note)
	require.NoError(t, err)
	return r
}

func TestRecord_JSONRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		date  string
		typ   Type
		hours float64
		note  string
	}{
		{"vacation with note", "2024-01-15", Vacation, 8, "Annual leave"},
		{"sick half day no note", "2024-01-16", Sick, 4, ""},
		{"overtime reduction", "2024-01-17", OvertimeReduction, 8, "Comp time"},
		{"holiday", "2024-01-18", Holiday, 8, "New Year's Day"},
		{"bereavement", "2024-01-19", Other("Bereavement"), 8, "Family emergency"},
		{"mental health day", "2024-01-20", Other("Mental Health Day"), 4, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := newTestRecord(t, tt.date, tt.typ, tt.hours, tt.note)

			data, err := json.MarshalIndent(record, "", "  ")
			require.NoError(t, err)

			var decoded Record
			require.NoError(t, json.Unmarshal(data, &decoded))
			assert.True(t, record.Equal(decoded), "round trip changed record:\n%s", data)
		})
	}
}

func TestRecord_JSONFieldNames(t *testing.T) {
	record := newTestRecord(t, "2024-01-15", Vacation, 8, "Annual leave")

	data, err := json.Marshal(record)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.Equal(t, record.ID.String(), fields["id"])
	assert.Equal(t, "2024-01-15", fields["date"])
	assert.Equal(t, 8.0, fields["hours"])
	assert.Equal(t, "Vacation", fields["absence_type"])
	assert.Equal(t, "Annual leave", fields["note"])
}

func TestRecord_NilNoteEncodesNull(t *testing.T) {
	record := newTestRecord(t, "2024-01-16", Sick, 4, "   ")
	assert.Nil(t, record.Note)

	data, err := json.Marshal(record)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"note":null`)
}

func TestRecord_UnmarshalMissingFields(t *testing.T) {
	id := NewID().String()
	tests := []struct {
		name    string
		json    string
		missing string
	}{
		{"no id", `{"date":"2024-01-15","hours":8,"absence_type":"Sick"}`, "id"},
		{"no date", `{"id":"` + id + `","hours":8,"absence_type":"Sick"}`, "date"},
		{"no hours", `{"id":"` + id + `","date":"2024-01-15","absence_type":"Sick"}`, "hours"},
		{"no type", `{"id":"` + id + `","date":"2024-01-15","hours":8}`, "absence_type"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r Record
			err := json.Unmarshal([]byte(tt.json), &r)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.missing)
		})
	}
}

func TestRecord_UnmarshalNoteOptional(t *testing.T) {
	id := NewID()
	var r Record
	err := json.Unmarshal([]byte(`{"id":"`+id.String()+`","date":"2024-01-15","hours":8,"absence_type":"Holiday"}`), &r)
	require.NoError(t, err)
	assert.Equal(t, id, r.ID)
	assert.Nil(t, r.Note)
}

func TestRecord_UnmarshalNormalizesNote(t *testing.T) {
	tests := []struct {
		name string
		note string
		want *string
	}{
		{"null", `null`, nil},
		{"empty", `""`, nil},
		{"blank", `"   "`, nil},
		{"padded", `"  Annual leave "`, ptr("Annual leave")},
		{"decomposed", `"Cafe\u0301"`, ptr("Caf\u00e9")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r Record
			err := json.Unmarshal([]byte(`{"id":"`+NewID().String()+`","date":"2024-01-15","hours":8,"absence_type":"Holiday","note":`+tt.note+`}`), &r)
			require.NoError(t, err)
			assert.Equal(t, tt.want, r.Note)
		})
	}
}

func ptr(s string) *string { return &s }

func TestRecord_UnmarshalRejectsUnknownField(t *testing.T) {
	var r Record
	err := json.Unmarshal([]byte(`{"id":"`+NewID().String()+`","date":"2024-01-15","huors":8,"hours":8,"absence_type":"Sick"}`), &r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "huors")
}

func TestNewRecord_RejectsNegativeHours(t *testing.T) {
	_, err := NewRecord(UUIDv7Generator{}, mustDate(t, "2024-01-15"), -1, Vacation, "")
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Contains(t, err.Error(), "hours must be >= 0")
}

func TestNewRecord_RejectsInvalidType(t *testing.T) {
	_, err := NewRecord(UUIDv7Generator{}, mustDate(t, "2024-01-15"), 8, Type{}, "")
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestNewRecord_UsesGenerator(t *testing.T) {
	id := NewID()
	r, err := NewRecord(NewFixedGenerator(id), mustDate(t, "2024-01-15"), 8, Vacation, "  Annual leave ")
	require.NoError(t, err)
	assert.Equal(t, id, r.ID)
	assert.Equal(t, "Annual leave", r.NoteText())
}

func TestRecord_Equal(t *testing.T) {
	base := newTestRecord(t, "2024-01-15", Vacation, 8, "Annual leave")

	same := base
	note := "Annual leave"
	same.Note = &note
	assert.True(t, base.Equal(same), "distinct note pointers with equal text are equal")

	changes := map[string]func(r *Record){
		"id":    func(r *Record) { r.ID = NewID() },
		"date":  func(r *Record) { r.Date = r.Date.AddDays(1) },
		"hours": func(r *Record) { r.Hours = 4 },
		"type":  func(r *Record) { r.Type = Sick },
		"note":  func(r *Record) { r.Note = nil },
	}
	for name, change := range changes {
		t.Run(name, func(t *testing.T) {
			edited := base
			change(&edited)
			assert.False(t, base.Equal(edited))
		})
	}
}

func TestRecord_Validate(t *testing.T) {
	original := newTestRecord(t, "2024-01-15", Vacation, 8, "Annual leave")

	t.Run("accepts field changes", func(t *testing.T) {
		edited := original
		edited.Hours = 4
		edited.Type = Other("Comp day")
		edited.Note = nil
		assert.NoError(t, edited.Validate(original))
	})

	t.Run("rejects changed id", func(t *testing.T) {
		edited := original
		edited.ID = NewID()
		err := edited.Validate(original)
		require.Error(t, err)
		assert.True(t, IsValidation(err))
		assert.Contains(t, err.Error(), "id cannot be changed")
	})

	t.Run("rejects negative hours", func(t *testing.T) {
		edited := original
		edited.Hours = -0.5
		err := edited.Validate(original)
		require.Error(t, err)
		assert.True(t, IsValidation(err))
		assert.Contains(t, err.Error(), "hours must be >= 0")
	})

	t.Run("rejects changed date", func(t *testing.T) {
		edited := original
		edited.Date = original.Date.AddDays(1)
		err := edited.Validate(original)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "date cannot be changed")
	})

	t.Run("zero hours allowed", func(t *testing.T) {
		edited := original
		edited.Hours = 0
		assert.NoError(t, edited.Validate(original))
	})
}

func TestRecord_String(t *testing.T) {
	r := newTestRecord(t, "2024-01-15", Vacation, 8, "Annual leave")
	assert.Equal(t, r.ID.String()+" | 8 hours | Vacation | Annual leave", r.String())

	r.Note = nil
	r.Hours = 1
	assert.Equal(t, r.ID.String()+" | 1 hour | Vacation", r.String())
}

func TestFormatHours(t *testing.T) {
	assert.Equal(t, "8 hours", FormatHours(8))
	assert.Equal(t, "4.5 hours", FormatHours(4.5))
	assert.Equal(t, "1 hour", FormatHours(1))
	assert.Equal(t, "0 hours", FormatHours(0))
}

func TestNotFoundError(t *testing.T) {
	date := mustDate(t, "2024-01-15")
	err := &NotFoundError{Date: date}
	assert.Equal(t, "no absences found for 2024-01-15", err.Error())
	assert.True(t, IsNotFound(err))

	id := NewID()
	err = &NotFoundError{Date: date, ID: &id}
	assert.Contains(t, err.Error(), id.String())
}
