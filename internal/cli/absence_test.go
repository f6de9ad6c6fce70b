package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/wad/internal/absence"
	"github.com/roach88/wad/internal/selection"
	"github.com/roach88/wad/internal/testutil"
)

func seedTwo(h *harness) {
	h.mustRun("absence", "add", "2024-01-15", "8", "vacation", "--note", "Annual leave")
	h.mustRun("absence", "add", "2024-01-15", "4.5", "other:Bereavement")
}

func TestAbsenceAdd(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("absence", "add", "2024-01-15", "8", "vacation", "--note", "Annual leave")
	assert.Contains(t, out, "Added absence:")
	assert.Contains(t, out, testID1.String())
	assert.Contains(t, out, "8 hours | Vacation | Annual leave")
	assert.FileExists(t, filepath.Join(h.dataDir, "absences", "2024", "2024-01-15.json"))
}

func TestAbsenceAdd_RelativeDate(t *testing.T) {
	h := newHarness(t)

	h.mustRun("absence", "add", "yesterday", "1", "sick")
	out := h.mustRun("absence", "show", "2024-01-16")
	assert.Contains(t, out, "1 hour | Sick")
}

func TestAbsenceAdd_InvalidInput(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		validation bool
	}{
		{"negative hours", []string{"2024-01-15", "-1", "vacation"}, true},
		{"negative fractional hours", []string{"2024-01-15", "-0.5", "sick", "--note", "x"}, true},
		{"hours not a number", []string{"2024-01-15", "eight", "vacation"}, false},
		{"unknown type", []string{"2024-01-15", "8", "sabbatical"}, false},
		{"other without label", []string{"2024-01-15", "8", "other:"}, false},
		{"bad date", []string{"15.01.2024", "8", "vacation"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			_, _, err := h.run(append([]string{"absence", "add"}, tt.args...)...)
			require.Error(t, err)
			assert.Equal(t, ExitFailure, GetExitCode(err))
			assert.Equal(t, tt.validation, absence.IsValidation(err), "got %v", err)
			assert.NoDirExists(t, filepath.Join(h.dataDir, "absences", "2024"))
		})
	}
}

func TestAbsenceAdd_TodayFollowsClock(t *testing.T) {
	h := newHarness(t)
	h.clock.Advance(24 * time.Hour)

	h.mustRun("absence", "add", "today", "8", "holiday")
	assert.FileExists(t, filepath.Join(h.dataDir, "absences", "2024", "2024-01-18.json"))
	assert.NoFileExists(t, filepath.Join(h.dataDir, "absences", "2024", "2024-01-17.json"))
}

func TestAbsenceShow_Text(t *testing.T) {
	h := newHarness(t)
	seedTwo(h)

	out := h.mustRun("absence", "show", "2024-01-15")
	assert.Contains(t, out, "Absences for 2024-01-15:")
	assert.Contains(t, out, testID1.String()+" | 8 hours | Vacation | Annual leave")
	assert.Contains(t, out, testID2.String()+" | 4.5 hours | Other: Bereavement")
	assert.Contains(t, out, "Total: 12.5 hours")
}

func TestAbsenceShow_JSON(t *testing.T) {
	h := newHarness(t)
	seedTwo(h)

	out := h.mustRun("--format", "json", "absence", "show", "2024-01-15")
	testutil.AssertGolden(t, "absence_show_json", []byte(out))
}

func TestAbsenceShow_Empty(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("absence", "show", "today")
	assert.Contains(t, out, "No absences found for 2024-01-17")
}

func TestAbsenceRemove_SingleRecord(t *testing.T) {
	h := newHarness(t)
	h.mustRun("absence", "add", "2024-01-15", "8", "vacation")

	out := h.mustRun("absence", "remove", "2024-01-15")
	assert.Contains(t, out, "Removed absence "+testID1.String())
	assert.Zero(t, h.prompter.calls)

	out = h.mustRun("absence", "show", "2024-01-15")
	assert.Contains(t, out, "No absences found")
}

func TestAbsenceRemove_PromptsWhenAmbiguous(t *testing.T) {
	h := newHarness(t)
	seedTwo(h)
	h.prompter.choice = 1

	out := h.mustRun("absence", "remove", "2024-01-15")
	assert.Contains(t, out, "Removed absence "+testID2.String())
	assert.Equal(t, 1, h.prompter.calls)
	assert.Contains(t, h.prompter.label, "Multiple absences found for 2024-01-15")
	assert.Len(t, h.prompter.options, 2)

	out = h.mustRun("absence", "show", "2024-01-15")
	assert.Contains(t, out, testID1.String())
	assert.NotContains(t, out, testID2.String())
}

func TestAbsenceRemove_ByID(t *testing.T) {
	h := newHarness(t)
	seedTwo(h)

	h.mustRun("absence", "remove", "2024-01-15", "--id", testID1.String())
	assert.Zero(t, h.prompter.calls)

	out := h.mustRun("absence", "show", "2024-01-15")
	assert.NotContains(t, out, testID1.String())
	assert.Contains(t, out, testID2.String())
}

func TestAbsenceRemove_Cancelled(t *testing.T) {
	h := newHarness(t)
	seedTwo(h)
	h.prompter.err = selection.ErrPromptCancelled

	out := h.mustRun("absence", "remove", "2024-01-15")
	assert.Contains(t, out, "Selection cancelled")

	out = h.mustRun("absence", "show", "2024-01-15")
	assert.Contains(t, out, testID1.String())
	assert.Contains(t, out, testID2.String())
}

func TestAbsenceRemove_Errors(t *testing.T) {
	tests := []struct {
		name string
		seed bool
		args []string
	}{
		{"no records", false, []string{"2024-01-15"}},
		{"unknown id", true, []string{"2024-01-15", "--id", testID3.String()}},
		{"malformed id", true, []string{"2024-01-15", "--id", "not-an-id"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			if tt.seed {
				seedTwo(h)
			}
			_, _, err := h.run(append([]string{"absence", "remove"}, tt.args...)...)
			require.Error(t, err)
			assert.Equal(t, ExitFailure, GetExitCode(err))
		})
	}
}

func TestAbsenceEdit_Updates(t *testing.T) {
	h := newHarness(t)
	h.mustRun("absence", "add", "2024-01-15", "8", "vacation")
	h.env.Launcher = launcherFunc(func(_ context.Context, path string) error {
		return os.WriteFile(path, []byte(`{
  "id": "`+testID1.String()+`",
  "date": "2024-01-15",
  "hours": 6,
  "absence_type": "Holiday",
  "note": "Public holiday"
}`), 0o600)
	})

	out := h.mustRun("absence", "edit", "2024-01-15")
	assert.Contains(t, out, "Updated absence:")

	out = h.mustRun("absence", "show", "2024-01-15")
	assert.Contains(t, out, "6 hours | Holiday | Public holiday")
}

func TestAbsenceEdit_BlankNoteIsDropped(t *testing.T) {
	h := newHarness(t)
	h.mustRun("absence", "add", "2024-01-15", "8", "vacation", "--note", "Annual leave")
	h.env.Launcher = launcherFunc(func(_ context.Context, path string) error {
		return os.WriteFile(path, []byte(`{"id":"`+testID1.String()+`","date":"2024-01-15","hours":8,"absence_type":"Vacation","note":"   "}`), 0o600)
	})

	h.mustRun("absence", "edit", "2024-01-15")

	data, err := os.ReadFile(filepath.Join(h.dataDir, "absences", "2024", "2024-01-15.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"note": null`)
	assert.NotContains(t, string(data), `"   "`)
}

func TestAbsenceEdit_Unchanged(t *testing.T) {
	h := newHarness(t)
	h.mustRun("absence", "add", "2024-01-15", "8", "vacation")

	out := h.mustRun("absence", "edit", "2024-01-15")
	assert.Contains(t, out, "No changes made to absence "+testID1.String())
}

func TestAbsenceEdit_Rejected(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"date changed", `{"id":"` + testID1.String() + `","date":"2024-01-16","hours":8,"absence_type":"Vacation","note":null}`},
		{"negative hours", `{"id":"` + testID1.String() + `","date":"2024-01-15","hours":-2,"absence_type":"Vacation","note":null}`},
		{"id changed", `{"id":"` + testID2.String() + `","date":"2024-01-15","hours":8,"absence_type":"Vacation","note":null}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.mustRun("absence", "add", "2024-01-15", "8", "vacation")
			h.env.Launcher = launcherFunc(func(_ context.Context, path string) error {
				return os.WriteFile(path, []byte(tt.content), 0o600)
			})

			_, _, err := h.run("absence", "edit", "2024-01-15")
			require.Error(t, err)
			assert.Equal(t, ExitFailure, GetExitCode(err))
			assert.Contains(t, err.Error(), "edit rejected")

			out := h.mustRun("absence", "show", "2024-01-15")
			assert.Contains(t, out, testID1.String()+" | 8 hours | Vacation")
		})
	}
}

func TestAbsenceEdit_MalformedJSON(t *testing.T) {
	h := newHarness(t)
	h.mustRun("absence", "add", "2024-01-15", "8", "vacation")
	h.env.Launcher = launcherFunc(func(_ context.Context, path string) error {
		return os.WriteFile(path, []byte("{not json"), 0o600)
	})

	_, _, err := h.run("absence", "edit", "2024-01-15")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestAbsenceList(t *testing.T) {
	h := newHarness(t)
	seedTwo(h)
	h.mustRun("absence", "add", "2023-12-29", "8", "holiday")

	out := h.mustRun("absence", "list", "--year", "2024")
	assert.Contains(t, out, "Absences in 2024:")
	assert.Contains(t, out, testID1.String())
	assert.NotContains(t, out, testID3.String())
	assert.Contains(t, out, "Total: 12.5 hours")

	out = h.mustRun("absence", "list", "--year", "2022")
	assert.Contains(t, out, "No absences found in 2022")
}

func TestAbsencePath(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("absence", "path")
	assert.Contains(t, out, filepath.Join(h.dataDir, "absences"))
}
