package cli

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/require"

	"github.com/roach88/wad/internal/absence"
	"github.com/roach88/wad/internal/spinner"
	"github.com/roach88/wad/internal/testutil"
	"github.com/roach88/wad/internal/watson"
)

// fakePrompter answers every prompt with a fixed choice or error.
type fakePrompter struct {
	choice  int
	err     error
	calls   int
	label   string
	options []string
}

func (p *fakePrompter) Choose(label string, options []string) (int, error) {
	p.calls++
	p.label = label
	p.options = options
	return p.choice, p.err
}

type launcherFunc func(ctx context.Context, path string) error

func (f launcherFunc) Launch(ctx context.Context, path string) error { return f(ctx, path) }

// fakeWatson returns the canned frames that start within the queried range.
type fakeWatson struct {
	frames   watson.Frames
	err      error
	unusable bool
	queries  []watson.LogQuery
}

func (w *fakeWatson) Usable(context.Context) bool { return !w.unusable }

func (w *fakeWatson) Log(_ context.Context, q watson.LogQuery) (watson.Frames, error) {
	w.queries = append(w.queries, q)
	if w.err != nil {
		return nil, w.err
	}
	var out watson.Frames
	for _, f := range w.frames {
		day := civil.DateOf(f.Start)
		if !day.Before(q.From) && !day.After(q.To) {
			out = append(out, f)
		}
	}
	return out, nil
}

var (
	testNow = time.Date(2024, 1, 17, 12, 0, 0, 0, time.UTC)
	testID1 = mustID("018d0b7e-6a00-7000-8000-000000000001")
	testID2 = mustID("018d0b7e-6a00-7000-8000-000000000002")
	testID3 = mustID("018d0b7e-6a00-7000-8000-000000000003")
)

func mustID(s string) absence.ID {
	id, err := absence.ParseID(s)
	if err != nil {
		panic(err)
	}
	return id
}

type harness struct {
	t          *testing.T
	env        *Env
	prompter   *fakePrompter
	watson     *fakeWatson
	clock      *testutil.FixedClock
	dataDir    string
	configPath string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	for _, key := range []string{"WORKHOURS_PER_WEEK", "DAILY_WORKTIME_LOW", "DAILY_WORKTIME_MEDIUM", "DAILY_WORKTIME_GOOD", "DATA_DIR"} {
		t.Setenv("WAD_"+key, "")
	}

	dir := t.TempDir()
	h := &harness{
		t:          t,
		prompter:   &fakePrompter{},
		watson:     &fakeWatson{},
		clock:      testutil.NewFixedClock(testNow),
		dataDir:    filepath.Join(dir, "data"),
		configPath: filepath.Join(dir, "config", "config.yaml"),
	}
	h.env = &Env{
		Now:       h.clock.Now,
		Location:  time.UTC,
		IDs:       absence.NewFixedGenerator(testID1, testID2, testID3),
		Prompter:  h.prompter,
		Launcher:  launcherFunc(func(context.Context, string) error { return nil }),
		Watson:    h.watson,
		Spinner:   spinner.Config{Debounce: time.Hour, Writer: io.Discard},
		TempDir:   t.TempDir(),
		LogOutput: io.Discard,
	}
	return h
}

// run executes the CLI with isolated data and config locations.
func (h *harness) run(args ...string) (string, string, error) {
	h.t.Helper()
	cmd := NewRootCommandWithEnv(h.env)
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	err := executeArgs(context.Background(), cmd, append([]string{"--data-dir", h.dataDir, "--config", h.configPath, "--no-color"}, args...))
	return stdout.String(), stderr.String(), err
}

func (h *harness) mustRun(args ...string) string {
	h.t.Helper()
	out, _, err := h.run(args...)
	require.NoError(h.t, err)
	return out
}
