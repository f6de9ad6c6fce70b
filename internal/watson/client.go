// Package watson queries the Watson time tracker through its command line.
package watson

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/sirupsen/logrus"
)

// DefaultBinary is the Watson executable name looked up on PATH.
const DefaultBinary = "watson"

const versionPrefix = "Watson, version "

// Runner executes a command and captures its output.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

// ExecRunner runs real processes.
type ExecRunner struct{}

// Run implements Runner.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

// Client talks to the Watson CLI.
type Client struct {
	binary string
	runner Runner
	log    logrus.FieldLogger
}

// Option configures a Client.
type Option func(*Client)

// WithRunner replaces the process runner.
func WithRunner(r Runner) Option {
	return func(c *Client) { c.runner = r }
}

// WithBinary sets the Watson executable.
func WithBinary(name string) Option {
	return func(c *Client) { c.binary = name }
}

// WithLogger sets the logger used for debug events.
func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Client) { c.log = log }
}

// NewClient returns a client for the watson binary on PATH.
func NewClient(opts ...Option) *Client {
	c := &Client{
		binary: DefaultBinary,
		runner: ExecRunner{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		c.log = l
	}
	return c
}

func (c *Client) run(ctx context.Context, args ...string) ([]byte, error) {
	c.log.WithField("args", args).Debug("running watson")
	stdout, stderr, err := c.runner.Run(ctx, c.binary, args...)
	if err == nil {
		return stdout, nil
	}

	var execErr *exec.Error
	if errors.Is(err, exec.ErrNotFound) || errors.As(err, &execErr) {
		return nil, &Error{Code: ErrCodeCommandNotFound, Err: err}
	}
	msg := strings.TrimSpace(string(stderr))
	if msg == "" {
		msg = err.Error()
	}
	return nil, &Error{Code: ErrCodeCommandFailed, Message: msg, Err: err}
}

// Version is a Watson release number.
type Version struct {
	Major, Minor, Patch int
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// ParseVersion parses "Watson, version X.Y.Z".
func ParseVersion(s string) (Version, error) {
	s = strings.TrimSpace(s)
	rest, ok := strings.CutPrefix(s, versionPrefix)
	if !ok {
		return Version{}, &Error{Code: ErrCodeVersionParse, Message: fmt.Sprintf("invalid version format: %s", s)}
	}

	parts := strings.Split(rest, ".")
	if len(parts) != 3 {
		return Version{}, &Error{Code: ErrCodeVersionParse, Message: fmt.Sprintf("expected 3 version parts, got %d", len(parts))}
	}

	var nums [3]int
	for i, name := range []string{"major", "minor", "patch"} {
		n, err := strconv.Atoi(parts[i])
		if err != nil || n < 0 {
			return Version{}, &Error{Code: ErrCodeVersionParse, Message: fmt.Sprintf("invalid %s version: %s", name, parts[i])}
		}
		nums[i] = n
	}
	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

// Version runs `watson --version`.
func (c *Client) Version(ctx context.Context) (Version, error) {
	out, err := c.run(ctx, "--version")
	if err != nil {
		return Version{}, err
	}
	return ParseVersion(string(out))
}

// Usable reports whether Watson runs and identifies itself.
func (c *Client) Usable(ctx context.Context) bool {
	v, err := c.Version(ctx)
	if err != nil {
		c.log.WithError(err).Debug("watson not usable")
		return false
	}
	c.log.WithField("version", v.String()).Debug("watson found")
	return true
}

// LogQuery selects frames for `watson log`.
type LogQuery struct {
	From, To       civil.Date
	IncludeCurrent bool
}

// DayQuery returns a query for a single day.
func DayQuery(day civil.Date) LogQuery {
	return LogQuery{From: day, To: day}
}

// Args returns the watson command line for q.
func (q LogQuery) Args() []string {
	args := []string{"log", "--from", q.From.String(), "--to", q.To.String(), "--json"}
	if q.IncludeCurrent {
		args = append(args, "--current")
	}
	return args
}

// Log returns the frames matching q.
func (c *Client) Log(ctx context.Context, q LogQuery) (Frames, error) {
	out, err := c.run(ctx, q.Args()...)
	if err != nil {
		return nil, err
	}
	out = bytes.TrimSpace(out)
	if len(out) == 0 {
		return Frames{}, nil
	}

	var frames Frames
	if err := json.Unmarshal(out, &frames); err != nil {
		return nil, &Error{Code: ErrCodeDecode, Err: err}
	}
	if frames == nil {
		frames = Frames{}
	}
	c.log.WithField("count", len(frames)).Debug("watson frames loaded")
	return frames, nil
}
