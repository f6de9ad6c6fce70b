package editor

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/kballard/go-shellquote"
)

// DefaultEditor is used when neither VISUAL nor EDITOR is set.
const DefaultEditor = "vi"

// Launcher opens path in an editor and blocks until the editor exits.
type Launcher interface {
	Launch(ctx context.Context, path string) error
}

// CommandLauncher runs an external editor attached to the terminal.
type CommandLauncher struct {
	// Editor is the command line to run. Empty means ResolveEditor().
	Editor string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// ResolveEditor returns $VISUAL, then $EDITOR, then DefaultEditor.
func ResolveEditor() string {
	for _, key := range []string{"VISUAL", "EDITOR"} {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			return v
		}
	}
	return DefaultEditor
}

// Launch runs the editor with path appended to its arguments. There is no
// timeout; the call returns when the editor exits.
func (l CommandLauncher) Launch(ctx context.Context, path string) error {
	line := l.Editor
	if line == "" {
		line = ResolveEditor()
	}

	args, err := shellquote.Split(line)
	if err != nil {
		return fmt.Errorf("parse editor command %q: %w", line, err)
	}
	if len(args) == 0 {
		return fmt.Errorf("editor command is empty")
	}

	cmd := exec.CommandContext(ctx, args[0], append(args[1:], path)...)
	cmd.Stdin, cmd.Stdout, cmd.Stderr = os.Stdin, os.Stdout, os.Stderr
	if l.Stdin != nil {
		cmd.Stdin = l.Stdin
	}
	if l.Stdout != nil {
		cmd.Stdout = l.Stdout
	}
	if l.Stderr != nil {
		cmd.Stderr = l.Stderr
	}

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("run %s: %w", args[0], err)
	}
	return nil
}
