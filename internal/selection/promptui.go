package selection

import (
	"errors"
	"io"

	"github.com/manifoldco/promptui"
)

// PromptUI is the terminal Prompter.
type PromptUI struct {
	// Stdin and Stdout default to the process terminal when nil.
	Stdin  io.ReadCloser
	Stdout io.WriteCloser
	// Size is the number of visible options; defaults to 10.
	Size int
}

// Choose shows an arrow-key menu. Ctrl-C, Ctrl-D and abort map to ErrPromptCancelled.
func (p PromptUI) Choose(label string, options []string) (int, error) {
	size := p.Size
	if size <= 0 {
		size = 10
	}

	sel := promptui.Select{
		Label:  label,
		Items:  options,
		Size:   size,
		Stdin:  p.Stdin,
		Stdout: p.Stdout,
	}
	idx, _, err := sel.Run()
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) || errors.Is(err, promptui.ErrAbort) {
		return -1, ErrPromptCancelled
	}
	if err != nil {
		return -1, err
	}
	return idx, nil
}
