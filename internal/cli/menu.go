package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/wad/internal/selection"
)

// menuEntry marks commands that can run without arguments from the menu.
var menuEntry = map[string]string{"menu": "true"}

type menuItem struct {
	label string
	cmd   *cobra.Command
}

// menuItems collects annotated commands in registration order.
func menuItems(root *cobra.Command) []menuItem {
	var items []menuItem
	var walk func(c *cobra.Command)
	walk = func(c *cobra.Command) {
		for _, sub := range c.Commands() {
			if sub.Annotations["menu"] == "true" && sub.RunE != nil {
				items = append(items, menuItem{
					label: fmt.Sprintf("%s - %s", sub.CommandPath()[len(root.Name())+1:], sub.Short),
					cmd:   sub,
				})
			}
			walk(sub)
		}
	}
	walk(root)
	return items
}

// runMenu lets the user pick a command interactively.
func runMenu(opts *RootOptions, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	if f.JSON() {
		return NewExitError(ExitFailure, "the command menu is not available with --format json")
	}

	fmt.Fprintln(cmd.OutOrStdout(), headerText(appDescription))
	fmt.Fprintln(cmd.OutOrStdout())

	items := menuItems(cmd)
	labels := make([]string, len(items))
	for i, item := range items {
		labels[i] = item.label
	}

	choice, err := opts.env.Prompter.Choose("Select a command", labels)
	if errors.Is(err, selection.ErrPromptCancelled) {
		return f.Cancelled()
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "menu prompt failed", err)
	}
	if choice < 0 || choice >= len(items) {
		return NewExitError(ExitCommandError, fmt.Sprintf("menu choice %d out of range", choice))
	}

	sub := items[choice].cmd
	opts.logger().WithField("command", sub.CommandPath()).Debug("running command from menu")
	sub.SetContext(cmd.Context())
	return sub.RunE(sub, nil)
}
