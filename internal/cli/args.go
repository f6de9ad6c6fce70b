package cli

import (
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// positionalNegatives rewrites args so that negative numbers such as "-1"
// reach the command as arguments instead of being parsed as shorthand
// flags. Command names and flags are kept in front of a "--" and the
// remaining arguments follow it in their original order.
//
// Args that already contain "--" or no negative number are returned as is.
func positionalNegatives(root *cobra.Command, args []string) []string {
	if !slices.ContainsFunc(args, isNegativeNumber) || slices.Contains(args, "--") {
		return args
	}
	target, _, err := root.Find(args)
	if err != nil {
		return args
	}

	var path []*cobra.Command
	for c := target; c != nil && c != root; c = c.Parent() {
		path = append([]*cobra.Command{c}, path...)
	}

	var lead, flags, positional []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case isNegativeNumber(arg) || !strings.HasPrefix(arg, "-"):
			if len(positional) == 0 && len(path) > 0 && (arg == path[0].Name() || path[0].HasAlias(arg)) {
				lead = append(lead, arg)
				path = path[1:]
				continue
			}
			positional = append(positional, arg)
		default:
			flags = append(flags, arg)
			if takesValue(target, arg) && i+1 < len(args) {
				i++
				flags = append(flags, args[i])
			}
		}
	}

	out := make([]string, 0, len(args)+1)
	out = append(out, lead...)
	out = append(out, flags...)
	out = append(out, "--")
	return append(out, positional...)
}

func isNegativeNumber(s string) bool {
	if len(s) < 2 || s[0] != '-' || (s[1] != '.' && (s[1] < '0' || s[1] > '9')) {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// takesValue reports whether flag consumes the following argument.
func takesValue(cmd *cobra.Command, flag string) bool {
	if strings.Contains(flag, "=") {
		return false
	}

	var f *pflag.Flag
	for _, set := range []*pflag.FlagSet{cmd.Flags(), cmd.InheritedFlags(), cmd.PersistentFlags()} {
		if name, ok := strings.CutPrefix(flag, "--"); ok {
			f = set.Lookup(name)
		} else if len(flag) == 2 {
			f = set.ShorthandLookup(flag[1:])
		}
		if f != nil {
			break
		}
	}
	return f != nil && f.NoOptDefVal == ""
}
