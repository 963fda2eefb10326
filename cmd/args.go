package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// splitDir removes the optional <dir> written before the subcommand.
// The first positional argument is the directory unless it names a command;
// a directory that shares a command name has to be written as ./name.
func splitDir(root *cobra.Command, args []string) (string, []string) {
	flags := root.PersistentFlags()

	for i := 0; i < len(args); i++ {
		arg := args[i]

		switch {
		case arg == "--":
			return "", args
		case strings.HasPrefix(arg, "--"):
			if !strings.Contains(arg, "=") && takesValue(flags.Lookup(arg[2:])) {
				i++
			}
			continue
		case strings.HasPrefix(arg, "-") && len(arg) > 1:
			if shorthandTakesValue(flags, arg[1:]) {
				i++
			}
			continue
		}

		if isCommand(root, arg) {
			return "", args
		}

		rest := make([]string, 0, len(args)-1)
		rest = append(rest, args[:i]...)
		rest = append(rest, args[i+1:]...)
		return arg, rest
	}

	return "", args
}

// takesValue reports whether a flag consumes the following argument
func takesValue(f *pflag.Flag) bool {
	return f != nil && f.NoOptDefVal == ""
}

// shorthandTakesValue handles grouped shorthands such as -rf.
// Only the last shorthand of a group can take the next argument.
func shorthandTakesValue(flags *pflag.FlagSet, group string) bool {
	for j := 0; j < len(group); j++ {
		f := flags.ShorthandLookup(group[j : j+1])
		if !takesValue(f) {
			continue
		}
		// -xVALUE carries its value inline
		return j == len(group)-1
	}
	return false
}

func isCommand(root *cobra.Command, name string) bool {
	for _, c := range root.Commands() {
		if c.Name() == name || c.HasAlias(name) {
			return true
		}
	}
	return name == "help" || name == "completion"
}
