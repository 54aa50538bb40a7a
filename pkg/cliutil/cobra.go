// Package cliutil contains glue for setting up cobra the way we like it.
package cliutil

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// Usage errors exit 2, leaving 0 for success and everything else for
// execution errors.
const usageExitCode = 2

// FlagErrorFunc is for (*cobra.Command).SetFlagErrorFunc.  It prints the
// usage error and a pointer at --help to stderr, then exits; it never
// returns.  That leaves (*cobra.Command).Execute returning only execution
// errors, which main can map to exit codes without guessing which kind it
// got.
func FlagErrorFunc(cmd *cobra.Command, err error) error {
	if err == nil {
		return nil
	}

	msg := strings.TrimRight(err.Error(), "\n")
	if strings.Contains(msg, "\n") {
		// give the --help hint its own block below a multi-line error
		msg += "\n"
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\nTry '%s --help' for more information.\n",
		cmd.CommandPath(), msg, cmd.CommandPath())
	os.Exit(usageExitCode)
	return nil
}

// WrapPositionalArgs routes a cobra.PositionalArgs validator's errors through
// FlagErrorFunc, so that bad positional arguments and bad flags report the
// same way.
func WrapPositionalArgs(inner cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		return FlagErrorFunc(cmd, inner(cmd, args))
	}
}

// OnlySubcommands is a cobra.PositionalArgs for commands that do nothing
// themselves.  Unlike cobra.NoArgs it blames the unknown subcommand rather
// than "extra arguments", and suggests near misses.
func OnlySubcommands(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return nil
	}
	if cmd.SuggestionsMinimumDistance <= 0 {
		cmd.SuggestionsMinimumDistance = 2
	}
	err := fmt.Errorf("unknown subcommand %q", args[0])
	if suggestions := cmd.SuggestionsFor(args[0]); len(suggestions) > 0 {
		err = fmt.Errorf("%w\nDid you mean this?\n\t%s", err, strings.Join(suggestions, "\n\t"))
	}
	return cmd.FlagErrorFunc()(cmd, err)
}

// RunSubcommands is a cobra.Command.RunE for commands that exist only to
// hold subcommands.  With RunE unset cobra treats a bare invocation as
// success; here it prints help to stderr and exits as a usage error instead.
func RunSubcommands(cmd *cobra.Command, args []string) error {
	cmd.SetOutput(cmd.ErrOrStderr())
	cmd.HelpFunc()(cmd, args)
	os.Exit(usageExitCode)
	return nil
}
