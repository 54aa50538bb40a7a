// Command numtest deals with checking the outputs of numerical code: comparing
// result files within tolerances, running the release build/test/doc pipeline,
// and validating the changelog and generated documentation.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alphaville/numtest/pkg/cliutil"
	"github.com/alphaville/numtest/pkg/pipeline"
)

var argparser = &cobra.Command{
	Use:   "numtest {[flags]|SUBCOMMAND...}",
	Short: "Check the outputs of numerical code",

	Args: cliutil.OnlySubcommands,
	RunE: cliutil.RunSubcommands,

	SilenceErrors: true, // main() will handle this after .ExecuteContext() returns
	SilenceUsage:  true, // our FlagErrorFunc will handle it
}

func init() {
	argparser.SetFlagErrorFunc(cliutil.FlagErrorFunc)
	argparser.SetHelpTemplate(cliutil.HelpTemplate)
}

func main() {
	ctx := context.Background()

	if err := argparser.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(argparser.ErrOrStderr(), "%s: error: %v\n", argparser.CommandPath(), err)
		// A failed pipeline step exits with that step's exit code.
		var stepErr *pipeline.StepError
		if errors.As(err, &stepErr) && stepErr.ExitCode > 0 {
			os.Exit(stepErr.ExitCode)
		}
		os.Exit(1)
	}
}
