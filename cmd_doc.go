package main

import (
	"fmt"

	"github.com/datawire/dlib/dlog"
	"github.com/spf13/cobra"

	"github.com/alphaville/numtest/pkg/cliutil"
	"github.com/alphaville/numtest/pkg/doccheck"
)

var argparserDoc = &cobra.Command{
	Use:   "doc {[flags]|SUBCOMMAND...}",
	Short: "Work with generated documentation",

	Args: cliutil.OnlySubcommands,
	RunE: cliutil.RunSubcommands,
}

func init() {
	argparser.AddCommand(argparserDoc)
}

func init() {
	cmd := &cobra.Command{
		Use:   "verify DIRECTORY",
		Short: "Verify a generated HTML documentation tree",
		Long: "Verify the HTML documentation tree that the pipeline's doc step " +
			"generated: the entry page must exist and be titled, and relative " +
			"links must resolve inside the tree.",
		Args: cliutil.WrapPositionalArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			report, err := doccheck.Check(ctx, args[0])
			if err != nil {
				return err
			}
			dlog.Infof(ctx, "%q: %d pages", report.Title, report.Pages)
			if !report.OK() {
				return fmt.Errorf("documentation tree %q has %d dangling references",
					args[0], len(report.Dangling))
			}
			return nil
		},
	}
	argparserDoc.AddCommand(cmd)
}
