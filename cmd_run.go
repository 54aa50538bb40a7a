package main

import (
	"github.com/spf13/cobra"

	"github.com/alphaville/numtest/pkg/cliutil"
	"github.com/alphaville/numtest/pkg/pipeline"
)

func init() {
	var flags struct {
		File string
	}
	cmd := &cobra.Command{
		Use:   "run [flags] [STEP...]",
		Short: "Run the release pipeline",
		Long: "Run the release pipeline: every step in order, stopping at the " +
			"first failure, which becomes the exit code.  With no arguments all " +
			"steps run; naming steps runs just those, in pipeline order.  " +
			"Without --file the built-in build/test/doc pipeline is used.",
		Args: cliutil.WrapPositionalArgs(cobra.ArbitraryArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := pipeline.Default()
			if flags.File != "" {
				var err error
				p, err = pipeline.Load(flags.File)
				if err != nil {
					return err
				}
			}
			if len(args) > 0 {
				var err error
				p, err = p.Select(args)
				if err != nil {
					return cliutil.FlagErrorFunc(cmd, err)
				}
			}
			return p.Run(cmd.Context())
		},
	}
	cmd.Flags().StringVarP(&flags.File, "file", "f", "",
		"Read the pipeline from `PIPELINE_YML` instead of using the built-in one")
	argparser.AddCommand(cmd)
}
