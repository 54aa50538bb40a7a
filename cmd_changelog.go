package main

import (
	"fmt"
	"os"

	"github.com/datawire/dlib/derror"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/alphaville/numtest/pkg/changelog"
	"github.com/alphaville/numtest/pkg/cliutil"
)

var argparserChangelog = &cobra.Command{
	Use:   "changelog {[flags]|SUBCOMMAND...}",
	Short: "Inspect the changelog",

	Args: cliutil.OnlySubcommands,
	RunE: cliutil.RunSubcommands,
}

func init() {
	argparserChangelog.PersistentFlags().StringP("file", "f", "CHANGELOG.md",
		"Read the changelog from `FILENAME`")
	argparser.AddCommand(argparserChangelog)
}

func openChangelog(cmd *cobra.Command) (*changelog.Changelog, error) {
	filename, err := cmd.Flags().GetString("file")
	if err != nil {
		return nil, err
	}
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return changelog.Parse(file)
}

func init() {
	cmd := &cobra.Command{
		Use:   "latest [flags] >SUMMARY.yml",
		Short: "Summarize the newest released version",
		Args:  cliutil.WrapPositionalArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openChangelog(cmd)
			if err != nil {
				return err
			}
			rel := c.Latest()
			if rel == nil {
				return fmt.Errorf("changelog has no released versions")
			}

			var summary struct {
				Version  string
				Date     string `yaml:",omitempty"`
				Yanked   bool   `yaml:",omitempty"`
				Sections []struct {
					Kind  string
					Items []string
				} `yaml:",omitempty"`
			}
			summary.Version = rel.Version.String()
			summary.Date = rel.Date
			summary.Yanked = rel.Yanked
			for _, section := range rel.Sections {
				summary.Sections = append(summary.Sections, struct {
					Kind  string
					Items []string
				}{section.Kind, section.Items})
			}

			bs, err := yaml.Marshal(summary)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(bs)
			return err
		},
	}
	argparserChangelog.AddCommand(cmd)
}

func init() {
	cmd := &cobra.Command{
		Use:   "lint [flags]",
		Short: "Check the changelog against the conventions",
		Args:  cliutil.WrapPositionalArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openChangelog(cmd)
			if err != nil {
				return err
			}
			if errs := c.Lint(); len(errs) > 0 {
				return derror.MultiError(errs)
			}
			return nil
		},
	}
	argparserChangelog.AddCommand(cmd)
}
