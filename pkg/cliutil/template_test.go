package cliutil_test

import (
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"

	"github.com/alphaville/numtest/pkg/cliutil"
)

//nolint:paralleltest // can't use .Parallel() with .Setenv()
func TestHelpTemplate(t *testing.T) {
	t.Setenv("COLUMNS", "200")
	noopRunE := func(_ *cobra.Command, _ []string) error {
		return nil
	}

	cmd := &cobra.Command{
		Use:   "frobnicate [flags] INPUT",
		Args:  cobra.ExactArgs(1),
		Short: "One line description, no period",
		Long:  "Longer description of the program.",
		RunE:  noopRunE,
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "sub [flags]",
		Args:  cobra.NoArgs,
		Short: "Do the sub thing",
		RunE:  noopRunE,
	})
	cmd.SetHelpTemplate(cliutil.HelpTemplate)

	var out strings.Builder
	cmd.SetOutput(&out)
	cmd.HelpFunc()(cmd, []string{"--help"})

	expected := "" +
		"Usage: frobnicate [flags] INPUT\n" +
		"One line description, no period\n" +
		"\n" +
		"Longer description of the program.\n" +
		"\n" +
		"Available Commands:\n" +
		"  sub           Do the sub thing\n" +
		"\n" +
		"Use \"frobnicate [command] --help\" for more information about a command.\n"
	assert.Equal(t, expected, out.String())
}
