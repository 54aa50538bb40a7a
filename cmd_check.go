package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/datawire/dlib/dlog"
	"github.com/spf13/cobra"

	"github.com/alphaville/numtest/pkg/cliutil"
	"github.com/alphaville/numtest/pkg/numcheck"
)

func init() {
	relTol := cliutil.PositiveFloat(1e-6)
	absTol := cliutil.PositiveFloat(1e-9)
	cmd := &cobra.Command{
		Use:   "check [flags] EXPECTED_FILE ACTUAL_FILE",
		Short: "Compare two result files within tolerances",
		Long: "Compare two files of floating-point results, one value per line " +
			"('#' starts a comment).  The files match when they have the same " +
			"number of entries, no NaNs, and every pair of entries is nearly " +
			"equal: identical, or differing by at most " +
			"min(abs-tol, rel-tol*max(|a|, |b|)).",
		Args: cliutil.WrapPositionalArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			exp, err := readResults(args[0])
			if err != nil {
				return err
			}
			act, err := readResults(args[1])
			if err != nil {
				return err
			}

			if len(exp) != len(act) {
				return fmt.Errorf("entry count mismatch: %s has %d, %s has %d",
					args[0], len(exp), args[1], len(act))
			}
			for i, vals := range [][]float64{exp, act} {
				if numcheck.AnyNaN(vals) {
					return fmt.Errorf("%s contains NaN", args[i])
				}
			}
			for i := range exp {
				if !numcheck.NearlyEqual(exp[i], act[i], float64(relTol), float64(absTol)) {
					return fmt.Errorf("entry %d: %v is not nearly equal to %v "+
						"(rel-tol %v, abs-tol %v)",
						i, exp[i], act[i], float64(relTol), float64(absTol))
				}
			}

			dlog.Infof(ctx, "%d entries nearly equal", len(exp))
			return nil
		},
	}
	cmd.Flags().VarP(&relTol, "rel-tol", "r", "Relative tolerance; must be positive")
	cmd.Flags().VarP(&absTol, "abs-tol", "a", "Absolute tolerance; must be positive")
	argparser.AddCommand(cmd)
}

// readResults reads one float per line; blank lines and '#' comments are
// skipped, and an inline '#' starts a trailing comment.
func readResults(filename string) ([]float64, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var ret []float64
	lineno := 0
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lineno++
		line := scanner.Text()
		if idx := strings.IndexByte(line, '#'); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		val, err := strconv.ParseFloat(line, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: line %d: %w", filename, lineno, err)
		}
		ret = append(ret, val)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return ret, nil
}
