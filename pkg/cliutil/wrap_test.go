package cliutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alphaville/numtest/pkg/cliutil"
)

func TestWrap(t *testing.T) {
	t.Parallel()
	type testcase struct {
		Width    int
		Input    string
		Expected string
	}
	testcases := map[string]testcase{
		"no-width": {
			Width:    0,
			Input:    "leave me alone",
			Expected: "leave me alone",
		},
		"simple": {
			Width:    20, // wraps at 15
			Input:    "aaa bbb ccc ddd eee",
			Expected: "aaa bbb ccc ddd\neee",
		},
		"long-word": {
			Width:    10, // wraps at 5
			Input:    "abcdefgh ij",
			Expected: "abcdefgh\nij",
		},
		"paragraphs": {
			Width:    25, // wraps at 20
			Input:    "one two three four five.\n\nsix seven.",
			Expected: "one two three four\nfive.\n\nsix seven.",
		},
		"collapse-whitespace": {
			Width:    80,
			Input:    "a  b\tc\nd",
			Expected: "a b c d",
		},
	}
	for tcName, tcData := range testcases {
		tcData := tcData
		t.Run(tcName, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tcData.Expected, cliutil.Wrap(tcData.Width, tcData.Input))
		})
	}
}

func TestWrapIndent(t *testing.T) {
	t.Parallel()
	// Continuation lines are indented; the first line is not (the caller
	// already emitted its indentation).
	assert.Equal(t, "aaa bbb\n    ccc",
		cliutil.WrapIndent(4, 16, "aaa bbb ccc")) // wraps at 11
}
