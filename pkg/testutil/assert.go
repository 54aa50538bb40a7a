// Package testutil provides *testing.T helpers for the checks in
// pkg/numcheck, plus diff-based equality assertions for text.
package testutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/alphaville/numtest/pkg/numcheck"
)

var spewConfig = spew.ConfigState{
	Indent:                  "  ",
	DisableMethods:          true,
	DisableCapacities:       true,
	DisablePointerAddresses: true,
	SortKeys:                true,
}

// DumpSlice renders a slice of floats one element per line, suitable for
// line-oriented diffing.
func DumpSlice[T numcheck.Float](vals []T) string {
	ret := new(strings.Builder)
	for i, val := range vals {
		fmt.Fprintf(ret, "[%d] %v\n", i, val)
	}
	return ret.String()
}

func unifiedDiff(exp, act string) string {
	diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(exp),
		B:        difflib.SplitLines(act),
		FromFile: "Expected",
		FromDate: "",
		ToFile:   "Actual",
		ToDate:   "",
		Context:  1,
	})
	return diff
}

// AssertNearlyEqual checks that exp and act are nearly equal in the sense of
// numcheck.NearlyEqual.
func AssertNearlyEqual[T numcheck.Float](t *testing.T, exp, act, relTol, absTol T) bool {
	t.Helper()
	if numcheck.NearlyEqual(exp, act, relTol, absTol) {
		return true
	}
	t.Errorf("not nearly equal (rel-tol %v, abs-tol %v):\n\texpected: %v\n\tactual:   %v",
		relTol, absTol, exp, act)
	return false
}

// AssertNearlyEqualSlices checks that exp and act are element-wise nearly
// equal, reporting the first differing entry and a unified diff of the two
// slices on failure.
func AssertNearlyEqualSlices[T numcheck.Float](t *testing.T, exp, act []T, relTol, absTol T) bool {
	t.Helper()
	if len(exp) != len(act) {
		t.Errorf("length mismatch: expected %d entries, got %d", len(exp), len(act))
		return false
	}
	if numcheck.NearlyEqualSlices(exp, act, relTol, absTol) {
		return true
	}
	idx := -1
	for i := range exp {
		if !numcheck.NearlyEqual(exp[i], act[i], relTol, absTol) {
			idx = i
			break
		}
	}
	t.Errorf("slices differ at entry %d (rel-tol %v, abs-tol %v):\n%s",
		idx, relTol, absTol, unifiedDiff(DumpSlice(exp), DumpSlice(act)))
	return false
}

// AssertNoNaN checks that no element of a is NaN.
func AssertNoNaN[T numcheck.Float](t *testing.T, a []T) bool {
	t.Helper()
	if !numcheck.AnyNaN(a) {
		return true
	}
	t.Errorf("slice contains NaN:\n%s", DumpSlice(a))
	return false
}

// AssertAllGreaterEq checks that every element of a is >= lim.
func AssertAllGreaterEq[T numcheck.Float](t *testing.T, a []T, lim T) bool {
	t.Helper()
	if idx, ok := numcheck.AllGreaterEq(a, lim); !ok {
		t.Errorf("entry %d = %v is lower than %v", idx, a[idx], lim)
		return false
	}
	return true
}

// AssertAllLessEq checks that every element of a is <= lim.
func AssertAllLessEq[T numcheck.Float](t *testing.T, a []T, lim T) bool {
	t.Helper()
	if idx, ok := numcheck.AllLessEq(a, lim); !ok {
		t.Errorf("entry %d = %v is greater than %v", idx, a[idx], lim)
		return false
	}
	return true
}

// AssertEqualText checks that two strings are identical, showing a unified
// diff on failure.
func AssertEqualText(t *testing.T, exp, act string) bool {
	t.Helper()
	if exp == act {
		return true
	}
	t.Errorf("text differs:\n%s", unifiedDiff(exp, act))
	return false
}

// Dump renders an arbitrary value with the package's spew configuration;
// useful for eyeballing structures in test failures.
func Dump(val interface{}) string {
	return spewConfig.Sdump(val)
}
