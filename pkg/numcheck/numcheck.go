// Package numcheck provides comparison helpers for code that produces
// floating-point results, where exact equality is the wrong question and
// "nearly equal up to a tolerance" is the right one.
package numcheck

import (
	"fmt"
	"math"
)

// Float is the constraint for the floating-point types that this package
// operates on.
type Float interface {
	~float32 | ~float64
}

// Smallest positive normal values; differences at or below this scale are
// treated as rounding noise and always accepted.
const (
	minPositive32 = 0x1p-126
	minPositive64 = 0x1p-1022
)

func minPositive[T Float]() T {
	// Converting MaxFloat64 down to float32 overflows to +Inf; that tells
	// the two types apart without reflection.
	big := float64(math.MaxFloat64)
	if math.IsInf(float64(T(big)), 1) {
		return minPositive32
	}
	return minPositive64
}

func isNaN[T Float](v T) bool {
	return v != v
}

func abs[T Float](v T) T {
	if v < 0 {
		return -v
	}
	return v
}

func max[T Float](a, b T) T {
	if a >= b {
		return a
	}
	return b
}

func min[T Float](a, b T) T {
	if a >= b {
		return b
	}
	return a
}

func checkTolerances[T Float](relTol, absTol T) {
	if !(relTol > 0) {
		panic(fmt.Sprintf("numcheck: relative tolerance %v is not positive", relTol))
	}
	if !(absTol > 0) {
		panic(fmt.Sprintf("numcheck: absolute tolerance %v is not positive", absTol))
	}
}

// NearlyEqual reports whether a and b are nearly equal up to the given
// tolerances.  It returns true if and only if either
//
//   - a == b (identical values, including equal infinities), or
//   - |a-b| is at most the smallest positive normal value, or
//   - |a-b| <= min(absTol, relTol*max(|a|, |b|)).
//
// It returns false if either operand is NaN.
//
// NearlyEqual panics if either tolerance is not strictly positive; a zero
// tolerance is a bug in the caller, not a comparison to perform.
func NearlyEqual[T Float](a, b, relTol, absTol T) bool {
	checkTolerances(relTol, absTol)

	if isNaN(a) || isNaN(b) {
		return false
	}
	if a == b {
		return true
	}
	diff := abs(a - b)
	if diff <= minPositive[T]() {
		return true
	}
	return diff <= min(absTol, relTol*max(abs(a), abs(b)))
}

// NearlyEqualSlices reports whether a and b are element-wise nearly equal (in
// the sense of NearlyEqual).  It panics if the slices have different lengths
// or if a tolerance is not strictly positive.
func NearlyEqualSlices[T Float](a, b []T, relTol, absTol T) bool {
	if len(a) != len(b) {
		panic(fmt.Sprintf("numcheck: length mismatch: %d != %d", len(a), len(b)))
	}
	checkTolerances(relTol, absTol)
	for i := range a {
		if !NearlyEqual(a[i], b[i], relTol, absTol) {
			return false
		}
	}
	return true
}

// AnyNaN reports whether any element of a is NaN.
func AnyNaN[T Float](a []T) bool {
	for _, v := range a {
		if isNaN(v) {
			return true
		}
	}
	return false
}

// AllGreaterEq checks that every element of a is >= lim.  On success it
// returns (-1, true); otherwise it returns the index of the first offending
// element and false.  NaN elements are not flagged; use AnyNaN for that.
func AllGreaterEq[T Float](a []T, lim T) (int, bool) {
	for i, v := range a {
		if v < lim {
			return i, false
		}
	}
	return -1, true
}

// AllLessEq checks that every element of a is <= lim.  On success it returns
// (-1, true); otherwise it returns the index of the first offending element
// and false.  NaN elements are not flagged; use AnyNaN for that.
func AllLessEq[T Float](a []T, lim T) (int, bool) {
	for i, v := range a {
		if v > lim {
			return i, false
		}
	}
	return -1, true
}
