package testutil

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/assert"
)

// QuickConfig configures QuickCheck and QuickCheckEqual.
type QuickConfig = quick.Config

// QuickCheck is testing/quick.Check plus a list of static argument tuples
// that are always exercised in addition to the random ones.  Randomized
// checking alone is no help for the handful of inputs that matter most in
// numerical code (NaN, infinities, signed zero, exact boundaries); the
// statics pin those down.
func QuickCheck(t *testing.T, fn interface{}, cfg QuickConfig, statics ...[]interface{}) {
	t.Helper()
	err := quick.Check(fn, &cfg)
	assert.NoError(t, err)
	var setupErr quick.SetupError
	if errors.As(err, &setupErr) {
		return
	}

	fnVal := reflect.ValueOf(fn)
	for i, tuple := range statics {
		args, ok := staticArgs(t, fnVal.Type(), i, tuple)
		if !ok {
			continue
		}
		if !fnVal.Call(args)[0].Bool() {
			assert.NoError(t, fmt.Errorf("static%w", &quick.CheckError{
				Count: i + 1,
				In:    toInterfaces(args),
			}))
		}
	}
}

// QuickCheckEqual is testing/quick.CheckEqual plus static argument tuples,
// as in QuickCheck.
func QuickCheckEqual(t *testing.T, fn1, fn2 interface{}, cfg QuickConfig, statics ...[]interface{}) {
	t.Helper()
	err := quick.CheckEqual(fn1, fn2, &cfg)
	assert.NoError(t, err)
	var setupErr quick.SetupError
	if errors.As(err, &setupErr) {
		return
	}

	fn1Val := reflect.ValueOf(fn1)
	fn2Val := reflect.ValueOf(fn2)
	for i, tuple := range statics {
		args, ok := staticArgs(t, fn1Val.Type(), i, tuple)
		if !ok {
			continue
		}
		ret1 := toInterfaces(fn1Val.Call(args))
		ret2 := toInterfaces(fn2Val.Call(args))
		if !reflect.DeepEqual(ret1, ret2) {
			assert.NoError(t, fmt.Errorf("static%w", &quick.CheckEqualError{
				CheckError: quick.CheckError{
					Count: i + 1,
					In:    toInterfaces(args),
				},
				Out1: ret1,
				Out2: ret2,
			}))
		}
	}
}

// staticArgs converts one static tuple to reflect.Values, flagging arity
// mismatches against the checked function's signature.
func staticArgs(t *testing.T, fnType reflect.Type, idx int, tuple []interface{}) ([]reflect.Value, bool) {
	t.Helper()
	if len(tuple) != fnType.NumIn() {
		t.Errorf("static#%d has %d args, but the function takes %d args",
			idx, len(tuple), fnType.NumIn())
		return nil, false
	}
	args := make([]reflect.Value, len(tuple))
	for i := range args {
		args[i] = reflect.ValueOf(tuple[i])
	}
	return args, true
}

func toInterfaces(values []reflect.Value) []interface{} {
	ret := make([]interface{}, len(values))
	for i, val := range values {
		ret[i] = val.Interface()
	}
	return ret
}
