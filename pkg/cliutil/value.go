package cliutil

import (
	"fmt"
	"strconv"

	"github.com/spf13/pflag"
)

// PositiveFloat is a pflag.Value holding a float64 that must be strictly
// positive; "0", negative numbers, and NaN are rejected at flag-parse time.
type PositiveFloat float64

var _ pflag.Value = (*PositiveFloat)(nil)

func (f *PositiveFloat) String() string {
	return strconv.FormatFloat(float64(*f), 'g', -1, 64)
}

func (f *PositiveFloat) Set(str string) error {
	val, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return err
	}
	if !(val > 0) {
		return fmt.Errorf("must be a positive number: %v", val)
	}
	*f = PositiveFloat(val)
	return nil
}

func (f *PositiveFloat) Type() string {
	return "float"
}
