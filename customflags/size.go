package customflags

import (
	"github.com/docker/go-units"
)

// Size is a byte count given in human form, e.g. "4KB" or "1MiB". Suffixes
// are binary, so "1KB" is 1024.
type Size int64

func (v Size) String() string {
	return units.BytesSize(float64(v))
}

func (v Size) Int64() int64 {
	return int64(v)
}

// Int is the size as a character count for the data generator
func (v Size) Int() int {
	return int(v)
}

func (v *Size) Set(s string) error {
	b, err := units.RAMInBytes(s)
	if err != nil {
		return err
	}
	*v = Size(b)
	return nil
}

// UnmarshalText lets profiles use the same notation as the command line
func (v *Size) UnmarshalText(text []byte) error {
	return v.Set(string(text))
}

func NewSize(s int64) *Size {
	size := Size(s)
	return &size
}
