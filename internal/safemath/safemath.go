package safemath

import (
	"errors"
	"math/bits"
)

var ErrOverflow = errors.New("number overflow")

func Add64(a, b uint64) (uint64, bool) {
	v, carry := bits.Add64(a, b, 0)
	return v, carry == 0
}

// Sum64 adds all values, failing with ErrOverflow as soon as the running
// total no longer fits in a uint64.
func Sum64(values ...uint64) (uint64, error) {
	var total uint64
	for _, v := range values {
		next, ok := Add64(total, v)
		if !ok {
			return 0, ErrOverflow
		}
		total = next
	}
	return total, nil
}
