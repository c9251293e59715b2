// utils/guard.go
package utils

import (
	"errors"
	"math"
)

// ErrOverflow is returned when a counter increment would wrap. Callers must
// abort their enclosing transaction rather than store a wrapped value.
var ErrOverflow = errors.New("math overflow")

// WithinLen reports whether s fits the declared character bound for its field.
// Bounds are counted in runes, matching how the limits were specified.
func WithinLen(s string, max int) bool {
	return len([]rune(s)) <= max
}

// CheckedAdd adds delta to a counter, failing instead of wrapping.
func CheckedAdd(counter, delta int64) (int64, error) {
	if delta > 0 && counter > math.MaxInt64-delta {
		return 0, ErrOverflow
	}
	if delta < 0 && counter < math.MinInt64-delta {
		return 0, ErrOverflow
	}
	return counter + delta, nil
}
