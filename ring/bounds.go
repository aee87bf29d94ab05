package ring

import "golang.org/x/exp/constraints"

// MinMax returns a and b reordered so the first result is never larger
// than the second.
func MinMax[T constraints.Integer](a, b T) (min, max T) {
	if a < b {
		return a, b
	}
	return b, a
}

// Clamp constrains v to the closed interval [lo, hi].
func Clamp[T constraints.Integer](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
