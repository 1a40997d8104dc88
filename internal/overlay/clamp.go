package overlay

import "golang.org/x/exp/constraints"

// Clamp forces v into [lo, hi].
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
