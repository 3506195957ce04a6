package mathx

import "golang.org/x/exp/constraints"

// Clamp limits v to [lo, hi].
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampIndex maps a normalized position onto one of n equal buckets.
// Positions at or past 1.0 land in the last bucket and negative positions in
// the first.
func ClampIndex(pos float64, n int) int {
	if n <= 0 {
		return 0
	}
	return Clamp(int(pos*float64(n)), 0, n-1)
}

