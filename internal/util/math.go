package util

import "golang.org/x/exp/constraints"

// Clamp limits v to the closed range [low, high].
func Clamp[T constraints.Ordered](v, low, high T) T {
	return max(low, min(v, high))
}

// Wrap returns i reduced into [0, n), for cycling through list positions.
func Wrap(i, n int) int {
	if n <= 0 {
		return 0
	}
	return ((i % n) + n) % n
}
