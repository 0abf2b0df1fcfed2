package phys

import "golang.org/x/exp/constraints"

// Clamp limits v to the closed interval [lo, hi].
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Sum adds up the elements of s.
func Sum[T constraints.Integer | constraints.Float](s []T) T {
	var total T
	for _, v := range s {
		total += v
	}
	return total
}
