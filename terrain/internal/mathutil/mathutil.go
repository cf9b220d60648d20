// Package mathutil holds small numeric helpers shared by the terrain
// generation packages.
package mathutil

import "golang.org/x/exp/constraints"

// Clamp limits v to the inclusive range [lo, hi].
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp interpolates linearly between a and b by t in [0, 1].
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Smoothstep applies the cubic 3t²−2t³ fade to t in [0, 1].
func Smoothstep(t float64) float64 {
	return t * t * (3 - 2*t)
}
