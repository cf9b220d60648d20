// Package place derives placement constraints from finished terrain and
// selects feature positions against them. It owns the slope and aspect
// analysis, the suitability mask consumed by the blue-noise sampler and the
// tree placement selector.
package place

import (
	"math"

	"github.com/df-mc/terragen/terrain/field"
)

// AspectUndefined is the sentinel bearing reported for cells too flat for
// aspect to be meaningful.
const AspectUndefined = -1.0

// flatGradient is the gradient magnitude below which a cell counts as flat.
const flatGradient = 0.001

// Slopes computes the per-cell slope in degrees using central differences.
// cellSize is the horizontal extent of one cell in the same unit as the
// heights. Boundary cells fall back to a one-sided difference by clamping
// the missing neighbour to the cell itself.
func Slopes(f *field.Field, cellSize float64) []float64 {
	out := make([]float64, f.Len())
	for y := 0; y < f.Height(); y++ {
		for x := 0; x < f.Width(); x++ {
			gx, gy := gradient(f, x, y, cellSize)
			out[f.Index(x, y)] = math.Atan(math.Hypot(gx, gy)) * 180 / math.Pi
		}
	}
	return out
}

// Aspects computes the per-cell downslope compass bearing in degrees, with
// AspectUndefined for near-flat cells where the direction is meaningless.
func Aspects(f *field.Field, cellSize float64) []float64 {
	out := make([]float64, f.Len())
	for y := 0; y < f.Height(); y++ {
		for x := 0; x < f.Width(); x++ {
			gx, gy := gradient(f, x, y, cellSize)
			if math.Hypot(gx, gy) < flatGradient {
				out[f.Index(x, y)] = AspectUndefined
				continue
			}
			// atan2 angle from east counter-clockwise, converted to a compass
			// bearing clockwise from north.
			bearing := 90 - math.Atan2(-gy, -gx)*180/math.Pi
			if bearing < 0 {
				bearing += 360
			}
			if bearing >= 360 {
				bearing -= 360
			}
			out[f.Index(x, y)] = bearing
		}
	}
	return out
}

// gradient returns the central-difference height gradient at a cell, with
// out-of-range neighbours clamped to the cell itself.
func gradient(f *field.Field, x, y int, cellSize float64) (gx, gy float64) {
	clampAt := func(cx, cy int) float64 {
		if cx < 0 || cx >= f.Width() {
			cx = x
		}
		if cy < 0 || cy >= f.Height() {
			cy = y
		}
		return f.At(cx, cy)
	}
	gx = (clampAt(x+1, y) - clampAt(x-1, y)) / (2 * cellSize)
	gy = (clampAt(x, y+1) - clampAt(x, y-1)) / (2 * cellSize)
	return gx, gy
}
