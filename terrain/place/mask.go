package place

import (
	"github.com/df-mc/terragen/terrain/field"
)

// Constraints bound where features may be placed.
type Constraints struct {
	// SeaLevel is the solved water level in height units.
	SeaLevel float64
	// BeachBuffer keeps placements this far above the sea level.
	BeachBuffer float64
	// MaxHeight excludes cells at or above this height.
	MaxHeight float64
	// MaxSlope excludes cells at or above this slope, in degrees.
	MaxSlope float64
}

// Relaxed returns the deterministically widened constraints used for the
// single retry when the strict constraints leave no suitable cell.
func (c Constraints) Relaxed() Constraints {
	c.BeachBuffer /= 2
	c.MaxHeight *= 1.25
	c.MaxSlope += 10
	return c
}

// Rejections counts, per constraint, how many cells it alone excluded.
type Rejections struct {
	Water  int
	Height int
	Slope  int
}

// Mask is the per-cell suitability grid. It implements sample.Suitability so
// the blue-noise sampler can consume it without any terrain knowledge.
type Mask struct {
	w, h     int
	suitable []bool
	count    int

	// Rejected is filled during the build for diagnostics.
	Rejected Rejections
}

// BuildMask derives the suitability mask for a finished field. slopes must
// be the output of Slopes for the same field.
func BuildMask(f *field.Field, slopes []float64, c Constraints) *Mask {
	m := &Mask{w: f.Width(), h: f.Height(), suitable: make([]bool, f.Len())}
	for i, height := range f.Values() {
		ok := true
		if height <= c.SeaLevel+c.BeachBuffer {
			m.Rejected.Water++
			ok = false
		}
		if height >= c.MaxHeight {
			m.Rejected.Height++
			ok = false
		}
		if slopes[i] >= c.MaxSlope {
			m.Rejected.Slope++
			ok = false
		}
		if ok {
			m.suitable[i] = true
			m.count++
		}
	}
	return m
}

// Count returns the number of suitable cells.
func (m *Mask) Count() int { return m.count }

// SuitableCell reports whether the cell at the grid coordinates passed is
// suitable.
func (m *Mask) SuitableCell(x, y int) bool {
	if x < 0 || x >= m.w || y < 0 || y >= m.h {
		return false
	}
	return m.suitable[y*m.w+x]
}

// Suitable reports whether the world-space position falls in a suitable
// cell, satisfying the sampler's predicate interface.
func (m *Mask) Suitable(x, y float64) bool {
	return m.SuitableCell(int(x), int(y))
}
