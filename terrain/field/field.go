// Package field implements the dense height grid that the generation
// pipeline mutates in place. A Field is exclusively owned by one generation
// run: each pipeline phase receives it, transforms it and hands it to the
// next phase without retaining a reference.
package field

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidDimensions is returned when a grid is requested with a width or
// height smaller than one cell.
var ErrInvalidDimensions = errors.New("field dimensions must be positive")

// Field is a dense row-major grid of elevations. Values start as normalised
// noise in [0, 1] and are scaled to metres before erosion runs.
type Field struct {
	w, h   int
	values []float64
}

// New creates a zeroed grid with the dimensions passed.
func New(w, h int) (*Field, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, w, h)
	}
	return &Field{w: w, h: h, values: make([]float64, w*h)}, nil
}

// Width returns the number of columns in the grid.
func (f *Field) Width() int { return f.w }

// Height returns the number of rows in the grid.
func (f *Field) Height() int { return f.h }

// Len returns the total cell count.
func (f *Field) Len() int { return len(f.values) }

// Index converts grid coordinates to the row-major slice index.
func (f *Field) Index(x, y int) int { return y*f.w + x }

// InBounds reports whether the coordinates fall inside the grid.
func (f *Field) InBounds(x, y int) bool {
	return x >= 0 && x < f.w && y >= 0 && y < f.h
}

// At returns the value at the coordinates passed.
func (f *Field) At(x, y int) float64 { return f.values[y*f.w+x] }

// Set stores a value at the coordinates passed.
func (f *Field) Set(x, y int, v float64) { f.values[y*f.w+x] = v }

// Values exposes the backing slice. Mutating phases iterate it directly; the
// slice must not be retained once the owning phase completes.
func (f *Field) Values() []float64 { return f.values }

// Clone returns an independent copy of the grid.
func (f *Field) Clone() *Field {
	c := &Field{w: f.w, h: f.h, values: make([]float64, len(f.values))}
	copy(c.values, f.values)
	return c
}

// MinMax returns the smallest and largest value in the grid.
func (f *Field) MinMax() (min, max float64) {
	min, max = math.Inf(1), math.Inf(-1)
	for _, v := range f.values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

// Normalize rescales every value so the grid spans exactly [0, 1]. A flat
// grid collapses to all zeroes.
func (f *Field) Normalize() {
	min, max := f.MinMax()
	span := max - min
	if span == 0 {
		for i := range f.values {
			f.values[i] = 0
		}
		return
	}
	for i := range f.values {
		f.values[i] = (f.values[i] - min) / span
	}
}

// Scale multiplies every value by the factor passed, converting normalised
// elevations to metres.
func (f *Field) Scale(factor float64) {
	for i := range f.values {
		f.values[i] *= factor
	}
}
