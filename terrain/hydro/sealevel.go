package hydro

import (
	"math"
	"sort"

	"github.com/df-mc/terragen/terrain/field"
)

// DefaultCoverageTolerance is the permitted deviation between measured and
// target water coverage, in percentage points.
const DefaultCoverageTolerance = 0.1

// SeaLevelResult holds the outcome of the exact sea-level solve.
type SeaLevelResult struct {
	// SeaLevel is the solved height threshold: cells with height <= SeaLevel
	// are water.
	SeaLevel float64
	// RaisedCells is the number of cells lifted above the floor in the 0%
	// water branch; zero otherwise.
	RaisedCells int
}

// SolveSeaLevel picks the height threshold that yields exactly the requested
// water percentage. The general case is a closed-form quantile of the height
// distribution, not an iterative approximation. The 0% and 100% targets are
// explicit branches: 0% drops the level below the minimum and raises any cell
// inside the epsilon band above it, 100% lifts the level above the maximum.
//
// The field must be final: eroding or otherwise mutating it afterwards
// invalidates the solved level.
func SolveSeaLevel(f *field.Field, percentage, epsilon float64) SeaLevelResult {
	min, max := f.MinMax()
	switch {
	case percentage <= 0:
		level := min - epsilon
		floor := min + epsilon
		raised := 0
		for i, v := range f.Values() {
			if v < floor {
				f.Values()[i] = floor
				raised++
			}
		}
		return SeaLevelResult{SeaLevel: level, RaisedCells: raised}
	case percentage >= 100:
		return SeaLevelResult{SeaLevel: max + epsilon}
	default:
		return SeaLevelResult{SeaLevel: quantile(f.Values(), percentage/100)}
	}
}

// quantile computes the q-quantile of values via a fully sorted copy with
// linear interpolation between order statistics.
func quantile(values []float64, q float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

// equalityTolerance is the band around the sea level within which a cell
// still counts as water when coverage is re-measured.
const equalityTolerance = 1e-9

// MeasureCoverage re-measures the actual water coverage of a field for the
// sea level passed, as a percentage. Cells strictly below the level and cells
// within a small equality tolerance of it both count.
func MeasureCoverage(f *field.Field, seaLevel float64) float64 {
	water := 0
	for _, v := range f.Values() {
		if v < seaLevel || math.Abs(v-seaLevel) <= equalityTolerance {
			water++
		}
	}
	return float64(water) / float64(f.Len()) * 100
}
