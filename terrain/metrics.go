package terrain

import (
	"math"

	"github.com/df-mc/terragen/terrain/field"
	"github.com/df-mc/terragen/terrain/hydro"
	"github.com/google/uuid"
)

// Invariant names reported by the validation pass.
const (
	InvariantWaterCoverage = "water_coverage_within_tolerance"
	InvariantHeightRange   = "heights_within_range"
	InvariantSeaLevelRange = "sea_level_within_range"
)

// Report is the immutable validation record of one generation run. It is
// purely observational: a failed invariant never aborts the run, the caller
// decides whether to reject the output.
type Report struct {
	// RunID identifies this report; it plays no part in generation.
	RunID uuid.UUID
	// TargetWaterPercentage and ActualWaterPercentage compare the requested
	// coverage with the one re-measured on the finished field; WaterError is
	// their absolute difference in percentage points.
	TargetWaterPercentage float64
	ActualWaterPercentage float64
	WaterError            float64
	// Height statistics of the finished field, in metres.
	MinHeight, MaxHeight float64
	MeanHeight           float64
	HeightVariance       float64
	// LakesCarved and RaisedCells merge the per-phase results into the
	// report: basins carved before erosion and cells lifted by the 0% water
	// branch.
	LakesCarved int
	RaisedCells int
	// ElevationDigest is the xxhash64 of the finished field, the value
	// determinism audits compare.
	ElevationDigest uint64
	// Invariants maps each named invariant to whether it held; Passed is
	// their conjunction.
	Invariants map[string]bool
	Passed     bool
}

// validateRun recomputes the run's statistics from scratch and checks the
// invariants. It reads the finished field only; nothing here feeds back into
// generation.
func validateRun(f *field.Field, solved hydro.SeaLevelResult, lakes int, conf Config) Report {
	min, max := f.MinMax()
	var sum float64
	for _, v := range f.Values() {
		sum += v
	}
	mean := sum / float64(f.Len())
	var variance float64
	for _, v := range f.Values() {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(f.Len())

	actual := hydro.MeasureCoverage(f, solved.SeaLevel)
	waterErr := math.Abs(actual - conf.WaterPercentage)

	invariants := map[string]bool{
		InvariantWaterCoverage: waterErr <= conf.WaterTolerance,
		InvariantHeightRange:   min >= 0 && max <= conf.ElevationScale,
		InvariantSeaLevelRange: solved.SeaLevel >= 0 && solved.SeaLevel <= conf.ElevationScale,
	}
	passed := true
	for _, ok := range invariants {
		passed = passed && ok
	}

	return Report{
		RunID:                 uuid.New(),
		TargetWaterPercentage: conf.WaterPercentage,
		ActualWaterPercentage: actual,
		WaterError:            waterErr,
		MinHeight:             min,
		MaxHeight:             max,
		MeanHeight:            mean,
		HeightVariance:        variance,
		LakesCarved:           lakes,
		RaisedCells:           solved.RaisedCells,
		ElevationDigest:       f.Digest(),
		Invariants:            invariants,
		Passed:                passed,
	}
}
