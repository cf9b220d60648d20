// Package hydro holds the water-related stages of the terrain pipeline: lake
// carving before erosion and the exact sea-level solve after it.
package hydro

import (
	"math"

	"github.com/df-mc/terragen/terrain/field"
	"github.com/df-mc/terragen/terrain/noise"
	"github.com/df-mc/terragen/terrain/rng"
	"github.com/df-mc/terragen/terrain/sample"
)

// LakeConfig parameterises the carving pass. Depths are in normalised height
// units: carving runs on the [0, 1] field before it is scaled to metres.
type LakeConfig struct {
	// WaterFraction is the overall water coverage target in [0, 1]. It sizes
	// the carved basins; the exact coverage is enforced later by the solver.
	WaterFraction float64
	// MinSpacing is the minimum distance between lake centres, in cells.
	MinSpacing float64
	// DepthMin and DepthMax bound the basin depth below the estimated sea
	// level, drawn uniformly per lake.
	DepthMin, DepthMax float64
	// Squareness is the superellipse exponent p. 2 is an ellipse; larger
	// values approach a rounded rectangle.
	Squareness float64
	// EdgeNoiseAmp is the amplitude of the shoreline noise added to the
	// falloff, keeping basin outlines organic.
	EdgeNoiseAmp float64
}

// shoreBand is the noise band used for shoreline perturbation.
var shoreBand = noise.Band{Octaves: 3, Frequency: 0.15, Gain: 0.5, Lacunarity: 2, Amplitude: 1}

// CarveLakes depresses the field into basin shapes centred at blue-noise
// points. Carving happens before erosion and before the exact sea-level
// solve, so depths target an estimated sea level only: the true level is
// unknown until the solver runs on the final field.
//
// Heights are only ever lowered, never raised, and never below zero. The
// generator passed must be the exclusively-owned "lakes" stream.
func CarveLakes(f *field.Field, r *rng.Random, conf LakeConfig) int {
	if conf.WaterFraction <= 0 || conf.MinSpacing <= 0 {
		return 0
	}
	w, h := float64(f.Width()), float64(f.Height())
	targetArea := conf.WaterFraction * w * h

	// One lake per spacing-sized disc of target area, at least one.
	count := int(targetArea / (math.Pi * (conf.MinSpacing / 2) * (conf.MinSpacing / 2)))
	if count < 1 {
		count = 1
	}
	centres := sample.Poisson(r, w, h, sample.Config{MinDistance: conf.MinSpacing})
	if len(centres) > count {
		centres = centres[:count]
	}
	if len(centres) == 0 {
		return 0
	}
	avgRadius := math.Sqrt(targetArea / float64(len(centres)) / math.Pi)
	estimate := estimateSeaLevel(f, conf.WaterFraction)

	shore := noise.NewSampler(uint32(r.IntN(0, math.MaxInt32)), shoreBand)
	for _, centre := range centres {
		radius := avgRadius * r.FloatRange(0.7, 1.3)
		depth := r.FloatRange(conf.DepthMin, conf.DepthMax)
		carveBasin(f, centre.X(), centre.Y(), radius, depth, estimate, conf, shore)
	}
	return len(centres)
}

// carveBasin lowers the cells inside one superellipse basin.
func carveBasin(f *field.Field, cx, cy, radius, depth, seaEstimate float64, conf LakeConfig, shore *noise.Sampler) {
	p := conf.Squareness
	if p < 1 {
		p = 2
	}
	minX := int(math.Max(0, math.Floor(cx-radius)))
	maxX := int(math.Min(float64(f.Width()-1), math.Ceil(cx+radius)))
	minY := int(math.Max(0, math.Floor(cy-radius)))
	maxY := int(math.Min(float64(f.Height()-1), math.Ceil(cy+radius)))

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			dx := math.Abs(float64(x)-cx) / radius
			dy := math.Abs(float64(y)-cy) / radius
			d := math.Pow(math.Pow(dx, p)+math.Pow(dy, p), 1/p)
			if d >= 1 {
				continue
			}
			falloff := math.Cos(d * math.Pi / 2)
			edge := (shore.At(float64(x), float64(y)) - 0.5) * 2 * conf.EdgeNoiseAmp
			target := seaEstimate - depth*math.Max(0, falloff+edge)
			if target < 0 {
				target = 0
			}
			if target < f.At(x, y) {
				f.Set(x, y, target)
			}
		}
	}
}

// estimateSeaLevel returns the quantile of the current field matching the
// water fraction. Good enough to aim basin depths at; the exact level is
// solved after erosion.
func estimateSeaLevel(f *field.Field, fraction float64) float64 {
	return quantile(f.Values(), fraction)
}
