// Package biome classifies finished terrain cells into a closed set of
// biome categories and derives the material splat weights a renderer would
// blend. The enum is deliberately exhaustive: every switch over Biome
// handles all values, so adding a category is a compile-visible change
// instead of a stray integer.
package biome

import "fmt"

// Biome is a terrain category.
type Biome uint8

const (
	Ocean Biome = iota
	Beach
	Plains
	Forest
	Mountain
	Snow
)

// String returns the lower-case name of the biome.
func (b Biome) String() string {
	switch b {
	case Ocean:
		return "ocean"
	case Beach:
		return "beach"
	case Plains:
		return "plains"
	case Forest:
		return "forest"
	case Mountain:
		return "mountain"
	case Snow:
		return "snow"
	default:
		return fmt.Sprintf("biome(%d)", uint8(b))
	}
}

// Classification thresholds as fractions of the elevation scale. The forest
// floor is measured above sea level, not absolute height, so the plains band
// keeps its width wherever the sea settles.
const (
	beachBandFraction  = 0.02
	forestRiseFraction = 0.15
	forestMaxFraction  = 0.55
	snowFraction       = 0.8
	mountainSlope      = 40.0
)

// Classify maps one cell to its biome. height and seaLevel are in metres,
// slope in degrees, scale is the elevation scale of the run.
func Classify(height, seaLevel, slope, scale float64) Biome {
	switch {
	case height <= seaLevel:
		return Ocean
	case height <= seaLevel+beachBandFraction*scale:
		return Beach
	case height >= snowFraction*scale:
		return Snow
	case slope >= mountainSlope || height >= forestMaxFraction*scale:
		return Mountain
	case height >= seaLevel+forestRiseFraction*scale:
		return Forest
	default:
		return Plains
	}
}

// SplatWeights are normalised material blend weights for one biome.
type SplatWeights struct {
	Grass, Rock, Sand, Snow float64
}

// Splat returns the material weights of the biome. The switch is exhaustive
// over all defined biomes.
func (b Biome) Splat() SplatWeights {
	switch b {
	case Ocean:
		return SplatWeights{Sand: 1}
	case Beach:
		return SplatWeights{Sand: 0.8, Grass: 0.2}
	case Plains:
		return SplatWeights{Grass: 1}
	case Forest:
		return SplatWeights{Grass: 0.7, Rock: 0.3}
	case Mountain:
		return SplatWeights{Rock: 0.8, Grass: 0.2}
	case Snow:
		return SplatWeights{Snow: 0.9, Rock: 0.1}
	default:
		return SplatWeights{}
	}
}
