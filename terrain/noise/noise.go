// Package noise generates the fractal elevation bands that the terrain
// pipeline composes into a height field. Sampling is purely hash-based on
// world coordinates: no generator state is walked, so any cell can be
// evaluated in any order with identical results.
package noise

import (
	"math"

	"github.com/df-mc/terragen/terrain/field"
	"github.com/df-mc/terragen/terrain/internal/mathutil"
)

// Band holds the fractal parameters of one noise band. The terrain pipeline
// layers three of these: macro for continents, meso for mountain ranges and
// micro for surface detail.
type Band struct {
	// Octaves is the number of noise layers summed per sample.
	Octaves int
	// Frequency is the base sample frequency of the first octave.
	Frequency float64
	// Gain is the per-octave amplitude multiplier, usually < 1.
	Gain float64
	// Lacunarity is the per-octave frequency multiplier, usually > 1.
	Lacunarity float64
	// Amplitude weighs this band against the others when bands are summed.
	Amplitude float64
}

// Sampler evaluates fractal value noise for a single band, seeded from one
// sub-stream seed.
type Sampler struct {
	seed uint32
	band Band
}

// NewSampler creates a sampler for the band passed, seeded with the sub-seed
// derived for this band's stream.
func NewSampler(seed uint32, band Band) *Sampler {
	return &Sampler{seed: seed, band: band}
}

// At returns the fractal noise value at the coordinates passed, remapped to
// [0, 1] and weighted by the band's amplitude.
func (s *Sampler) At(x, y float64) float64 {
	var (
		freq     = s.band.Frequency
		amp      = 1.0
		sum      float64
		totalAmp float64
	)
	for o := 0; o < s.band.Octaves; o++ {
		sum += s.value(x*freq, y*freq) * amp
		totalAmp += amp
		amp *= s.band.Gain
		freq *= s.band.Lacunarity
	}
	if totalAmp == 0 {
		return 0
	}
	// The octave sum lies in [-1, 1] after normalisation; shift to [0, 1].
	return (sum/totalAmp + 1) / 2 * s.band.Amplitude
}

// value evaluates the coherent noise primitive: lattice values hashed from
// integer coordinates, blended with a smoothstep-faded bilinear interpolation.
func (s *Sampler) value(x, y float64) float64 {
	x0, y0 := math.Floor(x), math.Floor(y)
	tx := mathutil.Smoothstep(x - x0)
	ty := mathutil.Smoothstep(y - y0)

	xi, yi := int32(x0), int32(y0)
	v00 := s.lattice(xi, yi)
	v10 := s.lattice(xi+1, yi)
	v01 := s.lattice(xi, yi+1)
	v11 := s.lattice(xi+1, yi+1)

	top := mathutil.Lerp(v00, v10, tx)
	bottom := mathutil.Lerp(v01, v11, tx)
	return mathutil.Lerp(top, bottom, ty)
}

// lattice returns the deterministic noise value in [-1, 1] at an integer
// lattice point.
func (s *Sampler) lattice(x, y int32) float64 {
	return float64(hash2(s.seed, x, y))/math.MaxUint32*2 - 1
}

// hash2 mixes 2D integer coordinates and a seed into a well-distributed
// 32-bit value. Large odd constants decorrelate the axes; the tail is a
// murmur-style avalanche.
func hash2(seed uint32, x, y int32) uint32 {
	h := seed
	h ^= uint32(x) * 0x9e3779b1
	h ^= uint32(y) * 0x85ebca6b
	h ^= h >> 16
	h *= 0x7feb352d
	h ^= h >> 15
	h *= 0x846ca68b
	h ^= h >> 16
	return h
}

// Fill writes the summed output of all samplers into the grid. The result is
// not normalised; the pipeline min-max normalises the composite afterwards.
func Fill(f *field.Field, samplers ...*Sampler) {
	for y := 0; y < f.Height(); y++ {
		for x := 0; x < f.Width(); x++ {
			var sum float64
			for _, s := range samplers {
				sum += s.At(float64(x), float64(y))
			}
			f.Set(x, y, sum)
		}
	}
}

// ApplyContrast raises every cell of a normalised grid to the exponent
// passed. Exponents below one lift the mid-high range, sharpening relief.
func ApplyContrast(f *field.Field, exponent float64) {
	for i, v := range f.Values() {
		f.Values()[i] = math.Pow(mathutil.Clamp(v, 0, 1), exponent)
	}
}
