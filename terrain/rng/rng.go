// Package rng implements the deterministic random sources used by terrain
// generation. A single master seed is expanded into independent, labelled
// sub-streams so that tuning the consumption of one stream can never perturb
// the values produced by another.
package rng

// Random is a 32-bit linear congruential generator. It is intentionally
// simple: the generator must produce the same sequence for the same seed on
// every platform, which rules out sources whose internals may change between
// releases.
type Random struct {
	seed  uint32
	state uint32
}

// NewRandom creates a generator seeded with the sub-seed provided.
func NewRandom(seed uint32) *Random {
	return &Random{seed: seed, state: seed}
}

// Seed returns the seed the generator was created with.
func (r *Random) Seed() uint32 {
	return r.seed
}

// Reset rewinds the generator to the state it had when created. Streams are
// never reset implicitly.
func (r *Random) Reset() {
	r.state = r.seed
}

const (
	lcgMultiplier = 1664525
	lcgIncrement  = 1013904223
)

// Float64 advances the generator and returns a value in [0, 1).
func (r *Random) Float64() float64 {
	r.state = r.state*lcgMultiplier + lcgIncrement
	return float64(r.state) / (1 << 32)
}

// IntN returns an integer in [min, max). If max <= min, min is returned
// without advancing the generator.
func (r *Random) IntN(min, max int) int {
	if max <= min {
		return min
	}
	return min + int(r.Float64()*float64(max-min))
}

// FloatRange returns a value in [min, max).
func (r *Random) FloatRange(min, max float64) float64 {
	return min + r.Float64()*(max-min)
}

// Bool returns true with probability p.
func (r *Random) Bool(p float64) bool {
	return r.Float64() < p
}

// Shuffle performs a Fisher-Yates shuffle over n elements using the swap
// function passed.
func (r *Random) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := r.IntN(0, i+1)
		swap(i, j)
	}
}
