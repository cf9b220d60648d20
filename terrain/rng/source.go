package rng

// Source expands one master seed into named sub-streams. Each label maps to a
// sub-seed derived with an order-sensitive hash mix, so "lakes" and "trees"
// can never collide and reordering a label's characters changes its stream.
//
// Streams are created lazily on first request and live for one generation
// run. The live generator state is never serialised; a stream is always
// re-derivable from the master seed and its label.
type Source struct {
	seed    uint32
	streams map[string]*Random
}

// NewSource creates a stream source for the master seed passed.
func NewSource(seed uint32) *Source {
	return &Source{seed: seed, streams: make(map[string]*Random)}
}

// MasterSeed returns the master seed the source was created with.
func (s *Source) MasterSeed() uint32 {
	return s.seed
}

// Stream returns the generator for the label passed, creating it on first
// use. The returned generator is exclusively owned by the caller that
// requested it: handing it to a second subsystem breaks the independence
// guarantee.
func (s *Source) Stream(label string) *Random {
	if r, ok := s.streams[label]; ok {
		return r
	}
	r := NewRandom(SubSeed(s.seed, label))
	s.streams[label] = r
	return r
}

// SubSeeds returns the derived sub-seed of every stream requested so far,
// keyed by label. The map is a copy and may be stored or serialised freely.
func (s *Source) SubSeeds() map[string]uint32 {
	out := make(map[string]uint32, len(s.streams))
	for label, r := range s.streams {
		out[label] = r.Seed()
	}
	return out
}

// SubSeed derives the 32-bit sub-seed for a (seed, label) pair. The mix XORs
// the seed with a salt, folds each label byte in with a multiply and
// xor-shift, and finishes with a murmur-style avalanche so that labels
// sharing a prefix still decorrelate fully.
func SubSeed(seed uint32, label string) uint32 {
	h := seed ^ 0x9e3779b9
	for i := 0; i < len(label); i++ {
		h ^= uint32(label[i])
		h *= 0x85ebca6b
		h ^= h >> 13
	}
	h ^= h >> 16
	h *= 0x7feb352d
	h ^= h >> 15
	h *= 0x846ca68b
	h ^= h >> 16
	return h
}
