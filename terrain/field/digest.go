package field

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Digest returns an xxhash64 over the raw little-endian bytes of the grid,
// prefixed with its dimensions. Two runs produced bit-identical terrain iff
// their digests match, which is what the determinism tests and the run store
// integrity check rely on.
func (f *Field) Digest() uint64 {
	d := xxhash.New()
	var buf [8]byte
	binary.LittleEndian.PutUint32(buf[0:4], uint32(f.w))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(f.h))
	_, _ = d.Write(buf[:])
	for _, v := range f.values {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		_, _ = d.Write(buf[:])
	}
	return d.Sum64()
}
