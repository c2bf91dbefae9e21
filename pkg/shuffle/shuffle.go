// Package shuffle implements the deterministic index shuffle HashWires
// uses to place SMT leaves at pseudorandom-but-reproducible positions.
// Grounded on original_source/src/shuffle.rs (Durstenfeld partial
// shuffle over a seeded CSPRNG). The original pins ChaCha12Rng; Go's
// golang.org/x/crypto/chacha20 only exposes the standard 20-round
// construction, so this is keyed ChaCha20 instead — a documented
// divergence (see DESIGN.md), not a silent one: outputs will not match
// the original crate's known-answer vectors.
package shuffle

import (
	"encoding/binary"

	"golang.org/x/crypto/chacha20"
)

// streamSource is a deterministic byte stream keyed by a 32-byte seed,
// used as the entropy source for uniform range draws.
type streamSource struct {
	cipher *chacha20.Cipher
}

func newStreamSource(seed [32]byte) *streamSource {
	var nonce [chacha20.NonceSize]byte // all-zero nonce: the seed alone is the per-shuffle key.
	c, err := chacha20.NewUnauthenticatedCipher(seed[:], nonce[:])
	if err != nil {
		// Only fails on malformed key/nonce length, both fixed-size here.
		panic(err)
	}
	return &streamSource{cipher: c}
}

func (s *streamSource) nextUint32() uint32 {
	var buf [4]byte
	s.cipher.XORKeyStream(buf[:], buf[:])
	return binary.LittleEndian.Uint32(buf[:])
}

// uniform draws a uniform value in [0, n) via rejection sampling over
// nextUint32, avoiding modulo bias.
func (s *streamSource) uniform(n uint32) uint32 {
	if n == 0 {
		return 0
	}
	limit := (uint64(1) << 32) - (uint64(1)<<32)%uint64(n)
	for {
		v := uint64(s.nextUint32())
		if v < limit {
			return uint32(v % uint64(n))
		}
	}
}

// durstenfeld performs an in-place Fisher-Yates (Durstenfeld variant)
// shuffle of the first shuffleLen elements of idx, drawing each swap
// partner uniformly from [i, len(idx)) using src.
func durstenfeld(idx []uint32, shuffleLen int, src *streamSource) {
	dlen := uint32(len(idx))
	for i := 0; i < shuffleLen; i++ {
		j := uint32(i) + src.uniform(dlen-uint32(i))
		idx[i], idx[j] = idx[j], idx[i]
	}
}

// DeterministicIndexShuffling returns indexesRequired distinct indices
// drawn from [0, maxNum), in the pseudorandom order a ChaCha20 stream
// keyed by seed produces via a partial Durstenfeld shuffle of
// [0, maxNum) (shuffle.rs::deterministic_index_shuffling).
func DeterministicIndexShuffling(indexesRequired, maxNum int, seed [32]byte) []uint32 {
	idx := make([]uint32, maxNum)
	for i := range idx {
		idx[i] = uint32(i)
	}
	src := newStreamSource(seed)
	durstenfeld(idx, indexesRequired, src)
	return idx[:indexesRequired]
}
