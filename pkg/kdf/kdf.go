// Package kdf derives the domain-separated subseeds and hash chains
// HashWires builds its commitments from. Grounded on
// original_source/src/hashes.rs, reusing the teacher's salted-hash /
// domain-tag idiom from pkg/crypto/crypto.go (HashWithDomainTag) but
// generalized over digest.Factory instead of a fixed Poseidon2 instance.
package kdf

import (
	"encoding/binary"

	"github.com/MuriData/hashwires/pkg/digest"
)

// The four domain salts are pinned across every HashWires implementation
// (hashes.rs), so a commitment produced by this package and one produced
// by the original crate start from the same subseeds for the same
// (seed, value, base) triple.
var (
	LeafSalt       = asSalt("01234567890123456789012345678901")
	TopSalt        = asSalt("11234567890123456789012345678901")
	PaddingSalt    = asSalt("21234567890123456789012345678901")
	SMTPaddingSalt = asSalt("31234567890123456789012345678901")
)

func asSalt(s string) [digest.Size]byte {
	if len(s) != digest.Size {
		panic("kdf: salt literal must be exactly digest.Size bytes")
	}
	var out [digest.Size]byte
	copy(out[:], s)
	return out
}

// subseedRaw computes H(salt || LE64(index) || seed), the common core of
// every subseed derivation (hashes.rs::generate_subseeds). The Rust
// original encodes index as a platform usize via to_le_bytes; this fixes
// that at 8 bytes (LE64), matching a 64-bit build.
func subseedRaw(f digest.Factory, salt []byte, index uint64, seed []byte) [digest.Size]byte {
	var idx [8]byte
	binary.LittleEndian.PutUint64(idx[:], index)
	return digest.Sum(f, salt, idx[:], seed)
}

// GenerateSubseed derives the index-th full-width subseed from seed under
// salt.
func GenerateSubseed(f digest.Factory, salt []byte, index uint64, seed []byte) [digest.Size]byte {
	return subseedRaw(f, salt, index, seed)
}

// GenerateSubseeds derives n sequential full-width subseeds from seed
// under salt.
func GenerateSubseeds(f digest.Factory, salt []byte, seed []byte, n int) [][digest.Size]byte {
	out := make([][digest.Size]byte, n)
	for i := 0; i < n; i++ {
		out[i] = subseedRaw(f, salt, uint64(i), seed)
	}
	return out
}

// GenerateSubseeds16 derives n sequential 16-byte subseeds from seed
// under salt, truncating the full-width hash output. Used for the
// per-MDP-row top salts (hashwires.rs: generate_subseeds::<D, MdpSaltSize>).
func GenerateSubseeds16(f digest.Factory, salt []byte, seed []byte, n int) [][16]byte {
	out := make([][16]byte, n)
	for i := 0; i < n; i++ {
		full := subseedRaw(f, salt, uint64(i), seed)
		copy(out[i][:], full[:16])
	}
	return out
}

// SaltedHash computes H(salt || msg), the KDF hash(salt, seed) primitive
// (hashes.rs::salted_hash). salt need not be digest.Size wide: it is also
// used with the 16-byte per-row top salt.
func SaltedHash(f digest.Factory, salt []byte, msg []byte) [digest.Size]byte {
	return digest.Sum(f, salt, msg)
}

// FullHashChain returns a hash chain of the given size rooted at seed,
// seed-first: chain[0] is seed itself (never hashed), and chain[i] =
// H(chain[i-1]) for i in [1, size) (hashes.rs::full_hash_chain). seed
// must be digest.Size bytes.
func FullHashChain(f digest.Factory, seed []byte, size int) [][digest.Size]byte {
	chain := make([][digest.Size]byte, size)
	if size == 0 {
		return chain
	}
	copy(chain[0][:], seed)
	for i := 1; i < size; i++ {
		chain[i] = digest.Sum(f, chain[i-1][:])
	}
	return chain
}

// HashChain applies digest.Sum iterations times starting from seed,
// without materializing the intermediate elements (hashes.rs::
// hash_chain). Used by the verifier to hash a revealed chain node forward
// by a threshold digit's value.
func HashChain(f digest.Factory, seed [digest.Size]byte, iterations int) [digest.Size]byte {
	output := seed
	for i := 0; i < iterations; i++ {
		output = digest.Sum(f, output[:])
	}
	return output
}

// ComputeHashChains builds the single shared hash-chain bank every MDP
// row wires its digits onto: one chain per digit position of the MDP's
// top row (the committed value's own digit split), chain 0 sized to
// msd+1 (the value's own leading digit never needs a wider chain) and
// every other chain sized to the full base (hashwires.rs::
// compute_hash_chains, wires()).
func ComputeHashChains(f digest.Factory, seed []byte, size int, base uint32, msd byte) [][][digest.Size]byte {
	seeds := GenerateSubseeds(f, LeafSalt[:], seed, size)
	chains := make([][][digest.Size]byte, size)
	if size == 0 {
		return chains
	}
	chains[0] = FullHashChain(f, seeds[0][:], int(msd)+1)
	for i := 1; i < size; i++ {
		chains[i] = FullHashChain(f, seeds[i][:], int(base))
	}
	return chains
}
