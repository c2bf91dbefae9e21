package kdf

import (
	"testing"

	"github.com/MuriData/hashwires/pkg/digest"
)

func TestSaltsAreDistinctAndFixedWidth(t *testing.T) {
	salts := [][digest.Size]byte{LeafSalt, TopSalt, PaddingSalt, SMTPaddingSalt}
	for i := range salts {
		for j := i + 1; j < len(salts); j++ {
			if salts[i] == salts[j] {
				t.Fatalf("salt %d and %d collide", i, j)
			}
		}
	}
}

func TestLeafSaltMatchesReferenceLiteral(t *testing.T) {
	want := "01234567890123456789012345678901"
	if string(LeafSalt[:]) != want {
		t.Fatalf("LeafSalt = %q, want %q", LeafSalt[:], want)
	}
}

func TestGenerateSubseedsAreDeterministicAndDistinct(t *testing.T) {
	seed := []byte("test-seed-material")
	a := GenerateSubseeds(digest.Blake3, TopSalt[:], seed, 4)
	b := GenerateSubseeds(digest.Blake3, TopSalt[:], seed, 4)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("subseed %d not deterministic", i)
		}
	}
	for i := range a {
		for j := i + 1; j < len(a); j++ {
			if a[i] == a[j] {
				t.Fatalf("subseed %d and %d collide", i, j)
			}
		}
	}
}

func TestGenerateSubseeds16TruncatesFullWidth(t *testing.T) {
	seed := []byte("test-seed-material")
	full := GenerateSubseeds(digest.Blake3, TopSalt[:], seed, 3)
	short := GenerateSubseeds16(digest.Blake3, TopSalt[:], seed, 3)
	for i := range full {
		if short[i] != [16]byte(full[i][:16]) {
			t.Fatalf("subseed16 %d does not match truncated full subseed", i)
		}
	}
}

func TestFullHashChainSeedFirst(t *testing.T) {
	var seed [digest.Size]byte
	copy(seed[:], "chain-seed-material-32-bytes-ok")
	chain := FullHashChain(digest.Blake3, seed[:], 5)
	if len(chain) != 5 {
		t.Fatalf("want 5 links, got %d", len(chain))
	}
	if chain[0] != seed {
		t.Fatalf("chain[0] must be the raw seed, unhashed")
	}
	for i := 1; i < len(chain); i++ {
		want := digest.Sum(digest.Blake3, chain[i-1][:])
		if chain[i] != want {
			t.Fatalf("chain[%d] is not H(chain[%d])", i, i-1)
		}
	}
}

func TestFullHashChainEmpty(t *testing.T) {
	chain := FullHashChain(digest.Blake3, make([]byte, digest.Size), 0)
	if len(chain) != 0 {
		t.Fatalf("want empty chain, got %d links", len(chain))
	}
}

func TestHashChainMatchesFullHashChain(t *testing.T) {
	var seed [digest.Size]byte
	copy(seed[:], "another-chain-seed-32-bytes-long")
	full := FullHashChain(digest.Blake3, seed[:], 6)
	for k := 0; k < len(full); k++ {
		got := HashChain(digest.Blake3, full[0], k)
		if got != full[k] {
			t.Fatalf("HashChain(seed, %d) = %x, want %x", k, got, full[k])
		}
	}
}

func TestComputeHashChainsBankShape(t *testing.T) {
	seed := make([]byte, digest.Size)
	chains := ComputeHashChains(digest.Blake3, seed, 3, 4, 2)
	if len(chains) != 3 {
		t.Fatalf("want 3 chains, got %d", len(chains))
	}
	if len(chains[0]) != 3 {
		t.Fatalf("chain 0 (msd+1): want length 3, got %d", len(chains[0]))
	}
	if len(chains[1]) != 4 {
		t.Fatalf("chain 1 (base): want length 4, got %d", len(chains[1]))
	}
	if len(chains[2]) != 4 {
		t.Fatalf("chain 2 (base): want length 4, got %d", len(chains[2]))
	}
}

// Known-answer vector from hashes.rs::tests::test_hash_chain.
func TestHashChainKnownAnswer(t *testing.T) {
	seed := []byte("01234567890123456789012345678901")
	got := HashChain(digest.Blake3, [digest.Size]byte(seed), 3)
	want := "9dce6dd3c7e70a6e5052fe1626b97d5ff50f59764513950df43faf76f15efc5c"
	if hexEncode(got[:]) != want {
		t.Fatalf("HashChain known-answer mismatch: got %s, want %s", hexEncode(got[:]), want)
	}
}

func hexEncode(b []byte) string {
	const hextable = "0123456789abcdef"
	out := make([]byte, len(b)*2)
	for i, v := range b {
		out[i*2] = hextable[v>>4]
		out[i*2+1] = hextable[v&0x0f]
	}
	return string(out)
}
