package shuffle

import "testing"

func TestDeterministicIndexShufflingIsReproducible(t *testing.T) {
	seed := [32]byte{2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2}
	a := DeterministicIndexShuffling(5, 16, seed)
	b := DeterministicIndexShuffling(5, 16, seed)
	if len(a) != 5 || len(b) != 5 {
		t.Fatalf("want 5 indices, got %d and %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("not reproducible at %d: %d != %d", i, a[i], b[i])
		}
	}
}

func TestDeterministicIndexShufflingReturnsDistinctIndices(t *testing.T) {
	seed := [32]byte{9}
	got := DeterministicIndexShuffling(10, 10, seed)
	seen := make(map[uint32]bool, len(got))
	for _, v := range got {
		if seen[v] {
			t.Fatalf("duplicate index %d in full permutation", v)
		}
		if v >= 10 {
			t.Fatalf("index %d out of range [0,10)", v)
		}
		seen[v] = true
	}
	if len(seen) != 10 {
		t.Fatalf("want a full permutation of 10 elements, got %d distinct", len(seen))
	}
}

func TestDeterministicIndexShufflingDifferentSeedsDiverge(t *testing.T) {
	a := DeterministicIndexShuffling(8, 32, [32]byte{1})
	b := DeterministicIndexShuffling(8, 32, [32]byte{2})
	same := true
	for i := range a {
		if a[i] != b[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatalf("different seeds produced the same shuffle")
	}
}

func TestUniformRejectsOutOfRangeDraws(t *testing.T) {
	src := newStreamSource([32]byte{5})
	for i := 0; i < 1000; i++ {
		v := src.uniform(7)
		if v >= 7 {
			t.Fatalf("uniform(7) returned out-of-range value %d", v)
		}
	}
}
