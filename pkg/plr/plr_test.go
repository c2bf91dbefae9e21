package plr

import (
	"testing"

	"github.com/MuriData/hashwires/pkg/digest"
)

func node(label string) [digest.Size]byte {
	return digest.Sum(digest.Blake3, []byte(label))
}

func TestAccumulateDeterministic(t *testing.T) {
	list := [][digest.Size]byte{node("a"), node("b"), node("c")}
	padding := node("pad")

	r1 := Accumulate(digest.Blake3, padding, list, 3, 2)
	r2 := Accumulate(digest.Blake3, padding, list, 3, 2)
	if r1.Root != r2.Root {
		t.Fatalf("accumulator root not deterministic")
	}
	if r1.Path != r2.Path {
		t.Fatalf("accumulator path not deterministic")
	}
}

func TestAccumulatePaddingChangesRootWhenShort(t *testing.T) {
	list := [][digest.Size]byte{node("a"), node("b")}
	padding := node("pad")

	short := Accumulate(digest.Blake3, padding, list, 4, 2)
	full := Accumulate(digest.Blake3, padding, list, 2, 2)
	if short.Root == full.Root {
		t.Fatalf("padded and unpadded rows of the same content must not collide")
	}
}

func TestAccumulateRootIndependentOfDesiredLength(t *testing.T) {
	// The accumulator's Root folds every element of list regardless of
	// desiredLength; only Path (the resumable cut point) depends on it,
	// so a prover and verifier who disagree on desiredLength but agree
	// on list still land on the same Root.
	list := [][digest.Size]byte{node("a"), node("b"), node("c")}
	padding := node("pad")

	full := Accumulate(digest.Blake3, padding, list, 3, 3)
	partial := Accumulate(digest.Blake3, padding, list, 3, 1)

	if full.Root != partial.Root {
		t.Fatalf("Root must not depend on desiredLength: got %x and %x", full.Root, partial.Root)
	}
	if !partial.HasPath {
		t.Fatalf("expected a captured path for desiredLength=1")
	}
	if full.HasPath {
		t.Fatalf("desiredLength equal to len(list) with no padding should not capture a path")
	}
}

func TestAccumulateNoPathWhenFullyRevealedAndUnpadded(t *testing.T) {
	list := [][digest.Size]byte{node("a"), node("b")}
	padding := node("pad")

	res := Accumulate(digest.Blake3, padding, list, 2, 2)
	if res.HasPath {
		t.Fatalf("full reveal of an unpadded row should never capture a cut path")
	}
}

func TestAccumulateEmptyListIsZeroRoot(t *testing.T) {
	// hashes.rs::plr_accumulator never touches its output buffer when
	// list is empty, so the accumulator degenerates to an all-zero root
	// regardless of padding; this is a faithful quirk, not a bug to fix.
	padding := node("pad")
	res := Accumulate(digest.Blake3, padding, nil, 4, 0)
	var zero [digest.Size]byte
	if res.Root != zero {
		t.Fatalf("empty list should fold to the zero root, got %x", res.Root)
	}
}
