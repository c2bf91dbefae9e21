// Package plr implements the padded-length-resistant (PLR) accumulator:
// a running hash over a row of digit-chain endpoints that hides how many
// elements the row actually had, up to a caller-chosen maximum length.
// Grounded on original_source/src/hashes.rs::plr_accumulator.
package plr

import (
	"github.com/MuriData/hashwires/pkg/digest"
)

// Result is the output of Accumulate: the final accumulator digest, and
// (when the row needed padding, or desiredLength cuts list short of its
// true length) the accumulator's state at the point list[len(list)-
// desiredLength] was about to be absorbed; with desiredLength 0 that
// point lies past the last element, so Path is Root itself. A prover reveals Path instead
// of Root so a verifier who only knows desiredLength-many trailing
// elements can still reconstruct Root by continuing the fold from Path.
type Result struct {
	Root    [digest.Size]byte
	HasPath bool
	Path    [digest.Size]byte
}

// Accumulate folds list into a single digest. If len(list) < maxLength,
// the fold is first primed with padding (a value with no connection to
// list's actual contents, so the accumulator's shape never reveals the
// row's true length); otherwise the fold starts from a bare hasher.
// Every element of list is then absorbed in order, chaining the previous
// output back in as context for every element after the first.
//
// When desiredLength is less than len(list), the fold state immediately
// before absorbing list[len(list)-desiredLength] is captured as Path —
// this is what a prover reveals in place of Root when it wants to prove
// a value using only the last desiredLength elements of a longer row
// (hashes.rs::plr_accumulator).
func Accumulate(f digest.Factory, padding [digest.Size]byte, list [][digest.Size]byte, maxLength, desiredLength int) Result {
	h := f()

	var res Result
	if len(list) < maxLength {
		h.Write(padding[:])
		res.HasPath = true
		res.Path = padding
	}

	var output [digest.Size]byte
	cutIndex := len(list) - desiredLength

	for i, v := range list {
		if i != 0 {
			h.Write(output[:])
			if i == cutIndex {
				res.HasPath = true
				res.Path = output
			}
		}
		h.Write(v[:])
		copy(output[:], h.Sum(nil))
		h.Reset()
	}
	if cutIndex == len(list) {
		res.HasPath = true
		res.Path = output
	}

	res.Root = output
	return res
}

// FoldFrom repeats Accumulate's absorption loop over list, optionally
// primed with primer the way Accumulate primes with padding when a row
// falls short of maxLength. A verifier that only learns the tail
// elements a proof reveals, plus whatever cut-point state the prover
// captured as a Path, uses this to re-derive Root without ever knowing
// the row's true length or maxLength. With an empty list and a non-nil
// primer the primer itself is returned, since a desiredLength-0 Path is
// already the finished fold.
func FoldFrom(f digest.Factory, primer *[digest.Size]byte, list [][digest.Size]byte) [digest.Size]byte {
	if len(list) == 0 && primer != nil {
		return *primer
	}
	h := f()
	if primer != nil {
		h.Write(primer[:])
	}

	var output [digest.Size]byte
	for i, v := range list {
		if i != 0 {
			h.Write(output[:])
		}
		h.Write(v[:])
		copy(output[:], h.Sum(nil))
		h.Reset()
	}
	return output
}
