// Package hashwires is the public API of the scheme: generating a
// secret over a value V, committing to it, proving V >= T for a chosen
// threshold T without revealing V, and verifying that proof against the
// commitment alone. Grounded on original_source/src/hashwires.rs, with
// the teacher's config/constants.go const-block style for the tunables
// below.
package hashwires

import "github.com/MuriData/hashwires/pkg/digest"

// Base is one of the four supported digit radixes (dp.Bitlength backs
// each with its bits-per-digit).
type Base uint32

const (
	Base2   Base = 2
	Base4   Base = 4
	Base16  Base = 16
	Base256 Base = 256

	// DefaultBase matches the original crate's default choice: enough
	// digits per hash chain to keep chains short, few enough bits per
	// digit to keep MDP rows shallow.
	DefaultBase = Base16

	// DefaultMaxBits bounds the domain V and T are drawn from: both
	// must fit in this many bits. It sizes the SMT height and the PLR
	// accumulator's hiding capacity independently of any one secret's
	// actual value, so a commitment never leaks how large V happened
	// to be relative to the scheme's ceiling.
	DefaultMaxBits = 256

	// SeedSize is the width of a Secret's root seed.
	SeedSize = digest.Size
)

// maxRowLength is the number of digit positions any MDP row could ever
// have in this parameterization: the PLR accumulator pads every row up
// to this length so a shorter row never stands out.
func maxRowLength(maxBits int, bitlength int) int {
	return maxBits / bitlength
}

// mdpHeight sizes the SMT: floor(log2(maxDigits)), where maxDigits is
// the same ceiling maxRowLength computes. Computed from the domain's
// ceiling rather than from any one value's actual MDP row count, so the
// tree's shape never leaks how large V was (hashwires.rs::
// compute_mdp_height).
func mdpHeight(maxBits int, bitlength int) int {
	maxDigits := maxRowLength(maxBits, bitlength)
	height := 0
	for (1 << uint(height+1)) <= maxDigits {
		height++
	}
	return height
}

