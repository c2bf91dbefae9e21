// Package dp implements HashWires' minimum dominating partition (MDP)
// decomposition and its companion base-b digit splitter. Grounded on
// original_source/src/dp.rs, translated into idiomatic Go: no panics on
// caller-reachable paths, explicit error returns, math/big in place of
// num-bigint (the teacher repo itself leans on math/big throughout
// pkg/crypto and pkg/merkle for the same kind of arbitrary-precision work).
package dp

import (
	"math/big"

	"golang.org/x/xerrors"
)

// ErrMDP is returned by PickIndex when the threshold exceeds every row of
// the MDP, i.e. the proving value is larger than the committed value.
var ErrMDP = xerrors.New("hashwires: proving value exceeds committed value")

// Bitlength returns bits-per-digit for one of the four supported radixes.
// ok is false for any other base.
func Bitlength(base uint32) (int, bool) {
	switch base {
	case 2:
		return 1, true
	case 4:
		return 2, true
	case 16:
		return 4, true
	case 256:
		return 8, true
	default:
		return 0, false
	}
}

// FindMDP returns the minimum dominating partition of value in the given
// base: value itself, followed by a strictly decreasing list of
// "one-below-a-boundary" values such that every threshold T in [0, value]
// is <= at least one of them, and the last such row dominates T digit by
// digit (right-aligned).
//
// Algorithm (dp.rs::find_mdp): walk exp = base, base^2, base^3, ... While
// exp < value, emit floor(value/exp)*exp - 1 whenever (value+1) is not a
// multiple of exp (in the multiple-of-exp case value's low digits are
// already all base-1, so no extra row is needed) and it differs from the
// last emitted row.
func FindMDP(value *big.Int, base uint32) []*big.Int {
	baseBig := big.NewInt(int64(base))
	exp := new(big.Int).Set(baseBig)

	valPlus1 := new(big.Int).Add(value, big.NewInt(1))

	ret := []*big.Int{new(big.Int).Set(value)}
	prev := new(big.Int).Set(value)

	mod := new(big.Int)
	quo := new(big.Int)
	temp := new(big.Int)

	for exp.Cmp(value) < 0 {
		mod.Mod(valPlus1, exp)
		if mod.Sign() != 0 {
			// temp = (value / exp) * exp - 1
			quo.Div(value, exp)
			temp.Mul(quo, exp)
			temp.Sub(temp, big.NewInt(1))
			if prev.Cmp(temp) != 0 {
				row := new(big.Int).Set(temp)
				ret = append(ret, row)
				prev = row
			}
		}
		exp.Mul(exp, baseBig)
	}
	return ret
}

// coef returns the index-th bitlength-wide field of msg, most-significant
// field first, matching dp.rs::coef for bitlength in {1,2,4,8}.
func coef(msg []byte, index, bitlength int) byte {
	switch bitlength {
	case 8:
		return msg[index]
	case 4:
		b := msg[index/2]
		if index%2 == 0 {
			return b >> 4
		}
		return b & 0xf
	case 2:
		b := msg[index/4]
		switch index % 4 {
		case 0:
			return b >> 6
		case 1:
			return (b >> 4) & 0x3
		case 2:
			return (b >> 2) & 0x3
		default:
			return b & 0x3
		}
	case 1:
		b := msg[index/8]
		shift := 7 - (index % 8)
		return (b >> shift) & 0x1
	default:
		panic("dp: unsupported bitlength")
	}
}

// ValueSplitPerBase renders value as its most-significant-first sequence
// of bitlength-wide base-b digits, with no leading zero digit. Value 0
// returns an empty sequence; callers must treat an empty row as the
// integer 0 (dp.rs::value_split_per_base).
func ValueSplitPerBase(value *big.Int, bitlength int) []byte {
	v := value.Bytes()

	ret := make([]byte, 0, len(v)*8/bitlength)
	for i := 0; i < len(v)*8/bitlength; i++ {
		c := coef(v, i, bitlength)
		if len(ret) == 0 && c == 0 {
			continue
		}
		ret = append(ret, c)
	}
	return ret
}

// PickIndex returns the largest i such that provingValue <= mdp[i] (the
// smallest dominating row), scanning from the last (smallest) row to the
// first. It returns ErrMDP
// if no such row exists, i.e. provingValue > mdp[0] (the committed value).
func PickIndex(provingValue *big.Int, mdp []*big.Int) (int, error) {
	for i := len(mdp) - 1; i >= 0; i-- {
		if provingValue.Cmp(mdp[i]) <= 0 {
			return i, nil
		}
	}
	return 0, ErrMDP
}
