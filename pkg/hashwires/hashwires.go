package hashwires

import (
	"crypto/rand"
	"io"
	"math/big"

	"golang.org/x/xerrors"

	"github.com/MuriData/hashwires/pkg/digest"
	"github.com/MuriData/hashwires/pkg/dp"
	"github.com/MuriData/hashwires/pkg/kdf"
	"github.com/MuriData/hashwires/pkg/plr"
	"github.com/MuriData/hashwires/pkg/shuffle"
	"github.com/MuriData/hashwires/pkg/smt"
)

// Secret holds everything needed to commit to a value and later prove
// thresholds against it. Nothing in it is safe to share; Commit derives
// the public Commitment from it (hashwires.rs::Secret).
type Secret struct {
	Seed  [SeedSize]byte
	Base  Base
	Value *big.Int

	maxBits int
	f       digest.Factory
}

// GenSecret draws a fresh random seed and wraps value under base,
// bounded to maxBits. Pass nil for rnd to use crypto/rand.
func GenSecret(base Base, value *big.Int, maxBits int, rnd io.Reader) (*Secret, error) {
	if _, ok := dp.Bitlength(uint32(base)); !ok {
		return nil, ErrUnsupportedBase
	}
	if rnd == nil {
		rnd = rand.Reader
	}
	var seed [SeedSize]byte
	if _, err := io.ReadFull(rnd, seed[:]); err != nil {
		return nil, xerrors.Errorf("hashwires: generating secret seed: %w", err)
	}
	return &Secret{
		Seed:    seed,
		Base:    base,
		Value:   new(big.Int).Set(value),
		maxBits: maxBits,
		f:       digest.Blake3,
	}, nil
}

// Commitment is the public, size-fixed output of Commit: an SMT root
// over every MDP row's top-salted PLR fold, shuffled into position so
// the number of occupied rows stays hidden. Base travels out-of-band
// with the commitment (it is never derivable from Root alone) but the
// commitment itself carries nothing else — no height, no bit bound
// (hashwires.rs::Commitment).
type Commitment struct {
	Root [digest.Size]byte
	Base Base
}

// Proof demonstrates Value >= T against a Commitment without revealing
// Value or T itself (the verifier supplies T separately at Verify
// time). ChainNodes are the MDP row's digit-chain nodes, each as many
// hops short of the row's chain tip as the threshold's digit at that
// position, MDPSalt is that row's top salt,
// PLRPadding is the accumulator fold state the prover had to reveal in
// place of the row's padding or truncated prefix (nil when the row was
// fully revealed and needed no padding), and LeafPosition/Siblings
// locate and authenticate the row's leaf in the commitment's SMT
// (hashwires.rs::Proof).
type Proof struct {
	ChainNodes   [][digest.Size]byte
	MDPSalt      [16]byte
	LeafPosition uint64
	Siblings     [][digest.Size]byte
	PLRPadding   *[digest.Size]byte
}

// buildBank derives the single shared hash-chain bank every MDP row
// wires its digits onto: one chain per digit position of the MDP's top
// row (splits[0], the committed value's own digit split). A value of 0
// has an empty top-row split, which degenerates to an empty bank
// (hashwires.rs::compute_hash_chains).
func buildBank(f digest.Factory, seed []byte, splits [][]byte, base uint32) [][][digest.Size]byte {
	size := len(splits[0])
	var msd byte
	if size > 0 {
		msd = splits[0][0]
	}
	return kdf.ComputeHashChains(f, seed, size, base, msd)
}

// wireRows maps every MDP row's own digits onto the shared bank: row r
// at position i reads chains[idx][row[i]], where idx is i unless row is
// shorter than the bank (by at most one digit, since no MDP row can
// trail the top row by more than a single position), in which case idx
// is i+1 (hashwires.rs::wires).
func wireRows(splits [][]byte, chains [][][digest.Size]byte) [][][digest.Size]byte {
	wired := make([][][digest.Size]byte, len(splits))
	for r, row := range splits {
		wired[r] = make([][digest.Size]byte, len(row))
		for i, d := range row {
			idx := i
			if len(row) < len(chains) {
				idx++
			}
			wired[r][i] = chains[idx][d]
		}
	}
	return wired
}

// provingValueChainNodes picks, for a threshold's digit split tSplit
// against MDP row splits[mdpIndex], the bank node at index rowDigit -
// thresholdDigit of each aligned chain: exactly thresholdDigit hops below
// the row's own chain tip at that position. A verifier who later
// learns only T replays those hops forward with kdf.HashChain to land
// back on the row's true (secret) chain tips (hashwires.rs::
// proving_value_chain_nodes).
func provingValueChainNodes(chains [][][digest.Size]byte, splits [][]byte, tSplit []byte, mdpIndex int) ([][digest.Size]byte, error) {
	row := splits[mdpIndex]
	n := len(tSplit)
	out := make([][digest.Size]byte, n)
	for i := 0; i < n; i++ {
		chainIndex := i + len(chains) - n
		mdpSplitIndex := i + len(row) - n
		if chainIndex < 0 || chainIndex >= len(chains) || mdpSplitIndex < 0 || mdpSplitIndex >= len(row) {
			return nil, xerrors.Errorf("hashwires: %w: threshold digit split longer than the proving row", ErrThresholdExceedsValue)
		}
		if tSplit[i] > row[mdpSplitIndex] {
			return nil, xerrors.Errorf("hashwires: %w: threshold digit exceeds row digit at position %d", ErrThresholdExceedsValue, i)
		}
		digit := row[mdpSplitIndex] - tSplit[i]
		out[i] = chains[chainIndex][digit]
	}
	return out, nil
}

// plrPaddingDigest is the public padding leaf the PLR accumulator
// absorbs when a row is shorter than maxRowLength. It carries no secret
// beyond seed, so both Commit and Verify (given a proof's revealed
// Path) can recognize it (hashes.rs via hashwires.rs::plr_roots_and_proof).
func plrPaddingDigest(f digest.Factory, seed []byte) [digest.Size]byte {
	return kdf.SaltedHash(f, kdf.PaddingSalt[:], seed)
}

// smtSecret derives the SMT's node-padding secret from a Secret's seed,
// keeping the tree's own secret distinct from the chain/PLR/top salts
// (hashwires.rs: generate_subseeds::<D, SmtSecretSize>(SMTREE_PADDING_SALT, seed, 1)[0]).
func smtSecret(f digest.Factory, seed []byte) []byte {
	s := kdf.GenerateSubseed(f, kdf.SMTPaddingSalt[:], 0, seed)
	return s[:]
}

// commitmentMaterial is everything Commit and Prove both need to
// recompute identically: the MDP, its digit splits, the shared chain
// bank, each row wired onto it, and the shuffled SMT those rows commit
// into.
type commitmentMaterial struct {
	bitlength int
	mdp       []*big.Int
	splits    [][]byte
	chains    [][][digest.Size]byte
	wired     [][][digest.Size]byte
	maxLen    int
	padding   [digest.Size]byte
	mdpSalts  [][16]byte
	positions []uint32
	tree      *smt.Tree
}

func prepareCommitment(secret *Secret) (*commitmentMaterial, error) {
	bitlength, ok := dp.Bitlength(uint32(secret.Base))
	if !ok {
		return nil, ErrUnsupportedBase
	}

	mdp := dp.FindMDP(secret.Value, uint32(secret.Base))
	splits := make([][]byte, len(mdp))
	for i, v := range mdp {
		splits[i] = dp.ValueSplitPerBase(v, bitlength)
	}

	chains := buildBank(secret.f, secret.Seed[:], splits, uint32(secret.Base))
	wired := wireRows(splits, chains)

	maxLen := maxRowLength(secret.maxBits, bitlength)
	height := mdpHeight(secret.maxBits, bitlength)
	if len(mdp) > maxLen {
		return nil, xerrors.Errorf("hashwires: value requires %d MDP rows, exceeds capacity %d for maxBits=%d", len(mdp), maxLen, secret.maxBits)
	}

	padding := plrPaddingDigest(secret.f, secret.Seed[:])
	mdpSalts := kdf.GenerateSubseeds16(secret.f, kdf.TopSalt[:], secret.Seed[:], len(mdp))
	positions := shuffle.DeterministicIndexShuffling(len(mdp), maxLen, secret.Seed)

	tree := smt.New(secret.f, height, smtSecret(secret.f, secret.Seed[:]))
	for i := range mdp {
		res := plr.Accumulate(secret.f, padding, wired[i], maxLen, len(wired[i]))
		saltedRoot := kdf.SaltedHash(secret.f, mdpSalts[i][:], res.Root[:])
		tree.SetLeaf(uint64(positions[i]), saltedRoot)
	}

	return &commitmentMaterial{
		bitlength: bitlength,
		mdp:       mdp,
		splits:    splits,
		chains:    chains,
		wired:     wired,
		maxLen:    maxLen,
		padding:   padding,
		mdpSalts:  mdpSalts,
		positions: positions,
		tree:      tree,
	}, nil
}

// Commit derives the public Commitment for secret.
func (secret *Secret) Commit() (*Commitment, error) {
	mat, err := prepareCommitment(secret)
	if err != nil {
		return nil, err
	}
	return &Commitment{Root: mat.tree.Root(), Base: secret.Base}, nil
}

// Prove builds a Proof that secret.Value >= t, or ErrThresholdExceedsValue
// if it does not.
func (secret *Secret) Prove(t *big.Int) (*Proof, error) {
	mat, err := prepareCommitment(secret)
	if err != nil {
		return nil, err
	}

	mdpIndex, err := dp.PickIndex(t, mat.mdp)
	if err != nil {
		return nil, ErrThresholdExceedsValue
	}

	tSplit := dp.ValueSplitPerBase(t, mat.bitlength)

	chainNodes, err := provingValueChainNodes(mat.chains, mat.splits, tSplit, mdpIndex)
	if err != nil {
		return nil, err
	}

	res := plr.Accumulate(secret.f, mat.padding, mat.wired[mdpIndex], mat.maxLen, len(tSplit))
	var plrPadding *[digest.Size]byte
	if res.HasPath {
		path := res.Path
		plrPadding = &path
	}

	leafPos := uint64(mat.positions[mdpIndex])
	siblings := mat.tree.InclusionProof(leafPos)

	return &Proof{
		ChainNodes:   chainNodes,
		MDPSalt:      mat.mdpSalts[mdpIndex],
		LeafPosition: leafPos,
		Siblings:     siblings,
		PLRPadding:   plrPadding,
	}, nil
}

// Verify reports whether proof demonstrates that the secret committed
// to by c has value >= t.
func (c *Commitment) Verify(f digest.Factory, proof *Proof, t *big.Int) error {
	bitlength, ok := dp.Bitlength(uint32(c.Base))
	if !ok {
		return ErrUnsupportedBase
	}

	tSplit := dp.ValueSplitPerBase(t, bitlength)
	if len(proof.ChainNodes) != len(tSplit) {
		return xerrors.Errorf("hashwires: %w: chain node count does not match threshold digit count", ErrMalformedProof)
	}

	tips := make([][digest.Size]byte, len(tSplit))
	for i, node := range proof.ChainNodes {
		tips[i] = kdf.HashChain(f, node, int(tSplit[i]))
	}

	mdpRoot := plr.FoldFrom(f, proof.PLRPadding, tips)
	saltedRoot := kdf.SaltedHash(f, proof.MDPSalt[:], mdpRoot[:])

	if !smt.VerifyInclusionProof(f, c.Root, proof.LeafPosition, len(proof.Siblings), saltedRoot, proof.Siblings) {
		return ErrVerificationFailed
	}
	return nil
}
