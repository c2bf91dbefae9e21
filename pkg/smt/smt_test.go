package smt

import (
	"testing"

	"github.com/MuriData/hashwires/pkg/digest"
	"github.com/stretchr/testify/require"
)

func leaf(label string) [digest.Size]byte {
	return digest.Sum(digest.Blake3, []byte(label))
}

func TestRootIsDeterministic(t *testing.T) {
	secret := []byte("tree-secret")

	build := func() *Tree {
		tr := New(digest.Blake3, 3, secret)
		tr.SetLeaf(1, leaf("a"))
		tr.SetLeaf(5, leaf("b"))
		return tr
	}

	r1 := build().Root()
	r2 := build().Root()
	require.Equal(t, r1, r2)
}

func TestEmptyTreeRootIsPurePadding(t *testing.T) {
	secret := []byte("tree-secret")
	empty := New(digest.Blake3, 2, secret).Root()
	require.Equal(t, New(digest.Blake3, 2, secret).padding(0, 0), empty)

	withOneLeaf := New(digest.Blake3, 2, secret)
	withOneLeaf.SetLeaf(0, leaf("only"))
	require.NotEqual(t, empty, withOneLeaf.Root())
}

func TestDifferentSecretsDivergeOnPaddedTree(t *testing.T) {
	a := New(digest.Blake3, 3, []byte("secret-a"))
	a.SetLeaf(2, leaf("x"))

	b := New(digest.Blake3, 3, []byte("secret-b"))
	b.SetLeaf(2, leaf("x"))

	require.NotEqual(t, a.Root(), b.Root())
}

func TestInclusionProofRoundTrips(t *testing.T) {
	secret := []byte("tree-secret")
	height := 4

	tr := New(digest.Blake3, height, secret)
	positions := []uint64{0, 3, 7, 15}
	values := make(map[uint64][digest.Size]byte)
	for _, p := range positions {
		v := leaf("leaf")
		v[0] ^= byte(p)
		values[p] = v
		tr.SetLeaf(p, v)
	}

	root := tr.Root()
	for _, p := range positions {
		proof := tr.InclusionProof(p)
		require.Len(t, proof, height)
		ok := VerifyInclusionProof(digest.Blake3, root, p, height, values[p], proof)
		require.True(t, ok, "inclusion proof for position %d should verify", p)
	}
}

func TestInclusionProofRejectsWrongLeaf(t *testing.T) {
	secret := []byte("tree-secret")
	height := 3

	tr := New(digest.Blake3, height, secret)
	tr.SetLeaf(2, leaf("real"))
	root := tr.Root()
	proof := tr.InclusionProof(2)

	ok := VerifyInclusionProof(digest.Blake3, root, 2, height, leaf("fake"), proof)
	require.False(t, ok)
}

func TestInclusionProofRejectsWrongPosition(t *testing.T) {
	secret := []byte("tree-secret")
	height := 3

	tr := New(digest.Blake3, height, secret)
	v := leaf("real")
	tr.SetLeaf(2, v)
	root := tr.Root()
	proof := tr.InclusionProof(2)

	ok := VerifyInclusionProof(digest.Blake3, root, 3, height, v, proof)
	require.False(t, ok)
}

func TestVerifyInclusionProofRejectsWrongLength(t *testing.T) {
	secret := []byte("tree-secret")
	tr := New(digest.Blake3, 3, secret)
	tr.SetLeaf(0, leaf("a"))
	root := tr.Root()

	ok := VerifyInclusionProof(digest.Blake3, root, 0, 3, leaf("a"), nil)
	require.False(t, ok)
}
