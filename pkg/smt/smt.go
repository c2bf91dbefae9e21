// Package smt implements the fixed-height sparse Merkle tree HashWires
// commits its shuffled leaf rows into (spec.md §4.6, §4.9). Structurally
// grounded on the teacher's pkg/merkle/merkle.go SparseMerkleTree (a
// map-per-level tree built only where leaves actually exist, rather than
// materializing every node). The padding rule for missing nodes comes
// from original_source/smt/src/node_template.rs::HashNodeSmt::padding,
// generalized from "one zero-hash per level" (the teacher's scheme,
// which only works because every missing node at a level is identical)
// to a per-position padding hash, because HashWires pads with a *secret*
// and the original crate's SMT indexes padding by the node's full tree
// path, not merely its depth.
package smt

import (
	"encoding/binary"

	"github.com/MuriData/hashwires/pkg/digest"
)

// Tree is a sparse Merkle tree of fixed Height, built only over the
// leaves a caller sets; every other node is derived on demand from
// Secret via the padding rule rather than stored.
type Tree struct {
	f      digest.Factory
	height int
	secret []byte

	// levels[0] holds leaves (keyed by leaf position); levels[d] for
	// d in [1, height] holds internal nodes at depth (height-d) from
	// the root, keyed by their position within that level. A position
	// absent from levels[d] has no real leaf beneath it and is a pure
	// padding node, recomputed from its path rather than cached.
	levels []map[uint64][digest.Size]byte
}

// New returns an empty tree of the given height (2^height leaf slots),
// padding missing nodes with a per-position hash derived from secret.
func New(f digest.Factory, height int, secret []byte) *Tree {
	levels := make([]map[uint64][digest.Size]byte, height+1)
	for i := range levels {
		levels[i] = make(map[uint64][digest.Size]byte)
	}
	return &Tree{f: f, height: height, secret: secret, levels: levels}
}

// Height reports the tree's fixed height.
func (t *Tree) Height() int { return t.height }

// SetLeaf places value at leaf position pos (pos must be in
// [0, 2^height)); it overwrites any leaf previously set there. Building
// happens lazily at Root/InclusionProof time.
func (t *Tree) SetLeaf(pos uint64, value [digest.Size]byte) {
	t.levels[0][pos] = value
}

// merge computes an internal node from its two children, H(left||right)
// (node_template.rs::HashNodeSmt::merge).
func merge(f digest.Factory, left, right [digest.Size]byte) [digest.Size]byte {
	return digest.Sum(f, left[:], right[:])
}

// padding derives the value of a missing node at the given depth (0 =
// root, height = leaf level) and position within that depth, as
// H("padding_node" || H(secret || BE32(depth) || BE32(position)))
// (node_template.rs::HashNodeSmt::padding, generalized to a full path
// rather than a single TreeIndex since internal padding nodes here are
// keyed by position, not merely by level).
func (t *Tree) padding(depth int, pos uint64) [digest.Size]byte {
	var idxBytes [8]byte
	binary.BigEndian.PutUint32(idxBytes[0:4], uint32(depth))
	binary.BigEndian.PutUint32(idxBytes[4:8], uint32(pos))
	inner := digest.Sum(t.f, t.secret, idxBytes[:])
	return digest.Sum(t.f, []byte("padding_node"), inner[:])
}

// nodeAt returns the node at tree level lvl (0 = leaves, height = root)
// and position pos within that level, falling back to padding when no
// real leaf exists beneath it.
func (t *Tree) nodeAt(lvl int, pos uint64) [digest.Size]byte {
	if v, ok := t.levels[lvl][pos]; ok {
		return v
	}
	return t.padding(t.height-lvl, pos)
}

// build recomputes every internal level bottom-up from the leaves
// currently set, populating t.levels[1:] so Root and InclusionProof can
// read cached nodes instead of recursing.
func (t *Tree) build() {
	for lvl := 1; lvl <= t.height; lvl++ {
		next := make(map[uint64][digest.Size]byte)
		seen := make(map[uint64]bool)
		for childPos := range t.levels[lvl-1] {
			parent := childPos / 2
			if seen[parent] {
				continue
			}
			seen[parent] = true
			left := t.nodeAt(lvl-1, parent*2)
			right := t.nodeAt(lvl-1, parent*2+1)
			next[parent] = merge(t.f, left, right)
		}
		t.levels[lvl] = next
	}
}

// Root returns the tree's root hash, rebuilding internal levels from
// the currently set leaves first.
func (t *Tree) Root() [digest.Size]byte {
	t.build()
	return t.nodeAt(t.height, 0)
}

// InclusionProof returns the sibling hashes on the path from leaf pos up
// to the root, ordered leaf-first.
func (t *Tree) InclusionProof(pos uint64) [][digest.Size]byte {
	t.build()
	proof := make([][digest.Size]byte, 0, t.height)
	cur := pos
	for lvl := 0; lvl < t.height; lvl++ {
		sibling := cur ^ 1
		proof = append(proof, t.nodeAt(lvl, sibling))
		cur /= 2
	}
	return proof
}

// VerifyInclusionProof recomputes the root from leaf at pos plus its
// sibling path and reports whether it matches root.
func VerifyInclusionProof(f digest.Factory, root [digest.Size]byte, pos uint64, height int, leaf [digest.Size]byte, siblings [][digest.Size]byte) bool {
	if len(siblings) != height {
		return false
	}
	cur := leaf
	p := pos
	for lvl := 0; lvl < height; lvl++ {
		if p%2 == 0 {
			cur = merge(f, cur, siblings[lvl])
		} else {
			cur = merge(f, siblings[lvl], cur)
		}
		p /= 2
	}
	return cur == root
}
