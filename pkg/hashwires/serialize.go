package hashwires

import (
	"encoding/binary"

	"golang.org/x/xerrors"

	"github.com/MuriData/hashwires/pkg/digest"
	"github.com/MuriData/hashwires/pkg/dp"
)

// Wire framing follows RFC 8017's I2OSP/OS2IP convention
// (original_source/src/serialization.rs): every variable-length field
// is preceded by its length as a big-endian uint16.

func putLenPrefixed(buf []byte, data []byte) []byte {
	var l [2]byte
	binary.BigEndian.PutUint16(l[:], uint16(len(data)))
	buf = append(buf, l[:]...)
	return append(buf, data...)
}

func takeLenPrefixed(buf []byte) (data []byte, rest []byte, err error) {
	if len(buf) < 2 {
		return nil, nil, xerrors.New("truncated length prefix")
	}
	n := int(binary.BigEndian.Uint16(buf[:2]))
	buf = buf[2:]
	if len(buf) < n {
		return nil, nil, xerrors.New("truncated length-prefixed field")
	}
	return buf[:n], buf[n:], nil
}

// Serialize encodes a Commitment as its bare 32-byte SMT root. Base
// travels out-of-band (original_source/src/hashwires.rs::Commitment
// carries no base, height, or bit-bound field of its own).
func (c *Commitment) Serialize() []byte {
	out := make([]byte, digest.Size)
	copy(out, c.Root[:])
	return out
}

// DeserializeCommitment decodes the output of Commitment.Serialize. base
// must be supplied by the caller out-of-band, the same way
// original_source/src/hashwires.rs::Commitment::deserialize takes it as
// a separate argument.
func DeserializeCommitment(buf []byte, base Base) (*Commitment, error) {
	if len(buf) != digest.Size {
		return nil, ErrMalformedCommitment
	}
	if _, ok := dp.Bitlength(uint32(base)); !ok {
		return nil, xerrors.Errorf("hashwires: %w: unsupported base %d", ErrMalformedCommitment, base)
	}
	var root [digest.Size]byte
	copy(root[:], buf)
	return &Commitment{Root: root, Base: base}, nil
}

// Serialize encodes a Proof as:
//
//	chain node count(2) || that many 32-byte nodes
//	MDPSalt              (16 raw bytes)
//	smt proof length(2)  || leaf position(8, big-endian) || that many
//	                         32-byte sibling nodes
//	PLRPadding            (absent, or exactly 32 raw bytes)
func (p *Proof) Serialize() []byte {
	var chainFlat []byte
	for _, n := range p.ChainNodes {
		chainFlat = append(chainFlat, n[:]...)
	}
	buf := putLenPrefixed(nil, chainFlat)

	buf = append(buf, p.MDPSalt[:]...)

	smtProof := make([]byte, 0, 8+len(p.Siblings)*digest.Size)
	var lp [8]byte
	binary.BigEndian.PutUint64(lp[:], p.LeafPosition)
	smtProof = append(smtProof, lp[:]...)
	for _, s := range p.Siblings {
		smtProof = append(smtProof, s[:]...)
	}
	buf = putLenPrefixed(buf, smtProof)

	if p.PLRPadding != nil {
		buf = append(buf, p.PLRPadding[:]...)
	}
	return buf
}

// DeserializeProof decodes the output of Proof.Serialize. A trailing
// PLRPadding is optional: the remainder after the smt-proof field must
// be either empty or exactly digest.Size bytes, matching the Rust
// Option<[u8; 32]> tail (original_source/src/hashwires.rs::Proof).
func DeserializeProof(buf []byte) (*Proof, error) {
	chainFlat, buf, err := takeLenPrefixed(buf)
	if err != nil {
		return nil, xerrors.Errorf("hashwires: %w: %s", ErrMalformedProof, err)
	}
	if len(chainFlat)%digest.Size != 0 {
		return nil, ErrMalformedProof
	}
	chainNodes := make([][digest.Size]byte, len(chainFlat)/digest.Size)
	for i := range chainNodes {
		copy(chainNodes[i][:], chainFlat[i*digest.Size:(i+1)*digest.Size])
	}

	if len(buf) < 16 {
		return nil, ErrMalformedProof
	}
	var mdpSalt [16]byte
	copy(mdpSalt[:], buf[:16])
	buf = buf[16:]

	smtProof, buf, err := takeLenPrefixed(buf)
	if err != nil {
		return nil, xerrors.Errorf("hashwires: %w: %s", ErrMalformedProof, err)
	}
	if len(smtProof) < 8 || (len(smtProof)-8)%digest.Size != 0 {
		return nil, ErrMalformedProof
	}
	leafPos := binary.BigEndian.Uint64(smtProof[:8])
	siblingBytes := smtProof[8:]
	siblings := make([][digest.Size]byte, len(siblingBytes)/digest.Size)
	for i := range siblings {
		copy(siblings[i][:], siblingBytes[i*digest.Size:(i+1)*digest.Size])
	}

	var plrPadding *[digest.Size]byte
	switch len(buf) {
	case 0:
		plrPadding = nil
	case digest.Size:
		var p [digest.Size]byte
		copy(p[:], buf)
		plrPadding = &p
	default:
		return nil, ErrMalformedProof
	}

	return &Proof{
		ChainNodes:   chainNodes,
		MDPSalt:      mdpSalt,
		LeafPosition: leafPos,
		Siblings:     siblings,
		PLRPadding:   plrPadding,
	}, nil
}
