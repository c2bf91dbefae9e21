package hashwires

import "golang.org/x/xerrors"

// Sentinel errors, one per failure kind, in the iotaledger-trie.go
// style of package-level xerrors.New values wrapped with
// xerrors.Errorf("...: %w", err) at call sites.
var (
	// ErrThresholdExceedsValue is returned by Prove when T > V: no MDP
	// row dominates T, so no proof can be constructed.
	ErrThresholdExceedsValue = xerrors.New("hashwires: threshold exceeds committed value")

	// ErrUnsupportedBase is returned when a caller requests a radix
	// other than 2, 4, 16, or 256.
	ErrUnsupportedBase = xerrors.New("hashwires: unsupported base")

	// ErrMalformedCommitment is returned by DeserializeCommitment on
	// truncated or over-long input.
	ErrMalformedCommitment = xerrors.New("hashwires: malformed commitment encoding")

	// ErrMalformedProof is returned by DeserializeProof on truncated,
	// over-long, or internally inconsistent input.
	ErrMalformedProof = xerrors.New("hashwires: malformed proof encoding")

	// ErrVerificationFailed is returned by Verify when a proof fails to
	// reconstruct the commitment's root.
	ErrVerificationFailed = xerrors.New("hashwires: proof failed to verify against commitment")
)
