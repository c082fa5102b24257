// Package proofsystem defines the black-box prover/verifier capability the
// issuance and verification layers depend on. The cryptographic construction
// behind it is out of scope here: implementations only need to honor the
// contract that a proof produced from (claim, witness) verifies against the
// claim as public input.
package proofsystem

import (
	"context"
	"encoding/hex"

	"golang.org/x/crypto/sha3"
)

//go:generate mockgen -source=proofsystem.go -destination=mocks/mock_proofsystem.go -package=mocks

// Proof is an opaque proof artifact plus its content digest. The registry
// stores only the digest; the artifact itself lives with the proof system.
type Proof struct {
	Artifact []byte
	Digest   string
}

// Prover produces a proof for a claim given a private witness.
type Prover interface {
	Prove(ctx context.Context, claim, witness []byte) (*Proof, error)
}

// Verifier checks a proof against public inputs.
type Verifier interface {
	Verify(ctx context.Context, proof *Proof, publicInputs []byte) (bool, error)
}

// Rechecker re-validates an anchored proof from its digests alone. The
// registry never stores artifacts, so read-time rechecks go back to the proof
// system, which holds them.
type Rechecker interface {
	Recheck(ctx context.Context, claimDigest, proofDigest string) (bool, error)
}

// ProofSystem is the full capability consumed by issuance (prove + self-check)
// and optionally by verification (re-check on read).
type ProofSystem interface {
	Prover
	Verifier
	Rechecker
}

// DigestOf computes the hex-encoded digest used for claim payloads and proof
// artifacts throughout the system. Keccak-family hashing matches the ledger
// the registry anchors to.
func DigestOf(data []byte) string {
	sum := sha3.Sum256(data)
	return hex.EncodeToString(sum[:])
}
