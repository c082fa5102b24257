package proofsystem

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	dErrors "proofgate/pkg/domain-errors"
)

// Simulator is a deterministic in-process proof system for tests and local
// runs. Proofs bind the claim digest to a witness commitment; verification
// checks the binding against the public inputs. It provides the contract of a
// real prover without any cryptographic strength.
//
// Produced artifacts are archived by digest so read-time rechecks work the
// way they would against a real proof store.
type Simulator struct {
	mu      sync.RWMutex
	archive map[string][]byte
}

// NewSimulator constructs the in-process proof system.
func NewSimulator() *Simulator {
	return &Simulator{archive: make(map[string][]byte)}
}

const artifactPrefix = "zkpsim/1:"

// Prove produces an artifact binding the claim digest and a witness commitment.
func (s *Simulator) Prove(_ context.Context, claim, witness []byte) (*Proof, error) {
	if len(claim) == 0 {
		return nil, dErrors.New(dErrors.CodeInvalidClaim, "claim payload is empty")
	}
	if len(witness) == 0 {
		return nil, dErrors.New(dErrors.CodeProofRejected, "witness is required")
	}

	claimDigest := DigestOf(claim)
	commitment := DigestOf(append(witness, claim...))
	artifact := fmt.Appendf(nil, "%s%s:%s", artifactPrefix, claimDigest, commitment)
	digest := DigestOf(artifact)

	s.mu.Lock()
	s.archive[digest] = artifact
	s.mu.Unlock()

	return &Proof{
		Artifact: artifact,
		Digest:   digest,
	}, nil
}

// Verify checks the artifact structure and that its embedded claim digest
// matches the public inputs. Tampered artifacts fail either the structural
// check or the digest comparison.
func (s *Simulator) Verify(_ context.Context, proof *Proof, publicInputs []byte) (bool, error) {
	if proof == nil || len(proof.Artifact) == 0 {
		return false, nil
	}
	if proof.Digest != "" && proof.Digest != DigestOf(proof.Artifact) {
		return false, nil
	}

	rest, ok := bytes.CutPrefix(proof.Artifact, []byte(artifactPrefix))
	if !ok {
		return false, nil
	}
	parts := bytes.SplitN(rest, []byte(":"), 2)
	if len(parts) != 2 || len(parts[1]) == 0 {
		return false, nil
	}

	return string(parts[0]) == DigestOf(publicInputs), nil
}

// Recheck re-validates an archived artifact against the anchored digests.
// An artifact the archive no longer holds, or whose embedded claim digest
// drifted from the registry's, fails the check.
func (s *Simulator) Recheck(_ context.Context, claimDigest, proofDigest string) (bool, error) {
	s.mu.RLock()
	artifact, ok := s.archive[proofDigest]
	s.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if DigestOf(artifact) != proofDigest {
		return false, nil
	}

	rest, ok := bytes.CutPrefix(artifact, []byte(artifactPrefix))
	if !ok {
		return false, nil
	}
	parts := bytes.SplitN(rest, []byte(":"), 2)
	if len(parts) != 2 {
		return false, nil
	}
	return string(parts[0]) == claimDigest, nil
}
