// Package models defines the credential record anchored in the certificate
// registry.
//
// Immutability invariant: once written, subject, issuer, claim digest, proof
// digest, and issued_at never change. The only mutation is the one-way
// active -> revoked transition. Expiry is derived at read time and never
// persisted, so the ledger stays append-only.
package models

import (
	"time"

	id "proofgate/pkg/domain"
)

// Status is the persisted lifecycle state of a credential. Expired is a
// derived status: it is reported by EffectiveStatus but never stored.
type Status string

const (
	StatusActive  Status = "active"
	StatusRevoked Status = "revoked"
	StatusExpired Status = "expired"
)

// Credential is a registry record attesting a claim about a subject.
// The raw claim payload is stored off-chain; the registry holds digests only,
// never PII.
type Credential struct {
	ID          id.CredentialID
	SubjectID   id.SubjectID
	IssuerID    id.IssuerID
	ProofType   id.ProofType
	ProofLevel  id.ProofLevel
	ClaimDigest string
	ProofDigest string
	IssuedAt    time.Time
	// ExpiresAt is nil for non-expiring credentials.
	ExpiresAt *time.Time
	Status    Status
	RevokedAt *time.Time
	RevokedBy id.ActorID
}

// IsExpiredAt reports whether the credential has passed its expiry relative
// to the given time. Non-expiring credentials never expire.
func (c Credential) IsExpiredAt(now time.Time) bool {
	if c.ExpiresAt == nil {
		return false
	}
	return now.After(*c.ExpiresAt)
}

// EffectiveStatus derives the externally visible status at the given time.
// Revocation wins over expiry: a revoked credential stays revoked.
func (c Credential) EffectiveStatus(now time.Time) Status {
	if c.Status == StatusRevoked {
		return StatusRevoked
	}
	if c.IsExpiredAt(now) {
		return StatusExpired
	}
	return StatusActive
}

// CanRevoke reports whether the requester is authorized to revoke: only the
// credential's issuer or its subject may do so.
func (c Credential) CanRevoke(requester id.ActorID) bool {
	return requester.IsIssuer(c.IssuerID) || requester.IsSubject(c.SubjectID)
}
