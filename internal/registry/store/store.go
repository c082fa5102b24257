// Package store defines the persistence contract for the certificate
// registry ledger.
package store

import (
	"context"
	"time"

	"proofgate/internal/registry/models"
	id "proofgate/pkg/domain"
	dErrors "proofgate/pkg/domain-errors"
)

var (
	// ErrNotFound keeps storage-specific 404s consistent across implementations.
	ErrNotFound = dErrors.New(dErrors.CodeNotFound, "credential not found")
	// ErrDuplicate signals an at-most-once write violation: the credential
	// ID has already been committed.
	ErrDuplicate = dErrors.New(dErrors.CodeDuplicateCredential, "credential already exists")
	// ErrAlreadyRevoked keeps revocation idempotent: a second revoke is
	// reported, never destructive.
	ErrAlreadyRevoked = dErrors.New(dErrors.CodeAlreadyRevoked, "credential already revoked")
)

// Store is the ledger-backed credential store. Implementations must provide
// atomic, totally-ordered commits: Put either fully succeeds or leaves no
// visible side effect.
//
// Error Contract:
//   - Get returns ErrNotFound when no record exists
//   - Put returns ErrDuplicate when the ID is already committed
//   - MarkRevoked returns ErrNotFound / ErrAlreadyRevoked accordingly
//   - Infrastructure faults surface as CodeLedgerUnavailable
type Store interface {
	Put(ctx context.Context, credential models.Credential) error
	Get(ctx context.Context, credentialID id.CredentialID) (models.Credential, error)
	// MarkRevoked flips the one-way active -> revoked transition and
	// returns the updated record. Authorization is the service's job;
	// the store only enforces state transitions.
	MarkRevoked(ctx context.Context, credentialID id.CredentialID, requester id.ActorID, revokedAt time.Time) (models.Credential, error)
	// ListBySubject returns all credentials anchored for a subject, newest
	// first. Used by the match filter to select the best credential.
	ListBySubject(ctx context.Context, subjectID id.SubjectID) ([]models.Credential, error)
}
