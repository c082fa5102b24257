package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"proofgate/internal/registry/models"
	id "proofgate/pkg/domain"
	platformsync "proofgate/pkg/platform/sync"
)

// InMemoryLedger is the in-process ledger implementation. It simulates the
// atomic, totally-ordered commits a real ledger provides: writes to the same
// credential ID are serialized on a sharded mutex so exactly one concurrent
// Put wins.
type InMemoryLedger struct {
	mu          sync.RWMutex
	credentials map[id.CredentialID]models.Credential
	commits     *platformsync.ShardedMutex
}

// NewInMemoryLedger constructs an empty ledger.
func NewInMemoryLedger() *InMemoryLedger {
	return &InMemoryLedger{
		credentials: make(map[id.CredentialID]models.Credential),
		commits:     platformsync.NewShardedMutex(),
	}
}

// Put commits a credential record. At-most-once per ID: concurrent calls with
// the same computed credential_id are serialized and exactly one succeeds.
func (s *InMemoryLedger) Put(_ context.Context, credential models.Credential) error {
	key := credential.ID.String()
	s.commits.Lock(key)
	defer s.commits.Unlock(key)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.credentials[credential.ID]; exists {
		return ErrDuplicate
	}
	s.credentials[credential.ID] = credential
	return nil
}

// Get retrieves a credential record by ID or returns ErrNotFound.
func (s *InMemoryLedger) Get(_ context.Context, credentialID id.CredentialID) (models.Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if c, ok := s.credentials[credentialID]; ok {
		return c, nil
	}
	return models.Credential{}, ErrNotFound
}

// MarkRevoked performs the one-way active -> revoked transition.
func (s *InMemoryLedger) MarkRevoked(_ context.Context, credentialID id.CredentialID, requester id.ActorID, revokedAt time.Time) (models.Credential, error) {
	key := credentialID.String()
	s.commits.Lock(key)
	defer s.commits.Unlock(key)

	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.credentials[credentialID]
	if !ok {
		return models.Credential{}, ErrNotFound
	}
	if c.Status == models.StatusRevoked {
		return models.Credential{}, ErrAlreadyRevoked
	}

	c.Status = models.StatusRevoked
	c.RevokedAt = &revokedAt
	c.RevokedBy = requester
	s.credentials[credentialID] = c
	return c, nil
}

// ListBySubject returns the subject's credentials, newest first.
func (s *InMemoryLedger) ListBySubject(_ context.Context, subjectID id.SubjectID) ([]models.Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Credential
	for _, c := range s.credentials {
		if c.SubjectID == subjectID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].IssuedAt.After(out[j].IssuedAt)
	})
	return out, nil
}
