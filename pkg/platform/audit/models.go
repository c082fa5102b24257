package audit

import (
	"context"
	"sync"
	"time"

	id "proofgate/pkg/domain"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out. The registry appends
// one event per put/revoke; the gate appends one per contact authorization.
type Event struct {
	Timestamp    time.Time       `json:"timestamp"`
	SubjectID    id.SubjectID    `json:"subject_id"`
	IssuerID     id.IssuerID     `json:"issuer_id,omitempty"`
	CredentialID id.CredentialID `json:"credential_id,omitempty"`
	Action       string          `json:"action"`
	Decision     string          `json:"decision,omitempty"`
	Reason       string          `json:"reason,omitempty"`
	RequestID    string          `json:"request_id,omitempty"`
}

// Actions recorded across the credential lifecycle.
const (
	ActionCredentialIssued  = "credential_issued"
	ActionCredentialRevoked = "credential_revoked"
	ActionContactAuthorized = "contact_authorized"
	ActionConsentUpdated    = "consent_updated"
)

// Store is an append-only sink for audit events. Events are immutable once
// appended.
type Store interface {
	Append(ctx context.Context, event Event) error
}

// InMemoryStore keeps events in memory for tests and local runs.
type InMemoryStore struct {
	mu     sync.RWMutex
	events []Event
}

// NewInMemoryStore constructs an empty in-memory audit store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

// Append records an event. Never fails.
func (s *InMemoryStore) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

// Events returns a snapshot of appended events in order.
func (s *InMemoryStore) Events() []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}

// EventsByAction filters the snapshot by action. Test helper.
func (s *InMemoryStore) EventsByAction(action string) []Event {
	var out []Event
	for _, e := range s.Events() {
		if e.Action == action {
			out = append(out, e)
		}
	}
	return out
}
