package store

import (
	"context"
	"sync"

	"proofgate/internal/consent/models"
	id "proofgate/pkg/domain"
)

// InMemoryStore keeps consent records in memory for tests and single-node runs.
type InMemoryStore struct {
	mu      sync.RWMutex
	records map[id.SubjectID]models.Record
}

// NewInMemory constructs an empty in-memory consent store.
func NewInMemory() *InMemoryStore {
	return &InMemoryStore{records: make(map[id.SubjectID]models.Record)}
}

func (s *InMemoryStore) Save(_ context.Context, record models.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.SubjectID] = record
	return nil
}

func (s *InMemoryStore) Find(_ context.Context, subjectID id.SubjectID) (models.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[subjectID]
	if !ok {
		return models.Record{}, ErrNotFound
	}
	return record, nil
}
