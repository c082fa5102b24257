// Package store defines persistence for consent records.
package store

import (
	"context"

	"proofgate/internal/consent/models"
	id "proofgate/pkg/domain"
	dErrors "proofgate/pkg/domain-errors"
)

// ErrNotFound signals that no consent record exists for the subject. Callers
// treat absence as all-withheld, never as a failure.
var ErrNotFound = dErrors.New(dErrors.CodeNotFound, "consent record not found")

// Store persists one consent record per subject.
//
// Error Contract:
//   - Find returns ErrNotFound when the subject has never set consent
//   - Save upserts and returns nil on success
type Store interface {
	Save(ctx context.Context, record models.Record) error
	Find(ctx context.Context, subjectID id.SubjectID) (models.Record, error)
}
