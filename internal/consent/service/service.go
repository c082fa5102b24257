// Package service manages subject consent settings. Consent is evaluated by
// the access policy gate after proof verification; this service only owns the
// records themselves.
package service

import (
	"context"
	"log/slog"
	"time"

	"proofgate/internal/consent/models"
	"proofgate/internal/consent/store"
	id "proofgate/pkg/domain"
	dErrors "proofgate/pkg/domain-errors"
	"proofgate/pkg/platform/audit"
	"proofgate/pkg/requestcontext"
)

// AuditPublisher emits audit events for consent changes.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Option configures the consent service.
type Option func(*Service)

// Service reads and updates consent records.
type Service struct {
	store   store.Store
	auditor AuditPublisher
	logger  *slog.Logger
}

// New creates a consent service over the given store.
func New(st store.Store, auditor AuditPublisher, opts ...Option) *Service {
	s := &Service{
		store:   st,
		auditor: auditor,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithLogger sets the logger instance for the service.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// Get returns the subject's consent record. A subject who never set consent
// gets the restrictive defaults, not an error.
func (s *Service) Get(ctx context.Context, subjectID id.SubjectID) (models.Record, error) {
	record, err := s.store.Find(ctx, subjectID)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeNotFound) {
			return models.Default(subjectID), nil
		}
		return models.Record{}, err
	}
	return record, nil
}

// Update replaces the subject's consent settings. Only the subject may change
// their own record; the caller's identity comes from the authenticated
// request, never from the payload.
func (s *Service) Update(ctx context.Context, requester id.SubjectID, subjectID id.SubjectID, settings models.Settings, updatedAt time.Time) (models.Record, error) {
	if requester.IsNil() {
		return models.Record{}, dErrors.New(dErrors.CodeUnauthorized, "missing subject context")
	}
	if requester != subjectID {
		return models.Record{}, dErrors.New(dErrors.CodeForbidden, "subjects may only update their own consent")
	}

	record := models.Record{
		SubjectID:        subjectID,
		AllowContact:     settings.AllowContact,
		AllowSkillView:   settings.AllowSkillView,
		AllowProfileView: settings.AllowProfileView,
		RequireNDA:       settings.RequireNDA,
		UpdatedAt:        updatedAt,
	}
	if err := s.store.Save(ctx, record); err != nil {
		return models.Record{}, err
	}

	s.emitAudit(ctx, audit.Event{
		SubjectID: subjectID,
		Action:    audit.ActionConsentUpdated,
		Decision:  "updated",
	})
	return record, nil
}

func (s *Service) emitAudit(ctx context.Context, event audit.Event) {
	if s.auditor == nil {
		return
	}
	event.RequestID = requestcontext.RequestID(ctx)
	if err := s.auditor.Emit(ctx, event); err != nil && s.logger != nil {
		s.logger.ErrorContext(ctx, "failed to emit consent audit event",
			"error", err,
			"subject_id", event.SubjectID,
		)
	}
}
