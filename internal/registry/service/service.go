// Package service implements the certificate registry: the trust anchor
// mapping credential IDs to issuance records. All mutations flow through
// here so auditing, metrics, and read-model mirroring stay consistent.
package service

import (
	"context"
	"log/slog"
	"time"

	"proofgate/internal/registry/metrics"
	"proofgate/internal/registry/models"
	"proofgate/internal/registry/store"
	id "proofgate/pkg/domain"
	dErrors "proofgate/pkg/domain-errors"
	"proofgate/pkg/platform/audit"
	"proofgate/pkg/requestcontext"
)

// Reader is the read side of the registry, satisfied by both the raw ledger
// store and the caching layer. Verification depends on this, never on the
// write side.
type Reader interface {
	Get(ctx context.Context, credentialID id.CredentialID) (models.Credential, error)
	ListBySubject(ctx context.Context, subjectID id.SubjectID) ([]models.Credential, error)
}

// Mirror receives committed ledger state for the local read model.
// Implementations must be safe to call after the ledger commit; failures are
// reported but never roll back a commit.
type Mirror interface {
	Sync(ctx context.Context, credential models.Credential, syncedAt time.Time) error
}

// Invalidator drops cached reads after a mutation so bounded staleness holds.
type Invalidator interface {
	Invalidate(ctx context.Context, credentialID id.CredentialID)
}

// AuditPublisher emits audit events for registry mutations.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Option configures the registry service.
type Option func(*Service)

// Service wraps the ledger store with authorization, audit, and mirroring.
type Service struct {
	ledger      store.Store
	auditor     AuditPublisher
	mirror      Mirror
	invalidator Invalidator
	metrics     *metrics.Metrics
	logger      *slog.Logger
}

// New creates a registry service over the given ledger store.
func New(ledger store.Store, auditor AuditPublisher, opts ...Option) *Service {
	s := &Service{
		ledger:  ledger,
		auditor: auditor,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithMirror configures a local read-model mirror.
func WithMirror(m Mirror) Option {
	return func(s *Service) { s.mirror = m }
}

// WithInvalidator configures cache invalidation on mutations.
func WithInvalidator(inv Invalidator) Option {
	return func(s *Service) { s.invalidator = inv }
}

// WithMetrics sets the metrics instance for the service.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithLogger sets the logger instance for the service.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// Put commits a credential record. At-most-once per credential ID: a
// duplicate surfaces as CodeDuplicateCredential so issuance can return the
// existing record instead of erroring.
func (s *Service) Put(ctx context.Context, credential models.Credential) error {
	if credential.ID.IsNil() {
		return dErrors.New(dErrors.CodeInvariantViolation, "credential ID is required")
	}
	if credential.Status != models.StatusActive {
		return dErrors.New(dErrors.CodeInvariantViolation, "new credentials must be active")
	}

	start := time.Now()
	if err := s.ledger.Put(ctx, credential); err != nil {
		if dErrors.HasCode(err, dErrors.CodeDuplicateCredential) && s.metrics != nil {
			s.metrics.DuplicatePuts.Inc()
		}
		return err
	}
	if s.metrics != nil {
		s.metrics.CredentialsAnchored.Inc()
		s.metrics.PutLatency.Observe(time.Since(start).Seconds())
	}

	s.emitAudit(ctx, audit.Event{
		SubjectID:    credential.SubjectID,
		IssuerID:     credential.IssuerID,
		CredentialID: credential.ID,
		Action:       audit.ActionCredentialIssued,
		Decision:     "committed",
	})
	s.syncMirror(ctx, credential)
	return nil
}

// Get returns a credential record by ID.
func (s *Service) Get(ctx context.Context, credentialID id.CredentialID) (models.Credential, error) {
	return s.ledger.Get(ctx, credentialID)
}

// ListBySubject returns a subject's credentials, newest first.
func (s *Service) ListBySubject(ctx context.Context, subjectID id.SubjectID) ([]models.Credential, error) {
	return s.ledger.ListBySubject(ctx, subjectID)
}

// Revoke performs the one-way active -> revoked transition. Only the
// credential's issuer or subject is authorized; repeated revocations return
// CodeAlreadyRevoked rather than failing destructively.
func (s *Service) Revoke(ctx context.Context, credentialID id.CredentialID, requester id.ActorID, revokedAt time.Time) (models.Credential, error) {
	if requester.IsNil() {
		return models.Credential{}, dErrors.New(dErrors.CodeUnauthorized, "requester ID is required")
	}

	current, err := s.ledger.Get(ctx, credentialID)
	if err != nil {
		return models.Credential{}, err
	}
	if !current.CanRevoke(requester) {
		s.recordRevocation("unauthorized")
		return models.Credential{}, dErrors.New(dErrors.CodeUnauthorized, "only the issuer or subject may revoke")
	}

	updated, err := s.ledger.MarkRevoked(ctx, credentialID, requester, revokedAt)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeAlreadyRevoked) {
			s.recordRevocation("already_revoked")
		}
		return models.Credential{}, err
	}
	s.recordRevocation("revoked")

	s.emitAudit(ctx, audit.Event{
		SubjectID:    updated.SubjectID,
		IssuerID:     updated.IssuerID,
		CredentialID: updated.ID,
		Action:       audit.ActionCredentialRevoked,
		Decision:     "revoked",
		Reason:       revocationReason(updated),
	})
	s.syncMirror(ctx, updated)
	if s.invalidator != nil {
		s.invalidator.Invalidate(ctx, credentialID)
	}
	return updated, nil
}

func revocationReason(c models.Credential) string {
	if c.RevokedBy.IsSubject(c.SubjectID) {
		return "subject_requested"
	}
	return "issuer_requested"
}

func (s *Service) recordRevocation(outcome string) {
	if s.metrics != nil {
		s.metrics.Revocations.WithLabelValues(outcome).Inc()
	}
}

// emitAudit appends the mutation to the audit log. The in-process store
// cannot fail; failures from durable sinks are logged, not propagated, since
// the ledger commit already happened.
func (s *Service) emitAudit(ctx context.Context, event audit.Event) {
	if s.auditor == nil {
		return
	}
	event.RequestID = requestcontext.RequestID(ctx)
	if err := s.auditor.Emit(ctx, event); err != nil && s.logger != nil {
		s.logger.ErrorContext(ctx, "failed to emit registry audit event",
			"error", err,
			"action", event.Action,
			"credential_id", event.CredentialID,
		)
	}
}

func (s *Service) syncMirror(ctx context.Context, credential models.Credential) {
	if s.mirror == nil {
		return
	}
	if err := s.mirror.Sync(ctx, credential, time.Now().UTC()); err != nil {
		if s.metrics != nil {
			s.metrics.ReadModelSyncErrors.Inc()
		}
		if s.logger != nil {
			s.logger.ErrorContext(ctx, "read model sync failed",
				"error", err,
				"credential_id", credential.ID,
			)
		}
	}
}
