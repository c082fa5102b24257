// Package gate composes proof verification with subject consent. A verified
// credential never overrides the subject's privacy choices: both gates must
// pass before a downstream action like revealing a contact channel.
package gate

import (
	"context"
	"log/slog"

	consentmodels "proofgate/internal/consent/models"
	id "proofgate/pkg/domain"
	"proofgate/pkg/platform/audit"
	"proofgate/pkg/requestcontext"
)

// Verifier is the verification engine surface the gate composes.
type Verifier interface {
	Verify(ctx context.Context, credentialID id.CredentialID, policy id.VerificationPolicy) (id.AccessDecision, error)
}

// ConsentReader returns a subject's consent record, restrictive defaults when
// none exists.
type ConsentReader interface {
	Get(ctx context.Context, subjectID id.SubjectID) (consentmodels.Record, error)
}

// AuditPublisher emits audit events for gate decisions.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Option configures the access policy gate.
type Option func(*Gate)

// Gate is the access policy gate over verification and consent.
type Gate struct {
	verifier Verifier
	consent  ConsentReader
	auditor  AuditPublisher
	logger   *slog.Logger
}

// New creates an access policy gate.
func New(verifier Verifier, consent ConsentReader, opts ...Option) *Gate {
	g := &Gate{
		verifier: verifier,
		consent:  consent,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// WithAuditPublisher enables audit events for contact authorizations.
func WithAuditPublisher(p AuditPublisher) Option {
	return func(g *Gate) { g.auditor = p }
}

// WithLogger sets the logger instance for the gate.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Gate) { g.logger = logger }
}

// AuthorizeContact decides whether a verifier may contact the subject.
// Verification denials propagate as-is. On a valid proof, the subject's
// consent record is checked independently: contact withheld or an unaccepted
// NDA requirement denies even though the proof stands.
func (g *Gate) AuthorizeContact(ctx context.Context, subjectID id.SubjectID, credentialID id.CredentialID, policy id.VerificationPolicy, ndaAccepted bool) (id.AccessDecision, error) {
	decision, err := g.verifier.Verify(ctx, credentialID, policy)
	if err != nil {
		return id.AccessDecision{}, err
	}
	if !decision.Allowed {
		g.emitAudit(ctx, subjectID, credentialID, decision)
		return decision, nil
	}

	record, err := g.consent.Get(ctx, subjectID)
	if err != nil {
		return id.AccessDecision{}, err
	}
	switch {
	case !record.AllowContact:
		decision = id.DenyCredential(id.ReasonConsentWithheld, credentialID)
	case record.RequireNDA && !ndaAccepted:
		decision = id.DenyCredential(id.ReasonNdaRequired, credentialID)
	}

	g.emitAudit(ctx, subjectID, credentialID, decision)
	return decision, nil
}

func (g *Gate) emitAudit(ctx context.Context, subjectID id.SubjectID, credentialID id.CredentialID, decision id.AccessDecision) {
	if g.auditor == nil {
		return
	}
	outcome := "denied"
	if decision.Allowed {
		outcome = "allowed"
	}
	event := audit.Event{
		SubjectID:    subjectID,
		CredentialID: credentialID,
		Action:       audit.ActionContactAuthorized,
		Decision:     outcome,
		Reason:       string(decision.Reason),
		RequestID:    requestcontext.RequestID(ctx),
	}
	if err := g.auditor.Emit(ctx, event); err != nil && g.logger != nil {
		g.logger.ErrorContext(ctx, "failed to emit gate audit event",
			"error", err,
			"subject_id", subjectID,
		)
	}
}
