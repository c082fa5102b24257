// Package verification evaluates credentials against verifier policies. Every
// policy outcome is an AccessDecision: denials are data, never errors, so
// batch callers can keep processing. Only infrastructure faults surface as
// errors.
package verification

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"proofgate/internal/proofsystem"
	"proofgate/internal/registry/models"
	id "proofgate/pkg/domain"
	dErrors "proofgate/pkg/domain-errors"
	"proofgate/pkg/platform/middleware/requesttime"
)

// Reader is the registry read side the engine depends on. Served from the
// cache in production; callers needing strict freshness wire the raw ledger.
type Reader interface {
	Get(ctx context.Context, credentialID id.CredentialID) (models.Credential, error)
}

// Option configures the verification engine.
type Option func(*Engine)

// Engine checks registry state and proof validity against a policy.
type Engine struct {
	reader    Reader
	rechecker proofsystem.Rechecker
	metrics   *Metrics
	tracer    trace.Tracer
}

// New creates a verification engine over the given registry reader.
func New(reader Reader, opts ...Option) *Engine {
	e := &Engine{
		reader: reader,
		tracer: otel.Tracer("proofgate/verification"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// WithProofRecheck enables read-time proof re-verification against the proof
// system, a defense against registry tampering. Off by default: it adds a
// round-trip per verify.
func WithProofRecheck(rc proofsystem.Rechecker) Option {
	return func(e *Engine) { e.rechecker = rc }
}

// WithMetrics sets the metrics instance for the engine.
func WithMetrics(m *Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// Verify evaluates the credential against the policy.
//
// The checks run in a fixed order so the reported reason is deterministic:
// existence, revocation, expiry, type, level, then the optional proof
// recheck. Expiry is computed against request time and never written back;
// the registry stays pure.
func (e *Engine) Verify(ctx context.Context, credentialID id.CredentialID, policy id.VerificationPolicy) (id.AccessDecision, error) {
	ctx, span := e.tracer.Start(ctx, "verification.Verify",
		trace.WithAttributes(attribute.String("credential_id", credentialID.String())))
	defer span.End()

	if err := policy.Validate(); err != nil {
		return id.AccessDecision{}, err
	}

	start := time.Now()
	decision, err := e.evaluate(ctx, credentialID, policy)
	if err != nil {
		return id.AccessDecision{}, err
	}

	span.SetAttributes(
		attribute.Bool("allowed", decision.Allowed),
		attribute.String("reason", string(decision.Reason)),
	)
	if e.metrics != nil {
		e.metrics.Decisions.WithLabelValues(string(decision.Reason)).Inc()
		e.metrics.Latency.Observe(time.Since(start).Seconds())
	}
	return decision, nil
}

func (e *Engine) evaluate(ctx context.Context, credentialID id.CredentialID, policy id.VerificationPolicy) (id.AccessDecision, error) {
	credential, err := e.reader.Get(ctx, credentialID)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeNotFound) {
			return id.Deny(id.ReasonNoCredential), nil
		}
		return id.AccessDecision{}, err
	}

	now := requesttime.Now(ctx)
	switch credential.EffectiveStatus(now) {
	case models.StatusRevoked:
		return id.DenyCredential(id.ReasonRevoked, credentialID), nil
	case models.StatusExpired:
		return id.DenyCredential(id.ReasonExpired, credentialID), nil
	}
	if policy.MaxAgeSeconds > 0 && now.Sub(credential.IssuedAt) > time.Duration(policy.MaxAgeSeconds)*time.Second {
		return id.DenyCredential(id.ReasonExpired, credentialID), nil
	}

	if !policy.AllowsType(credential.ProofType) {
		return id.DenyCredential(id.ReasonWrongType, credentialID), nil
	}
	if !credential.ProofLevel.AtLeast(policy.MinProofLevel) {
		return id.DenyCredential(id.ReasonInsufficientLevel, credentialID), nil
	}

	if e.rechecker != nil {
		valid, err := e.rechecker.Recheck(ctx, credential.ClaimDigest, credential.ProofDigest)
		if err != nil {
			return id.AccessDecision{}, err
		}
		if !valid {
			return id.DenyCredential(id.ReasonProofInvalid, credentialID), nil
		}
	}

	return id.Allow(credentialID), nil
}
