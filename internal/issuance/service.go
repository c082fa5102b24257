// Package issuance turns validated claims into anchored credentials: it runs
// the prover, self-checks the resulting proof, and commits the record to the
// registry under a content-derived ID so retries are idempotent.
package issuance

import (
	"context"
	"fmt"
	"log/slog"
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

// Registry is the write-plus-read surface issuance needs: Put to anchor a new
// credential, Get to return the existing record on an idempotent retry.
type Registry interface {
	Put(ctx context.Context, credential models.Credential) error
	Get(ctx context.Context, credentialID id.CredentialID) (models.Credential, error)
}

// Request carries everything needed to issue one credential. The witness
// stays private to the prover; only digests of claim and proof are anchored.
type Request struct {
	Claim      []byte
	Witness    []byte
	IssuerID   id.IssuerID
	SubjectID  id.SubjectID
	ProofType  id.ProofType
	ProofLevel id.ProofLevel
	Nonce      string
	TTL        time.Duration
}

// Option configures the issuance service.
type Option func(*Service)

// Service implements credential issuance over a proof system and the registry.
type Service struct {
	proofs   proofsystem.ProofSystem
	registry Registry
	logger   *slog.Logger
	tracer   trace.Tracer
}

// New creates an issuance service.
func New(proofs proofsystem.ProofSystem, registry Registry, opts ...Option) *Service {
	s := &Service{
		proofs:   proofs,
		registry: registry,
		tracer:   otel.Tracer("proofgate/issuance"),
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

// Issue validates the claim, proves it, and anchors the credential. Identical
// (claim, issuer, subject, nonce) requests compute the same credential ID, so
// a retried request returns the already-committed record instead of a
// duplicate.
func (s *Service) Issue(ctx context.Context, req Request) (models.Credential, error) {
	ctx, span := s.tracer.Start(ctx, "issuance.Issue",
		trace.WithAttributes(
			attribute.String("proof_type", string(req.ProofType)),
			attribute.String("proof_level", string(req.ProofLevel)),
		))
	defer span.End()

	if err := s.validateRequest(req); err != nil {
		return models.Credential{}, err
	}
	if err := ValidateClaim(req.ProofType, req.Claim); err != nil {
		return models.Credential{}, err
	}

	proof, err := s.proofs.Prove(ctx, req.Claim, req.Witness)
	if err != nil {
		return models.Credential{}, err
	}

	// Self-check before anchoring: a proof the system itself cannot verify
	// must never reach the registry.
	ok, err := s.proofs.Verify(ctx, proof, req.Claim)
	if err != nil {
		return models.Credential{}, err
	}
	if !ok {
		return models.Credential{}, dErrors.New(dErrors.CodeProofRejected, "proof failed issuance self-check")
	}

	claimDigest := proofsystem.DigestOf(req.Claim)
	credentialID := deriveCredentialID(claimDigest, req.IssuerID, req.SubjectID, req.Nonce)
	span.SetAttributes(attribute.String("credential_id", credentialID.String()))

	now := requesttime.Now(ctx)
	credential := models.Credential{
		ID:          credentialID,
		SubjectID:   req.SubjectID,
		IssuerID:    req.IssuerID,
		ProofType:   req.ProofType,
		ProofLevel:  req.ProofLevel,
		ClaimDigest: claimDigest,
		ProofDigest: proof.Digest,
		IssuedAt:    now,
		Status:      models.StatusActive,
	}
	if req.TTL > 0 {
		expiresAt := now.Add(req.TTL)
		credential.ExpiresAt = &expiresAt
	}

	if err := s.registry.Put(ctx, credential); err != nil {
		if dErrors.HasCode(err, dErrors.CodeDuplicateCredential) {
			if s.logger != nil {
				s.logger.InfoContext(ctx, "issuance retry resolved to existing credential",
					"credential_id", credentialID,
				)
			}
			return s.registry.Get(ctx, credentialID)
		}
		return models.Credential{}, err
	}
	return credential, nil
}

func (s *Service) validateRequest(req Request) error {
	if req.IssuerID.IsNil() {
		return dErrors.New(dErrors.CodeInvalidInput, "issuer ID is required")
	}
	if req.SubjectID.IsNil() {
		return dErrors.New(dErrors.CodeInvalidInput, "subject ID is required")
	}
	if _, err := id.ParseProofType(string(req.ProofType)); err != nil {
		return err
	}
	if _, err := id.ParseProofLevel(string(req.ProofLevel)); err != nil {
		return err
	}
	if req.TTL < 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "ttl must not be negative")
	}
	return nil
}

// deriveCredentialID computes the content-derived ID that makes issuance
// idempotent: same claim, issuer, subject, and nonce always map to the same
// registry key.
func deriveCredentialID(claimDigest string, issuer id.IssuerID, subject id.SubjectID, nonce string) id.CredentialID {
	material := fmt.Sprintf("%s|%s|%s|%s", claimDigest, issuer, subject, nonce)
	return id.NewCredentialID(proofsystem.DigestOf([]byte(material)))
}
