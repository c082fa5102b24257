// Package httptransport is the thin HTTP boundary over the credential core.
// Handlers parse, delegate, and translate; business rules live in the
// services.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	consentmodels "proofgate/internal/consent/models"
	"proofgate/internal/issuance"
	"proofgate/internal/match"
	"proofgate/internal/platform/health"
	"proofgate/internal/registry/models"
	id "proofgate/pkg/domain"
	"proofgate/pkg/platform/middleware/auth"
	"proofgate/pkg/platform/middleware/request"
	"proofgate/pkg/platform/middleware/requesttime"
)

// IssuanceService issues credentials from validated claims.
type IssuanceService interface {
	Issue(ctx context.Context, req issuance.Request) (models.Credential, error)
}

// RegistryService is the credential read/revoke surface the handlers need.
type RegistryService interface {
	Get(ctx context.Context, credentialID id.CredentialID) (models.Credential, error)
	Revoke(ctx context.Context, credentialID id.CredentialID, requester id.ActorID, revokedAt time.Time) (models.Credential, error)
}

// VerificationService evaluates a credential against a policy.
type VerificationService interface {
	Verify(ctx context.Context, credentialID id.CredentialID, policy id.VerificationPolicy) (id.AccessDecision, error)
}

// MatchService ranks candidates for a job posting.
type MatchService interface {
	Match(ctx context.Context, posting match.JobPosting, candidates []match.Candidate) ([]match.Result, error)
}

// ConsentService reads and updates subject consent.
type ConsentService interface {
	Get(ctx context.Context, subjectID id.SubjectID) (consentmodels.Record, error)
	Update(ctx context.Context, requester, subjectID id.SubjectID, settings consentmodels.Settings, updatedAt time.Time) (consentmodels.Record, error)
}

// Handler holds the services behind the HTTP boundary.
type Handler struct {
	issuance     IssuanceService
	registry     RegistryService
	verification VerificationService
	match        MatchService
	consent      ConsentService
	logger       *slog.Logger
}

// NewHandler creates the HTTP handler set.
func NewHandler(
	issuanceSvc IssuanceService,
	registrySvc RegistryService,
	verificationSvc VerificationService,
	matchSvc MatchService,
	consentSvc ConsentService,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		issuance:     issuanceSvc,
		registry:     registrySvc,
		verification: verificationSvc,
		match:        matchSvc,
		consent:      consentSvc,
		logger:       logger,
	}
}

// RouterConfig carries transport-level wiring that is not a domain service.
type RouterConfig struct {
	// JWTSigningKey verifies subject tokens on consent updates.
	JWTSigningKey []byte
	// Environment labels health status output.
	Environment string
	// HealthChecks registers readiness probes (ledger, cache, read model).
	HealthChecks map[string]health.CheckFunc
	// RequestTimeout bounds each request; zero means 30s.
	RequestTimeout time.Duration
}

// NewRouter wires all public endpoints with the middleware stack.
func NewRouter(h *Handler, logger *slog.Logger, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	r.Use(request.Recovery(logger))
	r.Use(request.RequestID)
	r.Use(requesttime.Middleware)
	r.Use(request.Logger(logger))
	r.Use(request.Timeout(timeout))
	r.Use(request.ContentTypeJSON)

	r.Post("/credentials", h.handleIssueCredential)
	r.Get("/credentials/{id}", h.handleGetCredential)
	r.Post("/credentials/{id}/revoke", h.handleRevokeCredential)

	r.Post("/verify", h.handleVerify)
	r.Post("/jobs/{job_id}/match", h.handleJobMatch)

	// Consent mutations require the subject's own token.
	r.Group(func(r chi.Router) {
		r.Use(auth.SubjectAuth(cfg.JWTSigningKey, logger))
		r.Put("/consent/{subject_id}", h.handleUpdateConsent)
		r.Get("/consent/{subject_id}", h.handleGetConsent)
	})

	healthHandler := health.New(cfg.Environment)
	for name, check := range cfg.HealthChecks {
		healthHandler.RegisterCheck(name, check)
	}
	healthHandler.Register(r)

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}
