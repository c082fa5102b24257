// Package match filters and ranks candidates against a job posting. Cheap
// attribute predicates run first; surviving candidates get their best
// credential checked through the access policy gate. One candidate's
// infrastructure fault never aborts the batch: it is reported in that
// candidate's row and the rest proceed.
package match

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"proofgate/internal/registry/models"
	id "proofgate/pkg/domain"
)

const defaultConcurrency = 8

// CredentialLister returns a subject's anchored credentials, newest first.
type CredentialLister interface {
	ListBySubject(ctx context.Context, subjectID id.SubjectID) ([]models.Credential, error)
}

// Authorizer is the access policy gate surface the filter drives per candidate.
type Authorizer interface {
	AuthorizeContact(ctx context.Context, subjectID id.SubjectID, credentialID id.CredentialID, policy id.VerificationPolicy, ndaAccepted bool) (id.AccessDecision, error)
}

// Option configures the job match filter.
type Option func(*Filter)

// Filter ranks candidates against job postings.
type Filter struct {
	credentials CredentialLister
	gate        Authorizer
	concurrency int
	logger      *slog.Logger
}

// New creates a job match filter.
func New(credentials CredentialLister, gate Authorizer, opts ...Option) *Filter {
	f := &Filter{
		credentials: credentials,
		gate:        gate,
		concurrency: defaultConcurrency,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// WithConcurrency bounds the per-candidate fan-out.
func WithConcurrency(n int) Option {
	return func(f *Filter) {
		if n > 0 {
			f.concurrency = n
		}
	}
}

// WithLogger sets the logger instance for the filter.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Filter) { f.logger = logger }
}

// Match evaluates candidates against the posting and returns ranked results.
//
// Candidates failing the attribute pre-filters, or holding no credential of
// any required proof type, are excluded from the results entirely. Candidates
// whose check hit an infrastructure fault stay in the results with reason
// check_failed so callers can retry them individually.
func (f *Filter) Match(ctx context.Context, posting JobPosting, candidates []Candidate) ([]Result, error) {
	policy := posting.Policy()
	if err := policy.Validate(); err != nil {
		return nil, err
	}

	prefiltered := make([]Candidate, 0, len(candidates))
	for _, candidate := range candidates {
		if posting.matchesAttributes(candidate) {
			prefiltered = append(prefiltered, candidate)
		}
	}

	rows := make([]*Result, len(prefiltered))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.concurrency)
	for i, candidate := range prefiltered {
		g.Go(func() error {
			rows[i] = f.evaluate(gctx, posting, policy, candidate)
			return nil
		})
	}
	// Goroutines report faults per row, never through the group.
	_ = g.Wait()

	results := make([]Result, 0, len(rows))
	for _, row := range rows {
		if row != nil {
			results = append(results, *row)
		}
	}
	rank(results)
	return results, nil
}

// evaluate runs one candidate through credential selection and the gate.
// Returns nil when the candidate must be excluded.
func (f *Filter) evaluate(ctx context.Context, posting JobPosting, policy id.VerificationPolicy, candidate Candidate) *Result {
	creds, err := f.credentials.ListBySubject(ctx, candidate.SubjectID)
	if err != nil {
		return f.faultRow(ctx, candidate, err)
	}

	best, ok := selectBest(creds, posting.RequiredProofTypes)
	if !ok {
		// No credential of any required type: not a match at all.
		return nil
	}

	decision, err := f.gate.AuthorizeContact(ctx, candidate.SubjectID, best.ID, policy, candidate.NDAAccepted)
	if err != nil {
		return f.faultRow(ctx, candidate, err)
	}
	return &Result{
		Candidate:       candidate,
		Decision:        decision,
		credentialLevel: best.ProofLevel.Rank(),
		issuedAtUnix:    best.IssuedAt.Unix(),
	}
}

func (f *Filter) faultRow(ctx context.Context, candidate Candidate, err error) *Result {
	if f.logger != nil {
		f.logger.WarnContext(ctx, "candidate check failed",
			"error", err,
			"subject_id", candidate.SubjectID,
		)
	}
	decision := id.Deny(id.ReasonCheckFailed)
	decision.Err = err
	return &Result{Candidate: candidate, Decision: decision, credentialLevel: -1}
}

// selectBest picks the candidate's most relevant credential: highest level
// among the required types, tie-broken by most recent issuance.
func selectBest(creds []models.Credential, required []id.ProofType) (models.Credential, bool) {
	var best models.Credential
	found := false
	for _, cred := range creds {
		if !typeRequired(cred.ProofType, required) {
			continue
		}
		if !found ||
			cred.ProofLevel.Rank() > best.ProofLevel.Rank() ||
			(cred.ProofLevel.Rank() == best.ProofLevel.Rank() && cred.IssuedAt.After(best.IssuedAt)) {
			best = cred
			found = true
		}
	}
	return best, found
}

func typeRequired(t id.ProofType, required []id.ProofType) bool {
	for _, r := range required {
		if r == t {
			return true
		}
	}
	return false
}

// rank orders results: allowed first, then by credential strength and
// recency. check_failed rows sink to the bottom.
func rank(results []Result) {
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.Decision.Allowed != b.Decision.Allowed {
			return a.Decision.Allowed
		}
		if a.credentialLevel != b.credentialLevel {
			return a.credentialLevel > b.credentialLevel
		}
		return a.issuedAtUnix > b.issuedAtUnix
	})
}

func containsFold(haystack []string, needle string) bool {
	for _, h := range haystack {
		if strings.EqualFold(h, needle) {
			return true
		}
	}
	return false
}
