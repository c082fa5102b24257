package issuance

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"proofgate/internal/proofsystem"
	"proofgate/internal/proofsystem/mocks"
	"proofgate/internal/registry/models"
	"proofgate/internal/registry/service"
	"proofgate/internal/registry/store"
	id "proofgate/pkg/domain"
	dErrors "proofgate/pkg/domain-errors"
	"proofgate/pkg/platform/audit"
)

type IssuanceSuite struct {
	suite.Suite
	ledger  *store.InMemoryLedger
	service *Service
}

func (s *IssuanceSuite) SetupTest() {
	s.ledger = store.NewInMemoryLedger()
	registry := service.New(s.ledger, audit.NewPublisher(audit.NewInMemoryStore()))
	s.service = New(proofsystem.NewSimulator(), registry)
}

func TestIssuanceSuite(t *testing.T) {
	suite.Run(t, new(IssuanceSuite))
}

func (s *IssuanceSuite) newRequest() Request {
	return Request{
		Claim:      []byte(`{"skill":"go","assessment":"backend-2026"}`),
		Witness:    []byte("private-assessment-transcript"),
		IssuerID:   id.IssuerID(uuid.New()),
		SubjectID:  id.SubjectID(uuid.New()),
		ProofType:  id.ProofTypeSkill,
		ProofLevel: id.LevelExpert,
		Nonce:      "n-1",
	}
}

func (s *IssuanceSuite) TestIssueAnchorsCredential() {
	req := s.newRequest()

	cred, err := s.service.Issue(context.Background(), req)
	require.NoError(s.T(), err)

	s.Equal(req.SubjectID, cred.SubjectID)
	s.Equal(req.IssuerID, cred.IssuerID)
	s.Equal(models.StatusActive, cred.Status)
	s.Equal(proofsystem.DigestOf(req.Claim), cred.ClaimDigest)
	s.NotEmpty(cred.ProofDigest)
	s.Nil(cred.ExpiresAt, "no ttl means non-expiring")

	stored, err := s.ledger.Get(context.Background(), cred.ID)
	require.NoError(s.T(), err)
	s.Equal(cred.ID, stored.ID)
}

func (s *IssuanceSuite) TestIssueIsIdempotent() {
	req := s.newRequest()

	first, err := s.service.Issue(context.Background(), req)
	require.NoError(s.T(), err)

	second, err := s.service.Issue(context.Background(), req)
	require.NoError(s.T(), err)

	s.Equal(first.ID, second.ID, "same claim, issuer, subject, nonce must map to one credential")
	s.Equal(first.IssuedAt, second.IssuedAt, "retry returns the committed record, not a new one")

	creds, err := s.ledger.ListBySubject(context.Background(), req.SubjectID)
	require.NoError(s.T(), err)
	s.Len(creds, 1, "retried issuance must not create a duplicate entry")
}

func (s *IssuanceSuite) TestDifferentNonceYieldsDifferentCredential() {
	req := s.newRequest()

	first, err := s.service.Issue(context.Background(), req)
	require.NoError(s.T(), err)

	req.Nonce = "n-2"
	second, err := s.service.Issue(context.Background(), req)
	require.NoError(s.T(), err)

	s.NotEqual(first.ID, second.ID)
}

func (s *IssuanceSuite) TestTTLSetsExpiry() {
	req := s.newRequest()
	req.TTL = 365 * 24 * time.Hour

	cred, err := s.service.Issue(context.Background(), req)
	require.NoError(s.T(), err)

	require.NotNil(s.T(), cred.ExpiresAt)
	s.Equal(cred.IssuedAt.Add(req.TTL), *cred.ExpiresAt)
}

func (s *IssuanceSuite) TestRejectsMalformedClaim() {
	req := s.newRequest()
	req.Claim = []byte(`{"skill":"go"}`) // assessment missing

	_, err := s.service.Issue(context.Background(), req)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidClaim))
}

func (s *IssuanceSuite) TestRejectsMissingWitness() {
	req := s.newRequest()
	req.Witness = nil

	_, err := s.service.Issue(context.Background(), req)
	s.True(dErrors.HasCode(err, dErrors.CodeProofRejected))
}

func (s *IssuanceSuite) TestRejectsInvalidIdentifiers() {
	req := s.newRequest()
	req.IssuerID = id.IssuerID{}
	_, err := s.service.Issue(context.Background(), req)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))

	req = s.newRequest()
	req.ProofLevel = "legendary"
	_, err = s.service.Issue(context.Background(), req)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func (s *IssuanceSuite) TestProverOutageSurfacesAsRetryable() {
	ctrl := gomock.NewController(s.T())
	proofs := mocks.NewMockProofSystem(ctrl)
	proofs.EXPECT().
		Prove(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, dErrors.New(dErrors.CodeProofSystemDown, "proof system unreachable"))

	registry := service.New(s.ledger, audit.NewPublisher(audit.NewInMemoryStore()))
	svc := New(proofs, registry)

	_, err := svc.Issue(context.Background(), s.newRequest())
	s.True(dErrors.HasCode(err, dErrors.CodeProofSystemDown))
	s.True(dErrors.IsRetryable(err))
}

func (s *IssuanceSuite) TestSelfCheckFailureRejectsProof() {
	ctrl := gomock.NewController(s.T())
	proofs := mocks.NewMockProofSystem(ctrl)
	proofs.EXPECT().
		Prove(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&proofsystem.Proof{Artifact: []byte("bogus"), Digest: "d"}, nil)
	proofs.EXPECT().
		Verify(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(false, nil)

	registry := service.New(s.ledger, audit.NewPublisher(audit.NewInMemoryStore()))
	svc := New(proofs, registry)

	req := s.newRequest()
	_, err := svc.Issue(context.Background(), req)
	s.True(dErrors.HasCode(err, dErrors.CodeProofRejected))

	creds, lerr := s.ledger.ListBySubject(context.Background(), req.SubjectID)
	require.NoError(s.T(), lerr)
	s.Empty(creds, "a proof failing self-check must never reach the registry")
}

func TestValidateClaimPerType(t *testing.T) {
	cases := []struct {
		name      string
		proofType id.ProofType
		claim     string
		wantErr   bool
	}{
		{"skill ok", id.ProofTypeSkill, `{"skill":"go","assessment":"a1"}`, false},
		{"academic ok", id.ProofTypeAcademic, `{"institution":"mit","program":"cs","gpa":3.9}`, false},
		{"academic missing program", id.ProofTypeAcademic, `{"institution":"mit"}`, true},
		{"experience ok", id.ProofTypeExperience, `{"organization":"acme","role":"engineer"}`, false},
		{"identity empty field", id.ProofTypeIdentity, `{"document_type":""}`, true},
		{"not json", id.ProofTypeSkill, `skill=go`, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateClaim(tc.proofType, []byte(tc.claim))
			if tc.wantErr {
				require.Error(t, err)
				require.True(t, dErrors.HasCode(err, dErrors.CodeInvalidClaim))
			} else {
				require.NoError(t, err)
			}
		})
	}
}
