package gate

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	consentmodels "proofgate/internal/consent/models"
	consent "proofgate/internal/consent/service"
	consentstore "proofgate/internal/consent/store"
	"proofgate/internal/registry/models"
	"proofgate/internal/registry/store"
	"proofgate/internal/verification"
	id "proofgate/pkg/domain"
	dErrors "proofgate/pkg/domain-errors"
	"proofgate/pkg/platform/audit"
)

type GateSuite struct {
	suite.Suite
	ledger     *store.InMemoryLedger
	consents   *consentstore.InMemoryStore
	auditStore *audit.InMemoryStore
	gate       *Gate
	subject    id.SubjectID
	credID     id.CredentialID
}

func (s *GateSuite) SetupTest() {
	s.ledger = store.NewInMemoryLedger()
	s.consents = consentstore.NewInMemory()
	s.auditStore = audit.NewInMemoryStore()

	s.subject = id.SubjectID(uuid.New())
	s.credID = "vc_gate"
	require.NoError(s.T(), s.ledger.Put(context.Background(), models.Credential{
		ID:          s.credID,
		SubjectID:   s.subject,
		IssuerID:    id.IssuerID(uuid.New()),
		ProofType:   id.ProofTypeSkill,
		ProofLevel:  id.LevelExpert,
		ClaimDigest: "c0ffee",
		ProofDigest: "f00d",
		IssuedAt:    time.Now().UTC(),
		Status:      models.StatusActive,
	}))

	consentSvc := consent.New(s.consents, audit.NewPublisher(audit.NewInMemoryStore()))
	s.gate = New(
		verification.New(s.ledger),
		consentSvc,
		WithAuditPublisher(audit.NewPublisher(s.auditStore)),
	)
}

func TestGateSuite(t *testing.T) {
	suite.Run(t, new(GateSuite))
}

func (s *GateSuite) policy() id.VerificationPolicy {
	return id.VerificationPolicy{
		ProofTypes:    []id.ProofType{id.ProofTypeSkill},
		MinProofLevel: id.LevelAdvanced,
	}
}

func (s *GateSuite) setConsent(record consentmodels.Record) {
	record.SubjectID = s.subject
	record.UpdatedAt = time.Now().UTC()
	require.NoError(s.T(), s.consents.Save(context.Background(), record))
}

func (s *GateSuite) TestDefaultConsentWithholdsContact() {
	// No consent record at all: everything is withheld.
	decision, err := s.gate.AuthorizeContact(context.Background(), s.subject, s.credID, s.policy(), false)
	require.NoError(s.T(), err)
	s.False(decision.Allowed)
	s.Equal(id.ReasonConsentWithheld, decision.Reason, "a valid proof never overrides missing consent")
}

func (s *GateSuite) TestAllowsWithConsent() {
	s.setConsent(consentmodels.Record{AllowContact: true})

	decision, err := s.gate.AuthorizeContact(context.Background(), s.subject, s.credID, s.policy(), false)
	require.NoError(s.T(), err)
	s.True(decision.Allowed)
	s.Equal(s.credID, decision.MatchedCredentialID)
}

func (s *GateSuite) TestConsentWithheldDespiteValidProof() {
	s.setConsent(consentmodels.Record{AllowContact: false})

	decision, err := s.gate.AuthorizeContact(context.Background(), s.subject, s.credID, s.policy(), true)
	require.NoError(s.T(), err)
	s.Equal(id.ReasonConsentWithheld, decision.Reason)
}

func (s *GateSuite) TestNdaGate() {
	s.setConsent(consentmodels.Record{AllowContact: true, RequireNDA: true})

	decision, err := s.gate.AuthorizeContact(context.Background(), s.subject, s.credID, s.policy(), false)
	require.NoError(s.T(), err)
	s.Equal(id.ReasonNdaRequired, decision.Reason)

	decision, err = s.gate.AuthorizeContact(context.Background(), s.subject, s.credID, s.policy(), true)
	require.NoError(s.T(), err)
	s.True(decision.Allowed, "accepting the NDA satisfies the requirement")
}

func (s *GateSuite) TestVerificationDenialPropagates() {
	s.setConsent(consentmodels.Record{AllowContact: true})
	_, err := s.ledger.MarkRevoked(context.Background(), s.credID, id.ActorID(s.subject), time.Now())
	require.NoError(s.T(), err)

	decision, err := s.gate.AuthorizeContact(context.Background(), s.subject, s.credID, s.policy(), true)
	require.NoError(s.T(), err)
	s.Equal(id.ReasonRevoked, decision.Reason, "consent cannot resurrect a revoked credential")
}

func (s *GateSuite) TestMissingCredentialIsDenialNotError() {
	decision, err := s.gate.AuthorizeContact(context.Background(), s.subject, "vc_ghost", s.policy(), true)
	require.NoError(s.T(), err)
	s.Equal(id.ReasonNoCredential, decision.Reason)
	s.False(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *GateSuite) TestDecisionsAreAudited() {
	s.setConsent(consentmodels.Record{AllowContact: true})

	_, err := s.gate.AuthorizeContact(context.Background(), s.subject, s.credID, s.policy(), false)
	require.NoError(s.T(), err)

	events := s.auditStore.EventsByAction(audit.ActionContactAuthorized)
	require.Len(s.T(), events, 1)
	s.Equal("allowed", events[0].Decision)
	s.Equal(s.subject, events[0].SubjectID)
}
