package match

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
	"proofgate/internal/gate"
	"proofgate/internal/registry/models"
	"proofgate/internal/registry/store"
	"proofgate/internal/verification"
	id "proofgate/pkg/domain"
	dErrors "proofgate/pkg/domain-errors"
)

type FilterSuite struct {
	suite.Suite
	ledger   *store.InMemoryLedger
	consents *consentstore.InMemoryStore
	filter   *Filter
}

func (s *FilterSuite) SetupTest() {
	s.ledger = store.NewInMemoryLedger()
	s.consents = consentstore.NewInMemory()

	consentSvc := consent.New(s.consents, nil)
	g := gate.New(verification.New(s.ledger), consentSvc)
	s.filter = New(s.ledger, g)
}

func TestFilterSuite(t *testing.T) {
	suite.Run(t, new(FilterSuite))
}

func (s *FilterSuite) newCandidate() Candidate {
	return Candidate{
		SubjectID:   id.SubjectID(uuid.New()),
		Institution: "MIT",
		Program:     "CS",
		GPA:         3.8,
		SkillTags:   []string{"go", "distributed-systems"},
		NDAAccepted: true,
	}
}

func (s *FilterSuite) anchor(subject id.SubjectID, credID string, proofType id.ProofType, level id.ProofLevel, issuedAt time.Time) {
	s.T().Helper()
	require.NoError(s.T(), s.ledger.Put(context.Background(), models.Credential{
		ID:          id.CredentialID(credID),
		SubjectID:   subject,
		IssuerID:    id.IssuerID(uuid.New()),
		ProofType:   proofType,
		ProofLevel:  level,
		ClaimDigest: "c0ffee",
		ProofDigest: "f00d",
		IssuedAt:    issuedAt,
		Status:      models.StatusActive,
	}))
}

func (s *FilterSuite) allowContact(subject id.SubjectID) {
	require.NoError(s.T(), s.consents.Save(context.Background(), consentmodels.Record{
		SubjectID:    subject,
		AllowContact: true,
		UpdatedAt:    time.Now().UTC(),
	}))
}

func (s *FilterSuite) posting() JobPosting {
	return JobPosting{
		JobID:              id.JobID(uuid.New()),
		RequiredProofTypes: []id.ProofType{id.ProofTypeSkill},
		MinProofLevel:      id.LevelIntermediate,
	}
}

func (s *FilterSuite) TestExcludesCandidatesWithoutMatchingCredential() {
	matching := s.newCandidate()
	s.anchor(matching.SubjectID, "vc_m", id.ProofTypeSkill, id.LevelExpert, time.Now())
	s.allowContact(matching.SubjectID)

	// Holds only an academic credential: a skill posting must drop them.
	mismatched := s.newCandidate()
	s.anchor(mismatched.SubjectID, "vc_x", id.ProofTypeAcademic, id.LevelExpert, time.Now())
	s.allowContact(mismatched.SubjectID)

	bare := s.newCandidate()

	results, err := s.filter.Match(context.Background(), s.posting(), []Candidate{matching, mismatched, bare})
	require.NoError(s.T(), err)
	require.Len(s.T(), results, 1, "non-matching candidates are excluded, not marked denied")
	s.Equal(matching.SubjectID, results[0].Candidate.SubjectID)
	s.True(results[0].Decision.Allowed)
}

func (s *FilterSuite) TestSelectsHighestLevelThenMostRecent() {
	candidate := s.newCandidate()
	base := time.Now().UTC().Add(-time.Hour)
	s.anchor(candidate.SubjectID, "vc_low", id.ProofTypeSkill, id.LevelBasic, base.Add(30*time.Minute))
	s.anchor(candidate.SubjectID, "vc_old_expert", id.ProofTypeSkill, id.LevelExpert, base)
	s.anchor(candidate.SubjectID, "vc_new_expert", id.ProofTypeSkill, id.LevelExpert, base.Add(10*time.Minute))
	s.allowContact(candidate.SubjectID)

	results, err := s.filter.Match(context.Background(), s.posting(), []Candidate{candidate})
	require.NoError(s.T(), err)
	require.Len(s.T(), results, 1)
	s.Equal(id.CredentialID("vc_new_expert"), results[0].Decision.MatchedCredentialID,
		"highest level wins, ties broken by most recent issuance")
}

func (s *FilterSuite) TestAttributePrefilters() {
	qualified := s.newCandidate()
	s.anchor(qualified.SubjectID, "vc_q", id.ProofTypeSkill, id.LevelExpert, time.Now())
	s.allowContact(qualified.SubjectID)

	lowGPA := s.newCandidate()
	lowGPA.GPA = 2.1
	s.anchor(lowGPA.SubjectID, "vc_g", id.ProofTypeSkill, id.LevelExpert, time.Now())
	s.allowContact(lowGPA.SubjectID)

	wrongSchool := s.newCandidate()
	wrongSchool.Institution = "Elsewhere"
	s.anchor(wrongSchool.SubjectID, "vc_w", id.ProofTypeSkill, id.LevelExpert, time.Now())
	s.allowContact(wrongSchool.SubjectID)

	posting := s.posting()
	posting.Institutions = []string{"mit"} // case-insensitive
	posting.MinGPA = 3.0
	posting.SkillTags = []string{"go"}

	results, err := s.filter.Match(context.Background(), posting, []Candidate{qualified, lowGPA, wrongSchool})
	require.NoError(s.T(), err)
	require.Len(s.T(), results, 1)
	s.Equal(qualified.SubjectID, results[0].Candidate.SubjectID)
}

func (s *FilterSuite) TestConsentDenialsStayInResults() {
	withheld := s.newCandidate()
	s.anchor(withheld.SubjectID, "vc_wh", id.ProofTypeSkill, id.LevelExpert, time.Now())
	// No consent record: contact withheld by default.

	results, err := s.filter.Match(context.Background(), s.posting(), []Candidate{withheld})
	require.NoError(s.T(), err)
	require.Len(s.T(), results, 1, "a consent denial is a genuine match, surfaced as denied")
	s.False(results[0].Decision.Allowed)
	s.Equal(id.ReasonConsentWithheld, results[0].Decision.Reason)
}

func (s *FilterSuite) TestRankingOrdersAllowedAndStrongestFirst() {
	expert := s.newCandidate()
	s.anchor(expert.SubjectID, "vc_e", id.ProofTypeSkill, id.LevelExpert, time.Now())
	s.allowContact(expert.SubjectID)

	intermediate := s.newCandidate()
	s.anchor(intermediate.SubjectID, "vc_i", id.ProofTypeSkill, id.LevelIntermediate, time.Now())
	s.allowContact(intermediate.SubjectID)

	denied := s.newCandidate()
	s.anchor(denied.SubjectID, "vc_d", id.ProofTypeSkill, id.LevelExpert, time.Now())

	results, err := s.filter.Match(context.Background(), s.posting(), []Candidate{denied, intermediate, expert})
	require.NoError(s.T(), err)
	require.Len(s.T(), results, 3)
	s.Equal(expert.SubjectID, results[0].Candidate.SubjectID)
	s.Equal(intermediate.SubjectID, results[1].Candidate.SubjectID)
	s.Equal(denied.SubjectID, results[2].Candidate.SubjectID)
}

func (s *FilterSuite) TestCandidateFaultIsIsolated() {
	healthy := s.newCandidate()
	s.anchor(healthy.SubjectID, "vc_h", id.ProofTypeSkill, id.LevelExpert, time.Now())
	s.allowContact(healthy.SubjectID)

	faulty := s.newCandidate()

	lister := &faultingLister{inner: s.ledger, failFor: faulty.SubjectID}
	g := gate.New(verification.New(s.ledger), consent.New(s.consents, nil))
	filter := New(lister, g)

	results, err := filter.Match(context.Background(), s.posting(), []Candidate{faulty, healthy})
	require.NoError(s.T(), err, "one candidate's fault must not abort the batch")
	require.Len(s.T(), results, 2)

	s.True(results[0].Decision.Allowed)
	s.Equal(id.ReasonCheckFailed, results[1].Decision.Reason)
	s.Error(results[1].Decision.Err)
}

func (s *FilterSuite) TestRejectsInvalidPosting() {
	_, err := s.filter.Match(context.Background(), JobPosting{}, []Candidate{s.newCandidate()})
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
}

type faultingLister struct {
	inner   CredentialLister
	failFor id.SubjectID
}

func (l *faultingLister) ListBySubject(ctx context.Context, subjectID id.SubjectID) ([]models.Credential, error) {
	if subjectID == l.failFor {
		return nil, dErrors.New(dErrors.CodeLedgerUnavailable, "ledger timeout")
	}
	return l.inner.ListBySubject(ctx, subjectID)
}
