package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"proofgate/internal/registry/models"
	id "proofgate/pkg/domain"
	dErrors "proofgate/pkg/domain-errors"
)

type LedgerSuite struct {
	suite.Suite
	ledger *InMemoryLedger
}

func (s *LedgerSuite) SetupTest() {
	s.ledger = NewInMemoryLedger()
}

func TestLedgerSuite(t *testing.T) {
	suite.Run(t, new(LedgerSuite))
}

func (s *LedgerSuite) newCredential(credID string) models.Credential {
	return models.Credential{
		ID:          id.CredentialID(credID),
		SubjectID:   id.SubjectID(uuid.New()),
		IssuerID:    id.IssuerID(uuid.New()),
		ProofType:   id.ProofTypeSkill,
		ProofLevel:  id.LevelExpert,
		ClaimDigest: "c0ffee",
		ProofDigest: "f00d",
		IssuedAt:    time.Now().UTC(),
		Status:      models.StatusActive,
	}
}

func (s *LedgerSuite) TestPutGetRoundTrip() {
	cred := s.newCredential("vc_1")
	require.NoError(s.T(), s.ledger.Put(context.Background(), cred))

	got, err := s.ledger.Get(context.Background(), cred.ID)
	require.NoError(s.T(), err)
	s.Equal(cred.ID, got.ID)
	s.Equal(cred.ClaimDigest, got.ClaimDigest)
}

func (s *LedgerSuite) TestGetNotFound() {
	_, err := s.ledger.Get(context.Background(), "vc_missing")
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *LedgerSuite) TestPutDuplicateRejected() {
	cred := s.newCredential("vc_dup")
	require.NoError(s.T(), s.ledger.Put(context.Background(), cred))

	err := s.ledger.Put(context.Background(), cred)
	s.True(dErrors.HasCode(err, dErrors.CodeDuplicateCredential))
}

// TestConcurrentPutExactlyOneWins covers the registry's core correctness
// property: concurrent writes with the same computed credential_id are
// serialized so exactly one commit succeeds.
func (s *LedgerSuite) TestConcurrentPutExactlyOneWins() {
	cred := s.newCredential("vc_race")

	const writers = 50
	var wg sync.WaitGroup
	errs := make(chan error, writers)

	for range writers {
		wg.Go(func() {
			errs <- s.ledger.Put(context.Background(), cred)
		})
	}
	wg.Wait()
	close(errs)

	var successes, duplicates int
	for err := range errs {
		switch {
		case err == nil:
			successes++
		case dErrors.HasCode(err, dErrors.CodeDuplicateCredential):
			duplicates++
		default:
			s.FailNowf("unexpected error", "%v", err)
		}
	}
	s.Equal(1, successes, "exactly one concurrent put must win")
	s.Equal(writers-1, duplicates)
}

func (s *LedgerSuite) TestMarkRevokedOneWay() {
	cred := s.newCredential("vc_rev")
	require.NoError(s.T(), s.ledger.Put(context.Background(), cred))

	requester := id.ActorID(cred.SubjectID)
	revokedAt := time.Now().UTC()

	updated, err := s.ledger.MarkRevoked(context.Background(), cred.ID, requester, revokedAt)
	require.NoError(s.T(), err)
	s.Equal(models.StatusRevoked, updated.Status)
	s.Equal(requester, updated.RevokedBy)
	require.NotNil(s.T(), updated.RevokedAt)

	// Second revoke is idempotent, not destructive.
	_, err = s.ledger.MarkRevoked(context.Background(), cred.ID, requester, revokedAt)
	s.True(dErrors.HasCode(err, dErrors.CodeAlreadyRevoked))
}

func (s *LedgerSuite) TestMarkRevokedNotFound() {
	_, err := s.ledger.MarkRevoked(context.Background(), "vc_ghost", id.ActorID(uuid.New()), time.Now())
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *LedgerSuite) TestListBySubjectNewestFirst() {
	subject := id.SubjectID(uuid.New())
	base := time.Now().UTC()

	for i, credID := range []string{"vc_a", "vc_b", "vc_c"} {
		cred := s.newCredential(credID)
		cred.SubjectID = subject
		cred.IssuedAt = base.Add(time.Duration(i) * time.Hour)
		require.NoError(s.T(), s.ledger.Put(context.Background(), cred))
	}
	// Unrelated subject noise.
	require.NoError(s.T(), s.ledger.Put(context.Background(), s.newCredential("vc_other")))

	creds, err := s.ledger.ListBySubject(context.Background(), subject)
	require.NoError(s.T(), err)
	require.Len(s.T(), creds, 3)
	s.Equal(id.CredentialID("vc_c"), creds[0].ID)
	s.Equal(id.CredentialID("vc_a"), creds[2].ID)

	assert.True(s.T(), creds[0].IssuedAt.After(creds[1].IssuedAt))
}
