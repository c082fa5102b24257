package httptransport

import (
	"encoding/json"
	"time"

	"proofgate/internal/match"
	id "proofgate/pkg/domain"
	dErrors "proofgate/pkg/domain-errors"
)

// issueCredentialRequest is the POST /credentials body. The claim stays a raw
// JSON document: the issuance service validates it per proof type, and only
// its digest is anchored.
type issueCredentialRequest struct {
	Claim      json.RawMessage `json:"claim"`
	Witness    string          `json:"witness"`
	IssuerID   string          `json:"issuer_id"`
	SubjectID  string          `json:"subject_id"`
	ProofType  string          `json:"proof_type"`
	ProofLevel string          `json:"proof_level"`
	Nonce      string          `json:"nonce,omitempty"`
	TTLSeconds int64           `json:"ttl_seconds,omitempty"`
}

// revokeCredentialRequest is the POST /credentials/{id}/revoke body.
type revokeCredentialRequest struct {
	RequesterID string `json:"requester_id"`
}

// verifyRequest is the POST /verify body.
type verifyRequest struct {
	CredentialID string                `json:"credential_id"`
	Policy       id.VerificationPolicy `json:"policy"`
}

// jobMatchRequest is the POST /jobs/{job_id}/match body: the posting's
// requirements plus the candidate pool to rank.
type jobMatchRequest struct {
	RequiredProofTypes []id.ProofType   `json:"required_proof_types"`
	MinProofLevel      id.ProofLevel    `json:"min_proof_level"`
	Institutions       []string         `json:"institutions,omitempty"`
	Programs           []string         `json:"programs,omitempty"`
	MinGPA             float64          `json:"min_gpa,omitempty"`
	SkillTags          []string         `json:"skill_tags,omitempty"`
	Candidates         []matchCandidate `json:"candidates"`
}

type matchCandidate struct {
	SubjectID   string   `json:"subject_id"`
	Institution string   `json:"institution,omitempty"`
	Program     string   `json:"program,omitempty"`
	GPA         float64  `json:"gpa,omitempty"`
	SkillTags   []string `json:"skill_tags,omitempty"`
	NDAAccepted bool     `json:"nda_accepted"`
}

func (r jobMatchRequest) toPosting(jobID id.JobID) match.JobPosting {
	return match.JobPosting{
		JobID:              jobID,
		RequiredProofTypes: r.RequiredProofTypes,
		MinProofLevel:      r.MinProofLevel,
		Institutions:       r.Institutions,
		Programs:           r.Programs,
		MinGPA:             r.MinGPA,
		SkillTags:          r.SkillTags,
	}
}

func (r jobMatchRequest) toCandidates() ([]match.Candidate, error) {
	candidates := make([]match.Candidate, 0, len(r.Candidates))
	for _, c := range r.Candidates {
		subjectID, err := id.ParseSubjectID(c.SubjectID)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid candidate subject_id")
		}
		candidates = append(candidates, match.Candidate{
			SubjectID:   subjectID,
			Institution: c.Institution,
			Program:     c.Program,
			GPA:         c.GPA,
			SkillTags:   c.SkillTags,
			NDAAccepted: c.NDAAccepted,
		})
	}
	return candidates, nil
}

// consentUpdateRequest is the PUT /consent/{subject_id} body.
type consentUpdateRequest struct {
	AllowContact     bool `json:"allow_contact"`
	AllowSkillView   bool `json:"allow_skill_view"`
	AllowProfileView bool `json:"allow_profile_view"`
	RequireNDA       bool `json:"require_nda"`
}

func (r issueCredentialRequest) ttl() (time.Duration, error) {
	if r.TTLSeconds < 0 {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "ttl_seconds must not be negative")
	}
	return time.Duration(r.TTLSeconds) * time.Second, nil
}
