package match

import (
	id "proofgate/pkg/domain"
)

// JobPosting describes what a job requires from candidates. Attribute fields
// are cheap pre-filters; the proof requirements feed the verification policy.
type JobPosting struct {
	JobID              id.JobID       `json:"job_id"`
	RequiredProofTypes []id.ProofType `json:"required_proof_types"`
	MinProofLevel      id.ProofLevel  `json:"min_proof_level"`
	Institutions       []string       `json:"institutions,omitempty"`
	Programs           []string       `json:"programs,omitempty"`
	MinGPA             float64        `json:"min_gpa,omitempty"`
	SkillTags          []string       `json:"skill_tags,omitempty"`
}

// Policy builds the verification policy the posting implies.
func (p JobPosting) Policy() id.VerificationPolicy {
	return id.VerificationPolicy{
		ProofTypes:    p.RequiredProofTypes,
		MinProofLevel: p.MinProofLevel,
	}
}

// Candidate carries the structured attributes the pre-filters run against.
// Everything here is self-reported profile data; only the credential check
// that follows is attested.
type Candidate struct {
	SubjectID   id.SubjectID `json:"subject_id"`
	Institution string       `json:"institution,omitempty"`
	Program     string       `json:"program,omitempty"`
	GPA         float64      `json:"gpa,omitempty"`
	SkillTags   []string     `json:"skill_tags,omitempty"`
	NDAAccepted bool         `json:"nda_accepted"`
}

// Result pairs a surfaced candidate with its access decision.
type Result struct {
	Candidate Candidate         `json:"candidate"`
	Decision  id.AccessDecision `json:"decision"`

	// credentialLevel and issuedAtUnix drive ranking; not exposed.
	credentialLevel int
	issuedAtUnix    int64
}

// matchesAttributes applies the posting's plain attribute predicates.
func (p JobPosting) matchesAttributes(c Candidate) bool {
	if len(p.Institutions) > 0 && !containsFold(p.Institutions, c.Institution) {
		return false
	}
	if len(p.Programs) > 0 && !containsFold(p.Programs, c.Program) {
		return false
	}
	if p.MinGPA > 0 && c.GPA < p.MinGPA {
		return false
	}
	for _, tag := range p.SkillTags {
		if !containsFold(c.SkillTags, tag) {
			return false
		}
	}
	return true
}
