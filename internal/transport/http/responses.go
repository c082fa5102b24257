package httptransport

import (
	"time"

	consentmodels "proofgate/internal/consent/models"
	"proofgate/internal/registry/models"
)

// credentialResponse is the public view of a registry record: metadata and
// digests only, never the raw claim.
type credentialResponse struct {
	CredentialID string     `json:"credential_id"`
	SubjectID    string     `json:"subject_id"`
	IssuerID     string     `json:"issuer_id"`
	ProofType    string     `json:"proof_type"`
	ProofLevel   string     `json:"proof_level"`
	ClaimDigest  string     `json:"claim_digest"`
	ProofDigest  string     `json:"proof_digest"`
	IssuedAt     time.Time  `json:"issued_at"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
	Status       string     `json:"status"`
	RevokedAt    *time.Time `json:"revoked_at,omitempty"`
}

func toCredentialResponse(c models.Credential, now time.Time) credentialResponse {
	return credentialResponse{
		CredentialID: c.ID.String(),
		SubjectID:    c.SubjectID.String(),
		IssuerID:     c.IssuerID.String(),
		ProofType:    string(c.ProofType),
		ProofLevel:   string(c.ProofLevel),
		ClaimDigest:  c.ClaimDigest,
		ProofDigest:  c.ProofDigest,
		IssuedAt:     c.IssuedAt,
		ExpiresAt:    c.ExpiresAt,
		Status:       string(c.EffectiveStatus(now)),
		RevokedAt:    c.RevokedAt,
	}
}

// issueCredentialResponse is the POST /credentials result.
type issueCredentialResponse struct {
	CredentialID string     `json:"credential_id"`
	Status       string     `json:"status"`
	IssuedAt     time.Time  `json:"issued_at"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
}

// consentResponse mirrors the stored consent record.
type consentResponse struct {
	SubjectID        string    `json:"subject_id"`
	AllowContact     bool      `json:"allow_contact"`
	AllowSkillView   bool      `json:"allow_skill_view"`
	AllowProfileView bool      `json:"allow_profile_view"`
	RequireNDA       bool      `json:"require_nda"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func toConsentResponse(r consentmodels.Record) consentResponse {
	return consentResponse{
		SubjectID:        r.SubjectID.String(),
		AllowContact:     r.AllowContact,
		AllowSkillView:   r.AllowSkillView,
		AllowProfileView: r.AllowProfileView,
		RequireNDA:       r.RequireNDA,
		UpdatedAt:        r.UpdatedAt,
	}
}
