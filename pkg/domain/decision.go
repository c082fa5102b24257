package domain

import dErrors "proofgate/pkg/domain-errors"

// DecisionReason is the machine-readable explanation attached to an
// AccessDecision. Denial reasons are outcomes, not errors: they flow back to
// callers as data so batch consumers can process partial failures.
type DecisionReason string

const (
	ReasonAllowed           DecisionReason = "allowed"
	ReasonNoCredential      DecisionReason = "no_credential"
	ReasonRevoked           DecisionReason = "revoked"
	ReasonExpired           DecisionReason = "expired"
	ReasonWrongType         DecisionReason = "wrong_type"
	ReasonInsufficientLevel DecisionReason = "insufficient_level"
	ReasonProofInvalid      DecisionReason = "proof_invalid"
	ReasonConsentWithheld   DecisionReason = "consent_withheld"
	ReasonNdaRequired       DecisionReason = "nda_required"
	// ReasonCheckFailed marks a per-candidate infrastructure fault during
	// batch matching. The error is reported in the decision, not thrown.
	ReasonCheckFailed DecisionReason = "check_failed"
)

// AccessDecision is the allow/deny result of evaluating a policy against a
// credential (and, at the gate layer, a consent record). Ephemeral - never
// persisted.
type AccessDecision struct {
	Allowed             bool           `json:"allowed"`
	Reason              DecisionReason `json:"reason"`
	MatchedCredentialID CredentialID   `json:"matched_credential_id,omitempty"`
	// Err carries a transient infrastructure fault for ReasonCheckFailed rows.
	Err error `json:"-"`
}

// Allow builds a positive decision for the matched credential.
func Allow(credentialID CredentialID) AccessDecision {
	return AccessDecision{
		Allowed:             true,
		Reason:              ReasonAllowed,
		MatchedCredentialID: credentialID,
	}
}

// Deny builds a negative decision with the given reason.
func Deny(reason DecisionReason) AccessDecision {
	return AccessDecision{Allowed: false, Reason: reason}
}

// DenyCredential builds a negative decision that still names the credential
// that was evaluated, for auditability.
func DenyCredential(reason DecisionReason, credentialID CredentialID) AccessDecision {
	return AccessDecision{Allowed: false, Reason: reason, MatchedCredentialID: credentialID}
}

// VerificationPolicy describes what a verifier requires from a credential.
// Ephemeral - built per request, never persisted.
type VerificationPolicy struct {
	ProofTypes    []ProofType `json:"proof_types"`
	MinProofLevel ProofLevel  `json:"min_proof_level"`
	// MaxAge optionally bounds credential freshness in seconds since issuance.
	// Zero means no freshness bound beyond expires_at.
	MaxAgeSeconds int64 `json:"max_age_seconds,omitempty"`
}

// Validate enforces the policy invariants: at least one required proof type
// and a known minimum level.
func (p VerificationPolicy) Validate() error {
	if len(p.ProofTypes) == 0 {
		return dErrors.New(dErrors.CodeValidation, "policy requires at least one proof type")
	}
	for _, t := range p.ProofTypes {
		if _, err := ParseProofType(string(t)); err != nil {
			return err
		}
	}
	if _, err := ParseProofLevel(string(p.MinProofLevel)); err != nil {
		return err
	}
	if p.MaxAgeSeconds < 0 {
		return dErrors.New(dErrors.CodeValidation, "max_age_seconds cannot be negative")
	}
	return nil
}

// AllowsType reports whether the credential type satisfies the policy.
func (p VerificationPolicy) AllowsType(t ProofType) bool {
	for _, pt := range p.ProofTypes {
		if pt == t {
			return true
		}
	}
	return false
}
