// Package domain provides type-safe identifiers to prevent mixing up IDs at compile time.
package domain

import (
	"strings"

	"github.com/google/uuid"

	dErrors "proofgate/pkg/domain-errors"
)

// Distinct ID types - compiler prevents passing SubjectID where IssuerID is expected.
type (
	SubjectID uuid.UUID
	IssuerID  uuid.UUID
	JobID     uuid.UUID

	// ActorID identifies whoever requests an action (revocation, audit).
	// It may refer to either a subject or an issuer; authorization logic
	// compares it against both.
	ActorID uuid.UUID
)

// CredentialID is a content-derived identifier for a credential
// (e.g., "vc_3f2a..."). It is computed from the claim digest, issuer,
// subject, and nonce, so identical issuance requests map to the same ID.
type CredentialID string

// credentialIDPrefix distinguishes credential IDs from raw digests in logs and APIs.
const credentialIDPrefix = "vc_"

// Parse functions - use at trust boundaries (handlers, API inputs).

func ParseSubjectID(s string) (SubjectID, error) {
	id, err := parseUUID(s, "subject ID")
	return SubjectID(id), err
}

func ParseIssuerID(s string) (IssuerID, error) {
	id, err := parseUUID(s, "issuer ID")
	return IssuerID(id), err
}

func ParseJobID(s string) (JobID, error) {
	id, err := parseUUID(s, "job ID")
	return JobID(id), err
}

func ParseActorID(s string) (ActorID, error) {
	id, err := parseUUID(s, "requester ID")
	return ActorID(id), err
}

func ParseCredentialID(s string) (CredentialID, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "credential ID cannot be empty")
	}
	if !strings.HasPrefix(s, credentialIDPrefix) {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid credential ID format")
	}
	return CredentialID(s), nil
}

// NewCredentialID builds a CredentialID from a hex-encoded content digest.
func NewCredentialID(digestHex string) CredentialID {
	return CredentialID(credentialIDPrefix + digestHex)
}

// String methods - for logging and debugging.

func (id SubjectID) String() string    { return uuid.UUID(id).String() }
func (id IssuerID) String() string     { return uuid.UUID(id).String() }
func (id JobID) String() string        { return uuid.UUID(id).String() }
func (id ActorID) String() string      { return uuid.UUID(id).String() }
func (id CredentialID) String() string { return string(id) }

// Acting-party comparisons for revocation authorization.

func (id ActorID) IsSubject(s SubjectID) bool { return uuid.UUID(id) == uuid.UUID(s) }
func (id ActorID) IsIssuer(i IssuerID) bool   { return uuid.UUID(id) == uuid.UUID(i) }

// Text marshaling - JSON bodies, the cache, and audit sinks carry IDs as
// canonical UUID strings.

func (id SubjectID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }
func (id IssuerID) MarshalText() ([]byte, error)  { return []byte(id.String()), nil }
func (id JobID) MarshalText() ([]byte, error)     { return []byte(id.String()), nil }
func (id ActorID) MarshalText() ([]byte, error)   { return []byte(id.String()), nil }

func (id *SubjectID) UnmarshalText(b []byte) error {
	parsed, err := ParseSubjectID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id *IssuerID) UnmarshalText(b []byte) error {
	parsed, err := ParseIssuerID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id *JobID) UnmarshalText(b []byte) error {
	parsed, err := ParseJobID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id *ActorID) UnmarshalText(b []byte) error {
	parsed, err := ParseActorID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// IsNil checks - used for service-layer validation.

func (id SubjectID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }
func (id IssuerID) IsNil() bool     { return uuid.UUID(id) == uuid.Nil }
func (id JobID) IsNil() bool        { return uuid.UUID(id) == uuid.Nil }
func (id ActorID) IsNil() bool      { return uuid.UUID(id) == uuid.Nil }
func (id CredentialID) IsNil() bool { return id == "" }

// parseUUID is the shared validation logic.
// Note: Nil UUIDs are allowed here. Use IsNil() at the service layer for
// business validation, which allows store lookups to return proper
// "not found" errors for consistency.
func parseUUID(s, label string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" cannot be empty")
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+label+" format")
	}
	return id, nil
}
