// Package models defines consent records for the access policy gate.
package models

import (
	"time"

	id "proofgate/pkg/domain"
)

// Record captures a subject's disclosure preferences. Consent gates what a
// verifier may do with a valid proof; it never affects proof validity itself.
//
// Absence of a record means everything is withheld: defaults are the most
// restrictive settings, and a subject must opt in explicitly.
type Record struct {
	SubjectID        id.SubjectID `json:"subject_id"`
	AllowContact     bool         `json:"allow_contact"`
	AllowSkillView   bool         `json:"allow_skill_view"`
	AllowProfileView bool         `json:"allow_profile_view"`
	RequireNDA       bool         `json:"require_nda"`
	UpdatedAt        time.Time    `json:"updated_at"`
}

// Default returns the restrictive no-consent record for a subject.
func Default(subjectID id.SubjectID) Record {
	return Record{SubjectID: subjectID}
}

// Settings carries the updatable consent flags.
type Settings struct {
	AllowContact     bool `json:"allow_contact"`
	AllowSkillView   bool `json:"allow_skill_view"`
	AllowProfileView bool `json:"allow_profile_view"`
	RequireNDA       bool `json:"require_nda"`
}
