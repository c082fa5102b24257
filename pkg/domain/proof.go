package domain

import (
	"fmt"

	dErrors "proofgate/pkg/domain-errors"
)

// ProofType categorizes what a credential attests to.
type ProofType string

const (
	ProofTypeSkill      ProofType = "skill"
	ProofTypeIdentity   ProofType = "identity"
	ProofTypeAcademic   ProofType = "academic"
	ProofTypeExperience ProofType = "experience"
)

// ParseProofType validates a proof type at trust boundaries.
func ParseProofType(s string) (ProofType, error) {
	switch t := ProofType(s); t {
	case ProofTypeSkill, ProofTypeIdentity, ProofTypeAcademic, ProofTypeExperience:
		return t, nil
	default:
		return "", dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("unknown proof type: %q", s))
	}
}

func (t ProofType) String() string { return string(t) }

// ProofLevel is the ordinal strength of a credential. Levels form a total
// order (basic < intermediate < advanced < expert) compared via Rank, not
// via subtyping.
type ProofLevel string

const (
	LevelBasic        ProofLevel = "basic"
	LevelIntermediate ProofLevel = "intermediate"
	LevelAdvanced     ProofLevel = "advanced"
	LevelExpert       ProofLevel = "expert"
)

// levelRanks assigns each level its position in the total order.
var levelRanks = map[ProofLevel]int{
	LevelBasic:        0,
	LevelIntermediate: 1,
	LevelAdvanced:     2,
	LevelExpert:       3,
}

// ParseProofLevel validates a proof level at trust boundaries.
func ParseProofLevel(s string) (ProofLevel, error) {
	l := ProofLevel(s)
	if _, ok := levelRanks[l]; !ok {
		return "", dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("unknown proof level: %q", s))
	}
	return l, nil
}

func (l ProofLevel) String() string { return string(l) }

// Rank returns the level's position in the total order. Unknown levels rank
// below basic so a malformed record can never satisfy a policy.
func (l ProofLevel) Rank() int {
	if r, ok := levelRanks[l]; ok {
		return r
	}
	return -1
}

// AtLeast reports whether l meets or exceeds the minimum level.
func (l ProofLevel) AtLeast(min ProofLevel) bool {
	return l.Rank() >= min.Rank()
}
