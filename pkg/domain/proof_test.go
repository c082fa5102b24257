package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Proof level ordering backs every policy comparison in the verification
// engine, so the total order is pinned here.
func TestProofLevelOrdering(t *testing.T) {
	ordered := []ProofLevel{LevelBasic, LevelIntermediate, LevelAdvanced, LevelExpert}
	for i := 1; i < len(ordered); i++ {
		assert.Greater(t, ordered[i].Rank(), ordered[i-1].Rank(),
			"%s must rank above %s", ordered[i], ordered[i-1])
	}
}

func TestProofLevelAtLeast(t *testing.T) {
	assert.True(t, LevelExpert.AtLeast(LevelAdvanced))
	assert.True(t, LevelAdvanced.AtLeast(LevelAdvanced))
	assert.False(t, LevelIntermediate.AtLeast(LevelAdvanced))

	// Unknown levels rank below basic and can never satisfy a policy.
	assert.False(t, ProofLevel("grandmaster").AtLeast(LevelBasic))
}

func TestParseProofType(t *testing.T) {
	for _, valid := range []string{"skill", "identity", "academic", "experience"} {
		got, err := ParseProofType(valid)
		require.NoError(t, err)
		assert.Equal(t, valid, got.String())
	}

	_, err := ParseProofType("astrology")
	assert.Error(t, err)
}

func TestParseProofLevel(t *testing.T) {
	for _, valid := range []string{"basic", "intermediate", "advanced", "expert"} {
		got, err := ParseProofLevel(valid)
		require.NoError(t, err)
		assert.Equal(t, valid, got.String())
	}

	_, err := ParseProofLevel("")
	assert.Error(t, err)
}

func TestVerificationPolicyValidate(t *testing.T) {
	valid := VerificationPolicy{
		ProofTypes:    []ProofType{ProofTypeSkill, ProofTypeAcademic},
		MinProofLevel: LevelIntermediate,
	}
	require.NoError(t, valid.Validate())
	assert.True(t, valid.AllowsType(ProofTypeSkill))
	assert.False(t, valid.AllowsType(ProofTypeIdentity))

	empty := VerificationPolicy{MinProofLevel: LevelBasic}
	assert.Error(t, empty.Validate(), "policy must require at least one proof type")

	badLevel := VerificationPolicy{ProofTypes: []ProofType{ProofTypeSkill}, MinProofLevel: "mythic"}
	assert.Error(t, badLevel.Validate())

	negativeAge := valid
	negativeAge.MaxAgeSeconds = -1
	assert.Error(t, negativeAge.Validate())
}
