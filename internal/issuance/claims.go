package issuance

import (
	"encoding/json"
	"fmt"

	id "proofgate/pkg/domain"
	dErrors "proofgate/pkg/domain-errors"
)

// requiredClaimFields lists the fields a claim payload must carry for each
// proof type. The claim content itself never reaches the registry; only its
// digest does, so validation happens here or nowhere.
var requiredClaimFields = map[id.ProofType][]string{
	id.ProofTypeSkill:      {"skill", "assessment"},
	id.ProofTypeIdentity:   {"document_type"},
	id.ProofTypeAcademic:   {"institution", "program"},
	id.ProofTypeExperience: {"organization", "role"},
}

// ValidateClaim checks that the claim payload is a JSON object with the
// fields the proof type requires, each a non-empty string. Extra fields are
// allowed; they end up in the digest like everything else.
func ValidateClaim(proofType id.ProofType, claim []byte) error {
	if len(claim) == 0 {
		return dErrors.New(dErrors.CodeInvalidClaim, "claim payload is empty")
	}

	var payload map[string]any
	if err := json.Unmarshal(claim, &payload); err != nil {
		return dErrors.New(dErrors.CodeInvalidClaim, "claim payload is not a JSON object")
	}

	fields, ok := requiredClaimFields[proofType]
	if !ok {
		return dErrors.New(dErrors.CodeInvalidClaim, fmt.Sprintf("unknown proof type: %s", proofType))
	}
	for _, field := range fields {
		value, ok := payload[field].(string)
		if !ok || value == "" {
			return dErrors.New(dErrors.CodeInvalidClaim,
				fmt.Sprintf("claim for proof type %q requires field %q", proofType, field))
		}
	}
	return nil
}
