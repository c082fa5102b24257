// Package main provides a CLI for generating local test material: subject
// bearer tokens for the consent endpoints and demo issuance requests. Tokens
// use the dev signing key and will NOT work against a production deployment.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Dev signing key - matches config.go when PROOFGATE_JWT_SIGNING_KEY is not set.
const devSigningKey = "dev-secret-key-change-in-production"

const defaultTokenTTL = 15 * time.Minute

func main() {
	tokenCmd := flag.NewFlagSet("token", flag.ExitOnError)
	tokenSubject := tokenCmd.String("subject-id", "", "Subject ID (UUID). Generated if empty.")
	tokenTTL := tokenCmd.Duration("ttl", defaultTokenTTL, "Token time-to-live")
	tokenKey := tokenCmd.String("key", devSigningKey, "HMAC signing key")

	issueCmd := flag.NewFlagSet("issue-request", flag.ExitOnError)
	issueSubject := issueCmd.String("subject-id", "", "Subject ID (UUID). Generated if empty.")
	issueIssuer := issueCmd.String("issuer-id", "", "Issuer ID (UUID). Generated if empty.")
	issueType := issueCmd.String("proof-type", "skill", "Proof type: skill|identity|academic|experience")
	issueLevel := issueCmd.String("proof-level", "expert", "Proof level: basic|intermediate|advanced|expert")
	issueTTL := issueCmd.Int64("ttl-seconds", 365*24*3600, "Credential time-to-live in seconds, 0 for non-expiring")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "token":
		tokenCmd.Parse(os.Args[2:]) //nolint:errcheck // ExitOnError
		generateToken(*tokenSubject, *tokenTTL, *tokenKey)
	case "issue-request":
		issueCmd.Parse(os.Args[2:]) //nolint:errcheck // ExitOnError
		generateIssueRequest(*issueSubject, *issueIssuer, *issueType, *issueLevel, *issueTTL)
	default:
		printUsage()
		os.Exit(1)
	}
}

func generateToken(subjectID string, ttl time.Duration, key string) {
	if subjectID == "" {
		subjectID = uuid.NewString()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": subjectID,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(ttl).Unix(),
	})
	signed, err := token.SignedString([]byte(key))
	if err != nil {
		fmt.Fprintln(os.Stderr, "sign token:", err)
		os.Exit(1)
	}

	writeJSON(map[string]any{
		"token":      signed,
		"subject_id": subjectID,
		"expires_in": ttl.String(),
		"usage":      fmt.Sprintf(`curl -X PUT -H "Authorization: Bearer %s" localhost:8080/consent/%s`, signed, subjectID),
	})
}

// demoClaims satisfy the per-type claim schema the issuance service enforces.
var demoClaims = map[string]map[string]string{
	"skill":      {"skill": "go", "assessment": "backend-assessment-2026"},
	"identity":   {"document_type": "passport"},
	"academic":   {"institution": "demo-university", "program": "computer-science"},
	"experience": {"organization": "demo-corp", "role": "software-engineer"},
}

func generateIssueRequest(subjectID, issuerID, proofType, proofLevel string, ttlSeconds int64) {
	if subjectID == "" {
		subjectID = uuid.NewString()
	}
	if issuerID == "" {
		issuerID = uuid.NewString()
	}
	claim, ok := demoClaims[proofType]
	if !ok {
		fmt.Fprintln(os.Stderr, "unknown proof type:", proofType)
		os.Exit(1)
	}

	writeJSON(map[string]any{
		"claim":       claim,
		"witness":     "demo-witness-" + uuid.NewString(),
		"issuer_id":   issuerID,
		"subject_id":  subjectID,
		"proof_type":  proofType,
		"proof_level": proofLevel,
		"nonce":       uuid.NewString(),
		"ttl_seconds": ttlSeconds,
	})
}

func writeJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintln(os.Stderr, "encode output:", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`credgen - generate local test material

Usage:
  credgen token [-subject-id UUID] [-ttl 15m] [-key KEY]
      Print a subject bearer token for the consent endpoints.

  credgen issue-request [-subject-id UUID] [-issuer-id UUID] [-proof-type skill] [-proof-level expert] [-ttl-seconds N]
      Print a POST /credentials body for the given proof type.`)
}
