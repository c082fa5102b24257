package proofsystem

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	dErrors "proofgate/pkg/domain-errors"
	"proofgate/pkg/platform/circuit"
)

// HTTPClient talks to an external proof system over its REST API. The
// endpoint is opaque configuration; a circuit breaker fails fast when the
// prover is down so issuance requests do not pile up behind timeouts.
type HTTPClient struct {
	endpoint string
	client   *http.Client
	breaker  *circuit.Breaker
}

// HTTPClientOption configures the client.
type HTTPClientOption func(*HTTPClient)

// WithHTTPTimeout overrides the default 10s request timeout.
func WithHTTPTimeout(d time.Duration) HTTPClientOption {
	return func(c *HTTPClient) {
		if d > 0 {
			c.client.Timeout = d
		}
	}
}

// NewHTTPClient builds a proof system client for the given endpoint.
func NewHTTPClient(endpoint string, opts ...HTTPClientOption) *HTTPClient {
	c := &HTTPClient{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
		breaker:  circuit.New("proofsystem"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type proveRequest struct {
	Claim   string `json:"claim"`
	Witness string `json:"witness"`
}

type proveResponse struct {
	Artifact string `json:"artifact"`
	Digest   string `json:"digest"`
}

type verifyRequest struct {
	Artifact     string `json:"artifact"`
	PublicInputs string `json:"public_inputs"`
}

type verifyResponse struct {
	Valid bool `json:"valid"`
}

// Prove requests a proof from the external prover.
func (c *HTTPClient) Prove(ctx context.Context, claim, witness []byte) (*Proof, error) {
	var resp proveResponse
	err := c.post(ctx, "/prove", proveRequest{
		Claim:   base64.StdEncoding.EncodeToString(claim),
		Witness: base64.StdEncoding.EncodeToString(witness),
	}, &resp)
	if err != nil {
		return nil, err
	}

	artifact, err := base64.StdEncoding.DecodeString(resp.Artifact)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "prover returned malformed artifact")
	}

	digest := resp.Digest
	if digest == "" {
		digest = DigestOf(artifact)
	}
	return &Proof{Artifact: artifact, Digest: digest}, nil
}

// Verify asks the external verifier to check a proof against public inputs.
func (c *HTTPClient) Verify(ctx context.Context, proof *Proof, publicInputs []byte) (bool, error) {
	if proof == nil {
		return false, nil
	}
	var resp verifyResponse
	err := c.post(ctx, "/verify", verifyRequest{
		Artifact:     base64.StdEncoding.EncodeToString(proof.Artifact),
		PublicInputs: base64.StdEncoding.EncodeToString(publicInputs),
	}, &resp)
	if err != nil {
		return false, err
	}
	return resp.Valid, nil
}

type recheckRequest struct {
	ClaimDigest string `json:"claim_digest"`
	ProofDigest string `json:"proof_digest"`
}

// Recheck asks the external proof system to re-validate an archived proof by
// its digests. Used by read-time re-verification, where the registry holds
// digests only.
func (c *HTTPClient) Recheck(ctx context.Context, claimDigest, proofDigest string) (bool, error) {
	var resp verifyResponse
	err := c.post(ctx, "/recheck", recheckRequest{
		ClaimDigest: claimDigest,
		ProofDigest: proofDigest,
	}, &resp)
	if err != nil {
		return false, err
	}
	return resp.Valid, nil
}

// post sends a JSON request and decodes the response, tracking breaker state.
func (c *HTTPClient) post(ctx context.Context, path string, body, out any) error {
	if !c.breaker.Allow() {
		return dErrors.New(dErrors.CodeProofSystemDown, "proof system circuit open")
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "encode proof system request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+path, bytes.NewReader(payload))
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "build proof system request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.breaker.RecordFailure()
		return dErrors.Wrap(err, dErrors.CodeProofSystemDown, "proof system unreachable")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode >= http.StatusInternalServerError {
		c.breaker.RecordFailure()
		return dErrors.New(dErrors.CodeProofSystemDown, fmt.Sprintf("proof system returned %d", resp.StatusCode))
	}
	if resp.StatusCode != http.StatusOK {
		c.breaker.RecordSuccess()
		return dErrors.New(dErrors.CodeProofRejected, fmt.Sprintf("proof system rejected request with %d", resp.StatusCode))
	}

	c.breaker.RecordSuccess()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "decode proof system response")
	}
	return nil
}
