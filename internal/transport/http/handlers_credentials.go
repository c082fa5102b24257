package httptransport

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"proofgate/internal/issuance"
	id "proofgate/pkg/domain"
	dErrors "proofgate/pkg/domain-errors"
	"proofgate/pkg/platform/httputil"
	"proofgate/pkg/platform/middleware/requesttime"
)

func (h *Handler) handleIssueCredential(w http.ResponseWriter, r *http.Request) {
	var req issueCredentialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "malformed request body"))
		return
	}

	issuerID, err := id.ParseIssuerID(req.IssuerID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	subjectID, err := id.ParseSubjectID(req.SubjectID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	ttl, err := req.ttl()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	credential, err := h.issuance.Issue(r.Context(), issuance.Request{
		Claim:      []byte(req.Claim),
		Witness:    []byte(req.Witness),
		IssuerID:   issuerID,
		SubjectID:  subjectID,
		ProofType:  id.ProofType(req.ProofType),
		ProofLevel: id.ProofLevel(req.ProofLevel),
		Nonce:      req.Nonce,
		TTL:        ttl,
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, issueCredentialResponse{
		CredentialID: credential.ID.String(),
		Status:       string(credential.Status),
		IssuedAt:     credential.IssuedAt,
		ExpiresAt:    credential.ExpiresAt,
	})
}

func (h *Handler) handleGetCredential(w http.ResponseWriter, r *http.Request) {
	credentialID, err := id.ParseCredentialID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	credential, err := h.registry.Get(r.Context(), credentialID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toCredentialResponse(credential, requesttime.Now(r.Context())))
}

func (h *Handler) handleRevokeCredential(w http.ResponseWriter, r *http.Request) {
	credentialID, err := id.ParseCredentialID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	var req revokeCredentialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "malformed request body"))
		return
	}
	requester, err := id.ParseActorID(req.RequesterID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	now := requesttime.Now(r.Context())
	credential, err := h.registry.Revoke(r.Context(), credentialID, requester, now)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toCredentialResponse(credential, now))
}
