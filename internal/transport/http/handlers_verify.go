package httptransport

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	id "proofgate/pkg/domain"
	dErrors "proofgate/pkg/domain-errors"
	"proofgate/pkg/platform/httputil"
)

func (h *Handler) handleVerify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "malformed request body"))
		return
	}
	credentialID, err := id.ParseCredentialID(req.CredentialID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	decision, err := h.verification.Verify(r.Context(), credentialID, req.Policy)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	// Denials are 200s: the decision itself is the resource.
	httputil.WriteJSON(w, http.StatusOK, decision)
}

func (h *Handler) handleJobMatch(w http.ResponseWriter, r *http.Request) {
	jobID, err := id.ParseJobID(chi.URLParam(r, "job_id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	var req jobMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "malformed request body"))
		return
	}
	candidates, err := req.toCandidates()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	results, err := h.match.Match(r.Context(), req.toPosting(jobID), candidates)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"job_id":  jobID.String(),
		"results": results,
	})
}
