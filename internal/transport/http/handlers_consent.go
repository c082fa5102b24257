package httptransport

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	consentmodels "proofgate/internal/consent/models"
	id "proofgate/pkg/domain"
	dErrors "proofgate/pkg/domain-errors"
	"proofgate/pkg/platform/httputil"
	"proofgate/pkg/platform/middleware/auth"
	"proofgate/pkg/platform/middleware/requesttime"
)

func (h *Handler) handleUpdateConsent(w http.ResponseWriter, r *http.Request) {
	subjectID, err := id.ParseSubjectID(chi.URLParam(r, "subject_id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	var req consentUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "malformed request body"))
		return
	}

	// Requester identity comes from the verified token, never the payload.
	requester := auth.GetSubjectID(r.Context())
	record, err := h.consent.Update(r.Context(), requester, subjectID, consentmodels.Settings{
		AllowContact:     req.AllowContact,
		AllowSkillView:   req.AllowSkillView,
		AllowProfileView: req.AllowProfileView,
		RequireNDA:       req.RequireNDA,
	}, requesttime.Now(r.Context()))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toConsentResponse(record))
}

func (h *Handler) handleGetConsent(w http.ResponseWriter, r *http.Request) {
	subjectID, err := id.ParseSubjectID(chi.URLParam(r, "subject_id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if auth.GetSubjectID(r.Context()) != subjectID {
		httputil.WriteError(w, dErrors.New(dErrors.CodeForbidden, "subjects may only read their own consent"))
		return
	}

	record, err := h.consent.Get(r.Context(), subjectID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toConsentResponse(record))
}
