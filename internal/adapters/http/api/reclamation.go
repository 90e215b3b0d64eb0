// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"strconv"
)

// ReclamationHandler handles grade complaint window requests.
type ReclamationHandler struct {
	portal Portal
}

// NewReclamationHandler creates a new reclamation handler.
func NewReclamationHandler(portal Portal) *ReclamationHandler {
	return &ReclamationHandler{portal: portal}
}

// HandleReclamation handles GET /api/reclamation?session=N requests.
func (h *ReclamationHandler) HandleReclamation(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_reclamation"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	sessionID, err := strconv.ParseInt(r.URL.Query().Get("session"), 10, 64)
	if err != nil || sessionID < 1 {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	window, err := h.portal.ReclamationWindow(r.Context(), sessionID)
	if err != nil {
		status, code := statusFor(err)
		writeError(w, status, code, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, window)
}
