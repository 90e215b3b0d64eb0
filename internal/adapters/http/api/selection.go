// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
)

// SelectionHandler handles semester/session chooser requests.
type SelectionHandler struct {
	portal Portal
}

// NewSelectionHandler creates a new selection handler.
func NewSelectionHandler(portal Portal) *SelectionHandler {
	return &SelectionHandler{portal: portal}
}

// HandleSelection handles GET /api/selection requests. Both option lists
// are fetched together; either failure blocks the whole selection.
func (h *SelectionHandler) HandleSelection(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_selection"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	sel, err := h.portal.Selection(r.Context())
	if err != nil {
		status, code := statusFor(err)
		writeError(w, status, code, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, sel)
}
