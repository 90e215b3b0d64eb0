// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/sunugal/releves/internal/domain/model"
)

// SessionHandler reports the session state.
type SessionHandler struct {
	portal Portal
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(portal Portal) *SessionHandler {
	return &SessionHandler{portal: portal}
}

type sessionResponse struct {
	State   string      `json:"state"`
	User    *model.User `json:"user,omitempty"`
	Message string      `json:"message,omitempty"`
}

// HandleSession handles GET /api/session requests. The message field
// carries the user-facing explanation of the last failed restore, if any.
func (h *SessionHandler) HandleSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	resp := sessionResponse{
		State:   h.portal.State().String(),
		Message: h.portal.Message(),
	}
	if user, ok := h.portal.CurrentUser(); ok {
		resp.User = &user
	}
	writeJSON(w, http.StatusOK, resp)
}
