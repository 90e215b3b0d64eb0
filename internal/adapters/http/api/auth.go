// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/sunugal/releves/internal/domain/model"
)

// AuthHandler handles login and logout requests and keeps the guard cookie
// in sync with the session.
type AuthHandler struct {
	portal       Portal
	cookieName   string
	cookieSecure bool
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(portal Portal, cookieName string, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		portal:       portal,
		cookieName:   cookieName,
		cookieSecure: cookieSecure,
	}
}

type loginResponse struct {
	User model.User `json:"user"`
}

// HandleLogin handles POST /api/login requests. On success the bearer token
// is mirrored into an HttpOnly cookie so the page guard can route without
// touching the token itself.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	const op = "api.login"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	user, err := h.portal.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		status, code := statusFor(err)
		writeError(w, status, code, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    h.portal.Token(),
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, loginResponse{User: user})
}

// HandleLogout handles POST /api/logout requests and expires the guard
// cookie.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	const op = "api.logout"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	if err := h.portal.Logout(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged_out"})
}
