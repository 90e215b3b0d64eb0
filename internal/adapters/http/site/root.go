// Package site serves the embedded portal pages and routes between them
// based on the session guard cookie.
package site

import (
	"context"
	"errors"
	"net/http"
)

// Error constants.
var (
	ErrServe = errors.New("site serve failed")
)

const defaultCookieName = "authToken"

// Option applies a configuration option to the site handler.
type Option func(*RootHandler)

// WithCookieName sets the name of the session guard cookie the router
// checks.
func WithCookieName(name string) Option {
	return func(h *RootHandler) {
		if name != "" {
			h.cookieName = name
		}
	}
}

// Register attaches the embedded portal pages to mux.
func Register(_ context.Context, mux *http.ServeMux, opts ...Option) {
	if mux == nil {
		panic("mux is nil")
	}
	h := NewRootHandler(opts...)
	mux.HandleFunc("/", h.HandleRoot)
	mux.HandleFunc("/releves", h.HandleReleves)
}

// RootHandler routes page requests. A present guard cookie sends the entry
// page to the results page; an absent one sends the results page back to
// the entry page. The cookie only gates page routing; every data request is
// still authenticated by the session itself.
type RootHandler struct {
	cookieName string
	files      http.Handler
}

// NewRootHandler creates a new root handler.
func NewRootHandler(opts ...Option) *RootHandler {
	h := &RootHandler{
		cookieName: defaultCookieName,
		files:      http.FileServer(FS()),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// HandleRoot handles GET / requests and serves the entry page, redirecting
// signed-in sessions to the results page.
func (h *RootHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/" && h.hasGuardCookie(r) {
		http.Redirect(w, r, "/releves", http.StatusSeeOther)
		return
	}
	h.files.ServeHTTP(w, r)
}

// HandleReleves handles GET /releves requests and serves the results page,
// redirecting signed-out sessions to the entry page.
func (h *RootHandler) HandleReleves(w http.ResponseWriter, r *http.Request) {
	if !h.hasGuardCookie(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	r2 := r.Clone(r.Context())
	r2.URL.Path = "/releves.html"
	h.files.ServeHTTP(w, r2)
}

func (h *RootHandler) hasGuardCookie(r *http.Request) bool {
	c, err := r.Cookie(h.cookieName)
	return err == nil && c.Value != ""
}
