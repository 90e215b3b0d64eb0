// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	service "github.com/sunugal/releves/internal/app"
	"github.com/sunugal/releves/internal/domain/model"
	"github.com/sunugal/releves/internal/domain/results"
)

// Default cookie configuration.
const (
	defaultCookieName = "authToken"
)

// Portal is the dependency bundle required by HTTP handlers. Using an
// interface keeps the handler layer loosely coupled to the service package;
// satisfied by *service.Service.
type Portal interface {
	// Session lifecycle.
	Login(ctx context.Context, email, password string) (model.User, error)
	Logout(ctx context.Context) error
	Token() string
	State() service.State
	CurrentUser() (model.User, bool)
	Message() string

	// Read operations over the academic records.
	Selection(ctx context.Context) (service.SelectionOptions, error)
	Results(ctx context.Context, semesterID, sessionID int64) (results.StudentResultSet, error)
	ReclamationWindow(ctx context.Context, sessionID int64) (model.ReclamationWindow, error)
}

// Server wires HTTP routes for the portal API.
type Server struct {
	authHandler        *AuthHandler
	sessionHandler     *SessionHandler
	selectionHandler   *SelectionHandler
	resultsHandler     *ResultsHandler
	reclamationHandler *ReclamationHandler
	healthHandler      *HealthHandler
}

// Option applies a configuration option to the Server.
type Option func(*serverConfig)

type serverConfig struct {
	cookieName   string
	cookieSecure bool
	topElements  int
	labelWidth   int
}

// WithCookieName sets the name of the session guard cookie.
func WithCookieName(name string) Option {
	return func(c *serverConfig) {
		if name != "" {
			c.cookieName = name
		}
	}
}

// WithCookieSecure marks the session guard cookie as HTTPS-only.
func WithCookieSecure(secure bool) Option {
	return func(c *serverConfig) {
		c.cookieSecure = secure
	}
}

// WithTopElements sets how many constituent elements the results payload
// ranks.
func WithTopElements(n int) Option {
	return func(c *serverConfig) {
		if n > 0 {
			c.topElements = n
		}
	}
}

// WithLabelWidth bounds the chart axis labels, in runes.
func WithLabelWidth(w int) Option {
	return func(c *serverConfig) {
		if w > 0 {
			c.labelWidth = w
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(portal Portal, opts ...Option) *Server {
	cfg := serverConfig{cookieName: defaultCookieName}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Server{
		authHandler:        NewAuthHandler(portal, cfg.cookieName, cfg.cookieSecure),
		sessionHandler:     NewSessionHandler(portal),
		selectionHandler:   NewSelectionHandler(portal),
		resultsHandler:     NewResultsHandler(portal, cfg.topElements, cfg.labelWidth),
		reclamationHandler: NewReclamationHandler(portal),
		healthHandler:      NewHealthHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/api/login", MetricsMiddleware(s.authHandler.HandleLogin, "login"))
	mux.HandleFunc("/api/logout", MetricsMiddleware(s.authHandler.HandleLogout, "logout"))
	mux.HandleFunc("/api/session", MetricsMiddleware(s.sessionHandler.HandleSession, "session"))
	mux.HandleFunc("/api/selection", MetricsMiddleware(s.selectionHandler.HandleSelection, "selection"))
	mux.HandleFunc("/api/results", MetricsMiddleware(s.resultsHandler.HandleResults, "results"))
	mux.HandleFunc("/api/reclamation", MetricsMiddleware(s.reclamationHandler.HandleReclamation, "reclamation"))
}

// loginRequest mirrors the OpenAPI schema for POST /api/login.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (l loginRequest) validate() error {
	switch {
	case strings.TrimSpace(l.Email) == "":
		return errors.New("missing email")
	case strings.TrimSpace(l.Password) == "":
		return errors.New("missing password")
	}
	return nil
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
