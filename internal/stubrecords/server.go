// Package stubrecords runs a fixture academic records service for local
// development. It answers the same endpoints the portal consumes, guarded
// by the same bearer header, so the whole portal can run without touching
// the real records service.
package stubrecords

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/sunugal/releves/pkg/logger"
)

// Server is a fixture records service bound to one student account.
type Server struct {
	email    string
	password string
	token    string
	fixtures *Fixtures
	logger   logger.Logger
}

// New creates a stub records server.
func New(opts ...Option) *Server {
	s := &Server{
		email:    defaultEmail,
		password: defaultPassword,
		token:    defaultToken,
		fixtures: DefaultFixtures(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	return s
}

// Register attaches the records routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.HandleFunc("/loginAuth", s.handleLogin)
	mux.HandleFunc("/userConnecter", s.authorized(s.handleCurrentUser))
	mux.HandleFunc("/inscriptions/findByGroupeAndAnneeAcademique/", s.authorized(s.handleEnrollments))
	mux.HandleFunc("/semestres/getSemestresbyNiveau/", s.authorized(s.handleSemesters))
	mux.HandleFunc("/sessions", s.authorized(s.handleSessions))
	mux.HandleFunc("/notes/getNotesByUniteEnseignement/", s.authorized(s.handleResults))
	mux.HandleFunc("/autorisation-reclamations/", s.authorized(s.handleReclamation))
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "requête invalide"})
		return
	}
	if req.Email != s.email || req.Password != s.password {
		s.logger.Info(r.Context(), "rejecting login", logger.String("email", req.Email))
		writeJSON(w, http.StatusUnauthorized, map[string]string{
			"message": "Échec de l'authentification. Vérifiez vos identifiants.",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"token": s.token,
		"user":  s.fixtures.User,
	})
}

func (s *Server) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.fixtures.User)
}

func (s *Server) handleEnrollments(w http.ResponseWriter, r *http.Request) {
	ine := strings.TrimPrefix(r.URL.Path, "/inscriptions/findByGroupeAndAnneeAcademique/")
	if ine != s.fixtures.User.INE {
		writeJSON(w, http.StatusOK, []any{})
		return
	}
	writeJSON(w, http.StatusOK, s.fixtures.Enrollments)
}

func (s *Server) handleSemesters(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.fixtures.Semesters)
}

func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.fixtures.Sessions)
}

func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/notes/getNotesByUniteEnseignement/")
	parts := strings.Split(rest, "/")
	if len(parts) != 3 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "paramètres manquants"})
		return
	}
	writeJSON(w, http.StatusOK, s.fixtures.ResultSet(parts[1], parts[2]))
}

func (s *Server) handleReclamation(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.fixtures.Window)
}

// authorized rejects requests whose bearer header does not carry the issued
// token, mirroring the real records service.
func (s *Server) authorized(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("CreAuthorization") != "Bearer "+s.token {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "token invalide"})
			return
		}
		next.ServeHTTP(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
