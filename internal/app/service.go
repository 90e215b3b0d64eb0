// Package service provides the portal core: the session state machine over
// the academic records API and the semester/session selection coordinator.
package service

import (
	"context"
	"sync"
	"time"

	"github.com/sunugal/releves/internal/adapters/tokenstore"
	"github.com/sunugal/releves/internal/adapters/upstream"
	"github.com/sunugal/releves/internal/domain/model"
	"github.com/sunugal/releves/internal/domain/results"
	"github.com/sunugal/releves/pkg/logger"
)

// Default service configuration constants.
const (
	defaultTokenPath  = "releves.token"
	defaultAPITimeout = 30 * time.Second
)

// State is the session lifecycle state.
type State int

// Session states. Checking is entered while a restore cycle is in flight.
const (
	StateUnauthenticated State = iota
	StateChecking
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateChecking:
		return "checking"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// AcademicAPI is the collaborator surface the service consumes. Satisfied by
// *upstream.Client; narrowed to an interface so tests can stub it.
type AcademicAPI interface {
	Login(ctx context.Context, email, password string) (upstream.LoginResponse, error)
	CurrentUser(ctx context.Context) (model.User, error)
	Enrollments(ctx context.Context, ine string) ([]model.Enrollment, error)
	Semesters(ctx context.Context, enrollmentID int64) ([]model.Semester, error)
	ExamSessions(ctx context.Context) ([]model.ExamSession, error)
	Results(ctx context.Context, enrollmentID, semesterID, sessionID int64) (results.StudentResultSet, error)
	ReclamationWindow(ctx context.Context, academicYearID, formationID int64, terminal bool, sessionID int64) (model.ReclamationWindow, error)
}

// TokenStore is the durable storage surface for the single bearer token.
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// Service owns the session state and coordinates fetches. The bearer token
// is the only cross-cutting shared resource; every mutation happens under
// the service mutex.
type Service struct {
	mu sync.RWMutex

	// Collaborators
	api    AcademicAPI
	tokens TokenStore

	// Configuration used to build default collaborators in Start.
	apiBaseURL string
	apiTimeout time.Duration
	tokenPath  string

	// Session state
	state   State
	token   string
	user    *model.User
	message string

	// In-flight restore cycle; concurrent restores coalesce onto it.
	restore *restoreCycle

	// Key of the selection whose grade fetch may still publish.
	selectionKey string

	started bool

	logger logger.Logger
}

type restoreCycle struct {
	done chan struct{}
	err  error
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithAPI injects the academic API collaborator.
func WithAPI(api AcademicAPI) Option {
	return func(s *Service) {
		if api != nil {
			s.api = api
		}
	}
}

// WithTokenStore injects the durable token storage.
func WithTokenStore(store TokenStore) Option {
	return func(s *Service) {
		if store != nil {
			s.tokens = store
		}
	}
}

// WithAPIBaseURL sets the academic API origin for the default client.
func WithAPIBaseURL(baseURL string) Option {
	return func(s *Service) {
		if baseURL != "" {
			s.apiBaseURL = baseURL
		}
	}
}

// WithAPITimeout bounds requests of the default client.
func WithAPITimeout(timeout time.Duration) Option {
	return func(s *Service) {
		if timeout > 0 {
			s.apiTimeout = timeout
		}
	}
}

// WithTokenPath sets where the default token store persists the token.
func WithTokenPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.tokenPath = path
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.logger = log
		}
	}
}

// New constructs a Service with default configuration. The session starts
// in the checking state; Start runs the initial restore cycle.
func New(opts ...Option) *Service {
	s := &Service{
		apiTimeout: defaultAPITimeout,
		tokenPath:  defaultTokenPath,
		state:      StateChecking,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start builds missing collaborators and runs the initial restore. A restore
// failure is not a startup failure: the portal simply comes up
// unauthenticated.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.tokens == nil {
		s.tokens = tokenstore.New(s.tokenPath)
	}
	if s.api == nil {
		s.api = upstream.New(
			upstream.WithBaseURL(s.apiBaseURL),
			upstream.WithTimeout(s.apiTimeout),
			upstream.WithTokenSource(s),
			upstream.WithLogger(s.logger),
		)
	}
	s.started = true
	s.mu.Unlock()

	s.logger.Info(ctx, "starting portal service")

	if err := s.Restore(ctx); err != nil {
		s.logger.Warn(ctx, "initial session restore failed", logger.Error(err))
	}
	return nil
}

// Stop releases the service. Nothing is in flight to drain; fetches are
// request-scoped.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "portal service stopped")
}

// Token implements upstream.TokenSource.
func (s *Service) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// State returns the current session state.
func (s *Service) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Authenticated reports whether the session holds a credential not yet
// proven invalid.
func (s *Service) Authenticated() bool {
	return s.State() == StateAuthenticated
}

// CurrentUser returns the fetched identity, if any.
func (s *Service) CurrentUser() (model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return model.User{}, false
	}
	return *s.user, true
}

// Message returns the user-facing message of the last failed restore.
func (s *Service) Message() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.message
}

// enrollment returns the active enrollment used for all fetches (the first
// one, matching the upstream portal behavior).
func (s *Service) enrollment() (model.Enrollment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != StateAuthenticated || s.user == nil {
		return model.Enrollment{}, ErrNotAuthenticated
	}
	if len(s.user.Enrollments) == 0 {
		return model.Enrollment{}, ErrNoEnrollment
	}
	return s.user.Enrollments[0], nil
}
