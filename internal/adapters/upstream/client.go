// Package upstream implements the typed client for the remote academic
// records API. The portal core only consumes its decoded outputs; the token
// is supplied per request by an injected TokenSource, never by package state.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sunugal/releves/internal/domain/model"
	"github.com/sunugal/releves/internal/domain/results"
	"github.com/sunugal/releves/pkg/logger"
	"github.com/sunugal/releves/pkg/metrics"
)

// Default client configuration constants.
const (
	defaultTimeout = 30 * time.Second
)

// TokenSource supplies the bearer token attached to outbound requests.
// An empty token is sent as-is; the upstream rejects it.
type TokenSource interface {
	Token() string
}

// TokenFunc adapts a function to the TokenSource interface.
type TokenFunc func() string

// Token implements TokenSource.
func (f TokenFunc) Token() string { return f() }

// LoginResponse is the payload of a successful authentication.
type LoginResponse struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

// loginRequest mirrors the upstream login body.
type loginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe string `json:"rememberMe"`
}

// Client issues authenticated requests against the academic records API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	log        logger.Logger
}

// New creates an upstream client with configuration options.
func New(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		tokens:     TokenFunc(func() string { return "" }),
		log:        logger.Get(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Login authenticates with the given identifier and secret. A non-2xx
// response is a credential rejection, not a data error.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResponse, error) {
	const endpoint = "loginAuth"

	body, err := json.Marshal(loginRequest{Email: email, Password: password})
	if err != nil {
		return LoginResponse{}, fmt.Errorf("marshal login request: %w", err)
	}

	resp, err := c.send(ctx, http.MethodPost, endpoint, "/loginAuth", bytes.NewReader(body))
	if err != nil {
		return LoginResponse{}, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		drain(resp.Body)
		metrics.RecordUpstreamRequest(endpoint, "rejected")
		return LoginResponse{}, fmt.Errorf("%w: %s", ErrRejected,
			"Échec de l'authentification. Vérifiez vos identifiants.")
	}

	var out LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		metrics.RecordUpstreamRequest(endpoint, "decode_error")
		return LoginResponse{}, fmt.Errorf("%w: decode login response: %v", ErrFetch, err)
	}
	metrics.RecordUpstreamRequest(endpoint, "ok")
	return out, nil
}

// CurrentUser fetches the identity behind the current token. Enrollments are
// not attached; fetch them separately via Enrollments.
func (c *Client) CurrentUser(ctx context.Context) (model.User, error) {
	var u model.User
	if err := c.getJSON(ctx, "userConnecter", "/userConnecter", true, &u); err != nil {
		return model.User{}, err
	}
	return u, nil
}

// Enrollments lists the enrollments of a student keyed by INE.
func (c *Client) Enrollments(ctx context.Context, ine string) ([]model.Enrollment, error) {
	var out []model.Enrollment
	path := fmt.Sprintf("/inscriptions/findByGroupeAndAnneeAcademique/%s", ine)
	if err := c.getJSON(ctx, "inscriptions", path, false, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Semesters lists the selectable semesters for an enrollment.
func (c *Client) Semesters(ctx context.Context, enrollmentID int64) ([]model.Semester, error) {
	var out []model.Semester
	path := fmt.Sprintf("/semestres/getSemestresbyNiveau/%d", enrollmentID)
	if err := c.getJSON(ctx, "semestres", path, false, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ExamSessions lists the selectable exam sessions.
func (c *Client) ExamSessions(ctx context.Context) ([]model.ExamSession, error) {
	var out []model.ExamSession
	if err := c.getJSON(ctx, "sessions", "/sessions", false, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Results fetches the grade result set for one (enrollment, semester,
// session) triple and validates it before handing it to the core.
func (c *Client) Results(ctx context.Context, enrollmentID, semesterID, sessionID int64) (results.StudentResultSet, error) {
	var rs results.StudentResultSet
	path := fmt.Sprintf("/notes/getNotesByUniteEnseignement/%d/%d/%d", enrollmentID, semesterID, sessionID)
	if err := c.getJSON(ctx, "notes", path, false, &rs); err != nil {
		return results.StudentResultSet{}, err
	}
	if err := rs.Validate(); err != nil {
		metrics.RecordUpstreamRequest("notes", "malformed")
		return results.StudentResultSet{}, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	return rs, nil
}

// ReclamationWindow fetches the complaint-window authorization for a
// formation and exam session.
func (c *Client) ReclamationWindow(ctx context.Context, academicYearID, formationID int64, terminal bool, sessionID int64) (model.ReclamationWindow, error) {
	var w model.ReclamationWindow
	path := fmt.Sprintf("/autorisation-reclamations/%d/%d/%t/%d", academicYearID, formationID, terminal, sessionID)
	if err := c.getJSON(ctx, "autorisation-reclamations", path, false, &w); err != nil {
		return model.ReclamationWindow{}, err
	}
	return w, nil
}

// getJSON issues a GET and decodes the JSON body. identity marks endpoints
// whose non-2xx responses mean a rejected credential rather than a data
// failure.
func (c *Client) getJSON(ctx context.Context, endpoint, path string, identity bool, out any) error {
	resp, err := c.send(ctx, http.MethodGet, endpoint, path, nil)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		drain(resp.Body)
		statusErr := &StatusError{Endpoint: endpoint, Status: resp.StatusCode}
		if identity || resp.StatusCode == http.StatusUnauthorized {
			metrics.RecordUpstreamRequest(endpoint, "rejected")
			return fmt.Errorf("%w: %v", ErrRejected, statusErr)
		}
		metrics.RecordUpstreamRequest(endpoint, "error")
		return fmt.Errorf("%w: %v", ErrFetch, statusErr)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		metrics.RecordUpstreamRequest(endpoint, "decode_error")
		return fmt.Errorf("%w: decode %s response: %v", ErrFetch, endpoint, err)
	}
	metrics.RecordUpstreamRequest(endpoint, "ok")
	return nil
}

// send builds and executes one request with the fixed header set. Transport
// failures come back tagged ErrUnreachable.
func (c *Client) send(ctx context.Context, method, endpoint, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", endpoint, err)
	}
	c.setHeaders(req)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.RecordUpstreamRequestDuration(endpoint, float64(time.Since(start).Milliseconds()))
	if err != nil {
		metrics.RecordUpstreamRequest(endpoint, "unreachable")
		c.log.Warn(ctx, "upstream request failed",
			logger.String("endpoint", endpoint),
			logger.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	return resp, nil
}

// setHeaders applies the fixed header set the upstream expects, including
// its bearer-style CreAuthorization header.
func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Accept-Language", "fr-FR,fr;q=0.9,en-US;q=0.8,en;q=0.7")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("CreAuthorization", "Bearer "+c.tokens.Token())
}

// drain discards the remaining body so the connection can be reused.
func drain(r io.Reader) {
	_, _ = io.Copy(io.Discard, r)
}
