package service

import (
	"context"
	"fmt"

	"github.com/sunugal/releves/internal/adapters/upstream"
	"github.com/sunugal/releves/internal/domain/model"
	"github.com/sunugal/releves/pkg/logger"
	"github.com/sunugal/releves/pkg/metrics"
)

// User-facing messages, matching the upstream portal wording.
const (
	msgUnreachable    = "Impossible de se connecter au serveur. Vérifiez votre connexion internet ou réessayez plus tard."
	msgSessionInvalid = "Session expirée ou invalide. Veuillez vous reconnecter."
)

// Restore brings the session up from the persisted token. Without a stored
// token it settles unauthenticated with no network call. With one, the
// identity is fetched and enrollments attached; any failure deletes the
// stored token and classifies the message as unreachable vs session-invalid.
// A Restore entered while another is in flight coalesces onto it and
// returns that cycle's result.
func (s *Service) Restore(ctx context.Context) error {
	s.mu.Lock()
	if fl := s.restore; fl != nil {
		s.mu.Unlock()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-fl.done:
			return fl.err
		}
	}
	fl := &restoreCycle{done: make(chan struct{})}
	s.restore = fl
	s.state = StateChecking
	s.mu.Unlock()

	fl.err = s.runRestore(ctx)

	s.mu.Lock()
	s.restore = nil
	s.mu.Unlock()
	close(fl.done)

	return fl.err
}

func (s *Service) runRestore(ctx context.Context) error {
	token, err := s.tokens.Load()
	if err != nil {
		s.setUnauthenticated("")
		metrics.RecordRestore("no_token")
		return err
	}
	if token == "" {
		s.setUnauthenticated("")
		metrics.RecordRestore("no_token")
		return nil
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	user, err := s.attachIdentity(ctx)
	if err != nil {
		if clearErr := s.tokens.Clear(); clearErr != nil {
			s.logger.Warn(ctx, "failed to clear stored token", logger.Error(clearErr))
		}
		s.setUnauthenticated(classifyRestoreFailure(err))
		if upstream.IsUnreachable(err) {
			metrics.RecordRestore("unreachable")
		} else {
			metrics.RecordRestore("invalid")
		}
		return fmt.Errorf("restore session: %w", err)
	}

	s.mu.Lock()
	s.user = &user
	s.state = StateAuthenticated
	s.message = ""
	s.mu.Unlock()
	metrics.RecordRestore("restored")
	metrics.UpdateSessionAuthenticated(true)

	s.logger.Info(ctx, "session restored",
		logger.String("ine", user.INE),
		logger.Int("enrollments", len(user.Enrollments)),
	)
	return nil
}

// attachIdentity fetches the current user and attaches enrollments looked up
// by INE; the identity endpoint itself returns none.
func (s *Service) attachIdentity(ctx context.Context) (model.User, error) {
	user, err := s.api.CurrentUser(ctx)
	if err != nil {
		return model.User{}, err
	}
	enrollments, err := s.api.Enrollments(ctx, user.INE)
	if err != nil {
		return model.User{}, err
	}
	user.Enrollments = enrollments
	return user, nil
}

// Login authenticates against the upstream and persists the returned token.
// On failure the session state is untouched and the upstream failure is
// surfaced verbatim.
func (s *Service) Login(ctx context.Context, email, password string) (model.User, error) {
	resp, err := s.api.Login(ctx, email, password)
	if err != nil {
		metrics.RecordLoginFailure()
		return model.User{}, err
	}

	s.mu.Lock()
	s.token = resp.Token
	user := resp.User
	s.user = &user
	s.state = StateAuthenticated
	s.message = ""
	s.mu.Unlock()

	if err := s.tokens.Save(resp.Token); err != nil {
		// The session still works in memory; durability is degraded.
		s.logger.Warn(ctx, "failed to persist token", logger.Error(err))
	}
	metrics.RecordLoginSuccess()
	metrics.UpdateSessionAuthenticated(true)

	// The login payload carries no enrollments; attach them now so the
	// selection is usable without another restore cycle.
	if enrollments, err := s.api.Enrollments(ctx, resp.User.INE); err == nil {
		s.mu.Lock()
		u := *s.user
		u.Enrollments = enrollments
		s.user = &u
		user = u
		s.mu.Unlock()
	} else {
		s.logger.Warn(ctx, "failed to attach enrollments after login", logger.Error(err))
	}

	s.logger.Info(ctx, "login succeeded", logger.String("ine", user.INE))
	return user, nil
}

// Logout deletes the persisted token and clears the in-memory session. The
// HTTP layer reacts by expiring the guard cookie, which sends the browser
// back to the entry page.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.tokens.Clear(); err != nil {
		s.logger.Warn(ctx, "failed to clear stored token", logger.Error(err))
	}
	s.setUnauthenticated("")
	metrics.RecordLogout()
	s.logger.Info(ctx, "logged out")
	return nil
}

func (s *Service) setUnauthenticated(message string) {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.state = StateUnauthenticated
	s.message = message
	s.mu.Unlock()
	metrics.UpdateSessionAuthenticated(false)
}

// classifyRestoreFailure maps a tagged client failure to the user-facing
// message: transport failures read differently from rejected credentials.
func classifyRestoreFailure(err error) string {
	if upstream.IsUnreachable(err) {
		return msgUnreachable
	}
	return msgSessionInvalid
}
