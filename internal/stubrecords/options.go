package stubrecords

import "github.com/sunugal/releves/pkg/logger"

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithCredentials sets the accepted login credentials.
func WithCredentials(email, password string) Option {
	return func(s *Server) {
		if email != "" {
			s.email = email
		}
		if password != "" {
			s.password = password
		}
	}
}

// WithToken sets the bearer token the stub issues and requires.
func WithToken(token string) Option {
	return func(s *Server) {
		if token != "" {
			s.token = token
		}
	}
}

// WithFixtures replaces the canned dataset.
func WithFixtures(f *Fixtures) Option {
	return func(s *Server) {
		if f != nil {
			s.fixtures = f
		}
	}
}

// WithLogger sets a custom logger for the server.
func WithLogger(log logger.Logger) Option {
	return func(s *Server) {
		if log != nil {
			s.logger = log
		}
	}
}
