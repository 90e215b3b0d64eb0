package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/sunugal/releves/internal/adapters/upstream"
	service "github.com/sunugal/releves/internal/app"
)

// Sentinel kinds for API errors.
var (
	ErrServe      = errors.New("api serve failed")
	ErrBadRequest = errors.New("bad request")
)

// NewKind returns an operation-tagged error of the given kind.
func NewKind(op string, kind error) error {
	return fmt.Errorf("%s: %w", op, kind)
}

// WrapKind tags err with an operation and a kind, keeping the kind
// matchable with errors.Is.
func WrapKind(op string, kind, err error) error {
	return fmt.Errorf("%s: %w: %v", op, kind, err)
}

// Wrap tags err with an operation.
func Wrap(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}

// statusFor maps service and upstream failures to an HTTP status and a
// machine-readable code.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrNotAuthenticated):
		return http.StatusUnauthorized, "not_authenticated"
	case errors.Is(err, service.ErrNoEnrollment):
		return http.StatusConflict, "no_enrollment"
	case errors.Is(err, service.ErrStaleSelection):
		return http.StatusConflict, "stale_selection"
	case errors.Is(err, service.ErrMalformedSelection):
		return http.StatusUnprocessableEntity, "malformed_selection"
	case upstream.IsRejected(err):
		return http.StatusUnauthorized, "rejected"
	case upstream.IsUnreachable(err):
		return http.StatusBadGateway, "upstream_unreachable"
	case upstream.IsFetchFailure(err):
		return http.StatusBadGateway, "upstream_fetch_failed"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
