package upstream

import (
	"errors"
	"fmt"
)

// Sentinel kinds for upstream client errors. Callers classify failures with
// errors.Is instead of matching message text.
var (
	// ErrUnreachable tags transport-level failures (DNS, refused, timeout).
	ErrUnreachable = errors.New("academic API unreachable")

	// ErrRejected tags credential rejections on login or identity checks.
	ErrRejected = errors.New("credentials rejected")

	// ErrFetch tags non-2xx responses on data endpoints.
	ErrFetch = errors.New("data fetch failed")
)

// IsUnreachable reports whether err is a transport-level failure.
func IsUnreachable(err error) bool { return errors.Is(err, ErrUnreachable) }

// IsRejected reports whether err is a credential rejection.
func IsRejected(err error) bool { return errors.Is(err, ErrRejected) }

// IsFetchFailure reports whether err is a data-endpoint failure.
func IsFetchFailure(err error) bool { return errors.Is(err, ErrFetch) }

// StatusError carries the HTTP detail of a non-2xx upstream response.
type StatusError struct {
	Endpoint string
	Status   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned HTTP %d", e.Endpoint, e.Status)
}
