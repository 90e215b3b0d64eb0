package service

import "errors"

// Sentinel kinds for portal service errors.
var (
	// ErrNotAuthenticated is returned when an operation requires a session.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrNoEnrollment is a business-rule error: the user has zero
	// enrollments, which blocks semester/session selection entirely.
	ErrNoEnrollment = errors.New("no enrollment found")

	// ErrMalformedSelection covers empty option lists and incomplete
	// selections.
	ErrMalformedSelection = errors.New("malformed selection")

	// ErrStaleSelection marks a grade response that arrived after the
	// selection moved on; it must never be displayed.
	ErrStaleSelection = errors.New("selection superseded")
)
