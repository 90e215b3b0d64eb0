package tokenstore

import "errors"

// Sentinel kinds for token persistence errors.
var (
	ErrLoad  = errors.New("token load failed")
	ErrSave  = errors.New("token save failed")
	ErrClear = errors.New("token clear failed")
)
