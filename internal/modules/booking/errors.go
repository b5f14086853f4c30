package booking

import "errors"

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("booking or tutor not found")
	ErrForbidden  = errors.New("forbidden")
	// ErrConflict covers illegal transitions and lost optimistic-concurrency
	// races alike: in both cases the caller acted on stale status.
	ErrConflict = errors.New("conflicting booking state")
)
