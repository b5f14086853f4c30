package review

import "errors"

var (
	ErrInvalidRequest = errors.New("invalid review request")
	ErrNotFound       = errors.New("booking not found")
	ErrForbidden      = errors.New("forbidden")
	ErrNotCompleted   = errors.New("booking is not completed")
	ErrAlreadyExists  = errors.New("review already exists for this booking")
)
