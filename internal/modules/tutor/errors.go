package tutor

import "errors"

var (
	ErrValidation    = errors.New("validation error")
	ErrNotFound      = errors.New("tutor profile not found")
	ErrForbidden     = errors.New("forbidden")
	ErrProfileExists = errors.New("user already has a tutor profile")
)
