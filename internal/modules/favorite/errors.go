package favorite

import "errors"

var (
	ErrTutorNotFound    = errors.New("tutor profile not found")
	ErrOwnProfile       = errors.New("cannot favorite your own tutor profile")
	ErrAlreadyFavorited = errors.New("tutor already in favorites")
	ErrNotFavorited     = errors.New("favorite not found")
)
