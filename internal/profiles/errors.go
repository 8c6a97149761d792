package profiles

import "errors"

var (
	// ErrNotFound indicates an unknown candidate or offer id.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates validation or bad input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrForbidden indicates the actor may not modify the entity.
	ErrForbidden = errors.New("forbidden")
)
