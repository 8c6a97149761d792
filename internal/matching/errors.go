package matching

import "errors"

var (
	// ErrNotFound indicates an unknown candidate or offer id.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates validation or bad input.
	ErrInvalidInput = errors.New("invalid input")
)
