package applications

import "errors"

var (
	ErrNotFound          = errors.New("applications: not found")
	ErrInvalidInput      = errors.New("applications: invalid input")
	ErrInvalidStatus     = errors.New("applications: unknown status")
	ErrInvalidTransition = errors.New("applications: transition not allowed")
	ErrLastEntry         = errors.New("applications: cannot remove the last history entry")
	ErrDuplicate         = errors.New("applications: candidate already applied to this offer")
)
