package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")

	// ErrUnresolvedDraftRef marks a draft-local reference that has no
	// store identifier during submission. It is an internal-consistency
	// failure, not a validation failure: it means the draft skipped
	// validation or a goal creation silently lost its identifier.
	ErrUnresolvedDraftRef = errors.New("draft reference could not be resolved")
)
