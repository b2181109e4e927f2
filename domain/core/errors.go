package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound               = errors.New("resource not found")
	ErrExtractionNotFound     = fmt.Errorf("%w: extraction state", ErrNotFound)
	ErrRecommendationNotFound = fmt.Errorf("%w: recommendation", ErrNotFound)
	ErrBaselineNotFound       = fmt.Errorf("%w: baseline", ErrNotFound)

	// Lifecycle errors
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrAlreadyMeasured   = errors.New("outcome already measured")
	ErrRetryExhausted    = errors.New("retry limit reached, contact support")
	ErrNotRetryable      = errors.New("extraction is not in a retryable state")

	// Concurrency errors
	ErrVersionConflict = errors.New("version conflict, concurrent update detected")

	// Contract-breach errors (policy violations from upstream collaborators)
	ErrForbiddenKeys  = errors.New("draft contains disallowed keys")
	ErrInvalidDraft   = errors.New("recommendation draft failed validation")
	ErrUnknownSegment = errors.New("unknown baseline segment")
)

// NewNotFoundError builds a not-found error with resource context
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsConflictError(err error) bool {
	return errors.Is(err, ErrVersionConflict)
}

func IsTerminalRetryError(err error) bool {
	return errors.Is(err, ErrRetryExhausted)
}
