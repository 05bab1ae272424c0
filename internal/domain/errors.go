package domain

import "errors"

// Sentinel errors for the core operations. Handlers match these with
// errors.Is and map them to response codes; services wrap them with
// fmt.Errorf("...: %w", ...) to name the failed precondition.
var (
	// ErrValidation is returned for malformed or out-of-range input.
	ErrValidation = errors.New("validation failed")
	// ErrNotAuthorized is returned when the actor lacks the role or
	// relationship required for the operation.
	ErrNotAuthorized = errors.New("not authorized")
	// ErrNotFound is returned when a referenced id does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyPaid is returned when paying a bill that is already PAID.
	ErrAlreadyPaid = errors.New("bill already paid")
	// ErrInvalidTransition is returned for a disallowed ticket status change.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrConflict is returned when a write loses an optimistic-concurrency
	// race that is not an already-paid or invalid-transition case.
	ErrConflict = errors.New("conflicting concurrent update")
)
