package core

import (
	"errors"
	"fmt"
)

// The four error kinds of the engine. Every error returned by a feature
// handler matches exactly one of these via errors.Is, so the boundary layer
// can map outcomes without inspecting messages:
//
// ErrNotFound       -> a referenced entity is absent (404-equivalent)
// ErrValidation     -> the request violates a business invariant (400-equivalent)
// ErrIntegrityFault -> an invariant the system itself must guarantee is broken;
// never a user error, always logged as a defect
// ErrTransient      -> lock/commit contention after bounded retries; the whole
// operation is safe to retry from scratch.
var (
	ErrNotFound       = errors.New("not found")
	ErrValidation     = errors.New("validation failed")
	ErrIntegrityFault = errors.New("integrity fault")
	ErrTransient      = errors.New("transient failure, retry the operation")
)

// Specific errors, each joined to its kind.
var (
	ErrBookNotFound   = fmt.Errorf("%w: book does not exist", ErrNotFound)
	ErrAuthorNotFound = fmt.Errorf("%w: author does not exist", ErrNotFound)
	ErrMemberNotFound = fmt.Errorf("%w: member does not exist", ErrNotFound)
	ErrLoanNotFound   = fmt.Errorf("%w: loan does not exist", ErrNotFound)

	ErrCapacityExhausted  = fmt.Errorf("%w: no copies available", ErrValidation)
	ErrAlreadyReturned    = fmt.Errorf("%w: loan is already returned", ErrValidation)
	ErrInvalidCapacity    = fmt.Errorf("%w: total copies below active loan count", ErrValidation)
	ErrAuthorHasBooks     = fmt.Errorf("%w: author still has books assigned", ErrValidation)
	ErrBookHasActiveLoans = fmt.Errorf("%w: book still has active loans", ErrValidation)
)
