package errs

import (
	"errors"
	"fmt"
)

var (
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidState = errors.New("invalid state")
	ErrConflict     = errors.New("conflict")
)

// ForbiddenError means the caller is not allowed to touch the resource.
type ForbiddenError struct {
	Reason string
	Detail string
}

func NewForbiddenError(reason, detail string) *ForbiddenError {
	return &ForbiddenError{Reason: reason, Detail: detail}
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("%s: %s", ErrForbidden, e.Detail)
}

func (e *ForbiddenError) Unwrap() error {
	return ErrForbidden
}

// InvalidStateError means the operation is not allowed for the current
// status of the target, e.g. modifying a shipped order.
type InvalidStateError struct {
	Reason string
	Detail string
}

func NewInvalidStateError(reason, detail string) *InvalidStateError {
	return &InvalidStateError{Reason: reason, Detail: detail}
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidState, e.Detail)
}

func (e *InvalidStateError) Unwrap() error {
	return ErrInvalidState
}

// ConflictError means the operation lost against concurrent or earlier work:
// a pending request already exists, the request was already reviewed, the
// order is already cancelled.
type ConflictError struct {
	Reason string
	Detail string
	Cause  error
}

func NewConflictError(reason, detail string) *ConflictError {
	return &ConflictError{Reason: reason, Detail: detail}
}

func NewConflictErrorWithCause(reason, detail string, cause error) *ConflictError {
	return &ConflictError{Reason: reason, Detail: detail, Cause: cause}
}

func (e *ConflictError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrConflict, e.Detail), e.Cause)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// ReasonOf returns the Reason of the first workflow error in err's chain,
// or an empty string.
func ReasonOf(err error) string {
	var forbidden *ForbiddenError
	if errors.As(err, &forbidden) {
		return forbidden.Reason
	}
	var invalidState *InvalidStateError
	if errors.As(err, &invalidState) {
		return invalidState.Reason
	}
	var conflict *ConflictError
	if errors.As(err, &conflict) {
		return conflict.Reason
	}
	return ""
}
