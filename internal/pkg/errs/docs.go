// Package errs provides the error types shared by the order workflow.
//
// Every type follows the same pattern: a sentinel (ErrValueIsRequired,
// ErrConflict, ...), a struct carrying the details, constructors with and
// without a cause, and an Unwrap method returning the sentinel so callers can
// classify with errors.Is.
//
// Validation failures (required, invalid, out of range) come from domain
// constructors. ObjectNotFoundError comes from repositories. ForbiddenError,
// InvalidStateError and ConflictError are raised by workflow rules and carry a
// machine-readable Reason that the HTTP layer exposes to clients.
package errs
