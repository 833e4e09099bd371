package ports

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/modification"
)

// ModificationRepository persists modification requests.
type ModificationRepository interface {
	// Add stores a new pending request. A second pending request for the
	// same order yields errs.ConflictError.
	Add(ctx context.Context, request *modification.Request) error

	// Update records the review of a pending request. The write is guarded
	// by the stored status; if the row is no longer pending it returns
	// errs.ConflictError and changes nothing.
	Update(ctx context.Context, request *modification.Request) error

	Get(ctx context.Context, id kernel.UUID) (*modification.Request, error)

	// GetForUpdate row-locks the request. Callers lock the order first.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*modification.Request, error)

	// FindPendingByOrder returns errs.ObjectNotFoundError when the order has
	// no pending request.
	FindPendingByOrder(ctx context.Context, orderID kernel.UUID) (*modification.Request, error)
}
