// Package ports defines the contracts between the workflow core and its
// infrastructure: repositories, the unit of work that binds them to one
// transaction, the notification outbox and the notifier that delivers from it.
package ports

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

// OrderRepository persists order aggregates.
type OrderRepository interface {
	// Add persists a new order. Orders are normally placed by an external
	// flow; Add exists for seeding and tests.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update writes items, total, status and cancellation of an existing order.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get returns errs.ObjectNotFoundError when the order does not exist.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate is Get plus a row lock held until the transaction ends.
	// Every mutating workflow operation starts here, which makes the order
	// row the serialization point for its modifications.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
