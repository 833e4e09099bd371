// Package commands contains the write side of the order workflow: filing a
// modification request, reviewing it, cancelling an order directly and
// relaying queued notifications.
//
// Every handler follows the same shape: validate the command before any I/O,
// open a unit of work, lock the order row, apply domain rules, persist the
// aggregates and their notification in one transaction, commit.
package commands

import (
	"context"

	"orderflow/internal/core/ports"
)

// Unit of Work interfaces narrowed to what each handler touches.
type (
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	ModificationRepoFactory interface {
		ModificationRepository() ports.ModificationRepository
	}

	OutboxFactory interface {
		NotificationOutbox() ports.NotificationOutbox
	}

	// WorkflowUoW spans orders, modification requests and the outbox.
	//
	// Example:
	//   uow := factory.Create()
	//   if err := uow.Begin(ctx); err != nil { return err }
	//   defer func() { _ = uow.Rollback(ctx) }()
	//
	//   o, err := uow.OrderRepository().GetForUpdate(ctx, id)
	//   // ... mutate, persist, enqueue
	//
	//   return uow.Commit(ctx)
	WorkflowUoW interface {
		TxManager
		OrderRepoFactory
		ModificationRepoFactory
		OutboxFactory
	}

	WorkflowUoWFactory interface {
		Create() WorkflowUoW
	}

	// OutboxUoW is used by the notification relay, which touches only the outbox.
	OutboxUoW interface {
		TxManager
		OutboxFactory
	}

	OutboxUoWFactory interface {
		Create() OutboxUoW
	}
)

// WorkflowUoWFactoryFunc adapts a function to WorkflowUoWFactory, letting a
// general ports.UnitOfWorkFactory serve the workflow handlers.
type WorkflowUoWFactoryFunc func() WorkflowUoW

func (f WorkflowUoWFactoryFunc) Create() WorkflowUoW { return f() }

// OutboxUoWFactoryFunc adapts a function to OutboxUoWFactory.
type OutboxUoWFactoryFunc func() OutboxUoW

func (f OutboxUoWFactoryFunc) Create() OutboxUoW { return f() }
