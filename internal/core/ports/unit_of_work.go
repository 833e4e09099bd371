package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork per command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Repositories obtained after
// Begin share its transaction; callers Commit explicitly and defer Rollback.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	// Commit returns an error if there is no active transaction.
	Commit(ctx context.Context) error

	// Rollback returns an error if there is no active transaction, which
	// makes a deferred Rollback after Commit harmless.
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	ModificationRepository() ModificationRepository
	NotificationOutbox() NotificationOutbox
}
