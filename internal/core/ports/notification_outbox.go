package ports

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/notification"
)

// NotificationOutbox stores notifications in the same transaction as the
// change they describe. Nothing is delivered before that transaction commits.
type NotificationOutbox interface {
	Enqueue(ctx context.Context, n *notification.Notification) error

	// ClaimPending locks up to limit undelivered notifications with fewer
	// than maxAttempts failed attempts, oldest first, skipping rows already
	// claimed by another relay.
	ClaimPending(ctx context.Context, limit, maxAttempts int) ([]*notification.Notification, error)

	MarkDelivered(ctx context.Context, id kernel.UUID, at time.Time) error

	// MarkFailed increments the attempt counter and records the cause.
	MarkFailed(ctx context.Context, id kernel.UUID, cause error) error
}

// Notifier delivers one notification to its audience.
type Notifier interface {
	Notify(ctx context.Context, n *notification.Notification) error
}
