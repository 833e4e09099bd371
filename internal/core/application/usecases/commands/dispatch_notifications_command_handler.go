package commands

import (
	"context"
	"time"

	"orderflow/internal/core/ports"
)

// DispatchResult counts the outcome of one relay batch.
type DispatchResult struct {
	Delivered int
	Failed    int
}

// DispatchNotificationsCommandHandler moves queued notifications from the
// outbox to the Notifier. Delivery is at-least-once: a crash after Notify
// and before commit delivers the batch again on the next run.
type DispatchNotificationsCommandHandler struct {
	uowFactory OutboxUoWFactory
	notifier   ports.Notifier
}

func NewDispatchNotificationsCommandHandler(
	uowFactory OutboxUoWFactory,
	notifier ports.Notifier,
) DispatchNotificationsCommandHandler {
	return DispatchNotificationsCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle claims one batch. A failed delivery is recorded on its row and does
// not stop the rest of the batch.
func (h *DispatchNotificationsCommandHandler) Handle(
	ctx context.Context,
	cmd DispatchNotificationsCommand,
) (DispatchResult, error) {
	if err := cmd.Validate(); err != nil {
		return DispatchResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return DispatchResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	outbox := uow.NotificationOutbox()
	batch, err := outbox.ClaimPending(ctx, cmd.BatchSize(), cmd.MaxAttempts())
	if err != nil {
		return DispatchResult{}, err
	}
	if len(batch) == 0 {
		return DispatchResult{}, nil
	}

	var result DispatchResult
	for _, n := range batch {
		if notifyErr := h.notifier.Notify(ctx, n); notifyErr != nil {
			if err = outbox.MarkFailed(ctx, n.ID(), notifyErr); err != nil {
				return DispatchResult{}, err
			}
			result.Failed++
			continue
		}
		if err = outbox.MarkDelivered(ctx, n.ID(), time.Now().UTC()); err != nil {
			return DispatchResult{}, err
		}
		result.Delivered++
	}

	if err = uow.Commit(ctx); err != nil {
		return DispatchResult{}, err
	}

	return result, nil
}
