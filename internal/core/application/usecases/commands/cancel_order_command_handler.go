package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/modification"
	"orderflow/internal/core/domain/model/notification"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"
)

// CancelOrderCommandHandler cancels an order directly.
//
// A request still pending for the order is rejected in the same
// transaction with AutoRejectResponse, and its requester is told unless they
// are the one cancelling. The other party of the order receives an
// order_cancelled notification.
type CancelOrderCommandHandler struct {
	uowFactory WorkflowUoWFactory
}

func NewCancelOrderCommandHandler(uowFactory WorkflowUoWFactory) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	actor := cmd.Actor()
	if !actor.IsAdmin() && !o.IsOwnedBy(actor.UserID()) {
		return nil, errs.NewForbiddenError(kernel.ReasonNotOrderOwner,
			fmt.Sprintf("order %s does not belong to the caller", o.ID()))
	}

	now := time.Now().UTC()
	if err = o.Cancel(cmd.Reason(), actor.UserID(), now); err != nil {
		return nil, err
	}

	outbox := uow.NotificationOutbox()
	if err = h.closePendingRequest(ctx, uow, outbox, o, cmd, now); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}
	if err = outbox.Enqueue(ctx, notification.OrderCancelled(o, actor, now)); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}

func (h *CancelOrderCommandHandler) closePendingRequest(
	ctx context.Context,
	uow WorkflowUoW,
	outbox ports.NotificationOutbox,
	o *order.Order,
	cmd CancelOrderCommand,
	now time.Time,
) error {
	modificationRepo := uow.ModificationRepository()
	pending, err := modificationRepo.FindPendingByOrder(ctx, o.ID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	actorID := cmd.Actor().UserID()
	if err = pending.Review(modification.StatusRejected, actorID, modification.AutoRejectResponse, now); err != nil {
		return err
	}
	if err = modificationRepo.Update(ctx, pending); err != nil {
		return err
	}

	if pending.RequestedBy().IsEqual(actorID) {
		return nil
	}
	n, err := notification.ModificationReviewed(pending, now)
	if err != nil {
		return err
	}
	return outbox.Enqueue(ctx, n)
}
