package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/modification"
	"orderflow/internal/core/domain/model/notification"
	"orderflow/internal/pkg/errs"
)

// RequestModificationCommandHandler files a modification request.
//
// The order row is locked first, so concurrent requests for the same order
// run one after another and the second one sees the first request as
// pending. The partial unique index on pending requests backs this up.
type RequestModificationCommandHandler struct {
	uowFactory WorkflowUoWFactory
}

func NewRequestModificationCommandHandler(uowFactory WorkflowUoWFactory) RequestModificationCommandHandler {
	return RequestModificationCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns the stored pending request. On any error nothing is persisted.
func (h *RequestModificationCommandHandler) Handle(
	ctx context.Context,
	cmd RequestModificationCommand,
) (*modification.Request, error) {
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

	requester := cmd.Requester()
	if requester.IsAdmin() || !o.IsOwnedBy(requester.UserID()) {
		return nil, errs.NewForbiddenError(kernel.ReasonNotOrderOwner,
			fmt.Sprintf("order %s does not belong to the caller", o.ID()))
	}

	if err = o.Status().ValidateModify(); err != nil {
		return nil, err
	}

	modificationRepo := uow.ModificationRepository()
	pending, err := modificationRepo.FindPendingByOrder(ctx, o.ID())
	if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}
	if pending != nil {
		return nil, errs.NewConflictError(modification.ReasonPendingExists,
			fmt.Sprintf("order %s already has pending modification %s", o.ID(), pending.ID()))
	}

	now := time.Now().UTC()
	request, err := modification.NewRequest(
		kernel.NewUUID(), o.ID(), requester.UserID(), cmd.Type(), cmd.NewItems(), cmd.Reason(), now,
	)
	if err != nil {
		return nil, err
	}

	if err = o.RequestModification(); err != nil {
		return nil, err
	}

	if err = modificationRepo.Add(ctx, request); err != nil {
		return nil, err
	}
	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}
	if err = uow.NotificationOutbox().Enqueue(ctx, notification.ModificationRequested(request, now)); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return request, nil
}
