package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/modification"
	"orderflow/internal/core/domain/model/notification"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/pkg/errs"
)

// ErrOrderOfRequestMissing means a stored request points at an order that
// does not exist. It is an integrity failure, not a client error.
var ErrOrderOfRequestMissing = errors.New("modification request references a missing order")

// ReviewModificationCommandHandler approves or rejects a pending request and
// applies the outcome to the order in the same transaction.
//
// Locks are taken order first, then request, matching the other workflow
// handlers. The request is re-read under its lock and written with a
// status-guarded update, so of two concurrent reviews exactly one wins and
// the other gets a ConflictError.
type ReviewModificationCommandHandler struct {
	uowFactory WorkflowUoWFactory
	applier    services.ModificationApplier
}

func NewReviewModificationCommandHandler(uowFactory WorkflowUoWFactory) ReviewModificationCommandHandler {
	return ReviewModificationCommandHandler{
		uowFactory: uowFactory,
		applier:    services.NewModificationApplier(),
	}
}

func (h *ReviewModificationCommandHandler) Handle(
	ctx context.Context,
	cmd ReviewModificationCommand,
) (*modification.Request, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if !cmd.Reviewer().IsAdmin() {
		return nil, errs.NewForbiddenError(kernel.ReasonAdminOnly, "only administrators review modification requests")
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	modificationRepo := uow.ModificationRepository()
	request, err := modificationRepo.Get(ctx, cmd.ModificationID())
	if err != nil {
		return nil, err
	}
	if !request.IsPending() {
		return nil, errs.NewConflictError(modification.ReasonAlreadyReviewed,
			fmt.Sprintf("modification request %s is already %s", request.ID(), request.Status()))
	}

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, request.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, fmt.Errorf("%w: request %s, order %s", ErrOrderOfRequestMissing, request.ID(), request.OrderID())
	}
	if err != nil {
		return nil, err
	}

	request, err = modificationRepo.GetForUpdate(ctx, cmd.ModificationID())
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err = request.Review(cmd.Decision(), cmd.Reviewer().UserID(), cmd.AdminResponse(), now); err != nil {
		return nil, err
	}
	if err = h.applier.Apply(o, request); err != nil {
		return nil, err
	}

	if err = modificationRepo.Update(ctx, request); err != nil {
		return nil, err
	}
	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	n, err := notification.ModificationReviewed(request, now)
	if err != nil {
		return nil, err
	}
	if err = uow.NotificationOutbox().Enqueue(ctx, n); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return request, nil
}
