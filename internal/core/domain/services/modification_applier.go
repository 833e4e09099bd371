package services

import (
	"errors"
	"fmt"

	"orderflow/internal/core/domain/model/modification"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"
)

// ErrRequestNotReviewed is returned when Apply gets a request that is still pending.
var ErrRequestNotReviewed = errors.New("modification request has not been reviewed")

// ModificationApplier applies a reviewed request to the order it targets.
//
// Example usage:
//
//	if err := request.Review(modification.StatusApproved, admin, "ok", now); err != nil {
//	    return err
//	}
//	if err := services.NewModificationApplier().Apply(o, request); err != nil {
//	    return err
//	}
type ModificationApplier struct{}

func NewModificationApplier() ModificationApplier {
	return ModificationApplier{}
}

// Apply mutates o according to r's decision. Neither aggregate is persisted;
// the caller writes both in one transaction.
func (a ModificationApplier) Apply(o *order.Order, r *modification.Request) error {
	if err := errors.Join(o.Validate(), r.Validate()); err != nil {
		return err
	}
	if !o.ID().IsEqual(r.OrderID()) {
		return errs.NewValueIsInvalidErrorWithCause("orderId",
			fmt.Errorf("request %s targets order %s, not %s", r.ID(), r.OrderID(), o.ID()))
	}

	switch r.Status() {
	case modification.StatusApproved:
		return a.applyApproved(o, r)
	case modification.StatusRejected:
		return o.DeclineModification()
	case modification.StatusPending, modification.StatusUnknown:
		return ErrRequestNotReviewed
	}
	return ErrRequestNotReviewed
}

func (a ModificationApplier) applyApproved(o *order.Order, r *modification.Request) error {
	switch r.Type() {
	case modification.TypeItems:
		total := r.NewTotalAmount()
		if total == nil {
			return errs.NewValueIsRequiredError("newTotalAmount")
		}
		return o.ReplaceItems(r.NewItems(), *total)
	case modification.TypeCancel:
		// the requester, not the reviewer, is recorded as the canceller
		return o.Cancel(r.Reason(), r.RequestedBy(), *r.ReviewedAt())
	case modification.TypeUnknown:
		return errs.NewValueIsInvalidError("modificationType")
	}
	return errs.NewValueIsInvalidError("modificationType")
}
