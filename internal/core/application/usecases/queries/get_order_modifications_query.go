package queries

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var (
	ErrGetOrderModificationsQueryIsNotConstructed = errors.New(
		"GetOrderModificationsQuery must be created via NewGetOrderModificationsQuery constructor",
	)
)

// GetOrderModificationsQuery lists the modification history of one order,
// newest first. Only the owning client and administrators may read it.
//
// Example:
//
//	query, err := NewGetOrderModificationsQuery(orderID, viewer)
//	if err != nil {
//	    return err
//	}
//	history, err := handler.Handle(ctx, query)
type GetOrderModificationsQuery struct {
	orderID kernel.UUID
	viewer  kernel.Identity

	guard guard.ConstructorGuard
}

func NewGetOrderModificationsQuery(orderID kernel.UUID, viewer kernel.Identity) (GetOrderModificationsQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderModificationsQuery{}, errs.NewValueIsRequiredErrorWithCause("orderId", err)
	}
	if err := viewer.Validate(); err != nil {
		return GetOrderModificationsQuery{}, errs.NewValueIsRequiredErrorWithCause("viewer", err)
	}

	return GetOrderModificationsQuery{
		orderID: orderID,
		viewer:  viewer,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q GetOrderModificationsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderModificationsQueryIsNotConstructed)
}

func (q GetOrderModificationsQuery) OrderID() kernel.UUID    { return q.orderID }
func (q GetOrderModificationsQuery) Viewer() kernel.Identity { return q.viewer }
