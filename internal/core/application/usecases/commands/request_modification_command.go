package commands

import (
	"errors"
	"strings"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/modification"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrRequestModificationCommandIsNotConstructed = errors.New(
	"RequestModificationCommand must be created via NewRequestModificationCommand constructor",
)

// RequestModificationCommand is a client's request to change the items of
// one of their orders or to have it cancelled.
//
// Example:
//
//	cmd, err := NewRequestModificationCommand(orderID, client, modification.TypeItems, items, "need two")
//	if err != nil {
//	    return err // validation error, nothing was read or written
//	}
//	request, err := handler.Handle(ctx, cmd)
type RequestModificationCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	requester kernel.Identity
	modType   modification.Type
	newItems  order.Items
	reason    string

	guard guard.ConstructorGuard
}

// NewRequestModificationCommand validates the input shape: a non-blank
// reason, a non-empty single-currency item list for items requests and no
// items for cancel requests.
func NewRequestModificationCommand(
	orderID kernel.UUID,
	requester kernel.Identity,
	modType modification.Type,
	newItems order.Items,
	reason string,
) (RequestModificationCommand, error) {
	cmd := RequestModificationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setRequester(requester),
		cmd.setChange(modType, newItems),
		cmd.setReason(reason),
	); err != nil {
		return RequestModificationCommand{}, err
	}

	return cmd, nil
}

func (c RequestModificationCommand) Validate() error {
	return c.guard.Validate(ErrRequestModificationCommandIsNotConstructed)
}

func (c RequestModificationCommand) OrderID() kernel.UUID       { return c.orderID }
func (c RequestModificationCommand) Requester() kernel.Identity { return c.requester }
func (c RequestModificationCommand) Type() modification.Type    { return c.modType }
func (c RequestModificationCommand) NewItems() order.Items      { return c.newItems.Clone() }
func (c RequestModificationCommand) Reason() string             { return c.reason }

func (c *RequestModificationCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderId", err)
	}
	c.orderID = orderID
	return nil
}

func (c *RequestModificationCommand) setRequester(requester kernel.Identity) error {
	if err := requester.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("requester", err)
	}
	c.requester = requester
	return nil
}

func (c *RequestModificationCommand) setChange(modType modification.Type, newItems order.Items) error {
	switch modType {
	case modification.TypeItems:
		items, err := order.NewItems(newItems...)
		if err != nil {
			return errs.NewValueIsInvalidErrorWithCause("newItems", err)
		}
		c.newItems = items
	case modification.TypeCancel:
		if len(newItems) > 0 {
			return errs.NewValueIsInvalidErrorWithCause("newItems",
				errors.New("cancel requests must not carry items"))
		}
	case modification.TypeUnknown:
		return errs.NewValueIsInvalidError("modificationType")
	default:
		return errs.NewValueIsInvalidError("modificationType")
	}
	c.modType = modType
	return nil
}

func (c *RequestModificationCommand) setReason(reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}
	c.reason = reason
	return nil
}
