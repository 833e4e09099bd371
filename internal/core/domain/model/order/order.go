package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created
	// through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Cancellation records who cancelled an order, when and why.
type Cancellation struct {
	reason string
	at     time.Time
	by     kernel.UUID
}

func NewCancellation(reason string, at time.Time, by kernel.UUID) (Cancellation, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return Cancellation{}, errs.NewValueIsRequiredError("cancellationReason")
	}
	if err := by.Validate(); err != nil {
		return Cancellation{}, errs.NewValueIsRequiredErrorWithCause("cancelledBy", err)
	}
	if at.IsZero() {
		return Cancellation{}, errs.NewValueIsRequiredError("cancelledAt")
	}
	return Cancellation{reason: reason, at: at.UTC(), by: by}, nil
}

func (c Cancellation) Reason() string  { return c.reason }
func (c Cancellation) At() time.Time   { return c.at }
func (c Cancellation) By() kernel.UUID { return c.by }

// Order is the aggregate root of the workflow. Orders are placed by an
// external flow; here they are only modified, reviewed and cancelled.
//
// Invariants:
//   - totalAmount equals the exact sum of item subtotals after creation and
//     after every items replacement
//   - cancellation is set if and only if status is Cancelled
//   - status changes only through the Status transition methods
type Order struct {
	id          kernel.UUID
	clientID    kernel.UUID
	ltaID       *kernel.UUID
	items       Items
	totalAmount decimal.Decimal
	status      Status

	cancellation *Cancellation

	itemsChanged  bool
	isConstructed bool
}

// NewOrder creates a Pending order whose total is derived from its items.
// ltaID is the optional long-term agreement the order was placed under.
func NewOrder(id, clientID kernel.UUID, ltaID *kernel.UUID, items Items) (*Order, error) {
	order := &Order{
		status:        Pending,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setClientID(clientID),
		order.setLTAID(ltaID),
		order.setItems(items),
	); err != nil {
		return nil, err
	}
	order.totalAmount = order.items.Total()

	return order, nil
}

// RestoreOrder rebuilds an order from storage. The stored total is trusted
// as-is: orders placed by other systems may carry totals with discounts
// this workflow does not know about.
func RestoreOrder(
	id, clientID kernel.UUID,
	ltaID *kernel.UUID,
	items Items,
	totalAmount decimal.Decimal,
	status Status,
	cancellation *Cancellation,
) (*Order, error) {
	order := &Order{
		items:         items.Clone(),
		totalAmount:   totalAmount,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setClientID(clientID),
		order.setLTAID(ltaID),
		order.setStatus(status, cancellation),
	); err != nil {
		return nil, err
	}

	return order, nil
}

func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) ClientID() kernel.UUID {
	return o.clientID
}

// LTAID returns nil for orders placed outside a long-term agreement.
func (o *Order) LTAID() *kernel.UUID {
	if o.ltaID == nil {
		return nil
	}
	id := *o.ltaID
	return &id
}

func (o *Order) Items() Items {
	return o.items.Clone()
}

func (o *Order) TotalAmount() decimal.Decimal {
	return o.totalAmount
}

// ItemsChanged reports whether items and total were replaced since the
// order was created or restored.
func (o *Order) ItemsChanged() bool {
	return o.itemsChanged
}

func (o *Order) Status() Status {
	return o.status
}

// Cancellation returns nil unless the order is cancelled.
func (o *Order) Cancellation() *Cancellation {
	if o.cancellation == nil {
		return nil
	}
	c := *o.cancellation
	return &c
}

// IsOwnedBy reports whether userID is the ordering client.
func (o *Order) IsOwnedBy(userID kernel.UUID) bool {
	return o.clientID.IsEqual(userID)
}

// RequestModification marks the order as awaiting review of a modification.
func (o *Order) RequestModification() error {
	newStatus, err := o.status.RequestModification()
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

// ReplaceItems applies an approved items modification. total must be the
// exact sum of the new items, which keeps the total invariant intact.
func (o *Order) ReplaceItems(items Items, total decimal.Decimal) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	if !total.Equal(items.Total()) {
		return errs.NewValueIsInvalidErrorWithCause("totalAmount",
			fmt.Errorf("%s does not match items total %s", total, items.Total()))
	}

	newStatus, err := o.status.ResolveModification()
	if err != nil {
		return err
	}

	o.items = items.Clone()
	o.totalAmount = total
	o.status = newStatus
	o.itemsChanged = true
	return nil
}

// DeclineModification returns the order to Pending without touching items.
func (o *Order) DeclineModification() error {
	newStatus, err := o.status.ResolveModification()
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

// Cancel moves the order to Cancelled. A second cancellation yields a
// ConflictError, a shipped or delivered order an InvalidStateError.
func (o *Order) Cancel(reason string, by kernel.UUID, at time.Time) error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}
	cancellation, err := NewCancellation(reason, at, by)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.cancellation = &cancellation
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("id", err)
	}
	o.id = id
	return nil
}

func (o *Order) setClientID(clientID kernel.UUID) error {
	if err := clientID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("clientId", err)
	}
	o.clientID = clientID
	return nil
}

func (o *Order) setLTAID(ltaID *kernel.UUID) error {
	if ltaID == nil {
		return nil
	}
	if err := ltaID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("ltaId", err)
	}
	id := *ltaID
	o.ltaID = &id
	return nil
}

func (o *Order) setItems(items Items) error {
	validated, err := NewItems(items...)
	if err != nil {
		return err
	}
	o.items = validated
	return nil
}

func (o *Order) setStatus(status Status, cancellation *Cancellation) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if (status == Cancelled) != (cancellation != nil) {
		return errs.NewValueIsInvalidErrorWithCause("cancellation",
			fmt.Errorf("cancellation details must be present exactly when status is %s", Cancelled))
	}
	o.status = status
	if cancellation != nil {
		c := *cancellation
		o.cancellation = &c
	}
	return nil
}
