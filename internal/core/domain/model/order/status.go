package order

import (
	"fmt"

	"orderflow/internal/pkg/errs"
)

// Reasons attached to workflow errors raised by the order status policy.
const (
	ReasonOrderNotModifiable  = "order_not_modifiable"
	ReasonOrderNotCancellable = "order_not_cancellable"
	ReasonAlreadyCancelled    = "already_cancelled"
	ReasonNotAwaitingReview   = "order_not_awaiting_review"
)

// Status is the lifecycle state of an order.
//
// Fulfilment moves an order along Pending -> Confirmed -> Processing ->
// Shipped -> Delivered; those transitions belong to other systems. This
// package owns the modification side:
//
//	Pending|Confirmed|Processing ──request──> ModificationRequested
//	ModificationRequested ──approve items / reject──> Pending
//	any non-terminal, non-shipped ──cancel──> Cancelled
//
// Shipped, Delivered and Cancelled are locked for modification.
type Status int

const (
	// Unknown catches uninitialized values.
	Unknown Status = iota
	Pending
	Confirmed
	Processing
	Shipped
	Delivered
	Cancelled
	// ModificationRequested marks an order with a pending modification request.
	ModificationRequested
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:               "unknown",
		Pending:               "pending",
		Confirmed:             "confirmed",
		Processing:            "processing",
		Shipped:               "shipped",
		Delivered:             "delivered",
		Cancelled:             "cancelled",
		ModificationRequested: "modification_requested",
	}
}

// ParseStatus maps the persisted/wire name back to a Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != Unknown && name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate rejects Unknown and out-of-range values, e.g. a status read from
// an external source.
func (s Status) Validate() error {
	if s <= Unknown || s > ModificationRequested {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// CanModify reports whether a client may file a modification request.
// The switch is exhaustive so that adding a status forces a decision here.
func (s Status) CanModify() bool {
	switch s {
	case Pending, Confirmed, Processing, ModificationRequested:
		return true
	case Shipped, Delivered, Cancelled, Unknown:
		return false
	}
	return false
}

// CanCancel reports whether the order may still be cancelled.
func (s Status) CanCancel() bool {
	switch s {
	case Pending, Confirmed, Processing, ModificationRequested:
		return true
	case Shipped, Delivered, Cancelled, Unknown:
		return false
	}
	return false
}

// ValidateModify returns an InvalidStateError when CanModify is false.
func (s Status) ValidateModify() error {
	if !s.CanModify() {
		return errs.NewInvalidStateError(ReasonOrderNotModifiable,
			fmt.Sprintf("cannot modify a %s order", s))
	}
	return nil
}

// ValidateCancel distinguishes a repeated cancellation (ConflictError) from
// an order that progressed too far (InvalidStateError).
func (s Status) ValidateCancel() error {
	if s == Cancelled {
		return errs.NewConflictError(ReasonAlreadyCancelled, "order is already cancelled")
	}
	if !s.CanCancel() {
		return errs.NewInvalidStateError(ReasonOrderNotCancellable,
			fmt.Sprintf("cannot cancel a %s order", s))
	}
	return nil
}

// RequestModification transitions to ModificationRequested.
func (s Status) RequestModification() (Status, error) {
	if err := s.ValidateModify(); err != nil {
		return Unknown, err
	}
	return ModificationRequested, nil
}

// ResolveModification returns an order awaiting review to Pending, the
// outcome of both an approved items change and a rejection.
func (s Status) ResolveModification() (Status, error) {
	if s != ModificationRequested {
		return Unknown, errs.NewInvalidStateError(ReasonNotAwaitingReview,
			fmt.Sprintf("%s order has no modification awaiting review", s))
	}
	return Pending, nil
}

// Cancel transitions to Cancelled.
func (s Status) Cancel() (Status, error) {
	if err := s.ValidateCancel(); err != nil {
		return Unknown, err
	}
	return Cancelled, nil
}
