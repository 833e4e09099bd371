package modification

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Reasons attached to workflow errors raised for modification requests.
const (
	ReasonPendingExists   = "modification_pending"
	ReasonAlreadyReviewed = "already_reviewed"
)

// AutoRejectResponse is the admin response recorded when a direct
// cancellation closes a pending request.
const AutoRejectResponse = "order was cancelled"

const maxReasonLength = 2000

var ErrRequestIsNotConstructed = errors.New("Request must be created via NewRequest constructor")

// Request is a client's modification request for one order.
type Request struct {
	id             kernel.UUID
	orderID        kernel.UUID
	requestedBy    kernel.UUID
	modType        Type
	newItems       order.Items
	newTotalAmount *decimal.Decimal
	reason         string
	status         Status
	adminResponse  string
	reviewedBy     *kernel.UUID
	reviewedAt     *time.Time
	createdAt      time.Time

	isConstructed bool
}

// NewRequest creates a Pending request. Items requests carry a non-empty
// item list and a derived total; cancel requests carry neither.
func NewRequest(
	id, orderID, requestedBy kernel.UUID,
	modType Type,
	newItems order.Items,
	reason string,
	createdAt time.Time,
) (*Request, error) {
	r := &Request{
		status:        StatusPending,
		createdAt:     createdAt.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		setRequiredID(&r.id, "id", id),
		setRequiredID(&r.orderID, "orderId", orderID),
		setRequiredID(&r.requestedBy, "requestedBy", requestedBy),
		r.setReason(reason),
		r.setChange(modType, newItems),
	); err != nil {
		return nil, err
	}
	return r, nil
}

// RestoreRequest rebuilds a request from storage.
func RestoreRequest(
	id, orderID, requestedBy kernel.UUID,
	modType Type,
	newItems order.Items,
	newTotalAmount *decimal.Decimal,
	reason string,
	status Status,
	adminResponse string,
	reviewedBy *kernel.UUID,
	reviewedAt *time.Time,
	createdAt time.Time,
) (*Request, error) {
	if status < StatusPending || status > StatusRejected {
		return nil, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", status))
	}
	if modType != TypeItems && modType != TypeCancel {
		return nil, errs.NewValueIsInvalidError("modificationType")
	}
	if err := errors.Join(id.Validate(), orderID.Validate(), requestedBy.Validate()); err != nil {
		return nil, err
	}

	r := &Request{
		id:            id,
		orderID:       orderID,
		requestedBy:   requestedBy,
		modType:       modType,
		newItems:      newItems.Clone(),
		reason:        reason,
		status:        status,
		adminResponse: adminResponse,
		createdAt:     createdAt,
		isConstructed: true,
	}
	if newTotalAmount != nil {
		total := *newTotalAmount
		r.newTotalAmount = &total
	}
	if reviewedBy != nil {
		by := *reviewedBy
		r.reviewedBy = &by
	}
	if reviewedAt != nil {
		at := *reviewedAt
		r.reviewedAt = &at
	}
	return r, nil
}

func (r *Request) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRequestIsNotConstructed
	}
	return nil
}

func (r *Request) ID() kernel.UUID          { return r.id }
func (r *Request) OrderID() kernel.UUID     { return r.orderID }
func (r *Request) RequestedBy() kernel.UUID { return r.requestedBy }
func (r *Request) Type() Type               { return r.modType }
func (r *Request) Reason() string           { return r.reason }
func (r *Request) Status() Status           { return r.status }
func (r *Request) AdminResponse() string    { return r.adminResponse }
func (r *Request) CreatedAt() time.Time     { return r.createdAt }

// NewItems is nil for cancel requests.
func (r *Request) NewItems() order.Items {
	return r.newItems.Clone()
}

// NewTotalAmount is nil for cancel requests.
func (r *Request) NewTotalAmount() *decimal.Decimal {
	if r.newTotalAmount == nil {
		return nil
	}
	total := *r.newTotalAmount
	return &total
}

func (r *Request) ReviewedBy() *kernel.UUID {
	if r.reviewedBy == nil {
		return nil
	}
	by := *r.reviewedBy
	return &by
}

func (r *Request) ReviewedAt() *time.Time {
	if r.reviewedAt == nil {
		return nil
	}
	at := *r.reviewedAt
	return &at
}

func (r *Request) IsPending() bool {
	return r.status == StatusPending
}

// Review records the single administrator decision. A request that is no
// longer pending yields a ConflictError and is left untouched.
func (r *Request) Review(decision Status, reviewer kernel.UUID, response string, at time.Time) error {
	if !r.IsPending() {
		return errs.NewConflictError(ReasonAlreadyReviewed,
			fmt.Sprintf("modification request %s is already %s", r.id, r.status))
	}
	if !decision.IsDecision() {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a review decision", decision))
	}
	if err := reviewer.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("reviewedBy", err)
	}

	reviewedAt := at.UTC()
	r.status = decision
	r.adminResponse = strings.TrimSpace(response)
	r.reviewedBy = &reviewer
	r.reviewedAt = &reviewedAt
	return nil
}

func setRequiredID(dst *kernel.UUID, name string, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(name, err)
	}
	*dst = id
	return nil
}

func (r *Request) setReason(reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}
	if len(reason) > maxReasonLength {
		return errs.NewValueIsOutOfRangeError("reason length", len(reason), 1, maxReasonLength)
	}
	r.reason = reason
	return nil
}

func (r *Request) setChange(modType Type, newItems order.Items) error {
	switch modType {
	case TypeItems:
		items, err := order.NewItems(newItems...)
		if err != nil {
			return errs.NewValueIsInvalidErrorWithCause("newItems", err)
		}
		total := items.Total()
		r.newItems = items
		r.newTotalAmount = &total
	case TypeCancel:
		if len(newItems) > 0 {
			return errs.NewValueIsInvalidErrorWithCause("newItems",
				errors.New("cancel requests must not carry items"))
		}
	case TypeUnknown:
		return errs.NewValueIsInvalidError("modificationType")
	default:
		return errs.NewValueIsInvalidError("modificationType")
	}
	r.modType = modType
	return nil
}
