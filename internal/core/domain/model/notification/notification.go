// Package notification describes the messages the workflow emits to the
// other party of an order: administrators when a client acts, the client
// when an administrator acts.
package notification

import (
	"errors"
	"fmt"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/modification"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"
)

type EventType string

const (
	EventModificationRequested EventType = "modification_requested"
	EventModificationApproved  EventType = "modification_approved"
	EventModificationRejected  EventType = "modification_rejected"
	EventOrderCancelled        EventType = "order_cancelled"
)

func ParseEventType(s string) (EventType, error) {
	switch e := EventType(s); e {
	case EventModificationRequested, EventModificationApproved, EventModificationRejected, EventOrderCancelled:
		return e, nil
	}
	return "", errs.NewValueIsInvalidErrorWithCause("eventType", fmt.Errorf("%q is not a known event", s))
}

// Channel is the audience of a notification. Admin notifications go to
// the shared administrator channel; client notifications name a user.
type Channel string

const (
	ChannelAdmin  Channel = "admin"
	ChannelClient Channel = "client"
)

// Payload is the event body handed to notifiers.
type Payload struct {
	ActorID          string `json:"actorId,omitempty"`
	ModificationType string `json:"modificationType,omitempty"`
	Decision         string `json:"decision,omitempty"`
	Reason           string `json:"reason,omitempty"`
	AdminResponse    string `json:"adminResponse,omitempty"`
}

var ErrNotificationIsNotConstructed = errors.New("Notification must be created via a constructor")

type Notification struct {
	id             kernel.UUID
	eventType      EventType
	channel        Channel
	recipientID    *kernel.UUID
	orderID        kernel.UUID
	modificationID *kernel.UUID
	payload        Payload
	attempts       int
	createdAt      time.Time

	isConstructed bool
}

// ModificationRequested is sent to administrators when a client files a request.
func ModificationRequested(r *modification.Request, at time.Time) *Notification {
	modID := r.ID()
	return &Notification{
		id:             kernel.NewUUID(),
		eventType:      EventModificationRequested,
		channel:        ChannelAdmin,
		orderID:        r.OrderID(),
		modificationID: &modID,
		payload: Payload{
			ActorID:          r.RequestedBy().String(),
			ModificationType: r.Type().String(),
			Reason:           r.Reason(),
		},
		createdAt:     at.UTC(),
		isConstructed: true,
	}
}

// ModificationReviewed is sent to the requester once the request is
// approved or rejected. r must already carry its decision.
func ModificationReviewed(r *modification.Request, at time.Time) (*Notification, error) {
	var event EventType
	switch r.Status() {
	case modification.StatusApproved:
		event = EventModificationApproved
	case modification.StatusRejected:
		event = EventModificationRejected
	case modification.StatusPending, modification.StatusUnknown:
		return nil, errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("request %s has not been reviewed", r.ID()))
	}

	modID, requester := r.ID(), r.RequestedBy()
	payload := Payload{
		ModificationType: r.Type().String(),
		Decision:         r.Status().String(),
		Reason:           r.Reason(),
		AdminResponse:    r.AdminResponse(),
	}
	if by := r.ReviewedBy(); by != nil {
		payload.ActorID = by.String()
	}

	return &Notification{
		id:             kernel.NewUUID(),
		eventType:      event,
		channel:        ChannelClient,
		recipientID:    &requester,
		orderID:        r.OrderID(),
		modificationID: &modID,
		payload:        payload,
		createdAt:      at.UTC(),
		isConstructed:  true,
	}, nil
}

// OrderCancelled notifies the party that did not cancel: administrators
// when the client cancels, the client when an administrator does.
func OrderCancelled(o *order.Order, actor kernel.Identity, at time.Time) *Notification {
	n := &Notification{
		id:        kernel.NewUUID(),
		eventType: EventOrderCancelled,
		channel:   ChannelAdmin,
		orderID:   o.ID(),
		payload: Payload{
			ActorID: actor.UserID().String(),
		},
		createdAt:     at.UTC(),
		isConstructed: true,
	}
	if c := o.Cancellation(); c != nil {
		n.payload.Reason = c.Reason()
	}
	if actor.IsAdmin() {
		client := o.ClientID()
		n.channel = ChannelClient
		n.recipientID = &client
	}
	return n
}

// Restore rebuilds a queued notification read back from the outbox.
func Restore(
	id kernel.UUID,
	eventType EventType,
	channel Channel,
	recipientID *kernel.UUID,
	orderID kernel.UUID,
	modificationID *kernel.UUID,
	payload Payload,
	attempts int,
	createdAt time.Time,
) (*Notification, error) {
	if err := errors.Join(id.Validate(), orderID.Validate()); err != nil {
		return nil, err
	}
	if _, err := ParseEventType(string(eventType)); err != nil {
		return nil, err
	}
	if channel != ChannelAdmin && channel != ChannelClient {
		return nil, errs.NewValueIsInvalidError("channel")
	}
	if channel == ChannelClient && recipientID == nil {
		return nil, errs.NewValueIsRequiredError("recipientId")
	}
	return &Notification{
		id:             id,
		eventType:      eventType,
		channel:        channel,
		recipientID:    recipientID,
		orderID:        orderID,
		modificationID: modificationID,
		payload:        payload,
		attempts:       attempts,
		createdAt:      createdAt,
		isConstructed:  true,
	}, nil
}

func (n *Notification) Validate() error {
	if n == nil || !n.isConstructed {
		return ErrNotificationIsNotConstructed
	}
	return nil
}

func (n *Notification) ID() kernel.UUID              { return n.id }
func (n *Notification) EventType() EventType         { return n.eventType }
func (n *Notification) Channel() Channel             { return n.channel }
func (n *Notification) RecipientID() *kernel.UUID    { return n.recipientID }
func (n *Notification) OrderID() kernel.UUID         { return n.orderID }
func (n *Notification) ModificationID() *kernel.UUID { return n.modificationID }
func (n *Notification) Payload() Payload             { return n.payload }
func (n *Notification) Attempts() int                { return n.attempts }
func (n *Notification) CreatedAt() time.Time         { return n.createdAt }
