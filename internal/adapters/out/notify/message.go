// Package notify delivers workflow notifications. LogNotifier writes them
// to the structured log; RedisNotifier publishes them on Redis pub/sub for
// whatever pushes them on to browsers or mail.
package notify

import (
	"time"

	"orderflow/internal/core/domain/model/notification"
)

// Message is the wire form of a notification.
type Message struct {
	ID             string               `json:"id"`
	Event          string               `json:"event"`
	Channel        string               `json:"channel"`
	RecipientID    string               `json:"recipientId,omitempty"`
	OrderID        string               `json:"orderId"`
	ModificationID string               `json:"modificationId,omitempty"`
	Payload        notification.Payload `json:"payload"`
	CreatedAt      time.Time            `json:"createdAt"`
}

func NewMessage(n *notification.Notification) Message {
	msg := Message{
		ID:        n.ID().String(),
		Event:     string(n.EventType()),
		Channel:   string(n.Channel()),
		OrderID:   n.OrderID().String(),
		Payload:   n.Payload(),
		CreatedAt: n.CreatedAt(),
	}
	if r := n.RecipientID(); r != nil {
		msg.RecipientID = r.String()
	}
	if m := n.ModificationID(); m != nil {
		msg.ModificationID = m.String()
	}
	return msg
}
