// Package outboxrepo is the transactional notification outbox. Rows are
// written in the same transaction as the workflow change they describe and
// claimed later by the relay.
package outboxrepo

import (
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/notification"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type NotificationDTO struct {
	ID             uuid.UUID                                `gorm:"type:uuid;primaryKey"`
	EventType      string                                   `gorm:"type:varchar(48);not null"`
	Channel        string                                   `gorm:"type:varchar(16);not null"`
	RecipientID    *uuid.UUID                               `gorm:"type:uuid"`
	OrderID        uuid.UUID                                `gorm:"type:uuid;not null;index"`
	ModificationID *uuid.UUID                               `gorm:"type:uuid"`
	Payload        datatypes.JSONType[notification.Payload] `gorm:"not null"`
	Attempts       int                                      `gorm:"not null;default:0"`
	LastError      string                                   `gorm:"type:text;not null;default:''"`
	CreatedAt      time.Time                                `gorm:"not null;index"`
	DeliveredAt    *time.Time
}

func (NotificationDTO) TableName() string {
	return "notification_outbox"
}

func fromDomain(n *notification.Notification) NotificationDTO {
	return NotificationDTO{
		ID:             n.ID().Raw(),
		EventType:      string(n.EventType()),
		Channel:        string(n.Channel()),
		RecipientID:    rawOrNil(n.RecipientID()),
		OrderID:        n.OrderID().Raw(),
		ModificationID: rawOrNil(n.ModificationID()),
		Payload:        datatypes.NewJSONType(n.Payload()),
		Attempts:       n.Attempts(),
		CreatedAt:      n.CreatedAt(),
	}
}

func toDomain(dto NotificationDTO) (*notification.Notification, error) {
	id, err := kernel.UUIDFromRaw(dto.ID)
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromRaw(dto.OrderID)
	if err != nil {
		return nil, err
	}

	recipientID, err := fromRawOrNil(dto.RecipientID)
	if err != nil {
		return nil, err
	}

	modificationID, err := fromRawOrNil(dto.ModificationID)
	if err != nil {
		return nil, err
	}

	return notification.Restore(
		id,
		notification.EventType(dto.EventType),
		notification.Channel(dto.Channel),
		recipientID,
		orderID,
		modificationID,
		dto.Payload.Data(),
		dto.Attempts,
		dto.CreatedAt,
	)
}

func rawOrNil(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Raw()
	return &raw
}

func fromRawOrNil(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromRaw(*raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
