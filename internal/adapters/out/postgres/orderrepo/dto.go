// Package orderrepo persists order aggregates in the orders table.
package orderrepo

import (
	"time"

	"orderflow/internal/adapters/out/postgres/lineitems"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the orders row. Cancellation columns are set together or not at all.
type OrderDTO struct {
	ID                 uuid.UUID        `gorm:"type:uuid;primaryKey"`
	ClientID           uuid.UUID        `gorm:"type:uuid;not null;index"`
	LTAID              *uuid.UUID       `gorm:"column:lta_id;type:uuid"`
	Items              lineitems.Column `gorm:"not null"`
	TotalAmount        decimal.Decimal  `gorm:"type:numeric;not null"`
	Status             string           `gorm:"type:varchar(32);not null;index"`
	CancellationReason *string          `gorm:"type:text"`
	CancelledAt        *time.Time
	CancelledBy        *uuid.UUID `gorm:"type:uuid"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (OrderDTO) TableName() string {
	return "orders"
}

// statusColumns are written on every update of an existing order.
var statusColumns = []string{
	"status",
	"cancellation_reason", "cancelled_at", "cancelled_by",
	"updated_at",
}

// itemColumns are written only after the items were replaced, so stored
// documents and totals keep their exact bytes otherwise.
var itemColumns = []string{"items", "total_amount"}

func updatableColumns(o *order.Order) []string {
	if !o.ItemsChanged() {
		return statusColumns
	}
	return append(append([]string{}, itemColumns...), statusColumns...)
}

func fromDomain(o *order.Order) OrderDTO {
	dto := OrderDTO{
		ID:          o.ID().Raw(),
		ClientID:    o.ClientID().Raw(),
		Items:       lineitems.FromDomain(o.Items()),
		TotalAmount: o.TotalAmount(),
		Status:      o.Status().String(),
	}

	if lta := o.LTAID(); lta != nil {
		raw := lta.Raw()
		dto.LTAID = &raw
	}

	if c := o.Cancellation(); c != nil {
		reason, at, by := c.Reason(), c.At(), c.By().Raw()
		dto.CancellationReason = &reason
		dto.CancelledAt = &at
		dto.CancelledBy = &by
	}

	return dto
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromRaw(dto.ID)
	if err != nil {
		return nil, err
	}

	clientID, err := kernel.UUIDFromRaw(dto.ClientID)
	if err != nil {
		return nil, err
	}

	var ltaID *kernel.UUID
	if dto.LTAID != nil {
		lta, ltaErr := kernel.UUIDFromRaw(*dto.LTAID)
		if ltaErr != nil {
			return nil, ltaErr
		}
		ltaID = &lta
	}

	items, err := lineitems.ToDomain(dto.Items)
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	var cancellation *order.Cancellation
	if dto.CancellationReason != nil && dto.CancelledAt != nil && dto.CancelledBy != nil {
		by, byErr := kernel.UUIDFromRaw(*dto.CancelledBy)
		if byErr != nil {
			return nil, byErr
		}
		c, cErr := order.NewCancellation(*dto.CancellationReason, *dto.CancelledAt, by)
		if cErr != nil {
			return nil, cErr
		}
		cancellation = &c
	}

	return order.RestoreOrder(id, clientID, ltaID, items, dto.TotalAmount, status, cancellation)
}
