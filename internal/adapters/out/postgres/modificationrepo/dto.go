// Package modificationrepo persists modification requests. Rows are never
// deleted: resolved requests are the order's audit trail.
package modificationrepo

import (
	"time"

	"orderflow/internal/adapters/out/postgres/lineitems"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/modification"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PendingPerOrderIndex is the partial unique index on order_id over pending rows.
const PendingPerOrderIndex = "uq_modification_requests_pending_per_order"

// RequestDTO is the modification_requests row. Cancel requests store an
// empty items document and a NULL total.
type RequestDTO struct {
	ID               uuid.UUID           `gorm:"type:uuid;primaryKey"`
	OrderID          uuid.UUID           `gorm:"type:uuid;not null;index"`
	RequestedBy      uuid.UUID           `gorm:"type:uuid;not null"`
	ModificationType string              `gorm:"type:varchar(16);not null"`
	NewItems         lineitems.Column    `gorm:"not null"`
	NewTotalAmount   decimal.NullDecimal `gorm:"type:numeric"`
	Reason           string              `gorm:"type:text;not null"`
	Status           string              `gorm:"type:varchar(16);not null;index"`
	AdminResponse    string              `gorm:"type:text;not null;default:''"`
	ReviewedBy       *uuid.UUID          `gorm:"type:uuid"`
	ReviewedAt       *time.Time
	CreatedAt        time.Time `gorm:"not null;index"`
}

func (RequestDTO) TableName() string {
	return "modification_requests"
}

var reviewColumns = []string{"status", "admin_response", "reviewed_by", "reviewed_at"}

func fromDomain(r *modification.Request) RequestDTO {
	dto := RequestDTO{
		ID:               r.ID().Raw(),
		OrderID:          r.OrderID().Raw(),
		RequestedBy:      r.RequestedBy().Raw(),
		ModificationType: r.Type().String(),
		NewItems:         lineitems.FromDomain(r.NewItems()),
		Reason:           r.Reason(),
		Status:           r.Status().String(),
		AdminResponse:    r.AdminResponse(),
		ReviewedAt:       r.ReviewedAt(),
		CreatedAt:        r.CreatedAt(),
	}

	if total := r.NewTotalAmount(); total != nil {
		dto.NewTotalAmount = decimal.NewNullDecimal(*total)
	}

	if by := r.ReviewedBy(); by != nil {
		raw := by.Raw()
		dto.ReviewedBy = &raw
	}

	return dto
}

func toDomain(dto RequestDTO) (*modification.Request, error) {
	id, err := kernel.UUIDFromRaw(dto.ID)
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromRaw(dto.OrderID)
	if err != nil {
		return nil, err
	}

	requestedBy, err := kernel.UUIDFromRaw(dto.RequestedBy)
	if err != nil {
		return nil, err
	}

	modType, err := modification.ParseType(dto.ModificationType)
	if err != nil {
		return nil, err
	}

	status, err := modification.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	items, err := lineitems.ToDomain(dto.NewItems)
	if err != nil {
		return nil, err
	}

	var total *decimal.Decimal
	if dto.NewTotalAmount.Valid {
		total = &dto.NewTotalAmount.Decimal
	}

	var reviewedBy *kernel.UUID
	if dto.ReviewedBy != nil {
		by, byErr := kernel.UUIDFromRaw(*dto.ReviewedBy)
		if byErr != nil {
			return nil, byErr
		}
		reviewedBy = &by
	}

	return modification.RestoreRequest(
		id, orderID, requestedBy,
		modType, items, total,
		dto.Reason, status, dto.AdminResponse,
		reviewedBy, dto.ReviewedAt, dto.CreatedAt,
	)
}
