// Package queries is the read side of the order workflow. Handlers read
// straight from the database with SQL and return flat views; they never load
// aggregates or take locks.
package queries

import (
	"database/sql"
	"time"

	"orderflow/internal/adapters/out/postgres/lineitems"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/modification"
	"orderflow/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ModificationView is one modification request as shown to its readers.
// NewItems and NewTotalAmount are set for items requests only.
type ModificationView struct {
	ID             kernel.UUID
	OrderID        kernel.UUID
	RequestedBy    kernel.UUID
	Type           modification.Type
	NewItems       order.Items
	NewTotalAmount *decimal.Decimal
	Reason         string
	Status         modification.Status
	AdminResponse  string
	ReviewedBy     *kernel.UUID
	ReviewedAt     *time.Time
	CreatedAt      time.Time
}

const modificationColumns = `
	id,
	order_id,
	requested_by,
	modification_type,
	new_items,
	new_total_amount,
	reason,
	status,
	admin_response,
	reviewed_by,
	reviewed_at,
	created_at`

func scanModifications(rows *sql.Rows) ([]ModificationView, error) {
	views := make([]ModificationView, 0)

	for rows.Next() {
		var (
			view                     ModificationView
			id, orderID, requestedBy uuid.UUID
			reviewedBy               uuid.NullUUID
			reviewedAt               sql.NullTime
			modType, status          string
			items                    lineitems.Column
			total                    decimal.NullDecimal
		)

		err := rows.Scan(
			&id,
			&orderID,
			&requestedBy,
			&modType,
			&items,
			&total,
			&view.Reason,
			&status,
			&view.AdminResponse,
			&reviewedBy,
			&reviewedAt,
			&view.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		if view.ID, err = kernel.UUIDFromRaw(id); err != nil {
			return nil, err
		}
		if view.OrderID, err = kernel.UUIDFromRaw(orderID); err != nil {
			return nil, err
		}
		if view.RequestedBy, err = kernel.UUIDFromRaw(requestedBy); err != nil {
			return nil, err
		}
		if view.Type, err = modification.ParseType(modType); err != nil {
			return nil, err
		}
		if view.Status, err = modification.ParseStatus(status); err != nil {
			return nil, err
		}
		if view.NewItems, err = lineitems.ToDomain(items); err != nil {
			return nil, err
		}

		if total.Valid {
			amount := total.Decimal
			view.NewTotalAmount = &amount
		}
		if reviewedBy.Valid {
			by, byErr := kernel.UUIDFromRaw(reviewedBy.UUID)
			if byErr != nil {
				return nil, byErr
			}
			view.ReviewedBy = &by
		}
		if reviewedAt.Valid {
			at := reviewedAt.Time
			view.ReviewedAt = &at
		}

		views = append(views, view)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return views, nil
}
