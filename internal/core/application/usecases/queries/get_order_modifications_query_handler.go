package queries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetOrderModificationsQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderModificationsQueryHandler(db *gorm.DB) GetOrderModificationsQueryHandler {
	return GetOrderModificationsQueryHandler{db: db}
}

// Handle returns ObjectNotFoundError for an unknown order and ForbiddenError
// for a client who does not own it. An order without requests yields an
// empty list.
func (h GetOrderModificationsQueryHandler) Handle(
	ctx context.Context,
	query GetOrderModificationsQuery,
) ([]ModificationView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)

	var clientID uuid.UUID
	err := db.Raw(`SELECT client_id FROM orders WHERE id = ?`, query.OrderID().Raw()).Row().Scan(&clientID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}
	if err != nil {
		return nil, err
	}

	viewer := query.Viewer()
	if !viewer.IsAdmin() && viewer.UserID().Raw() != clientID {
		return nil, errs.NewForbiddenError(kernel.ReasonNotOrderOwner,
			fmt.Sprintf("order %s does not belong to the caller", query.OrderID()))
	}

	rows, err := db.Raw(`
		SELECT `+modificationColumns+`
		FROM modification_requests
		WHERE order_id = ?
		ORDER BY created_at DESC, id
	`, query.OrderID().Raw()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanModifications(rows)
}
