package queries

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"

	"gorm.io/gorm"
)

type ListModificationsQueryHandler struct {
	db *gorm.DB
}

func NewListModificationsQueryHandler(db *gorm.DB) ListModificationsQueryHandler {
	return ListModificationsQueryHandler{db: db}
}

// Handle returns ForbiddenError unless the viewer is an administrator.
func (h ListModificationsQueryHandler) Handle(
	ctx context.Context,
	query ListModificationsQuery,
) ([]ModificationView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if !query.Viewer().IsAdmin() {
		return nil, errs.NewForbiddenError(kernel.ReasonAdminOnly, "only administrators list modification requests")
	}

	sqlQuery := `SELECT ` + modificationColumns + ` FROM modification_requests`
	var args []any
	if status := query.Status(); status != nil {
		sqlQuery += ` WHERE status = ?`
		args = append(args, status.String())
	}
	sqlQuery += ` ORDER BY created_at DESC, id`

	rows, err := h.db.WithContext(ctx).Raw(sqlQuery, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanModifications(rows)
}
