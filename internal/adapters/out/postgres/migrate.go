package postgres

import (
	"context"

	"orderflow/internal/adapters/out/postgres/modificationrepo"
	"orderflow/internal/adapters/out/postgres/orderrepo"
	"orderflow/internal/adapters/out/postgres/outboxrepo"

	"gorm.io/gorm"
)

// Migrate creates or updates the workflow tables and the partial unique
// index that allows at most one pending request per order.
func Migrate(ctx context.Context, db *gorm.DB) error {
	db = db.WithContext(ctx)

	if err := db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&modificationrepo.RequestDTO{},
		&outboxrepo.NotificationDTO{},
	); err != nil {
		return err
	}

	return db.Exec(
		"CREATE UNIQUE INDEX IF NOT EXISTS " + modificationrepo.PendingPerOrderIndex +
			" ON modification_requests (order_id) WHERE status = 'pending'",
	).Error
}
