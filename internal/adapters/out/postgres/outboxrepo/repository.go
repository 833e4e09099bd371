package outboxrepo

import (
	"context"
	"time"
	"unicode/utf8"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/notification"
	"orderflow/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NotifyChannel is the LISTEN/NOTIFY channel signalled for every enqueued row.
const NotifyChannel = "notification_outbox"

const maxLastErrorLength = 1000

// GormNotificationOutbox implements ports.NotificationOutbox using GORM.
type GormNotificationOutbox struct {
	db *gorm.DB
}

func NewGormNotificationOutbox(db *gorm.DB) *GormNotificationOutbox {
	return &GormNotificationOutbox{db: db}
}

// Enqueue stores n and signals NotifyChannel. Postgres delivers the signal
// only when the surrounding transaction commits.
func (o *GormNotificationOutbox) Enqueue(ctx context.Context, n *notification.Notification) error {
	if err := n.Validate(); err != nil {
		return err
	}

	dto := fromDomain(n)
	db := o.db.WithContext(ctx)
	if err := db.Create(&dto).Error; err != nil {
		return err
	}

	return db.Exec("SELECT pg_notify(?, ?)", NotifyChannel, n.ID().String()).Error
}

// ClaimPending must run inside a transaction: the row locks it takes are
// what keeps two relays from delivering the same row concurrently.
func (o *GormNotificationOutbox) ClaimPending(
	ctx context.Context,
	limit, maxAttempts int,
) ([]*notification.Notification, error) {
	if limit <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("limit", limit, 1, "unbounded")
	}

	var dtos []NotificationDTO
	err := o.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("delivered_at IS NULL AND attempts < ?", maxAttempts).
		Order("created_at, id").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	batch := make([]*notification.Notification, 0, len(dtos))
	for _, dto := range dtos {
		n, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		batch = append(batch, n)
	}
	return batch, nil
}

func (o *GormNotificationOutbox) MarkDelivered(ctx context.Context, id kernel.UUID, at time.Time) error {
	result := o.db.WithContext(ctx).
		Model(&NotificationDTO{}).
		Where("id = ?", id.Raw()).
		Update("delivered_at", at.UTC())
	return rowsAffected(result, id)
}

func (o *GormNotificationOutbox) MarkFailed(ctx context.Context, id kernel.UUID, cause error) error {
	lastError := "unknown error"
	if cause != nil {
		lastError = truncate(cause.Error(), maxLastErrorLength)
	}

	result := o.db.WithContext(ctx).
		Model(&NotificationDTO{}).
		Where("id = ?", id.Raw()).
		Updates(map[string]any{
			"attempts":   gorm.Expr("attempts + 1"),
			"last_error": lastError,
		})
	return rowsAffected(result, id)
}

func rowsAffected(result *gorm.DB, id kernel.UUID) error {
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("notification", id.String())
	}
	return nil
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	s = s[:limit]
	for !utf8.ValidString(s) {
		s = s[:len(s)-1]
	}
	return s
}
