package modificationrepo

import (
	"context"
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/modification"
	"orderflow/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const uniqueViolation = "23505"

var ErrRequestNotReviewed = errors.New("only reviewed requests can be written back")

// GormModificationRepository implements ports.ModificationRepository using GORM.
type GormModificationRepository struct {
	db *gorm.DB
}

func NewGormModificationRepository(db *gorm.DB) *GormModificationRepository {
	return &GormModificationRepository{db: db}
}

// Add inserts a pending request. A concurrent pending request for the same
// order trips the partial unique index and is reported as a conflict.
func (r *GormModificationRepository) Add(ctx context.Context, request *modification.Request) error {
	if err := request.Validate(); err != nil {
		return err
	}

	dto := fromDomain(request)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if isUniqueViolation(err) {
			return errs.NewConflictErrorWithCause(
				modification.ReasonPendingExists,
				"order "+request.OrderID().String()+" already has a pending modification request",
				err,
			)
		}
		return err
	}
	return nil
}

// Update writes the review columns, but only while the stored row is still
// pending. A row reviewed in the meantime yields a conflict.
func (r *GormModificationRepository) Update(ctx context.Context, request *modification.Request) error {
	if err := request.Validate(); err != nil {
		return err
	}
	if request.IsPending() {
		return errs.NewValueIsInvalidErrorWithCause("status", ErrRequestNotReviewed)
	}

	dto := fromDomain(request)
	result := r.db.WithContext(ctx).
		Model(&RequestDTO{}).
		Where("id = ? AND status = ?", dto.ID, modification.StatusPending.String()).
		Select(reviewColumns).
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&RequestDTO{}).Where("id = ?", dto.ID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("modification", request.ID().String())
	}
	return errs.NewConflictError(
		modification.ReasonAlreadyReviewed,
		"modification request "+request.ID().String()+" has already been reviewed",
	)
}

func (r *GormModificationRepository) Get(ctx context.Context, id kernel.UUID) (*modification.Request, error) {
	return r.first(r.db.WithContext(ctx), "modification", "id = ?", id)
}

// GetForUpdate row-locks the request until the transaction ends.
func (r *GormModificationRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*modification.Request, error) {
	return r.first(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), "modification", "id = ?", id)
}

func (r *GormModificationRepository) FindPendingByOrder(
	ctx context.Context,
	orderID kernel.UUID,
) (*modification.Request, error) {
	return r.first(
		r.db.WithContext(ctx).Where("status = ?", modification.StatusPending.String()),
		"pending modification of order", "order_id = ?", orderID,
	)
}

func (r *GormModificationRepository) first(
	db *gorm.DB,
	param, condition string,
	id kernel.UUID,
) (*modification.Request, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RequestDTO
	if err := db.First(&dto, condition, id.Raw()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(param, id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
