package transactionrepo

import (
	"context"
	"errors"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/payment"
	"checkout/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTransactionRepository implements ports.TransactionRepository using GORM.
type GormTransactionRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormTransactionRepository(db *gorm.DB, tracker aggregateTracker) *GormTransactionRepository {
	return &GormTransactionRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormTransactionRepository) Add(ctx context.Context, tx *payment.Transaction) error {
	if err := tx.Validate(); err != nil {
		return err
	}

	dto := fromDomain(tx)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewValueIsInvalidErrorWithCause("preference id", err)
		}
		return err
	}

	r.tracker.TrackAggregate(tx.ID(), tx)
	return nil
}

func (r *GormTransactionRepository) Update(ctx context.Context, tx *payment.Transaction) error {
	if err := tx.Validate(); err != nil {
		return err
	}

	dto := fromDomain(tx)
	result := r.db.WithContext(ctx).Model(&TransactionDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("id", "order_id", "preference_id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("payment transaction", tx.ID().String())
	}

	r.tracker.TrackAggregate(tx.ID(), tx)
	return nil
}

func (r *GormTransactionRepository) Get(ctx context.Context, id kernel.UUID) (*payment.Transaction, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, r.db, "payment transaction", id.String(), "id = ?", id.Raw())
}

func (r *GormTransactionRepository) GetByPreferenceID(
	ctx context.Context,
	preferenceID string,
) (*payment.Transaction, error) {
	return r.first(ctx, r.db, "preference", preferenceID, "preference_id = ?", preferenceID)
}

// GetByPreferenceIDForUpdate reads the transaction with a row lock held until
// the surrounding transaction ends.
func (r *GormTransactionRepository) GetByPreferenceIDForUpdate(
	ctx context.Context,
	preferenceID string,
) (*payment.Transaction, error) {
	locked := r.db.Clauses(clause.Locking{Strength: "UPDATE"})
	return r.first(ctx, locked, "preference", preferenceID, "preference_id = ?", preferenceID)
}

func (r *GormTransactionRepository) first(
	ctx context.Context,
	db *gorm.DB,
	name, key string,
	query string,
	args ...any,
) (*payment.Transaction, error) {
	var dto TransactionDTO
	if err := db.WithContext(ctx).Where(query, args...).First(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(name, key)
		}
		return nil, err
	}
	return toDomain(dto)
}
