package orderrepo

import (
	"context"
	"errors"
	"fmt"

	"checkout/internal/adapters/out/postgres/sequence"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/order"
	"checkout/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts the order with its items and change log.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return fmt.Errorf("add order %s: %w", aggregate.Number(), err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update stores status, timestamps and totals and appends change log entries
// not stored yet. Items are immutable after creation.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	result := db.Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit(clause.Associations, "id", "number", "owner_id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	if len(dto.Changes) > 0 {
		err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&dto.Changes).Error
		if err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, r.db, "order", id.String(), "id = ?", id.Raw())
}

// GetForUpdate reads the order with a row lock held until the surrounding
// transaction ends.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	locked := r.db.Clauses(clause.Locking{Strength: "UPDATE"})
	return r.first(ctx, locked, "order", id.String(), "id = ?", id.Raw())
}

func (r *GormOrderRepository) GetByNumber(ctx context.Context, number string) (*order.Order, error) {
	if number == "" {
		return nil, errs.NewValueIsRequiredError("order number")
	}
	return r.first(ctx, r.db, "order", number, "number = ?", number)
}

// NextNumber allocates the next order number, formatted as eight digits.
func (r *GormOrderRepository) NextNumber(ctx context.Context) (string, error) {
	value, err := sequence.Next(ctx, r.db, sequence.Orders)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%08d", value), nil
}

func (r *GormOrderRepository) first(
	ctx context.Context,
	db *gorm.DB,
	name, key string,
	query string,
	args ...any,
) (*order.Order, error) {
	var dto OrderDTO
	err := db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("Changes", func(db *gorm.DB) *gorm.DB { return db.Order("changed_at") }).
		Where(query, args...).
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(name, key)
		}
		return nil, err
	}

	return toDomain(dto)
}
