package reconciliationrepo

import (
	"context"
	"errors"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/reconciliation"
	"checkout/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormReconciliationRepository implements ports.ReconciliationRepository.
type GormReconciliationRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormReconciliationRepository(db *gorm.DB, tracker aggregateTracker) *GormReconciliationRepository {
	return &GormReconciliationRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts a pending reconciliation. The unique indexes on both sides turn
// a concurrent duplicate into an AlreadyReconciled error.
func (r *GormReconciliationRepository) Add(ctx context.Context, rec *reconciliation.Reconciliation) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	dto := fromDomain(rec)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewAlreadyReconciledError("transaction or invoice", rec.TransactionID().String())
		}
		return err
	}

	r.tracker.TrackAggregate(rec.ID(), rec)
	return nil
}

// Update writes status, notes and resolution in a single statement.
func (r *GormReconciliationRepository) Update(ctx context.Context, rec *reconciliation.Reconciliation) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	dto := fromDomain(rec)
	result := r.db.WithContext(ctx).Model(&ReconciliationDTO{}).
		Where("id = ?", dto.ID).
		Select("status", "notes", "resolved_by", "resolved_at", "updated_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("reconciliation", rec.ID().String())
	}

	r.tracker.TrackAggregate(rec.ID(), rec)
	return nil
}

func (r *GormReconciliationRepository) Get(ctx context.Context, id kernel.UUID) (*reconciliation.Reconciliation, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, r.db, id)
}

func (r *GormReconciliationRepository) GetForUpdate(
	ctx context.Context,
	id kernel.UUID,
) (*reconciliation.Reconciliation, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, r.db.Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormReconciliationRepository) ExistsForTransaction(ctx context.Context, transactionID kernel.UUID) (bool, error) {
	return r.exists(ctx, "transaction_id = ?", transactionID)
}

func (r *GormReconciliationRepository) ExistsForInvoice(ctx context.Context, invoiceID kernel.UUID) (bool, error) {
	return r.exists(ctx, "invoice_id = ?", invoiceID)
}

func (r *GormReconciliationRepository) exists(ctx context.Context, query string, id kernel.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&ReconciliationDTO{}).Where(query, id.Raw()).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormReconciliationRepository) first(
	ctx context.Context,
	db *gorm.DB,
	id kernel.UUID,
) (*reconciliation.Reconciliation, error) {
	var dto ReconciliationDTO
	if err := db.WithContext(ctx).Where("id = ?", id.Raw()).First(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("reconciliation", id.String())
		}
		return nil, err
	}
	return toDomain(dto)
}
