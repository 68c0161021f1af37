package invoicerepo

import (
	"context"
	"errors"
	"fmt"

	"checkout/internal/adapters/out/postgres/sequence"
	"checkout/internal/core/domain/model/invoice"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormInvoiceRepository implements ports.InvoiceRepository using GORM.
type GormInvoiceRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormInvoiceRepository(db *gorm.DB, tracker aggregateTracker) *GormInvoiceRepository {
	return &GormInvoiceRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts a new invoice. A second invoice for the same order violates the
// unique index on order_id and is reported as a DuplicateInvoice error.
func (r *GormInvoiceRepository) Add(ctx context.Context, inv *invoice.Invoice) error {
	if err := inv.Validate(); err != nil {
		return err
	}

	dto := fromDomain(inv)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewDuplicateInvoiceError(inv.OrderID().String())
		}
		return err
	}

	r.tracker.TrackAggregate(inv.ID(), inv)
	return nil
}

func (r *GormInvoiceRepository) Update(ctx context.Context, inv *invoice.Invoice) error {
	if err := inv.Validate(); err != nil {
		return err
	}

	dto := fromDomain(inv)
	result := r.db.WithContext(ctx).Model(&InvoiceDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("id", "order_id", "customer_id", "number", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("invoice", inv.ID().String())
	}

	r.tracker.TrackAggregate(inv.ID(), inv)
	return nil
}

func (r *GormInvoiceRepository) Get(ctx context.Context, id kernel.UUID) (*invoice.Invoice, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, r.db, id)
}

// GetForUpdate reads the invoice with a row lock held until the surrounding
// transaction ends.
func (r *GormInvoiceRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*invoice.Invoice, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, r.db.Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormInvoiceRepository) ExistsForOrder(ctx context.Context, orderID kernel.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&InvoiceDTO{}).Where("order_id = ?", orderID.Raw()).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// NextNumber allocates the next invoice number, "F" followed by eight digits.
func (r *GormInvoiceRepository) NextNumber(ctx context.Context) (string, error) {
	value, err := sequence.Next(ctx, r.db, sequence.Invoices)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("F%08d", value), nil
}

// ListUnfinished returns invoices whose pipeline still has work to do: not yet
// sent to the authority, or without a rendered artifact. Invoices that failed
// maxAttempts times are left out; the rest come fewest attempts first, then
// least recently touched, so a failing invoice cannot hold a batch slot.
func (r *GormInvoiceRepository) ListUnfinished(ctx context.Context, maxAttempts, limit int) ([]kernel.UUID, error) {
	var raw []uuid.UUID
	err := r.db.WithContext(ctx).Model(&InvoiceDTO{}).
		Where("(status IN ? OR artifact IS NULL) AND attempts < ?",
			[]string{invoice.PendingIssue.String(), invoice.Issued.String()}, maxAttempts).
		Order("attempts, updated_at").
		Limit(limit).
		Pluck("id", &raw).Error
	if err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(raw))
	for _, id := range raw {
		parsed, parseErr := kernel.UUIDFromBytes(id[:])
		if parseErr != nil {
			return nil, parseErr
		}
		ids = append(ids, parsed)
	}
	return ids, nil
}

func (r *GormInvoiceRepository) first(ctx context.Context, db *gorm.DB, id kernel.UUID) (*invoice.Invoice, error) {
	var dto InvoiceDTO
	if err := db.WithContext(ctx).Where("id = ?", id.Raw()).First(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("invoice", id.String())
		}
		return nil, err
	}
	return toDomain(dto)
}
