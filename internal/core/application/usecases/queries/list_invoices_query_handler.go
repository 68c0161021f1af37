package queries

import (
	"context"
	"time"

	"checkout/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ListInvoicesQueryHandler struct {
	db *gorm.DB
}

func NewListInvoicesQueryHandler(db *gorm.DB) ListInvoicesQueryHandler {
	return ListInvoicesQueryHandler{db: db}
}

type invoiceSummaryRow struct {
	ID          uuid.UUID
	Number      string
	OrderNumber string
	Status      string
	Net         decimal.Decimal
	Tax         decimal.Decimal
	Total       decimal.Decimal
	TrackingID  string
	HasArtifact bool
	IssuedAt    *time.Time
	CreatedAt   time.Time
}

// Handle shows accountants and administrators every invoice; other actors see
// the invoices issued to them. The PDF itself is not loaded.
func (h ListInvoicesQueryHandler) Handle(ctx context.Context, query ListInvoicesQuery) (InvoicePage, error) {
	if err := query.Validate(); err != nil {
		return InvoicePage{}, err
	}

	scope := h.db.WithContext(ctx).
		Table("invoices i").
		Joins("JOIN orders o ON o.id = i.order_id")
	if status := query.Status(); status != nil {
		scope = scope.Where("i.status = ?", status.String())
	}
	if number := query.OrderNumber(); number != "" {
		scope = scope.Where("o.number = ?", number)
	}
	if actor := query.Actor(); !actor.Can(ledgerCapabilities...) {
		scope = scope.Where("i.customer_id = ?", actor.ID().Raw())
	}

	var total int64
	if err := scope.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return InvoicePage{}, err
	}

	var rows []invoiceSummaryRow
	err := scope.Session(&gorm.Session{}).
		Select(`i.id, i.number, o.number AS order_number, i.status, i.net, i.tax, i.total,
			i.tracking_id, i.artifact IS NOT NULL AS has_artifact, i.issued_at, i.created_at`).
		Order("i.created_at DESC, i.number DESC").
		Limit(query.PageSize()).
		Offset(offset(query.Page(), query.PageSize())).
		Scan(&rows).Error
	if err != nil {
		return InvoicePage{}, err
	}

	items := make([]InvoiceSummary, 0, len(rows))
	for _, row := range rows {
		id, idErr := kernel.UUIDFromBytes(row.ID[:])
		if idErr != nil {
			return InvoicePage{}, idErr
		}
		items = append(items, InvoiceSummary{
			ID:          id,
			Number:      row.Number,
			OrderNumber: row.OrderNumber,
			Status:      row.Status,
			Net:         row.Net,
			Tax:         row.Tax,
			Total:       row.Total,
			TrackingID:  row.TrackingID,
			HasArtifact: row.HasArtifact,
			IssuedAt:    row.IssuedAt,
			CreatedAt:   row.CreatedAt,
		})
	}

	return InvoicePage{
		Items:    items,
		Total:    total,
		Page:     query.Page(),
		PageSize: query.PageSize(),
	}, nil
}
