package queries

import (
	"context"
	"time"

	"checkout/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ListOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

type orderSummaryRow struct {
	ID           uuid.UUID
	Number       string
	OwnerID      uuid.UUID
	DeliveryType string
	ContactName  string
	Status       string
	Total        decimal.Decimal
	CreatedAt    time.Time
}

// Handle restricts customers to their own orders.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) (OrderPage, error) {
	if err := query.Validate(); err != nil {
		return OrderPage{}, err
	}

	scope := h.db.WithContext(ctx).Table("orders")
	if status := query.Status(); status != nil {
		scope = scope.Where("status = ?", status.String())
	}
	if actor := query.Actor(); !actor.Can(staffCapabilities...) {
		scope = scope.Where("owner_id = ?", actor.ID().Raw())
	}

	var total int64
	if err := scope.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return OrderPage{}, err
	}

	var rows []orderSummaryRow
	err := scope.Session(&gorm.Session{}).
		Select("id, number, owner_id, delivery_type, contact_name, status, total, created_at").
		Order("created_at DESC, number DESC").
		Limit(query.PageSize()).
		Offset(offset(query.Page(), query.PageSize())).
		Scan(&rows).Error
	if err != nil {
		return OrderPage{}, err
	}

	items := make([]OrderSummary, 0, len(rows))
	for _, row := range rows {
		id, idErr := kernel.UUIDFromBytes(row.ID[:])
		if idErr != nil {
			return OrderPage{}, idErr
		}
		ownerID, idErr := kernel.UUIDFromBytes(row.OwnerID[:])
		if idErr != nil {
			return OrderPage{}, idErr
		}
		items = append(items, OrderSummary{
			ID:           id,
			Number:       row.Number,
			OwnerID:      ownerID,
			DeliveryType: row.DeliveryType,
			ContactName:  row.ContactName,
			Status:       row.Status,
			Total:        row.Total,
			CreatedAt:    row.CreatedAt,
		})
	}

	return OrderPage{
		Items:    items,
		Total:    total,
		Page:     query.Page(),
		PageSize: query.PageSize(),
	}, nil
}
