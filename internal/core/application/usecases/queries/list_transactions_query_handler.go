package queries

import (
	"context"
	"time"

	"checkout/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ListTransactionsQueryHandler struct {
	db *gorm.DB
}

func NewListTransactionsQueryHandler(db *gorm.DB) ListTransactionsQueryHandler {
	return ListTransactionsQueryHandler{db: db}
}

type transactionSummaryRow struct {
	ID            uuid.UUID
	OrderNumber   string
	PreferenceID  string
	PaymentID     string
	Status        string
	Amount        decimal.Decimal
	GatewayAmount decimal.NullDecimal
	SettledAt     *time.Time
	CreatedAt     time.Time
}

// Handle shows accountants and administrators every transaction; other actors
// see those of their own orders.
func (h ListTransactionsQueryHandler) Handle(ctx context.Context, query ListTransactionsQuery) (TransactionPage, error) {
	if err := query.Validate(); err != nil {
		return TransactionPage{}, err
	}

	scope := h.db.WithContext(ctx).
		Table("payment_transactions t").
		Joins("JOIN orders o ON o.id = t.order_id")
	if status := query.Status(); status != nil {
		scope = scope.Where("t.status = ?", status.String())
	}
	if number := query.OrderNumber(); number != "" {
		scope = scope.Where("o.number = ?", number)
	}
	if actor := query.Actor(); !actor.Can(ledgerCapabilities...) {
		scope = scope.Where("o.owner_id = ?", actor.ID().Raw())
	}

	var total int64
	if err := scope.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return TransactionPage{}, err
	}

	var rows []transactionSummaryRow
	err := scope.Session(&gorm.Session{}).
		Select(`t.id, o.number AS order_number, t.preference_id, t.payment_id, t.status,
			t.amount, t.gateway_amount, t.settled_at, t.created_at`).
		Order("t.created_at DESC, t.id").
		Limit(query.PageSize()).
		Offset(offset(query.Page(), query.PageSize())).
		Scan(&rows).Error
	if err != nil {
		return TransactionPage{}, err
	}

	items := make([]TransactionSummary, 0, len(rows))
	for _, row := range rows {
		id, idErr := kernel.UUIDFromBytes(row.ID[:])
		if idErr != nil {
			return TransactionPage{}, idErr
		}
		item := TransactionSummary{
			ID:           id,
			OrderNumber:  row.OrderNumber,
			PreferenceID: row.PreferenceID,
			PaymentID:    row.PaymentID,
			Status:       row.Status,
			Amount:       row.Amount,
			SettledAt:    row.SettledAt,
			CreatedAt:    row.CreatedAt,
		}
		if row.GatewayAmount.Valid {
			charged := row.GatewayAmount.Decimal
			item.ChargedAmount = &charged
		}
		items = append(items, item)
	}

	return TransactionPage{
		Items:    items,
		Total:    total,
		Page:     query.Page(),
		PageSize: query.PageSize(),
	}, nil
}
