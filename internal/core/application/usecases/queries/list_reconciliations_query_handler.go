package queries

import (
	"context"
	"time"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ListReconciliationsQueryHandler struct {
	db *gorm.DB
}

func NewListReconciliationsQueryHandler(db *gorm.DB) ListReconciliationsQueryHandler {
	return ListReconciliationsQueryHandler{db: db}
}

// Handle is restricted to accountants and administrators.
func (h ListReconciliationsQueryHandler) Handle(
	ctx context.Context,
	query ListReconciliationsQuery,
) ([]ReconciliationView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if actor := query.Actor(); !actor.Can(ledgerCapabilities...) {
		return nil, errs.NewPermissionError(actor.ID().String(), "list reconciliations")
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			r.id, r.status, r.notes, o.number,
			t.id, t.preference_id, t.payment_id, t.gateway_amount,
			i.id, i.number, i.total,
			r.created_at
		FROM reconciliations r
		JOIN payment_transactions t ON t.id = r.transaction_id
		JOIN invoices i ON i.id = r.invoice_id
		JOIN orders o ON o.id = i.order_id
		WHERE r.status = ?
		ORDER BY r.created_at
		LIMIT ?
	`, query.Status().String(), query.Limit()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := make([]ReconciliationView, 0)
	for rows.Next() {
		var (
			view          ReconciliationView
			id            uuid.UUID
			transactionID uuid.UUID
			invoiceID     uuid.UUID
			charged       decimal.NullDecimal
			createdAt     time.Time
		)
		err = rows.Scan(
			&id, &view.Status, &view.Notes, &view.OrderNumber,
			&transactionID, &view.PreferenceID, &view.PaymentID, &charged,
			&invoiceID, &view.InvoiceNumber, &view.InvoicedTotal,
			&createdAt,
		)
		if err != nil {
			return nil, err
		}

		if view.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if view.TransactionID, err = kernel.UUIDFromBytes(transactionID[:]); err != nil {
			return nil, err
		}
		if view.InvoiceID, err = kernel.UUIDFromBytes(invoiceID[:]); err != nil {
			return nil, err
		}
		if charged.Valid {
			amount := charged.Decimal
			view.ChargedAmount = &amount
		}
		view.CreatedAt = createdAt

		views = append(views, view)
	}

	return views, rows.Err()
}
