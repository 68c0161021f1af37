package ports

import (
	"context"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/reconciliation"
)

// ReconciliationRepository defines the persistence contract for reconciliation
// records. A transaction and an invoice each belong to at most one record; Add
// reports an AlreadyReconciled error otherwise.
type ReconciliationRepository interface {
	Add(ctx context.Context, r *reconciliation.Reconciliation) error

	// Update writes status, notes, actor and timestamp in a single statement.
	Update(ctx context.Context, r *reconciliation.Reconciliation) error

	Get(ctx context.Context, id kernel.UUID) (*reconciliation.Reconciliation, error)
	GetForUpdate(ctx context.Context, id kernel.UUID) (*reconciliation.Reconciliation, error)
	ExistsForTransaction(ctx context.Context, transactionID kernel.UUID) (bool, error)
	ExistsForInvoice(ctx context.Context, invoiceID kernel.UUID) (bool, error)
}
