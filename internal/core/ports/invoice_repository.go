package ports

import (
	"context"

	"checkout/internal/core/domain/model/invoice"
	"checkout/internal/core/domain/model/kernel"
)

// InvoiceRepository defines the persistence contract for invoices. There is at
// most one invoice per order; Add reports a DuplicateInvoice error otherwise.
type InvoiceRepository interface {
	Add(ctx context.Context, inv *invoice.Invoice) error
	Update(ctx context.Context, inv *invoice.Invoice) error
	Get(ctx context.Context, id kernel.UUID) (*invoice.Invoice, error)
	GetForUpdate(ctx context.Context, id kernel.UUID) (*invoice.Invoice, error)
	ExistsForOrder(ctx context.Context, orderID kernel.UUID) (bool, error)

	// NextNumber allocates the next invoice folio inside the current transaction.
	NextNumber(ctx context.Context) (string, error)

	// ListUnfinished returns ids of invoices that are not sent yet or have no
	// rendered artifact and failed fewer than maxAttempts times. Fewest
	// attempts first.
	ListUnfinished(ctx context.Context, maxAttempts, limit int) ([]kernel.UUID, error)
}
