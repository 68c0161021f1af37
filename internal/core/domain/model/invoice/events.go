package invoice

import (
	"time"

	"checkout/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

const GeneratedEventName = "invoice.generated"

// Generated is recorded when an invoice is created for a paid order.
type Generated struct {
	InvoiceID  kernel.UUID
	OrderID    kernel.UUID
	CustomerID kernel.UUID
	Number     string
	Total      decimal.Decimal
	At         time.Time
}

func (e Generated) EventName() string { return GeneratedEventName }

func (e Generated) Subject() kernel.EntityRef {
	return kernel.MustEntityRef(kernel.InvoiceEntity, e.InvoiceID)
}

func (e Generated) OccurredAt() time.Time { return e.At }
