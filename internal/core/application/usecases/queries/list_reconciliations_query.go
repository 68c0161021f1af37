package queries

import (
	"errors"
	"time"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/reconciliation"
	"checkout/internal/pkg/errs"
	"checkout/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrListReconciliationsQueryIsNotConstructed = errors.New(
	"ListReconciliationsQuery must be created via NewListReconciliationsQuery constructor",
)

// ListReconciliationsQuery lists reconciliations in one status, oldest first,
// for the accounting review queue.
type ListReconciliationsQuery struct {
	status reconciliation.Status
	limit  int
	actor  kernel.Actor
	guard  guard.ConstructorGuard
}

// NewListReconciliationsQuery uses DefaultPageSize when limit is 0.
func NewListReconciliationsQuery(
	status reconciliation.Status,
	limit int,
	actor kernel.Actor,
) (ListReconciliationsQuery, error) {
	if limit == 0 {
		limit = DefaultPageSize
	}

	var problems []error
	if err := status.Validate(); err != nil {
		problems = append(problems, err)
	}
	if limit < 1 || limit > MaxPageSize {
		problems = append(problems, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxPageSize))
	}
	if err := actor.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("actor", err))
	}
	if len(problems) > 0 {
		return ListReconciliationsQuery{}, errors.Join(problems...)
	}

	return ListReconciliationsQuery{
		status: status,
		limit:  limit,
		actor:  actor,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (q ListReconciliationsQuery) Validate() error {
	return q.guard.Validate(ErrListReconciliationsQueryIsNotConstructed)
}

func (q ListReconciliationsQuery) Status() reconciliation.Status { return q.status }
func (q ListReconciliationsQuery) Limit() int                    { return q.limit }
func (q ListReconciliationsQuery) Actor() kernel.Actor           { return q.actor }

// ReconciliationView puts both sides of a reconciliation next to each other so
// an accountant can compare what was charged with what was invoiced.
type ReconciliationView struct {
	ID            kernel.UUID
	Status        string
	Notes         string
	OrderNumber   string
	TransactionID kernel.UUID
	PreferenceID  string
	PaymentID     string
	ChargedAmount *decimal.Decimal
	InvoiceID     kernel.UUID
	InvoiceNumber string
	InvoicedTotal decimal.Decimal
	CreatedAt     time.Time
}
