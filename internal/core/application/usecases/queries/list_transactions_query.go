package queries

import (
	"errors"
	"strings"
	"time"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/payment"
	"checkout/internal/pkg/errs"
	"checkout/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrListTransactionsQueryIsNotConstructed = errors.New(
	"ListTransactionsQuery must be created via NewListTransactionsQuery constructor",
)

// ListTransactionsQuery pages through payment transactions, newest first.
// Status and order number narrow the list when set.
type ListTransactionsQuery struct {
	status      *payment.Status
	orderNumber string
	page        int
	pageSize    int
	actor       kernel.Actor
	guard       guard.ConstructorGuard
}

func NewListTransactionsQuery(
	status *payment.Status,
	orderNumber string,
	page, pageSize int,
	actor kernel.Actor,
) (ListTransactionsQuery, error) {
	page, pageSize, problems := normalizePaging(page, pageSize)
	if status != nil {
		if err := status.Validate(); err != nil {
			problems = append(problems, err)
		}
	}
	if err := actor.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("actor", err))
	}
	if len(problems) > 0 {
		return ListTransactionsQuery{}, errors.Join(problems...)
	}

	return ListTransactionsQuery{
		status:      status,
		orderNumber: strings.TrimSpace(orderNumber),
		page:        page,
		pageSize:    pageSize,
		actor:       actor,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (q ListTransactionsQuery) Validate() error {
	return q.guard.Validate(ErrListTransactionsQueryIsNotConstructed)
}

func (q ListTransactionsQuery) Status() *payment.Status { return q.status }
func (q ListTransactionsQuery) OrderNumber() string     { return q.orderNumber }
func (q ListTransactionsQuery) Page() int               { return q.page }
func (q ListTransactionsQuery) PageSize() int           { return q.pageSize }
func (q ListTransactionsQuery) Actor() kernel.Actor     { return q.actor }

type TransactionSummary struct {
	ID           kernel.UUID
	OrderNumber  string
	PreferenceID string
	PaymentID    string
	Status       string
	Amount       decimal.Decimal
	// ChargedAmount is what the gateway reported, nil until a notification
	// was applied.
	ChargedAmount *decimal.Decimal
	SettledAt     *time.Time
	CreatedAt     time.Time
}

type TransactionPage struct {
	Items    []TransactionSummary
	Total    int64
	Page     int
	PageSize int
}
