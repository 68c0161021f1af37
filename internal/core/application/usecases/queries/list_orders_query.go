package queries

import (
	"errors"
	"time"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/order"
	"checkout/internal/pkg/errs"
	"checkout/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery pages through orders, newest first. A nil status lists
// every status.
type ListOrdersQuery struct {
	status   *order.Status
	page     int
	pageSize int
	actor    kernel.Actor
	guard    guard.ConstructorGuard
}

// NewListOrdersQuery treats page 0 as the first page and pageSize 0 as
// DefaultPageSize.
func NewListOrdersQuery(status *order.Status, page, pageSize int, actor kernel.Actor) (ListOrdersQuery, error) {
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
		return ListOrdersQuery{}, errors.Join(problems...)
	}

	return ListOrdersQuery{
		status:   status,
		page:     page,
		pageSize: pageSize,
		actor:    actor,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Status() *order.Status { return q.status }
func (q ListOrdersQuery) Page() int             { return q.page }
func (q ListOrdersQuery) PageSize() int         { return q.pageSize }
func (q ListOrdersQuery) Actor() kernel.Actor   { return q.actor }

type OrderSummary struct {
	ID           kernel.UUID
	Number       string
	OwnerID      kernel.UUID
	DeliveryType string
	ContactName  string
	Status       string
	Total        decimal.Decimal
	CreatedAt    time.Time
}

// OrderPage is one page of orders plus the total number of matches.
type OrderPage struct {
	Items    []OrderSummary
	Total    int64
	Page     int
	PageSize int
}
