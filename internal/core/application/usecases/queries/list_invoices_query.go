package queries

import (
	"errors"
	"strings"
	"time"

	"checkout/internal/core/domain/model/invoice"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/errs"
	"checkout/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrListInvoicesQueryIsNotConstructed = errors.New(
	"ListInvoicesQuery must be created via NewListInvoicesQuery constructor",
)

// ListInvoicesQuery pages through invoices, newest first. Status and order
// number narrow the list when set.
type ListInvoicesQuery struct {
	status      *invoice.Status
	orderNumber string
	page        int
	pageSize    int
	actor       kernel.Actor
	guard       guard.ConstructorGuard
}

func NewListInvoicesQuery(
	status *invoice.Status,
	orderNumber string,
	page, pageSize int,
	actor kernel.Actor,
) (ListInvoicesQuery, error) {
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
		return ListInvoicesQuery{}, errors.Join(problems...)
	}

	return ListInvoicesQuery{
		status:      status,
		orderNumber: strings.TrimSpace(orderNumber),
		page:        page,
		pageSize:    pageSize,
		actor:       actor,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (q ListInvoicesQuery) Validate() error {
	return q.guard.Validate(ErrListInvoicesQueryIsNotConstructed)
}

func (q ListInvoicesQuery) Status() *invoice.Status { return q.status }
func (q ListInvoicesQuery) OrderNumber() string     { return q.orderNumber }
func (q ListInvoicesQuery) Page() int               { return q.page }
func (q ListInvoicesQuery) PageSize() int           { return q.pageSize }
func (q ListInvoicesQuery) Actor() kernel.Actor     { return q.actor }

type InvoiceSummary struct {
	ID          kernel.UUID
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

type InvoicePage struct {
	Items    []InvoiceSummary
	Total    int64
	Page     int
	PageSize int
}
