// Package queries contains the read side of the service. Handlers read
// straight from the database into read models; nothing here goes through the
// aggregates or the unit of work.
package queries

import (
	"errors"
	"strings"
	"time"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/errs"
	"checkout/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery reads one order by its number together with its items and
// change log.
//
// Example:
//
//	query, err := NewGetOrderQuery("00000042", actor)
//	if err != nil {
//	    return err
//	}
//	view, err := handler.Handle(ctx, query)
type GetOrderQuery struct {
	number string
	actor  kernel.Actor
	guard  guard.ConstructorGuard
}

func NewGetOrderQuery(number string, actor kernel.Actor) (GetOrderQuery, error) {
	number = strings.TrimSpace(number)

	var problems []error
	if number == "" {
		problems = append(problems, errs.NewValueIsRequiredError("order number"))
	}
	if err := actor.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("actor", err))
	}
	if len(problems) > 0 {
		return GetOrderQuery{}, errors.Join(problems...)
	}

	return GetOrderQuery{
		number: number,
		actor:  actor,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) Number() string {
	return q.number
}

func (q GetOrderQuery) Actor() kernel.Actor {
	return q.actor
}

// OrderView is the full read model of an order.
type OrderView struct {
	ID           kernel.UUID
	Number       string
	OwnerID      kernel.UUID
	DeliveryType string
	ContactName  string
	ContactEmail string
	ContactPhone string
	Address      string
	City         string
	Region       string
	Notes        string
	Status       string
	Subtotal     decimal.Decimal
	ShippingCost decimal.Decimal
	Total        decimal.Decimal
	PaidAt       *time.Time
	PreparedAt   *time.Time
	ReadyAt      *time.Time
	ShippedAt    *time.Time
	DeliveredAt  *time.Time
	CancelledAt  *time.Time
	CreatedAt    time.Time
	Items        []OrderItemView
	Changes      []OrderChangeView
}

type OrderItemView struct {
	ProductID   string
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}

type OrderChangeView struct {
	From    string
	To      string
	ActorID kernel.UUID
	Notes   string
	At      time.Time
}
