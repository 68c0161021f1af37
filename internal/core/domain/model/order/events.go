package order

import (
	"time"

	"checkout/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

const (
	CreatedEventName       = "order.created"
	StatusChangedEventName = "order.status_changed"
)

// Created is recorded when checkout produces a new order.
type Created struct {
	OrderID kernel.UUID
	Number  string
	OwnerID kernel.UUID
	Total   decimal.Decimal
	At      time.Time
}

func (e Created) EventName() string { return CreatedEventName }

func (e Created) Subject() kernel.EntityRef {
	return kernel.MustEntityRef(kernel.OrderEntity, e.OrderID)
}

func (e Created) OccurredAt() time.Time { return e.At }

// StatusChanged is recorded on every successful transition.
type StatusChanged struct {
	OrderID kernel.UUID
	Number  string
	OwnerID kernel.UUID
	From    Status
	To      Status
	At      time.Time
}

func (e StatusChanged) EventName() string { return StatusChangedEventName }

func (e StatusChanged) Subject() kernel.EntityRef {
	return kernel.MustEntityRef(kernel.OrderEntity, e.OrderID)
}

func (e StatusChanged) OccurredAt() time.Time { return e.At }
