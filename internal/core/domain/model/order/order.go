package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Timestamps holds the moment each lifecycle status was reached. A nil field
// means the order never entered that status.
type Timestamps struct {
	PaidAt      *time.Time
	PreparedAt  *time.Time
	ReadyAt     *time.Time
	ShippedAt   *time.Time
	DeliveredAt *time.Time
	CancelledAt *time.Time
}

// Order is the aggregate root of the order lifecycle.
//
// Order follows these invariants:
//   - Has a valid id, a non-empty immutable number and a valid owner
//   - Has at least one item; shipping orders have a complete address
//   - Total() == Subtotal() + ShippingCost() at every read
//   - Status changes only through Transition, along the lifecycle graph
//   - The change log only grows
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// number is the sequential human-readable order number, e.g. "00000042"
	number string

	// ownerID is the customer who placed the order
	ownerID kernel.UUID

	delivery DeliveryInfo
	items    []Item

	// subtotal is derived from items and never set directly
	subtotal     decimal.Decimal
	shippingCost decimal.Decimal

	status     Status
	timestamps Timestamps
	changes    []Change

	createdAt time.Time
	updatedAt time.Time

	events kernel.EventRecorder

	// isConstructed ensures the order was created via NewOrder or RestoreOrder
	isConstructed bool
}

// NewOrder creates a pending order from a priced cart snapshot.
//
// Parameters:
//   - id: unique identifier for the order
//   - number: sequential number allocated by the repository
//   - ownerID: the customer placing the order
//   - delivery: validated delivery information
//   - items: the cart snapshot, at least one line
//   - shippingCost: non-negative shipping charge
//   - at: creation time
//
// Returns:
//   - *Order in Pending status with a recorded Created event
//   - error if any parameter is invalid; all problems are joined
//
// Example:
//
//	item, _ := order.NewItem("sku-1", "Hammer", 2, decimal.NewFromInt(5000))
//	delivery, _ := order.NewDeliveryInfo(order.Pickup, contact, order.Address{}, "")
//	o, err := order.NewOrder(kernel.NewUUID(), "00000001", ownerID, delivery,
//	    []order.Item{item}, decimal.Zero, time.Now())
func NewOrder(
	id kernel.UUID,
	number string,
	ownerID kernel.UUID,
	delivery DeliveryInfo,
	items []Item,
	shippingCost decimal.Decimal,
	at time.Time,
) (*Order, error) {
	o := &Order{
		status:        Pending,
		createdAt:     at,
		updatedAt:     at,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setOwnerID(ownerID),
		o.setDelivery(delivery),
		o.setItems(items),
		o.setShippingCost(shippingCost),
	); err != nil {
		return nil, err
	}

	o.events.Record(Created{
		OrderID: o.id,
		Number:  o.number,
		OwnerID: o.ownerID,
		Total:   o.Total(),
		At:      at,
	})

	return o, nil
}

// State is the persisted form of an order used by RestoreOrder.
type State struct {
	ID           kernel.UUID
	Number       string
	OwnerID      kernel.UUID
	Delivery     DeliveryInfo
	Items        []Item
	ShippingCost decimal.Decimal
	Status       Status
	Timestamps   Timestamps
	Changes      []Change
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RestoreOrder rebuilds an order loaded from persistence. The subtotal is
// recomputed from the items; no events are recorded.
func RestoreOrder(state State) (*Order, error) {
	o := &Order{
		timestamps:    state.Timestamps,
		changes:       append([]Change(nil), state.Changes...),
		createdAt:     state.CreatedAt,
		updatedAt:     state.UpdatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(state.ID),
		o.setNumber(state.Number),
		o.setOwnerID(state.OwnerID),
		o.setDelivery(state.Delivery),
		o.setItems(state.Items),
		o.setShippingCost(state.ShippingCost),
		state.Status.Validate(),
	); err != nil {
		return nil, err
	}
	o.status = state.Status

	return o, nil
}

// Validate ensures the order was built through NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) ID() kernel.UUID { return o.id }
func (o *Order) Number() string { return o.number }
func (o *Order) OwnerID() kernel.UUID { return o.ownerID }
func (o *Order) Delivery() DeliveryInfo { return o.delivery }
func (o *Order) Status() Status { return o.status }
func (o *Order) Timestamps() Timestamps { return o.timestamps }
func (o *Order) CreatedAt() time.Time { return o.createdAt }
func (o *Order) UpdatedAt() time.Time { return o.updatedAt }
func (o *Order) Subtotal() decimal.Decimal { return o.subtotal }
func (o *Order) ShippingCost() decimal.Decimal { return o.shippingCost }

// Items returns a copy of the cart snapshot.
func (o *Order) Items() []Item {
	return append([]Item(nil), o.items...)
}

// Changes returns a copy of the change log, oldest first.
func (o *Order) Changes() []Change {
	return append([]Change(nil), o.changes...)
}

// Total is always Subtotal + ShippingCost.
func (o *Order) Total() decimal.Decimal {
	return o.subtotal.Add(o.shippingCost)
}

// PullEvents returns and clears the domain events recorded since the last call.
func (o *Order) PullEvents() []kernel.DomainEvent {
	return o.events.PullEvents()
}

// Transition moves the order to target.
//
// This method enforces the following business rules:
//   - target must be a direct successor of the current status
//   - only pickup orders may become ReadyForPickup
//   - only shipping orders may go InShipping
//
// On success the timestamp of target is stamped, a change log entry is
// appended and a StatusChanged event is recorded.
//
// Returns *errs.InvalidTransitionError when the edge is not allowed.
func (o *Order) Transition(target Status, actorID kernel.UUID, notes string, at time.Time) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	from := o.status
	next, err := from.TransitionTo(target)
	if err != nil {
		return err
	}

	if (next == ReadyForPickup && o.delivery.Type() != Pickup) ||
		(next == InShipping && o.delivery.Type() != Shipping) {
		return errs.NewInvalidTransitionError(fmt.Sprintf("%s order", o.delivery.Type()), from, next)
	}

	o.status = next
	o.stamp(next, at)
	o.changes = append(o.changes, Change{
		id:      kernel.NewUUID(),
		from:    from,
		to:      next,
		actorID: actorID,
		notes:   strings.TrimSpace(notes),
		at:      at,
	})
	o.updatedAt = at

	o.events.Record(StatusChanged{
		OrderID: o.id,
		Number:  o.number,
		OwnerID: o.ownerID,
		From:    from,
		To:      next,
		At:      at,
	})

	return nil
}

func (o *Order) stamp(status Status, at time.Time) {
	t := at
	switch status {
	case Paid:
		o.timestamps.PaidAt = &t
	case Preparation:
		o.timestamps.PreparedAt = &t
	case ReadyForPickup:
		o.timestamps.ReadyAt = &t
	case InShipping:
		o.timestamps.ShippedAt = &t
	case Delivered:
		o.timestamps.DeliveredAt = &t
	case Cancelled:
		o.timestamps.CancelledAt = &t
	case Unknown, Pending:
	}
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setNumber(number string) error {
	if strings.TrimSpace(number) == "" {
		return errs.NewValueIsRequiredError("order number")
	}
	o.number = number
	return nil
}

func (o *Order) setOwnerID(ownerID kernel.UUID) error {
	if err := ownerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("owner", err)
	}
	o.ownerID = ownerID
	return nil
}

func (o *Order) setDelivery(delivery DeliveryInfo) error {
	if err := delivery.Type().Validate(); err != nil {
		return err
	}
	o.delivery = delivery
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredErrorWithCause("items", errors.New("cart is empty"))
	}

	subtotal := decimal.Zero
	for _, item := range items {
		if item.quantity <= 0 {
			return errs.NewValueIsInvalidErrorWithCause("items", fmt.Errorf("%s has no quantity", item.productID))
		}
		subtotal = subtotal.Add(item.Subtotal())
	}

	o.items = append([]Item(nil), items...)
	o.subtotal = kernel.RoundMoney(subtotal)
	return nil
}

func (o *Order) setShippingCost(cost decimal.Decimal) error {
	if err := kernel.ValidateAmount("shipping cost", cost); err != nil {
		return err
	}
	o.shippingCost = kernel.RoundMoney(cost)
	return nil
}
