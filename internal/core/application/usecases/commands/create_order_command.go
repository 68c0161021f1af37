package commands

import (
	"errors"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/order"
	"checkout/internal/pkg/errs"
	"checkout/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a checkout: a priced cart snapshot plus delivery
// information, placed by an actor who becomes the order owner.
//
// Example:
//
//	item, _ := order.NewItem("sku-1", "Hammer", 2, decimal.NewFromInt(5000))
//	delivery, _ := order.NewDeliveryInfo(order.Pickup, contact, order.Address{}, "")
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), customer, delivery,
//	    []order.Item{item}, decimal.Zero)
//	if err != nil {
//	    return fmt.Errorf("invalid checkout: %w", err)
//	}
//
//	number, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	actor        kernel.Actor
	delivery     order.DeliveryInfo
	items        []order.Item
	shippingCost decimal.Decimal

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the checkout input. An empty cart and a
// negative shipping cost are rejected here; the order aggregate checks the rest.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	actor kernel.Actor,
	delivery order.DeliveryInfo,
	items []order.Item,
	shippingCost decimal.Decimal,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(actor),
		cmd.setDelivery(delivery),
		cmd.setItems(items),
		cmd.setShippingCost(shippingCost),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreateOrderCommand) Actor() kernel.Actor {
	return c.actor
}

func (c CreateOrderCommand) Delivery() order.DeliveryInfo {
	return c.delivery
}

// Items returns a copy of the cart snapshot.
func (c CreateOrderCommand) Items() []order.Item {
	return append([]order.Item(nil), c.items...)
}

func (c CreateOrderCommand) ShippingCost() decimal.Decimal {
	return c.shippingCost
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *CreateOrderCommand) setDelivery(delivery order.DeliveryInfo) error {
	if err := delivery.Type().Validate(); err != nil {
		return err
	}

	c.delivery = delivery
	return nil
}

func (c *CreateOrderCommand) setItems(items []order.Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("cart items")
	}

	c.items = append([]order.Item(nil), items...)
	return nil
}

func (c *CreateOrderCommand) setShippingCost(cost decimal.Decimal) error {
	if err := kernel.ValidateAmount("shipping cost", cost); err != nil {
		return err
	}

	c.shippingCost = cost
	return nil
}
