package services

import (
	"fmt"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/order"
	"checkout/internal/pkg/errs"
)

// OrderTransitionPolicy decides whether an actor may move an order to a target
// status. It only checks permissions; the lifecycle graph itself is enforced by
// order.Order.Transition.
//
// Business rules:
//   - The system actor and administrators may follow any edge
//   - Warehouse staff act on orders that are paid, in preparation or in shipping
//   - Salespeople act on orders that are ready for pickup or in shipping
//   - A customer may only cancel their own pending order
type OrderTransitionPolicy struct{}

func NewOrderTransitionPolicy() OrderTransitionPolicy {
	return OrderTransitionPolicy{}
}

// Authorize returns a PermissionError when actor may not move o to target.
func (p OrderTransitionPolicy) Authorize(actor kernel.Actor, o *order.Order, target order.Status) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if err := o.Validate(); err != nil {
		return err
	}

	if actor.IsSystem() || actor.Can(kernel.Administrator) {
		return nil
	}

	current := o.Status()
	switch {
	case actor.Can(kernel.Warehouse) && isOneOf(current, order.Paid, order.Preparation, order.InShipping):
		return nil
	case actor.Can(kernel.Salesperson) && isOneOf(current, order.ReadyForPickup, order.InShipping):
		return nil
	case actor.Can(kernel.Customer) &&
		current == order.Pending &&
		target == order.Cancelled &&
		actor.ID().IsEqual(o.OwnerID()):
		return nil
	}

	return errs.NewPermissionError(
		actor.ID().String(),
		fmt.Sprintf("move order %s from %s to %s", o.Number(), current, target),
	)
}

func isOneOf(s order.Status, candidates ...order.Status) bool {
	for _, c := range candidates {
		if s == c {
			return true
		}
	}
	return false
}
