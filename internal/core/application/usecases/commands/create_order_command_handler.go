package commands

import (
	"context"
	"time"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/order"
	"checkout/internal/pkg/errs"
)

// CreateOrderCommandHandler turns a checkout into a pending order with the next
// sequential number.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, dispatcher)
//	number, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("checkout failed: %w", err)
//	}
//	// number is e.g. "00000042"; the order is pending payment
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  EventPublisher
}

func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, publisher EventPublisher) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle allocates the number and persists the order in one transaction, so a
// number is only visible together with its order. Returns the order number.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (string, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}

	actor := cmd.Actor()
	if !actor.Can(kernel.Customer, kernel.Salesperson, kernel.Administrator) {
		return "", errs.NewPermissionError(actor.ID().String(), "place orders")
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return "", err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	number, err := orderRepo.NextNumber(ctx)
	if err != nil {
		return "", err
	}

	o, err := order.NewOrder(
		cmd.OrderID(),
		number,
		actor.ID(),
		cmd.Delivery(),
		cmd.Items(),
		cmd.ShippingCost(),
		time.Now().UTC(),
	)
	if err != nil {
		return "", err
	}

	if err = orderRepo.Add(ctx, o); err != nil {
		return "", err
	}

	if err = uow.Commit(ctx); err != nil {
		return "", err
	}

	h.publisher.Publish(ctx, uow.CollectEvents())
	return number, nil
}
