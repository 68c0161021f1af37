package commands

import (
	"context"
	"time"

	"checkout/internal/core/domain/services"
	"checkout/internal/core/ports"
	"checkout/internal/pkg/errs"
)

// TransitionOrderCommandHandler moves an order along its lifecycle graph on
// behalf of a user.
//
// Concurrent requests for one order are serialized by the per-order lock and a
// row lock; the status is read only after both are held.
type TransitionOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	locker     ports.Locker
	publisher  EventPublisher
	policy     services.OrderTransitionPolicy
}

func NewTransitionOrderCommandHandler(
	uowFactory OrderUoWFactory,
	locker ports.Locker,
	publisher EventPublisher,
) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory: uowFactory,
		locker:     locker,
		publisher:  publisher,
		policy:     services.NewOrderTransitionPolicy(),
	}
}

// Handle returns an InvalidTransition error for edges outside the graph or when
// the order has left the expected status, and a Permission error when
// the actor may not perform the move.
func (h TransitionOrderCommandHandler) Handle(ctx context.Context, cmd TransitionOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	orderRepo := uow.OrderRepository()

	snapshot, err := orderRepo.GetByNumber(ctx, cmd.Number())
	if err != nil {
		return err
	}

	release, err := h.locker.Lock(ctx, orderLockKey(snapshot.ID()))
	if err != nil {
		return err
	}
	defer release()

	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo = uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, snapshot.ID())
	if err != nil {
		return err
	}

	if o.Status() != cmd.Expected() {
		return errs.NewInvalidTransitionError("order", o.Status(), cmd.Target())
	}

	if err = h.policy.Authorize(cmd.Actor(), o, cmd.Target()); err != nil {
		return err
	}

	if err = o.Transition(cmd.Target(), cmd.Actor().ID(), cmd.Notes(), time.Now().UTC()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx, uow.CollectEvents())
	return nil
}
