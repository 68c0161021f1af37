package commands

import (
	"errors"
	"strings"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/order"
	"checkout/internal/pkg/errs"
	"checkout/internal/pkg/guard"
)

var ErrTransitionOrderCommandIsNotConstructed = errors.New(
	"TransitionOrderCommand must be created via NewTransitionOrderCommand constructor",
)

// TransitionOrderCommand asks to move the order with the given number from the
// expected status to target. The transition only happens if the order is still
// in the expected status, so of two callers that raced on the same snapshot
// exactly one succeeds.
type TransitionOrderCommand struct { //nolint:recvcheck //using for validation
	number   string
	target   order.Status
	expected order.Status
	actor    kernel.Actor
	notes    string

	guard guard.ConstructorGuard
}

func NewTransitionOrderCommand(
	number string,
	target order.Status,
	expected order.Status,
	actor kernel.Actor,
	notes string,
) (TransitionOrderCommand, error) {
	cmd := TransitionOrderCommand{
		notes: strings.TrimSpace(notes),
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setNumber(number),
		cmd.setTarget(target),
		cmd.setExpected(expected),
		cmd.setActor(actor),
	); err != nil {
		return TransitionOrderCommand{}, err
	}

	return cmd, nil
}

func (c TransitionOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderCommandIsNotConstructed)
}

func (c TransitionOrderCommand) Number() string {
	return c.number
}

func (c TransitionOrderCommand) Target() order.Status {
	return c.target
}

// Expected returns the status the caller saw.
func (c TransitionOrderCommand) Expected() order.Status {
	return c.expected
}

func (c TransitionOrderCommand) Actor() kernel.Actor {
	return c.actor
}

func (c TransitionOrderCommand) Notes() string {
	return c.notes
}

func (c *TransitionOrderCommand) setNumber(number string) error {
	number = strings.TrimSpace(number)
	if number == "" {
		return errs.NewValueIsRequiredError("order number")
	}

	c.number = number
	return nil
}

func (c *TransitionOrderCommand) setTarget(target order.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	c.target = target
	return nil
}

func (c *TransitionOrderCommand) setExpected(expected order.Status) error {
	if expected == order.Unknown {
		return errs.NewValueIsRequiredError("expected status")
	}
	if err := expected.Validate(); err != nil {
		return err
	}

	c.expected = expected
	return nil
}

func (c *TransitionOrderCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}
