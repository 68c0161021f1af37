package commands

import (
	"errors"
	"strings"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/errs"
	"checkout/internal/pkg/guard"
)

var ErrCreatePaymentPreferenceCommandIsNotConstructed = errors.New(
	"CreatePaymentPreferenceCommand must be created via NewCreatePaymentPreferenceCommand constructor",
)

// CreatePaymentPreferenceCommand requests a hosted checkout for a pending order.
type CreatePaymentPreferenceCommand struct { //nolint:recvcheck //using for validation
	number string
	actor  kernel.Actor

	guard guard.ConstructorGuard
}

func NewCreatePaymentPreferenceCommand(number string, actor kernel.Actor) (CreatePaymentPreferenceCommand, error) {
	cmd := CreatePaymentPreferenceCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setNumber(number),
		cmd.setActor(actor),
	); err != nil {
		return CreatePaymentPreferenceCommand{}, err
	}

	return cmd, nil
}

func (c CreatePaymentPreferenceCommand) Validate() error {
	return c.guard.Validate(ErrCreatePaymentPreferenceCommandIsNotConstructed)
}

func (c CreatePaymentPreferenceCommand) Number() string {
	return c.number
}

func (c CreatePaymentPreferenceCommand) Actor() kernel.Actor {
	return c.actor
}

func (c *CreatePaymentPreferenceCommand) setNumber(number string) error {
	number = strings.TrimSpace(number)
	if number == "" {
		return errs.NewValueIsRequiredError("order number")
	}

	c.number = number
	return nil
}

func (c *CreatePaymentPreferenceCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}
