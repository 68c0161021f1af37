package commands

import (
	"errors"
	"strings"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/errs"
	"checkout/internal/pkg/guard"
)

var (
	ErrCreateReconciliationCommandIsNotConstructed = errors.New(
		"CreateReconciliationCommand must be created via NewCreateReconciliationCommand constructor",
	)
	ErrResolveReconciliationCommandIsNotConstructed = errors.New(
		"reconciliation command must be created via its constructor",
	)
)

// CreateReconciliationCommand opens a reconciliation between a payment
// transaction and the invoice of the same order.
type CreateReconciliationCommand struct { //nolint:recvcheck //using for validation
	transactionID kernel.UUID
	invoiceID     kernel.UUID
	actor         kernel.Actor

	guard guard.ConstructorGuard
}

func NewCreateReconciliationCommand(
	transactionID, invoiceID kernel.UUID,
	actor kernel.Actor,
) (CreateReconciliationCommand, error) {
	if err := errors.Join(
		wrapRequired("transaction id", transactionID.Validate()),
		wrapRequired("invoice id", invoiceID.Validate()),
		actor.Validate(),
	); err != nil {
		return CreateReconciliationCommand{}, err
	}

	return CreateReconciliationCommand{
		transactionID: transactionID,
		invoiceID:     invoiceID,
		actor:         actor,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c CreateReconciliationCommand) Validate() error {
	return c.guard.Validate(ErrCreateReconciliationCommandIsNotConstructed)
}

func (c CreateReconciliationCommand) TransactionID() kernel.UUID {
	return c.transactionID
}

func (c CreateReconciliationCommand) InvoiceID() kernel.UUID {
	return c.invoiceID
}

func (c CreateReconciliationCommand) Actor() kernel.Actor {
	return c.actor
}

// resolveReconciliationCommand targets an existing reconciliation.
type resolveReconciliationCommand struct { //nolint:recvcheck //using for validation
	reconciliationID kernel.UUID
	actor            kernel.Actor

	guard guard.ConstructorGuard
}

func newResolveReconciliationCommand(id kernel.UUID, actor kernel.Actor) (resolveReconciliationCommand, error) {
	if err := errors.Join(wrapRequired("reconciliation id", id.Validate()), actor.Validate()); err != nil {
		return resolveReconciliationCommand{}, err
	}
	return resolveReconciliationCommand{reconciliationID: id, actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (c resolveReconciliationCommand) Validate() error {
	return c.guard.Validate(ErrResolveReconciliationCommandIsNotConstructed)
}

func (c resolveReconciliationCommand) ReconciliationID() kernel.UUID {
	return c.reconciliationID
}

func (c resolveReconciliationCommand) Actor() kernel.Actor {
	return c.actor
}

// MarkReconciledCommand confirms that a transaction and its invoice agree.
type MarkReconciledCommand struct{ resolveReconciliationCommand }

func NewMarkReconciledCommand(id kernel.UUID, actor kernel.Actor) (MarkReconciledCommand, error) {
	c, err := newResolveReconciliationCommand(id, actor)
	return MarkReconciledCommand{c}, err
}

// MarkDiscrepancyCommand records that a transaction and its invoice disagree.
// Notes describing the difference are required.
type MarkDiscrepancyCommand struct {
	resolveReconciliationCommand

	notes string
}

func NewMarkDiscrepancyCommand(id kernel.UUID, actor kernel.Actor, notes string) (MarkDiscrepancyCommand, error) {
	c, err := newResolveReconciliationCommand(id, actor)
	notes = strings.TrimSpace(notes)
	if notes == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("discrepancy notes"))
	}
	if err != nil {
		return MarkDiscrepancyCommand{}, err
	}
	return MarkDiscrepancyCommand{resolveReconciliationCommand: c, notes: notes}, nil
}

func (c MarkDiscrepancyCommand) Notes() string {
	return c.notes
}

func wrapRequired(paramName string, err error) error {
	if err == nil {
		return nil
	}
	return errs.NewValueIsRequiredErrorWithCause(paramName, err)
}
