package commands

import (
	"context"
	"fmt"
	"time"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/reconciliation"
	"checkout/internal/pkg/errs"
)

func authorizeReconciliation(actor kernel.Actor) error {
	if actor.Can(kernel.Accountant, kernel.Administrator) {
		return nil
	}
	return errs.NewPermissionError(actor.ID().String(), "reconcile payments")
}

// CreateReconciliationCommandHandler pairs a payment transaction with the
// invoice of the same order.
//
// Each side can be part of one reconciliation only. The existence checks give
// a precise error; the unique indexes behind Add settle races between them.
type CreateReconciliationCommandHandler struct {
	uowFactory ReconciliationUoWFactory
}

func NewCreateReconciliationCommandHandler(uowFactory ReconciliationUoWFactory) CreateReconciliationCommandHandler {
	return CreateReconciliationCommandHandler{uowFactory: uowFactory}
}

func (h CreateReconciliationCommandHandler) Handle(
	ctx context.Context,
	cmd CreateReconciliationCommand,
) (*reconciliation.Reconciliation, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := authorizeReconciliation(cmd.Actor()); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	tx, err := uow.TransactionRepository().Get(ctx, cmd.TransactionID())
	if err != nil {
		return nil, err
	}

	inv, err := uow.InvoiceRepository().Get(ctx, cmd.InvoiceID())
	if err != nil {
		return nil, err
	}

	if !tx.OrderID().IsEqual(inv.OrderID()) {
		return nil, errs.NewValueIsInvalidErrorWithCause("reconciliation pair", fmt.Errorf(
			"transaction %s belongs to order %s, invoice %s to order %s",
			tx.ID(), tx.OrderID(), inv.ID(), inv.OrderID(),
		))
	}

	repo := uow.ReconciliationRepository()
	exists, err := repo.ExistsForTransaction(ctx, tx.ID())
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errs.NewAlreadyReconciledError("transaction", tx.ID().String())
	}

	exists, err = repo.ExistsForInvoice(ctx, inv.ID())
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errs.NewAlreadyReconciledError("invoice", inv.ID().String())
	}

	r, err := reconciliation.NewReconciliation(kernel.NewUUID(), tx.ID(), inv.ID(), time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err = repo.Add(ctx, r); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return r, nil
}

// resolveReconciliation loads the record with a row lock, applies resolve and
// stores status, actor and timestamp in a single update.
func resolveReconciliation(
	ctx context.Context,
	uowFactory ReconciliationUoWFactory,
	id kernel.UUID,
	resolve func(r *reconciliation.Reconciliation, at time.Time) error,
) error {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ReconciliationRepository()
	r, err := repo.GetForUpdate(ctx, id)
	if err != nil {
		return err
	}

	if err = resolve(r, time.Now().UTC()); err != nil {
		return err
	}

	if err = repo.Update(ctx, r); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// MarkReconciledCommandHandler moves a pending reconciliation to reconciled.
type MarkReconciledCommandHandler struct {
	uowFactory ReconciliationUoWFactory
}

func NewMarkReconciledCommandHandler(uowFactory ReconciliationUoWFactory) MarkReconciledCommandHandler {
	return MarkReconciledCommandHandler{uowFactory: uowFactory}
}

func (h MarkReconciledCommandHandler) Handle(ctx context.Context, cmd MarkReconciledCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	actor := cmd.Actor()
	if err := authorizeReconciliation(actor); err != nil {
		return err
	}

	return resolveReconciliation(ctx, h.uowFactory, cmd.ReconciliationID(),
		func(r *reconciliation.Reconciliation, at time.Time) error {
			return r.MarkReconciled(actor.ID(), at)
		})
}

// MarkDiscrepancyCommandHandler moves a pending reconciliation to discrepancy.
// Like reconciled, discrepancy is terminal.
type MarkDiscrepancyCommandHandler struct {
	uowFactory ReconciliationUoWFactory
}

func NewMarkDiscrepancyCommandHandler(uowFactory ReconciliationUoWFactory) MarkDiscrepancyCommandHandler {
	return MarkDiscrepancyCommandHandler{uowFactory: uowFactory}
}

func (h MarkDiscrepancyCommandHandler) Handle(ctx context.Context, cmd MarkDiscrepancyCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	actor := cmd.Actor()
	if err := authorizeReconciliation(actor); err != nil {
		return err
	}

	return resolveReconciliation(ctx, h.uowFactory, cmd.ReconciliationID(),
		func(r *reconciliation.Reconciliation, at time.Time) error {
			return r.MarkDiscrepancy(actor.ID(), cmd.Notes(), at)
		})
}
