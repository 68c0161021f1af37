package commands

import (
	"context"
	"time"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/ports"
	"checkout/internal/pkg/errs"
)

// RecordAuthorityResponseCommandHandler resolves a sent invoice as accepted or
// rejected. Only accountants and administrators may record the response.
type RecordAuthorityResponseCommandHandler struct {
	uowFactory InvoiceUoWFactory
	locker     ports.Locker
}

func NewRecordAuthorityResponseCommandHandler(
	uowFactory InvoiceUoWFactory,
	locker ports.Locker,
) RecordAuthorityResponseCommandHandler {
	return RecordAuthorityResponseCommandHandler{
		uowFactory: uowFactory,
		locker:     locker,
	}
}

func (h RecordAuthorityResponseCommandHandler) Handle(ctx context.Context, cmd RecordAuthorityResponseCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	actor := cmd.Actor()
	if !actor.Can(kernel.Accountant, kernel.Administrator) {
		return errs.NewPermissionError(actor.ID().String(), "record authority responses")
	}

	release, err := h.locker.Lock(ctx, invoiceLockKey(cmd.InvoiceID()))
	if err != nil {
		return err
	}
	defer release()

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.InvoiceRepository()
	inv, err := repo.GetForUpdate(ctx, cmd.InvoiceID())
	if err != nil {
		return err
	}

	if err = inv.RecordAuthorityResponse(cmd.Accepted(), cmd.Response(), time.Now().UTC()); err != nil {
		return err
	}

	if err = repo.Update(ctx, inv); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
