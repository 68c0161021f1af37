package commands

import (
	"context"
	"errors"
	"time"

	"checkout/internal/core/domain/model/invoice"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/ports"
	"checkout/internal/pkg/errs"
)

// Pipeline step names, recorded in the invoice's last error.
const (
	StepEmitXML         = "emit_xml"
	StepSendToAuthority = "send_to_authority"
	StepRenderArtifact  = "render_artifact"
)

// invoiceStep describes one checkpoint of the invoice pipeline.
//
// pending reports whether the step still has to run; it may return an error
// when a previous step is missing. perform does the slow or external work
// outside any database transaction and returns the mutation to store.
type invoiceStep struct {
	name    string
	pending func(inv *invoice.Invoice) (bool, error)
	perform func(ctx context.Context, inv *invoice.Invoice) (func(inv *invoice.Invoice, at time.Time) error, error)
}

// invoiceStepRunner runs a step under the per-invoice lock. A failed step is
// recorded on the invoice (attempts and last error) and its error returned; the
// status stays where it was so the step can be retried.
type invoiceStepRunner struct {
	uowFactory InvoiceUoWFactory
	locker     ports.Locker
	publisher  EventPublisher
}

func (r invoiceStepRunner) run(ctx context.Context, id kernel.UUID, step invoiceStep) error {
	release, err := r.locker.Lock(ctx, invoiceLockKey(id))
	if err != nil {
		return err
	}
	defer release()

	uow := r.uowFactory.Create()
	current, err := uow.InvoiceRepository().Get(ctx, id)
	if err != nil {
		return err
	}

	pending, err := step.pending(current)
	if err != nil || !pending {
		return err
	}

	mutate, stepErr := step.perform(ctx, current)

	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.InvoiceRepository()
	inv, err := repo.GetForUpdate(ctx, id)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if stepErr != nil {
		inv.RecordFailure(step.name, stepErr, now)
	} else if err = mutate(inv, now); err != nil {
		return err
	}

	if err = repo.Update(ctx, inv); err != nil {
		return errors.Join(stepErr, err)
	}

	if err = uow.Commit(ctx); err != nil {
		return errors.Join(stepErr, err)
	}

	r.publisher.Publish(ctx, uow.CollectEvents())
	return stepErr
}

// EmitInvoiceXMLCommandHandler moves an invoice pending_issue -> issued by
// rendering its tax document. Invoices past pending_issue are left alone.
type EmitInvoiceXMLCommandHandler struct {
	runner   invoiceStepRunner
	renderer ports.DocumentRenderer
}

func NewEmitInvoiceXMLCommandHandler(
	uowFactory InvoiceUoWFactory,
	locker ports.Locker,
	renderer ports.DocumentRenderer,
	publisher EventPublisher,
) EmitInvoiceXMLCommandHandler {
	return EmitInvoiceXMLCommandHandler{
		runner:   invoiceStepRunner{uowFactory: uowFactory, locker: locker, publisher: publisher},
		renderer: renderer,
	}
}

func (h EmitInvoiceXMLCommandHandler) Handle(ctx context.Context, cmd EmitInvoiceXMLCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.runner.run(ctx, cmd.InvoiceID(), invoiceStep{
		name: StepEmitXML,
		pending: func(inv *invoice.Invoice) (bool, error) {
			return inv.NeedsDocument(), nil
		},
		perform: func(_ context.Context, inv *invoice.Invoice) (func(*invoice.Invoice, time.Time) error, error) {
			xml, err := h.renderer.RenderXML(inv)
			if err != nil {
				return nil, err
			}
			return func(inv *invoice.Invoice, at time.Time) error {
				return inv.MarkIssued(xml, at)
			}, nil
		},
	})
}

// SendInvoiceToAuthorityCommandHandler moves an invoice issued -> sent. On
// failure the status is unchanged and a Gateway error is returned.
type SendInvoiceToAuthorityCommandHandler struct {
	runner    invoiceStepRunner
	authority ports.FiscalAuthorityClient
}

func NewSendInvoiceToAuthorityCommandHandler(
	uowFactory InvoiceUoWFactory,
	locker ports.Locker,
	authority ports.FiscalAuthorityClient,
	publisher EventPublisher,
) SendInvoiceToAuthorityCommandHandler {
	return SendInvoiceToAuthorityCommandHandler{
		runner:    invoiceStepRunner{uowFactory: uowFactory, locker: locker, publisher: publisher},
		authority: authority,
	}
}

func (h SendInvoiceToAuthorityCommandHandler) Handle(ctx context.Context, cmd SendInvoiceToAuthorityCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.runner.run(ctx, cmd.InvoiceID(), invoiceStep{
		name: StepSendToAuthority,
		pending: func(inv *invoice.Invoice) (bool, error) {
			if inv.Status() == invoice.PendingIssue {
				return false, errs.NewInvalidTransitionError("invoice", inv.Status(), invoice.Sent)
			}
			return inv.NeedsSending(), nil
		},
		perform: func(ctx context.Context, inv *invoice.Invoice) (func(*invoice.Invoice, time.Time) error, error) {
			trackingID, err := h.authority.SendDocument(ctx, inv.Number(), inv.Document())
			if err != nil {
				if !errors.Is(err, errs.ErrGateway) {
					err = errs.NewGatewayError("send invoice "+inv.Number(), err)
				}
				return nil, err
			}
			return func(inv *invoice.Invoice, at time.Time) error {
				return inv.MarkSent(trackingID, at)
			}, nil
		},
	})
}

// RenderInvoiceArtifactCommandHandler renders the invoice PDF once.
type RenderInvoiceArtifactCommandHandler struct {
	runner   invoiceStepRunner
	renderer ports.DocumentRenderer
}

func NewRenderInvoiceArtifactCommandHandler(
	uowFactory InvoiceUoWFactory,
	locker ports.Locker,
	renderer ports.DocumentRenderer,
	publisher EventPublisher,
) RenderInvoiceArtifactCommandHandler {
	return RenderInvoiceArtifactCommandHandler{
		runner:   invoiceStepRunner{uowFactory: uowFactory, locker: locker, publisher: publisher},
		renderer: renderer,
	}
}

func (h RenderInvoiceArtifactCommandHandler) Handle(ctx context.Context, cmd RenderInvoiceArtifactCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.runner.run(ctx, cmd.InvoiceID(), invoiceStep{
		name: StepRenderArtifact,
		pending: func(inv *invoice.Invoice) (bool, error) {
			return inv.NeedsArtifact(), nil
		},
		perform: func(_ context.Context, inv *invoice.Invoice) (func(*invoice.Invoice, time.Time) error, error) {
			pdf, err := h.renderer.RenderPDF(inv)
			if err != nil {
				return nil, err
			}
			return func(inv *invoice.Invoice, at time.Time) error {
				return inv.AttachArtifact(pdf, at)
			}, nil
		},
	})
}

// ProcessInvoicePipelineCommandHandler runs emit, send and render. Only a
// failed emit holds back send; render needs nothing but the invoice data and
// runs whatever happened to send. Completed steps are no-ops, so the command
// can be repeated until the invoice is sent and rendered.
type ProcessInvoicePipelineCommandHandler struct {
	emit   EmitInvoiceXMLCommandHandler
	send   SendInvoiceToAuthorityCommandHandler
	render RenderInvoiceArtifactCommandHandler
}

func NewProcessInvoicePipelineCommandHandler(
	emit EmitInvoiceXMLCommandHandler,
	send SendInvoiceToAuthorityCommandHandler,
	render RenderInvoiceArtifactCommandHandler,
) ProcessInvoicePipelineCommandHandler {
	return ProcessInvoicePipelineCommandHandler{emit: emit, send: send, render: render}
}

func (h ProcessInvoicePipelineCommandHandler) Handle(ctx context.Context, cmd ProcessInvoicePipelineCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	var sendErr error
	emitErr := h.emit.Handle(ctx, EmitInvoiceXMLCommand{cmd.invoiceCommand})
	if emitErr == nil {
		sendErr = h.send.Handle(ctx, SendInvoiceToAuthorityCommand{cmd.invoiceCommand})
	}
	renderErr := h.render.Handle(ctx, RenderInvoiceArtifactCommand{cmd.invoiceCommand})

	return errors.Join(emitErr, sendErr, renderErr)
}
