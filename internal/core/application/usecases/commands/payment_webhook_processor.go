package commands

import (
	"context"
	"errors"
	"time"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/order"
	"checkout/internal/core/domain/model/payment"
	"checkout/internal/core/domain/model/webhook"
	"checkout/internal/core/domain/services"
	"checkout/internal/core/ports"
	"checkout/internal/pkg/errs"
)

// PaymentWebhookProcessor applies one recorded webhook event. It is shared by
// the webhook endpoint and the replay job.
//
// The webhook body is untrusted: only the notification type and the payment id
// are read from it. Everything else comes from the gateway's canonical record.
type PaymentWebhookProcessor struct {
	uowFactory PaymentUoWFactory
	gateway    ports.PaymentGatewayClient
	locker     ports.Locker
	invoices   InvoiceGenerator
	publisher  EventPublisher
	policy     services.PaymentSettlementPolicy
}

func NewPaymentWebhookProcessor(
	uowFactory PaymentUoWFactory,
	gateway ports.PaymentGatewayClient,
	locker ports.Locker,
	invoices InvoiceGenerator,
	publisher EventPublisher,
) *PaymentWebhookProcessor {
	return &PaymentWebhookProcessor{
		uowFactory: uowFactory,
		gateway:    gateway,
		locker:     locker,
		invoices:   invoices,
		publisher:  publisher,
		policy:     services.NewPaymentSettlementPolicy(),
	}
}

// Process handles event and reports how it was disposed of. The returned error
// explains every disposition other than Processed and Ignored.
func (p *PaymentWebhookProcessor) Process(ctx context.Context, event *webhook.Event) (webhook.Disposition, error) {
	if err := event.Validate(); err != nil {
		return webhook.Rejected, err
	}

	n, err := webhook.ParseNotification(event.Body())
	if err != nil {
		return webhook.Rejected, err
	}
	event.Identify(n)

	if n.Type != webhook.PaymentNotificationType {
		return webhook.Ignored, nil
	}
	if n.ExternalID == "" {
		return webhook.Rejected, errs.NewValueIsRequiredError("payment id")
	}

	canonical, err := p.gateway.FetchPayment(ctx, n.ExternalID)
	if err != nil {
		if !errors.Is(err, errs.ErrGateway) {
			err = errs.NewGatewayError("fetch payment", err)
		}
		return webhook.Failed, err
	}

	if err = p.settle(ctx, canonical); err != nil {
		return dispositionFor(err), err
	}

	return webhook.Processed, nil
}

// dispositionFor classifies a settlement error. Conflicts that a retry cannot
// fix are Rejected and left for an operator.
func dispositionFor(err error) webhook.Disposition {
	switch {
	case errors.Is(err, errs.ErrUnknownTransaction):
		return webhook.UnknownTransaction
	case errs.IsValidation(err),
		errors.Is(err, errs.ErrInvalidTransition),
		errors.Is(err, errs.ErrDuplicateInvoice):
		return webhook.Rejected
	default:
		return webhook.Failed
	}
}

// settle applies canonical to its transaction and, on the first approval,
// marks the order paid and generates the invoice in the same transaction.
//
// A conflict found while settling (amount mismatch, order no longer payable,
// invoice already present) does not roll back the transaction update: the
// gateway state is stored, settlement is skipped and the conflict is returned.
func (p *PaymentWebhookProcessor) settle(ctx context.Context, canonical payment.CanonicalPayment) error {
	if err := canonical.Validate(); err != nil {
		return err
	}

	uow := p.uowFactory.Create()

	known, err := uow.TransactionRepository().GetByPreferenceID(ctx, canonical.PreferenceID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return errs.NewUnknownTransactionError(canonical.PreferenceID)
	}
	if err != nil {
		return err
	}

	releaseTx, err := p.locker.Lock(ctx, transactionLockKey(canonical.PreferenceID))
	if err != nil {
		return err
	}
	defer releaseTx()

	releaseOrder, err := p.locker.Lock(ctx, orderLockKey(known.OrderID()))
	if err != nil {
		return err
	}
	defer releaseOrder()

	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	txRepo := uow.TransactionRepository()
	tx, err := txRepo.GetByPreferenceIDForUpdate(ctx, canonical.PreferenceID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if err = tx.ApplyCanonical(canonical, now); err != nil {
		return err
	}

	var conflict error
	decision, err := p.policy.Decide(tx)
	switch decision {
	case services.SettlementApply:
		conflict, err = p.apply(ctx, uow, tx, now)
		if err != nil {
			return err
		}
	case services.SettlementAmountMismatch:
		conflict = err
	case services.SettlementNone:
		if err != nil {
			return err
		}
	}

	if err = txRepo.Update(ctx, tx); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	p.publisher.Publish(ctx, uow.CollectEvents())
	return conflict
}

// apply performs the settlement side effects. It returns a conflict when the
// settlement has to be skipped, or err when the whole unit of work must fail.
func (p *PaymentWebhookProcessor) apply(
	ctx context.Context,
	uow PaymentUoW,
	tx *payment.Transaction,
	now time.Time,
) (conflict error, err error) {
	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, tx.OrderID())
	if err != nil {
		return nil, err
	}

	if err = o.Transition(order.Paid, kernel.SystemActor().ID(), "payment "+tx.PaymentID()+" approved", now); err != nil {
		if errors.Is(err, errs.ErrInvalidTransition) {
			return err, nil
		}
		return nil, err
	}

	if _, err = p.invoices.Generate(ctx, uow.InvoiceRepository(), o, now); err != nil {
		if errors.Is(err, errs.ErrDuplicateInvoice) {
			return err, nil
		}
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = tx.MarkSettled(now); err != nil {
		return nil, err
	}

	return nil, nil
}
