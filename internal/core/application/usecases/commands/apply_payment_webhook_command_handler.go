package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"checkout/internal/core/domain/model/webhook"
	"checkout/internal/core/ports"
	"checkout/internal/pkg/errs"
)

// ApplyPaymentWebhookCommandHandler records a webhook call and processes it.
//
// Example:
//
//	cmd, _ := NewApplyPaymentWebhookCommand(body)
//	disposition, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, ErrWebhookNotRecorded) {
//	    // ask the gateway to retry
//	}
//	// any other outcome is acknowledged; disposition and err are for logs
type ApplyPaymentWebhookCommandHandler struct {
	uowFactory PaymentUoWFactory
	ids        ports.IDGenerator
	processor  *PaymentWebhookProcessor
}

// ErrWebhookNotRecorded means the event could not be stored and was not
// processed.
var ErrWebhookNotRecorded = errors.New("webhook event was not recorded")

func NewApplyPaymentWebhookCommandHandler(
	uowFactory PaymentUoWFactory,
	ids ports.IDGenerator,
	processor *PaymentWebhookProcessor,
) ApplyPaymentWebhookCommandHandler {
	return ApplyPaymentWebhookCommandHandler{
		uowFactory: uowFactory,
		ids:        ids,
		processor:  processor,
	}
}

// Handle stores the event before anything else, processes it and stores the
// outcome. An oversized body is stored as received and rejected unprocessed.
func (h ApplyPaymentWebhookCommandHandler) Handle(
	ctx context.Context,
	cmd ApplyPaymentWebhookCommand,
) (webhook.Disposition, error) {
	if err := cmd.Validate(); err != nil {
		return webhook.Rejected, err
	}

	event, err := webhook.NewEvent(h.ids.NextID(), cmd.Body(), time.Now().UTC())
	if err != nil {
		return webhook.Rejected, err
	}

	eventRepo := h.uowFactory.Create().WebhookEventRepository()
	if err = eventRepo.Add(ctx, event); err != nil {
		return webhook.Failed, errors.Join(ErrWebhookNotRecorded, err)
	}

	var (
		disposition webhook.Disposition
		processErr  error
	)
	if cmd.Oversized() {
		disposition = webhook.Rejected
		processErr = errs.NewValueIsInvalidErrorWithCause(
			"webhook body", fmt.Errorf("larger than %d bytes", MaxWebhookBodySize),
		)
	} else {
		disposition, processErr = h.processor.Process(ctx, event)
	}
	event.Resolve(disposition, processErr, time.Now().UTC())

	if err = eventRepo.Update(ctx, event); err != nil {
		return disposition, errors.Join(processErr, err)
	}

	return disposition, processErr
}
