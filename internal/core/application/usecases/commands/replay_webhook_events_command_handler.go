package commands

import (
	"context"
	"errors"
	"time"

	"checkout/internal/core/domain/model/webhook"
)

// ReplayResult summarizes one replay run.
type ReplayResult struct {
	Attempted int
	Processed int
	Failed    int
}

// ReplayWebhookEventsCommandHandler retries events whose processing failed
// for a transient reason, such as a gateway timeout.
type ReplayWebhookEventsCommandHandler struct {
	uowFactory PaymentUoWFactory
	processor  *PaymentWebhookProcessor
}

func NewReplayWebhookEventsCommandHandler(
	uowFactory PaymentUoWFactory,
	processor *PaymentWebhookProcessor,
) ReplayWebhookEventsCommandHandler {
	return ReplayWebhookEventsCommandHandler{
		uowFactory: uowFactory,
		processor:  processor,
	}
}

// Handle processes every retryable event of the batch even when some fail.
// Only storage errors are returned.
func (h ReplayWebhookEventsCommandHandler) Handle(
	ctx context.Context,
	cmd ReplayWebhookEventsCommand,
) (ReplayResult, error) {
	var result ReplayResult
	if err := cmd.Validate(); err != nil {
		return result, err
	}

	eventRepo := h.uowFactory.Create().WebhookEventRepository()
	events, err := eventRepo.ListRetryable(ctx, cmd.MaxAttempts(), cmd.BatchSize())
	if err != nil {
		return result, err
	}

	var storeErrs []error
	for _, event := range events {
		if ctx.Err() != nil {
			break
		}

		result.Attempted++
		disposition, processErr := h.processor.Process(ctx, event)
		event.Resolve(disposition, processErr, time.Now().UTC())
		if disposition == webhook.Failed {
			result.Failed++
		} else {
			result.Processed++
		}

		if err = eventRepo.Update(ctx, event); err != nil {
			storeErrs = append(storeErrs, err)
		}
	}

	return result, errors.Join(storeErrs...)
}
