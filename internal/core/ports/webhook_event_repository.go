package ports

import (
	"context"

	"checkout/internal/core/domain/model/webhook"
)

// WebhookEventRepository stores every webhook call received from the gateway.
type WebhookEventRepository interface {
	Add(ctx context.Context, e *webhook.Event) error
	Update(ctx context.Context, e *webhook.Event) error

	// ListRetryable returns failed events that were attempted fewer than
	// maxAttempts times, oldest first.
	ListRetryable(ctx context.Context, maxAttempts, limit int) ([]*webhook.Event, error)
}
