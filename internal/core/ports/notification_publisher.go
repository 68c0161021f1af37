package ports

import (
	"context"

	"checkout/internal/core/domain/model/kernel"
)

// Notification is a fire-and-forget message for the notification subsystem.
type Notification struct {
	Event       string
	RecipientID kernel.UUID
	TemplateKey string
	Subject     kernel.EntityRef
	Context     map[string]string
}

// NotificationPublisher hands notifications to the delivery subsystem. Callers
// log failures and never fail the business operation because of them.
type NotificationPublisher interface {
	Publish(ctx context.Context, n Notification) error
}
