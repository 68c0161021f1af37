package commands

import (
	"context"

	"checkout/internal/core/domain/model/invoice"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/order"
	"checkout/internal/core/ports"

	"go.uber.org/zap"
)

// Notification template keys understood by the notification subsystem.
const (
	TemplateOrder       = "order"
	TemplatePayment     = "payment"
	TemplatePreparation = "preparation"
	TemplateInvoice     = "invoice"
)

// EventDispatcher maps committed domain events to notifications. Publishing is
// fire-and-forget: failures are logged and dropped.
type EventDispatcher struct {
	publisher ports.NotificationPublisher
	logger    *zap.Logger
}

func NewEventDispatcher(publisher ports.NotificationPublisher, logger *zap.Logger) EventDispatcher {
	return EventDispatcher{
		publisher: publisher,
		logger:    logger.Named("event-dispatcher"),
	}
}

func (d EventDispatcher) Publish(ctx context.Context, events []kernel.DomainEvent) {
	for _, event := range events {
		n, ok := toNotification(event)
		if !ok {
			continue
		}

		if err := d.publisher.Publish(ctx, n); err != nil {
			d.logger.Warn("failed to publish notification",
				zap.String("event", n.Event),
				zap.Stringer("subject", n.Subject),
				zap.Error(err),
			)
		}
	}
}

func toNotification(event kernel.DomainEvent) (ports.Notification, bool) {
	n := ports.Notification{
		Event:   event.EventName(),
		Subject: event.Subject(),
	}

	switch e := event.(type) {
	case order.Created:
		n.RecipientID = e.OwnerID
		n.TemplateKey = TemplateOrder
		n.Context = map[string]string{
			"number": e.Number,
			"status": order.Pending.String(),
			"total":  e.Total.StringFixed(2),
		}
	case order.StatusChanged:
		n.RecipientID = e.OwnerID
		n.TemplateKey = templateForStatus(e.To)
		n.Context = map[string]string{
			"number": e.Number,
			"from":   e.From.String(),
			"status": e.To.String(),
		}
	case invoice.Generated:
		n.RecipientID = e.CustomerID
		n.TemplateKey = TemplateInvoice
		n.Context = map[string]string{
			"number": e.Number,
			"total":  e.Total.StringFixed(2),
		}
	default:
		return ports.Notification{}, false
	}

	return n, true
}

func templateForStatus(s order.Status) string {
	switch s {
	case order.Paid:
		return TemplatePayment
	case order.Preparation:
		return TemplatePreparation
	default:
		return TemplateOrder
	}
}
