package notification

import (
	"context"

	"checkout/internal/core/ports"

	"go.uber.org/zap"
)

// LogPublisher only logs notifications. It is used when no redis is configured.
type LogPublisher struct {
	logger *zap.Logger
}

func NewLogPublisher(logger *zap.Logger) *LogPublisher {
	return &LogPublisher{logger: logger.Named("notifications")}
}

func (p *LogPublisher) Publish(_ context.Context, n ports.Notification) error {
	msg := toMessage(n)
	p.logger.Info("notification",
		zap.String("event", msg.Event),
		zap.String("recipient_id", msg.RecipientID),
		zap.String("template", msg.Template),
		zap.String("subject_kind", msg.Subject.Kind),
		zap.String("subject_id", msg.Subject.ID),
		zap.Any("context", msg.Context),
	)
	return nil
}
