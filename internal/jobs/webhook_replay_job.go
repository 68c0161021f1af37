package jobs

import (
	"context"

	"checkout/internal/core/application/usecases/commands"

	"go.uber.org/zap"
)

type WebhookReplayHandler interface {
	Handle(ctx context.Context, cmd commands.ReplayWebhookEventsCommand) (commands.ReplayResult, error)
}

// WebhookReplayJob re-processes webhook events whose processing failed, up to
// maxAttempts tries per event.
type WebhookReplayJob struct {
	handler     WebhookReplayHandler
	schedule    string
	maxAttempts int
	batchSize   int
	logger      *zap.Logger
}

func NewWebhookReplayJob(
	handler WebhookReplayHandler,
	schedule string,
	maxAttempts, batchSize int,
	logger *zap.Logger,
) *WebhookReplayJob {
	return &WebhookReplayJob{
		handler:     handler,
		schedule:    schedule,
		maxAttempts: maxAttempts,
		batchSize:   batchSize,
		logger:      logger.Named("webhook-replay-job"),
	}
}

func (j *WebhookReplayJob) Name() string     { return "webhook-replay" }
func (j *WebhookReplayJob) Schedule() string { return j.schedule }

func (j *WebhookReplayJob) Run(ctx context.Context) error {
	cmd, err := commands.NewReplayWebhookEventsCommand(j.maxAttempts, j.batchSize)
	if err != nil {
		return err
	}

	result, err := j.handler.Handle(ctx, cmd)
	if result.Attempted > 0 {
		j.logger.Info("webhook events replayed",
			zap.Int("attempted", result.Attempted),
			zap.Int("processed", result.Processed),
			zap.Int("failed", result.Failed),
		)
	}

	return err
}
