package commands

import (
	"errors"
	"math"

	"checkout/internal/pkg/errs"
	"checkout/internal/pkg/guard"
)

var ErrReplayWebhookEventsCommandIsNotConstructed = errors.New(
	"ReplayWebhookEventsCommand must be created via NewReplayWebhookEventsCommand constructor",
)

// ReplayWebhookEventsCommand re-processes failed webhook events.
type ReplayWebhookEventsCommand struct { //nolint:recvcheck //using for validation
	maxAttempts int
	batchSize   int

	guard guard.ConstructorGuard
}

// NewReplayWebhookEventsCommand skips events that were already attempted
// maxAttempts times and handles at most batchSize events.
func NewReplayWebhookEventsCommand(maxAttempts, batchSize int) (ReplayWebhookEventsCommand, error) {
	var problems []error
	if maxAttempts <= 0 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("max attempts", maxAttempts, 1, math.MaxInt))
	}
	if batchSize <= 0 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("batch size", batchSize, 1, math.MaxInt))
	}
	if len(problems) > 0 {
		return ReplayWebhookEventsCommand{}, errors.Join(problems...)
	}

	return ReplayWebhookEventsCommand{
		maxAttempts: maxAttempts,
		batchSize:   batchSize,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c ReplayWebhookEventsCommand) Validate() error {
	return c.guard.Validate(ErrReplayWebhookEventsCommandIsNotConstructed)
}

func (c ReplayWebhookEventsCommand) MaxAttempts() int {
	return c.maxAttempts
}

func (c ReplayWebhookEventsCommand) BatchSize() int {
	return c.batchSize
}
