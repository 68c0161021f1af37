package commands

import (
	"errors"

	"checkout/internal/pkg/errs"
	"checkout/internal/pkg/guard"
)

// MaxWebhookBodySize is the largest notification body that is processed.
// Transports should read at most one byte more so an oversized body is
// recognised instead of silently cut.
const MaxWebhookBodySize = 1 << 20

var ErrApplyPaymentWebhookCommandIsNotConstructed = errors.New(
	"ApplyPaymentWebhookCommand must be created via NewApplyPaymentWebhookCommand constructor",
)

// ApplyPaymentWebhookCommand carries the raw body of a gateway notification.
type ApplyPaymentWebhookCommand struct { //nolint:recvcheck //using for validation
	body []byte

	guard guard.ConstructorGuard
}

// NewApplyPaymentWebhookCommand keeps at most MaxWebhookBodySize+1 bytes of
// body; anything longer is reported by Oversized.
func NewApplyPaymentWebhookCommand(body []byte) (ApplyPaymentWebhookCommand, error) {
	if len(body) == 0 {
		return ApplyPaymentWebhookCommand{}, errs.NewValueIsRequiredError("webhook body")
	}

	return ApplyPaymentWebhookCommand{
		body:  append([]byte(nil), body[:min(len(body), MaxWebhookBodySize+1)]...),
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c ApplyPaymentWebhookCommand) Validate() error {
	return c.guard.Validate(ErrApplyPaymentWebhookCommandIsNotConstructed)
}

func (c ApplyPaymentWebhookCommand) Body() []byte {
	return c.body
}

// Oversized reports whether the notification exceeded MaxWebhookBodySize, in
// which case Body holds only its beginning.
func (c ApplyPaymentWebhookCommand) Oversized() bool {
	return len(c.body) > MaxWebhookBodySize
}
