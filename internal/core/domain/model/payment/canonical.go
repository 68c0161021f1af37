package payment

import (
	"strings"

	"checkout/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// CanonicalPayment is the gateway's authoritative payment record, fetched by id.
// Webhook bodies are never turned into one.
type CanonicalPayment struct {
	PaymentID       string
	PreferenceID    string
	MerchantOrderID string
	Status          Status
	Amount          decimal.Decimal
	// Raw is the gateway response body kept for audit.
	Raw []byte
}

func (c CanonicalPayment) Validate() error {
	if strings.TrimSpace(c.PaymentID) == "" {
		return errs.NewValueIsRequiredError("payment id")
	}
	if strings.TrimSpace(c.PreferenceID) == "" {
		return errs.NewValueIsRequiredError("preference id")
	}
	return c.Status.Validate()
}
