package ports

import (
	"context"

	"checkout/internal/core/domain/model/payment"

	"github.com/shopspring/decimal"
)

// PreferenceItem is one line of a gateway checkout preference.
type PreferenceItem struct {
	Title     string
	Quantity  int
	UnitPrice decimal.Decimal
}

// PreferenceRequest asks the gateway for a hosted checkout.
type PreferenceRequest struct {
	Items []PreferenceItem
	// ExternalReference ties the preference back to the order number.
	ExternalReference string
	PayerEmail        string
	SuccessURL        string
	FailureURL        string
	PendingURL        string
	NotificationURL   string
}

// Preference is the gateway's answer to a PreferenceRequest.
type Preference struct {
	PreferenceID string
	CheckoutURL  string
}

// PaymentGatewayClient talks to the external payment gateway. Every failure,
// including timeouts, is reported as a Gateway error.
type PaymentGatewayClient interface {
	CreatePreference(ctx context.Context, req PreferenceRequest) (Preference, error)

	// FetchPayment returns the gateway's authoritative record for paymentID.
	FetchPayment(ctx context.Context, paymentID string) (payment.CanonicalPayment, error)
}
