package payment

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var ErrTransactionIsNotConstructed = errors.New("Transaction must be created via NewTransaction constructor")

// Transaction tracks one gateway payment preference created for an order.
// An order may own several transactions (payment retries). After creation the
// transaction changes only through ApplyCanonical and MarkSettled.
type Transaction struct {
	id              kernel.UUID
	orderID         kernel.UUID
	preferenceID    string
	checkoutURL     string
	paymentID       string
	merchantOrderID string
	status          Status
	amount          decimal.Decimal
	gatewayAmount   *decimal.Decimal
	rawPayload      []byte
	settledAt       *time.Time
	createdAt       time.Time
	updatedAt       time.Time

	isConstructed bool
}

// NewTransaction records a preference the gateway confirmed. amount must be the
// order total at creation time.
func NewTransaction(
	id kernel.UUID,
	orderID kernel.UUID,
	preferenceID string,
	checkoutURL string,
	amount decimal.Decimal,
	at time.Time,
) (*Transaction, error) {
	var problems []error
	if err := id.Validate(); err != nil {
		problems = append(problems, err)
	}
	if err := orderID.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("order id", err))
	}
	if strings.TrimSpace(preferenceID) == "" {
		problems = append(problems, errs.NewValueIsRequiredError("preference id"))
	}
	if err := kernel.ValidatePositiveAmount("amount", amount); err != nil {
		problems = append(problems, err)
	}
	if len(problems) > 0 {
		return nil, errors.Join(problems...)
	}

	return &Transaction{
		id:            id,
		orderID:       orderID,
		preferenceID:  preferenceID,
		checkoutURL:   checkoutURL,
		status:        Pending,
		amount:        kernel.RoundMoney(amount),
		createdAt:     at,
		updatedAt:     at,
		isConstructed: true,
	}, nil
}

// State is the persisted form used by RestoreTransaction.
type State struct {
	ID              kernel.UUID
	OrderID         kernel.UUID
	PreferenceID    string
	CheckoutURL     string
	PaymentID       string
	MerchantOrderID string
	Status          Status
	Amount          decimal.Decimal
	GatewayAmount   *decimal.Decimal
	RawPayload      []byte
	SettledAt       *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func RestoreTransaction(state State) (*Transaction, error) {
	if err := errors.Join(state.ID.Validate(), state.OrderID.Validate(), state.Status.Validate()); err != nil {
		return nil, err
	}
	return &Transaction{
		id:              state.ID,
		orderID:         state.OrderID,
		preferenceID:    state.PreferenceID,
		checkoutURL:     state.CheckoutURL,
		paymentID:       state.PaymentID,
		merchantOrderID: state.MerchantOrderID,
		status:          state.Status,
		amount:          state.Amount,
		gatewayAmount:   state.GatewayAmount,
		rawPayload:      state.RawPayload,
		settledAt:       state.SettledAt,
		createdAt:       state.CreatedAt,
		updatedAt:       state.UpdatedAt,
		isConstructed:   true,
	}, nil
}

func (t *Transaction) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrTransactionIsNotConstructed
	}
	return nil
}

func (t *Transaction) ID() kernel.UUID { return t.id }
func (t *Transaction) OrderID() kernel.UUID { return t.orderID }
func (t *Transaction) PreferenceID() string { return t.preferenceID }
func (t *Transaction) CheckoutURL() string { return t.checkoutURL }
func (t *Transaction) PaymentID() string { return t.paymentID }
func (t *Transaction) MerchantOrderID() string { return t.merchantOrderID }
func (t *Transaction) Status() Status { return t.status }
func (t *Transaction) Amount() decimal.Decimal { return t.amount }
func (t *Transaction) RawPayload() []byte { return t.rawPayload }
func (t *Transaction) SettledAt() *time.Time { return t.settledAt }
func (t *Transaction) CreatedAt() time.Time { return t.createdAt }
func (t *Transaction) UpdatedAt() time.Time { return t.updatedAt }

// GatewayAmount is the amount reported by the last canonical record, nil until
// one was applied.
func (t *Transaction) GatewayAmount() *decimal.Decimal { return t.gatewayAmount }

// IsSettled reports whether the approval side effects (order paid, invoice
// generated) were already applied for this transaction.
func (t *Transaction) IsSettled() bool {
	return t.settledAt != nil
}

// ApplyCanonical copies the gateway's authoritative record onto the transaction.
// The record must belong to this transaction's preference. Applying the same
// record twice leaves the transaction unchanged apart from updatedAt.
func (t *Transaction) ApplyCanonical(c CanonicalPayment, at time.Time) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.PreferenceID != t.preferenceID {
		return errs.NewValueIsInvalidErrorWithCause(
			"preference id",
			fmt.Errorf("payment %s belongs to preference %s, not %s", c.PaymentID, c.PreferenceID, t.preferenceID),
		)
	}

	amount := kernel.RoundMoney(c.Amount)
	t.paymentID = c.PaymentID
	t.merchantOrderID = c.MerchantOrderID
	t.status = c.Status
	t.gatewayAmount = &amount
	t.rawPayload = append([]byte(nil), c.Raw...)
	t.updatedAt = at
	return nil
}

// AmountMatches reports whether the gateway charged exactly the amount the
// preference was created for.
func (t *Transaction) AmountMatches() bool {
	return t.gatewayAmount != nil && t.gatewayAmount.Equal(t.amount)
}

// MarkSettled records that approval side effects were applied. It can happen
// once, and only for an approved transaction.
func (t *Transaction) MarkSettled(at time.Time) error {
	if t.status != Approved {
		return errs.NewInvalidTransitionError("payment transaction", t.status, Approved)
	}
	if t.settledAt != nil {
		return errs.NewValueIsInvalidErrorWithCause("settled at", errors.New("transaction is already settled"))
	}
	settled := at
	t.settledAt = &settled
	t.updatedAt = at
	return nil
}
