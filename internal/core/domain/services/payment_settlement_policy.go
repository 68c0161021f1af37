package services

import (
	"fmt"

	"checkout/internal/core/domain/model/payment"
	"checkout/internal/pkg/errs"
)

// SettlementDecision is the outcome of PaymentSettlementPolicy.Decide.
type SettlementDecision int

const (
	// SettlementNone means the update carries no side effects: the payment is not
	// approved, or its approval was already settled.
	SettlementNone SettlementDecision = iota

	// SettlementApply means the order must become paid and get its invoice, and the
	// transaction must be marked settled, all in the current unit of work.
	SettlementApply

	// SettlementAmountMismatch means the gateway approved a different amount than
	// the transaction was created for. Nothing is settled; the mismatch is kept for
	// operator follow-up.
	SettlementAmountMismatch
)

func (d SettlementDecision) String() string {
	switch d {
	case SettlementApply:
		return "apply"
	case SettlementAmountMismatch:
		return "amount_mismatch"
	default:
		return "none"
	}
}

// PaymentSettlementPolicy decides the side effects of applying a canonical
// payment record to a transaction.
//
// Business rules:
//   - Only an approved transaction can settle
//   - A transaction settles at most once; re-delivered webhooks converge to the
//     same state without repeating side effects
//   - The approved amount must equal the transaction amount exactly
//
// Example usage:
//
//	policy := services.NewPaymentSettlementPolicy()
//	if err := tx.ApplyCanonical(canonical, now); err != nil {
//	    return err
//	}
//	decision, err := policy.Decide(tx)
//	if decision == services.SettlementApply {
//	    // transition the order to paid, generate the invoice, tx.MarkSettled(now)
//	}
type PaymentSettlementPolicy struct{}

func NewPaymentSettlementPolicy() PaymentSettlementPolicy {
	return PaymentSettlementPolicy{}
}

// Decide must be called after the canonical record was applied to tx.
//
// Returns:
//   - SettlementDecision: what the caller has to do
//   - error: a ValueIsInvalid error describing the mismatch when the decision is
//     SettlementAmountMismatch, or a validation error for a malformed transaction
func (p PaymentSettlementPolicy) Decide(tx *payment.Transaction) (SettlementDecision, error) {
	if err := tx.Validate(); err != nil {
		return SettlementNone, err
	}

	if tx.Status() != payment.Approved || tx.IsSettled() {
		return SettlementNone, nil
	}

	if !tx.AmountMatches() {
		reported := "none"
		if tx.GatewayAmount() != nil {
			reported = tx.GatewayAmount().StringFixed(2)
		}
		return SettlementAmountMismatch, errs.NewValueIsInvalidErrorWithCause(
			"payment amount",
			fmt.Errorf("gateway approved %s for preference %s, expected %s",
				reported, tx.PreferenceID(), tx.Amount().StringFixed(2)),
		)
	}

	return SettlementApply, nil
}
