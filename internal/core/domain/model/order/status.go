package order

import (
	"fmt"

	"checkout/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	Pending ──> Paid ──> Preparation ──┬──> ReadyForPickup ──┬──> Delivered
//	   │          │          │         └──> InShipping ──────┘
//	   │          │          │                  │        │
//	   └──────────┴──────────┴──────────────────┴────────┴──> Cancelled
//
// Delivered and Cancelled are terminal.
type Status int

const (
	// Unknown (0) catches uninitialized values.
	Unknown Status = iota

	// Pending is the initial status; the order waits for payment.
	Pending

	// Paid means the payment gateway approved a transaction for the order.
	Paid

	// Preparation means the warehouse is picking the items.
	Preparation

	// ReadyForPickup means a pickup order is waiting at the store.
	ReadyForPickup

	// InShipping means a shipping order left the warehouse.
	InShipping

	// Delivered is terminal.
	Delivered

	// Cancelled is terminal.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "unknown",
		Pending:        "pending",
		Paid:           "paid",
		Preparation:    "preparation",
		ReadyForPickup: "ready_pickup",
		InShipping:     "in_shipping",
		Delivered:      "delivered",
		Cancelled:      "cancelled",
	}
}

// getTransitions returns the lifecycle graph. A status absent from the map, or
// mapped to an empty set, has no outgoing edges.
func getTransitions() map[Status][]Status {
	return map[Status][]Status{
		Pending:        {Paid, Cancelled},
		Paid:           {Preparation, Cancelled},
		Preparation:    {ReadyForPickup, InShipping, Cancelled},
		ReadyForPickup: {Delivered, Cancelled},
		InShipping:     {Delivered, Cancelled},
		Delivered:      {},
		Cancelled:      {},
	}
}

// ParseStatus converts the persisted/API form ("ready_pickup") into a Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != Unknown && name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid order status", s))
}

// Validate returns an error for Unknown and out-of-range values.
func (s Status) Validate() error {
	if _, ok := getTransitions()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String implements fmt.Stringer and is safe for invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// CanTransitionTo reports whether target is a direct successor of s in the graph.
func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range getTransitions()[s] {
		if next == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no transition leaves s.
func (s Status) IsTerminal() bool {
	next, ok := getTransitions()[s]
	return ok && len(next) == 0
}

// TransitionTo validates the edge s -> target and returns target.
//
// Returns:
//   - target if the edge exists
//   - *errs.InvalidTransitionError otherwise
//
// Example:
//
//	next, err := order.Pending.TransitionTo(order.Preparation)
//	// err: invalid transition: order cannot move from pending to preparation
func (s Status) TransitionTo(target Status) (Status, error) {
	if !s.CanTransitionTo(target) {
		return s, errs.NewInvalidTransitionError("order", s, target)
	}
	return target, nil
}
