// Package services provides pure domain policies that decide what should happen
// across aggregates without performing any I/O.
//
// The package includes:
//   - PaymentSettlementPolicy: decides whether a payment update settles its order
//   - OrderTransitionPolicy: decides whether an actor may move an order along an edge
//
// Handlers load aggregates, ask a policy, and apply the answer inside their unit
// of work, so the rules can be tested without a database or a gateway.
package services
