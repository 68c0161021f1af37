// Package kernel provides the shared domain primitives of the checkout service.
//
// The package includes:
//   - UUID: identifier value object used by every aggregate
//   - Amount helpers: decimal money rules (two decimals, never negative)
//   - Actor and CapabilitySet: who performs an operation and what they may do
//   - EntityRef: a tagged reference (entity kind + id) used by notifications
//   - DomainEvent: the contract aggregates use to announce state changes
//
// Value objects are immutable and safe for concurrent use.
package kernel
