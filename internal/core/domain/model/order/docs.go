// Package order implements the Order aggregate of the checkout service: an order
// created from a priced cart snapshot that moves through a fixed lifecycle.
//
// The package includes:
//   - Order: the aggregate root holding items, delivery data, amounts and history
//   - Status: the lifecycle state machine
//   - DeliveryInfo: delivery type, contact data and shipping address
//   - Item: one priced line of the cart snapshot
//   - Change: an entry of the append-only change log
//   - Created, StatusChanged: domain events
//
// Key business rules:
//   - An order needs at least one item; shipping orders need a complete address
//   - Total is always Subtotal + ShippingCost and is never stored independently
//   - Status changes only along the lifecycle graph; delivered and cancelled are final
//   - Every status change stamps its timestamp and appends a change log entry
//   - Orders are never deleted
package order
