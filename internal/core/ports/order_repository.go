package ports

import (
	"context"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Orders are never deleted.
type OrderRepository interface {
	// Add persists a new order with its items and change log.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists the status, timestamps and any new change log entries.
	// Existing change log entries are never rewritten.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by id.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order by id and locks its row until the
	// surrounding transaction ends.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByNumber retrieves an order by its sequential number.
	GetByNumber(ctx context.Context, number string) (*order.Order, error)

	// NextNumber allocates the next order number inside the current transaction.
	// Numbers are never reused, even when the transaction rolls back later.
	NextNumber(ctx context.Context) (string, error)
}
