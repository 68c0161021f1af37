package ports

import (
	"context"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/payment"
)

// TransactionRepository defines the persistence contract for payment
// transactions. The preference id is unique.
type TransactionRepository interface {
	Add(ctx context.Context, tx *payment.Transaction) error
	Update(ctx context.Context, tx *payment.Transaction) error
	Get(ctx context.Context, id kernel.UUID) (*payment.Transaction, error)

	// GetByPreferenceID returns an ObjectNotFound error for unknown preferences.
	GetByPreferenceID(ctx context.Context, preferenceID string) (*payment.Transaction, error)

	// GetByPreferenceIDForUpdate is GetByPreferenceID with a row lock.
	GetByPreferenceIDForUpdate(ctx context.Context, preferenceID string) (*payment.Transaction, error)
}
