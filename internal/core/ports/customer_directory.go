package ports

import (
	"context"

	"checkout/internal/core/domain/model/kernel"
)

// Customer is the billing profile of an order owner.
type Customer struct {
	ID        kernel.UUID
	TaxID     string
	LegalName string
	Address   string
}

// CustomerDirectory looks up billing profiles. GetCustomer returns an
// ObjectNotFound error when the owner has no profile.
type CustomerDirectory interface {
	GetCustomer(ctx context.Context, ownerID kernel.UUID) (Customer, error)
}
