package commands

import (
	"context"
	"errors"
	"strings"
	"time"

	"checkout/internal/core/domain/model/invoice"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/order"
	"checkout/internal/core/ports"
	"checkout/internal/pkg/errs"
)

// StorePickupAddress is the receiver address of pickup orders whose customer
// has no billing address on file.
const StorePickupAddress = "Store pickup"

// InvoiceGenerator creates the invoice of a paid order. It runs inside the
// caller's unit of work so the invoice commits together with the payment.
type InvoiceGenerator struct {
	customers ports.CustomerDirectory
	emitter   invoice.Party
}

// NewInvoiceGenerator takes the emitter identity from configuration. It is
// copied into every invoice.
func NewInvoiceGenerator(customers ports.CustomerDirectory, emitter invoice.Party) InvoiceGenerator {
	return InvoiceGenerator{
		customers: customers,
		emitter:   emitter,
	}
}

// Generate returns a DuplicateInvoice error when the order already has one.
// The unique index on the order id backs this check under concurrency.
func (g InvoiceGenerator) Generate(
	ctx context.Context,
	repo ports.InvoiceRepository,
	o *order.Order,
	at time.Time,
) (*invoice.Invoice, error) {
	exists, err := repo.ExistsForOrder(ctx, o.ID())
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errs.NewDuplicateInvoiceError(o.ID().String())
	}

	receiver, err := g.receiver(ctx, o)
	if err != nil {
		return nil, err
	}

	number, err := repo.NextNumber(ctx)
	if err != nil {
		return nil, err
	}

	inv, err := invoice.NewInvoice(kernel.NewUUID(), o.ID(), o.OwnerID(), number, o.Total(), g.emitter, receiver, at)
	if err != nil {
		return nil, err
	}

	if err = repo.Add(ctx, inv); err != nil {
		return nil, err
	}

	return inv, nil
}

// receiver snapshots the customer's billing profile. Customers without a
// profile are invoiced under the order contact name.
func (g InvoiceGenerator) receiver(ctx context.Context, o *order.Order) (invoice.Party, error) {
	customer, err := g.customers.GetCustomer(ctx, o.OwnerID())
	if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
		return invoice.Party{}, err
	}

	party := invoice.Party{
		TaxID:     strings.TrimSpace(customer.TaxID),
		LegalName: strings.TrimSpace(customer.LegalName),
		Address:   strings.TrimSpace(customer.Address),
	}
	if party.LegalName == "" {
		party.LegalName = o.Delivery().Contact().Name
	}
	if party.Address == "" {
		party.Address = StorePickupAddress
		if addr := o.Delivery().Address(); addr.IsComplete() {
			party.Address = addr.String()
		}
	}

	return party, nil
}
