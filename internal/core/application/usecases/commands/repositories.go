// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, locking where the
// entity is contended, transaction management, persistence and, after commit,
// publication of the recorded domain events.
package commands

import (
	"context"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// EventCollector exposes the domain events of aggregates persisted in the
	// unit of work.
	EventCollector interface {
		CollectEvents() []kernel.DomainEvent
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	TransactionRepoFactory interface {
		TransactionRepository() ports.TransactionRepository
	}

	InvoiceRepoFactory interface {
		InvoiceRepository() ports.InvoiceRepository
	}

	ReconciliationRepoFactory interface {
		ReconciliationRepository() ports.ReconciliationRepository
	}

	WebhookEventRepoFactory interface {
		WebhookEventRepository() ports.WebhookEventRepository
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		EventCollector
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// PaymentUoW spans everything a payment update can touch: the transaction,
	// its order, the generated invoice and the webhook event log.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   tx, err := uow.TransactionRepository().GetByPreferenceIDForUpdate(ctx, id)
	//   o, err := uow.OrderRepository().GetForUpdate(ctx, tx.OrderID())
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	PaymentUoW interface {
		TxManager
		EventCollector
		OrderRepoFactory
		TransactionRepoFactory
		InvoiceRepoFactory
		WebhookEventRepoFactory
	}

	PaymentUoWFactory interface {
		Create() PaymentUoW
	}

	// InvoiceUoW manages transactions for the invoice pipeline.
	InvoiceUoW interface {
		TxManager
		EventCollector
		InvoiceRepoFactory
	}

	InvoiceUoWFactory interface {
		Create() InvoiceUoW
	}

	// ReconciliationUoW reads both sides of a reconciliation and writes the record.
	ReconciliationUoW interface {
		TxManager
		TransactionRepoFactory
		InvoiceRepoFactory
		ReconciliationRepoFactory
	}

	ReconciliationUoWFactory interface {
		Create() ReconciliationUoW
	}

	// EventPublisher receives the domain events of a committed unit of work.
	// It must not fail the operation that produced them.
	EventPublisher interface {
		Publish(ctx context.Context, events []kernel.DomainEvent)
	}
)

func orderLockKey(id kernel.UUID) string {
	return "order:" + id.String()
}

func transactionLockKey(preferenceID string) string {
	return "transaction:" + preferenceID
}

func invoiceLockKey(id kernel.UUID) string {
	return "invoice:" + id.String()
}
