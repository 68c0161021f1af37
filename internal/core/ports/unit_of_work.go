package ports

import (
	"context"

	"checkout/internal/core/domain/model/kernel"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// It provides transaction control and tracks aggregate changes.
// Client code must explicitly manage transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// CollectEvents pulls the domain events recorded by every aggregate that was
	// added or updated through this unit of work. Call it after Commit.
	CollectEvents() []kernel.DomainEvent

	// Repositories bound to the transaction started by Begin().
	OrderRepository() OrderRepository
	TransactionRepository() TransactionRepository
	InvoiceRepository() InvoiceRepository
	ReconciliationRepository() ReconciliationRepository
	WebhookEventRepository() WebhookEventRepository
}
