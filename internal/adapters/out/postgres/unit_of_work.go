// Package postgres provides the GORM implementation of the Unit of Work.
//
// A unit of work hands out repositories bound to its transaction while one is
// active, and to the plain connection otherwise. Every aggregate added or
// updated through those repositories is tracked; once the transaction commits
// the caller drains their domain events with CollectEvents.
//
// Usage:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() {
//	    _ = uow.Rollback(ctx)
//	}()
//
//	if err := uow.OrderRepository().Update(ctx, o); err != nil {
//	    return err
//	}
//	if err := uow.Commit(ctx); err != nil {
//	    return err
//	}
//
//	publisher.Publish(ctx, uow.CollectEvents())
//
// Rollback after a successful Commit returns gorm.ErrInvalidTransaction and
// changes nothing, which makes the deferred Rollback above safe.
//
// Each UnitOfWork instance is meant for one goroutine and one business
// operation. Locks that must outlive the transaction (see ports.Locker) are
// taken by the caller around Begin and Commit.
package postgres

import (
	"context"

	"checkout/internal/adapters/out/postgres/invoicerepo"
	"checkout/internal/adapters/out/postgres/orderrepo"
	"checkout/internal/adapters/out/postgres/reconciliationrepo"
	"checkout/internal/adapters/out/postgres/transactionrepo"
	"checkout/internal/adapters/out/postgres/webhookrepo"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate is an aggregate modified during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// eventSource is implemented by aggregates that record domain events.
type eventSource interface {
	PullEvents() []kernel.DomainEvent
}

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection
// pool.
//
// Example:
//
//	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
//	if err != nil {
//	    log.Fatal("failed to connect database")
//	}
//	factory := NewGormUnitOfWorkFactory(db)
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create returns a fresh unit of work with no transaction and nothing tracked.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and the aggregates
// modified inside it.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin starts a transaction. Calling Begin while one is active is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit finalizes the transaction. Tracked aggregates are kept so their
// events can be collected afterwards.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		uow.trackedAggregates = uow.trackedAggregates[:0]
	}
	return err
}

// Rollback discards the transaction and everything tracked in it.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

// CollectEvents drains the domain events of every tracked aggregate, in the
// order the aggregates were tracked, and stops tracking them.
func (uow *GormUnitOfWork) CollectEvents() []kernel.DomainEvent {
	var events []kernel.DomainEvent
	for _, tracked := range uow.trackedAggregates {
		if source, ok := tracked.Aggregate.(eventSource); ok {
			events = append(events, source.PullEvents()...)
		}
	}
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return events
}

// TrackAggregate is called by the repositories on every Add and Update.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) TransactionRepository() ports.TransactionRepository {
	return transactionrepo.NewGormTransactionRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) InvoiceRepository() ports.InvoiceRepository {
	return invoicerepo.NewGormInvoiceRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) ReconciliationRepository() ports.ReconciliationRepository {
	return reconciliationrepo.NewGormReconciliationRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) WebhookEventRepository() ports.WebhookEventRepository {
	return webhookrepo.NewGormWebhookEventRepository(uow.conn())
}
