// Package pgtest starts a disposable PostgreSQL for integration tests and
// applies the service migrations to it.
package pgtest

import (
	"context"
	"time"

	"checkout/internal/adapters/out/postgres/migrations"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Start runs a postgres:15-alpine container and returns a migrated connection.
// The caller terminates the container.
func Start(ctx context.Context) (*postgres.PostgresContainer, *gorm.DB, error) {
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("checkout"),
		postgres.WithUsername("checkout"),
		postgres.WithPassword("checkout"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, nil, err
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return container, nil, err
	}

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return container, nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return container, nil, err
	}
	if err = migrations.Run(sqlDB); err != nil {
		return container, nil, err
	}

	return container, db, nil
}

// Truncate empties every table, sequences included.
func Truncate(db *gorm.DB) error {
	return db.Exec(`TRUNCATE TABLE
		webhook_events, reconciliations, invoices, payment_transactions,
		order_changes, order_items, orders, customers, sequences`).Error
}
