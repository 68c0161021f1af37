// Package sequence allocates gap-tolerant, strictly increasing numbers from
// the sequences table. Numbers are allocated inside the caller's transaction,
// so a rolled back allocation is released together with the row it numbered.
package sequence

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

const (
	Orders   = "order"
	Invoices = "invoice"
)

// DTO is the sequences row. It is only used by AutoMigrate in tests; the
// schema itself comes from the migrations.
type DTO struct {
	Name  string `gorm:"primaryKey"`
	Value int64  `gorm:"not null"`
}

func (DTO) TableName() string {
	return "sequences"
}

// Next increments the named sequence and returns its new value. The first
// call for a name returns 1.
func Next(ctx context.Context, db *gorm.DB, name string) (int64, error) {
	var value int64
	err := db.WithContext(ctx).Raw(`
		INSERT INTO sequences (name, value) VALUES (?, 1)
		ON CONFLICT (name) DO UPDATE SET value = sequences.value + 1
		RETURNING value
	`, name).Scan(&value).Error
	if err != nil {
		return 0, fmt.Errorf("next %s number: %w", name, err)
	}
	return value, nil
}
