// Package customerrepo reads customer billing profiles. The profiles are
// maintained by the account service; this service only reads them when an
// invoice is generated.
package customerrepo

import (
	"context"
	"errors"
	"time"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/ports"
	"checkout/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CustomerDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	TaxID     string
	LegalName string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (CustomerDTO) TableName() string {
	return "customers"
}

// GormCustomerDirectory implements ports.CustomerDirectory.
type GormCustomerDirectory struct {
	db *gorm.DB
}

func NewGormCustomerDirectory(db *gorm.DB) *GormCustomerDirectory {
	return &GormCustomerDirectory{db: db}
}

func (d *GormCustomerDirectory) GetCustomer(ctx context.Context, ownerID kernel.UUID) (ports.Customer, error) {
	var dto CustomerDTO
	if err := d.db.WithContext(ctx).Where("id = ?", ownerID.Raw()).First(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Customer{}, errs.NewObjectNotFoundError("customer", ownerID.String())
		}
		return ports.Customer{}, err
	}

	return ports.Customer{
		ID:        ownerID,
		TaxID:     dto.TaxID,
		LegalName: dto.LegalName,
		Address:   dto.Address,
	}, nil
}
