// Package transactionrepo persists payment transactions.
package transactionrepo

import (
	"time"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/payment"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type TransactionDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID         uuid.UUID `gorm:"type:uuid;index;not null"`
	PreferenceID    string    `gorm:"uniqueIndex:idx_payment_transactions_preference_id;not null"`
	CheckoutURL     string
	PaymentID       string
	MerchantOrderID string
	Status          string           `gorm:"not null"`
	Amount          decimal.Decimal  `gorm:"type:numeric(14,2);not null"`
	GatewayAmount   *decimal.Decimal `gorm:"type:numeric(14,2)"`

	// RawPayload is the canonical gateway record, kept for audit.
	RawPayload datatypes.JSON

	SettledAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (TransactionDTO) TableName() string {
	return "payment_transactions"
}

func fromDomain(tx *payment.Transaction) TransactionDTO {
	return TransactionDTO{
		ID:              tx.ID().Raw(),
		OrderID:         tx.OrderID().Raw(),
		PreferenceID:    tx.PreferenceID(),
		CheckoutURL:     tx.CheckoutURL(),
		PaymentID:       tx.PaymentID(),
		MerchantOrderID: tx.MerchantOrderID(),
		Status:          tx.Status().String(),
		Amount:          tx.Amount(),
		GatewayAmount:   tx.GatewayAmount(),
		RawPayload:      datatypes.JSON(tx.RawPayload()),
		SettledAt:       tx.SettledAt(),
		CreatedAt:       tx.CreatedAt(),
		UpdatedAt:       tx.UpdatedAt(),
	}
}

func toDomain(dto TransactionDTO) (*payment.Transaction, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	status, err := payment.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	var raw []byte
	if len(dto.RawPayload) > 0 {
		raw = []byte(dto.RawPayload)
	}

	return payment.RestoreTransaction(payment.State{
		ID:              id,
		OrderID:         orderID,
		PreferenceID:    dto.PreferenceID,
		CheckoutURL:     dto.CheckoutURL,
		PaymentID:       dto.PaymentID,
		MerchantOrderID: dto.MerchantOrderID,
		Status:          status,
		Amount:          dto.Amount,
		GatewayAmount:   dto.GatewayAmount,
		RawPayload:      raw,
		SettledAt:       dto.SettledAt,
		CreatedAt:       dto.CreatedAt,
		UpdatedAt:       dto.UpdatedAt,
	})
}
