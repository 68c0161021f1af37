// Package reconciliationrepo persists reconciliations.
package reconciliationrepo

import (
	"time"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/reconciliation"

	"github.com/google/uuid"
)

// ReconciliationDTO stores the resolution as two nullable columns that are
// written together. A check constraint keeps them consistent.
type ReconciliationDTO struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TransactionID uuid.UUID  `gorm:"type:uuid;uniqueIndex:idx_reconciliations_transaction_id;not null"`
	InvoiceID     uuid.UUID  `gorm:"type:uuid;uniqueIndex:idx_reconciliations_invoice_id;not null"`
	Status        string     `gorm:"index;not null"`
	Notes         string
	ResolvedBy    *uuid.UUID `gorm:"type:uuid"`
	ResolvedAt    *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (ReconciliationDTO) TableName() string {
	return "reconciliations"
}

func fromDomain(r *reconciliation.Reconciliation) ReconciliationDTO {
	dto := ReconciliationDTO{
		ID:            r.ID().Raw(),
		TransactionID: r.TransactionID().Raw(),
		InvoiceID:     r.InvoiceID().Raw(),
		Status:        r.Status().String(),
		Notes:         r.Notes(),
		CreatedAt:     r.CreatedAt(),
		UpdatedAt:     r.UpdatedAt(),
	}
	if res := r.Resolution(); res != nil {
		actorID := res.ActorID.Raw()
		at := res.At
		dto.ResolvedBy = &actorID
		dto.ResolvedAt = &at
	}
	return dto
}

func toDomain(dto ReconciliationDTO) (*reconciliation.Reconciliation, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	transactionID, err := kernel.UUIDFromBytes(dto.TransactionID[:])
	if err != nil {
		return nil, err
	}
	invoiceID, err := kernel.UUIDFromBytes(dto.InvoiceID[:])
	if err != nil {
		return nil, err
	}
	status, err := reconciliation.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	var resolution *reconciliation.Resolution
	if dto.ResolvedBy != nil && dto.ResolvedAt != nil {
		actorID, actorErr := kernel.UUIDFromBytes((*dto.ResolvedBy)[:])
		if actorErr != nil {
			return nil, actorErr
		}
		resolution = &reconciliation.Resolution{ActorID: actorID, At: *dto.ResolvedAt}
	}

	return reconciliation.RestoreReconciliation(reconciliation.State{
		ID:            id,
		TransactionID: transactionID,
		InvoiceID:     invoiceID,
		Status:        status,
		Notes:         dto.Notes,
		Resolution:    resolution,
		CreatedAt:     dto.CreatedAt,
		UpdatedAt:     dto.UpdatedAt,
	})
}
