// Package invoicerepo persists invoices, including their generated XML
// document and PDF artifact.
package invoicerepo

import (
	"time"

	"checkout/internal/core/domain/model/invoice"
	"checkout/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type InvoiceDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_invoices_order_id;not null"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null"`
	Number     string    `gorm:"uniqueIndex:idx_invoices_number;not null"`
	Status     string    `gorm:"index;not null"`

	Emitter  PartyDTO `gorm:"embedded;embeddedPrefix:emitter_"`
	Receiver PartyDTO `gorm:"embedded;embeddedPrefix:receiver_"`

	Net   decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Tax   decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Total decimal.Decimal `gorm:"type:numeric(14,2);not null"`

	Document          string
	Artifact          []byte `gorm:"type:bytea"`
	TrackingID        string
	AuthorityResponse string

	IssuedAt   *time.Time
	SentAt     *time.Time
	ResolvedAt *time.Time

	Attempts  int
	LastError string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (InvoiceDTO) TableName() string {
	return "invoices"
}

type PartyDTO struct {
	TaxID     string
	LegalName string
	Activity  string
	Address   string
}

func partyFromDomain(p invoice.Party) PartyDTO {
	return PartyDTO{TaxID: p.TaxID, LegalName: p.LegalName, Activity: p.Activity, Address: p.Address}
}

func (p PartyDTO) toDomain() invoice.Party {
	return invoice.Party{TaxID: p.TaxID, LegalName: p.LegalName, Activity: p.Activity, Address: p.Address}
}

func fromDomain(inv *invoice.Invoice) InvoiceDTO {
	return InvoiceDTO{
		ID:                inv.ID().Raw(),
		OrderID:           inv.OrderID().Raw(),
		CustomerID:        inv.CustomerID().Raw(),
		Number:            inv.Number(),
		Status:            inv.Status().String(),
		Emitter:           partyFromDomain(inv.Emitter()),
		Receiver:          partyFromDomain(inv.Receiver()),
		Net:               inv.Net(),
		Tax:               inv.Tax(),
		Total:             inv.Total(),
		Document:          inv.Document(),
		Artifact:          inv.Artifact(),
		TrackingID:        inv.TrackingID(),
		AuthorityResponse: inv.AuthorityResponse(),
		IssuedAt:          inv.IssuedAt(),
		SentAt:            inv.SentAt(),
		ResolvedAt:        inv.ResolvedAt(),
		Attempts:          inv.Attempts(),
		LastError:         inv.LastError(),
		CreatedAt:         inv.CreatedAt(),
		UpdatedAt:         inv.UpdatedAt(),
	}
}

func toDomain(dto InvoiceDTO) (*invoice.Invoice, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	status, err := invoice.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return invoice.RestoreInvoice(invoice.State{
		ID:                id,
		OrderID:           orderID,
		CustomerID:        customerID,
		Number:            dto.Number,
		Status:            status,
		Emitter:           dto.Emitter.toDomain(),
		Receiver:          dto.Receiver.toDomain(),
		Net:               dto.Net,
		Tax:               dto.Tax,
		Total:             dto.Total,
		Document:          dto.Document,
		Artifact:          dto.Artifact,
		TrackingID:        dto.TrackingID,
		AuthorityResponse: dto.AuthorityResponse,
		IssuedAt:          dto.IssuedAt,
		SentAt:            dto.SentAt,
		ResolvedAt:        dto.ResolvedAt,
		Attempts:          dto.Attempts,
		LastError:         dto.LastError,
		CreatedAt:         dto.CreatedAt,
		UpdatedAt:         dto.UpdatedAt,
	})
}
