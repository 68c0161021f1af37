package queries

import (
	"context"
	"database/sql"
	"errors"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetInvoiceArtifactQueryHandler struct {
	db *gorm.DB
}

func NewGetInvoiceArtifactQueryHandler(db *gorm.DB) GetInvoiceArtifactQueryHandler {
	return GetInvoiceArtifactQueryHandler{db: db}
}

// Handle lets accountants and administrators download any invoice and the
// customer only their own. A missing invoice, a hidden one and one whose PDF
// was not rendered yet all return ObjectNotFound.
func (h GetInvoiceArtifactQueryHandler) Handle(
	ctx context.Context,
	query GetInvoiceArtifactQuery,
) (InvoiceArtifact, error) {
	if err := query.Validate(); err != nil {
		return InvoiceArtifact{}, err
	}

	var (
		artifact   InvoiceArtifact
		customerID uuid.UUID
	)
	row := h.db.WithContext(ctx).Raw(`
		SELECT number, customer_id, artifact
		FROM invoices
		WHERE id = ?
	`, query.InvoiceID().Raw()).Row()
	if err := row.Scan(&artifact.Number, &customerID, &artifact.PDF); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return InvoiceArtifact{}, errs.NewObjectNotFoundError("invoice", query.InvoiceID())
		}
		return InvoiceArtifact{}, err
	}

	owner, err := kernel.UUIDFromBytes(customerID[:])
	if err != nil {
		return InvoiceArtifact{}, err
	}

	actor := query.Actor()
	if !actor.Can(ledgerCapabilities...) && !actor.ID().IsEqual(owner) {
		return InvoiceArtifact{}, errs.NewObjectNotFoundError("invoice", query.InvoiceID())
	}
	if len(artifact.PDF) == 0 {
		return InvoiceArtifact{}, errs.NewObjectNotFoundError("invoice artifact", query.InvoiceID())
	}

	return artifact, nil
}
