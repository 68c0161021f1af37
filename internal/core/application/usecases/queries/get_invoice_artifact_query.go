package queries

import (
	"errors"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/errs"
	"checkout/internal/pkg/guard"
)

var ErrGetInvoiceArtifactQueryIsNotConstructed = errors.New(
	"GetInvoiceArtifactQuery must be created via NewGetInvoiceArtifactQuery constructor",
)

// GetInvoiceArtifactQuery fetches the rendered PDF of an invoice.
type GetInvoiceArtifactQuery struct {
	invoiceID kernel.UUID
	actor     kernel.Actor
	guard     guard.ConstructorGuard
}

func NewGetInvoiceArtifactQuery(invoiceID kernel.UUID, actor kernel.Actor) (GetInvoiceArtifactQuery, error) {
	var problems []error
	if err := invoiceID.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("invoice id", err))
	}
	if err := actor.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("actor", err))
	}
	if len(problems) > 0 {
		return GetInvoiceArtifactQuery{}, errors.Join(problems...)
	}

	return GetInvoiceArtifactQuery{
		invoiceID: invoiceID,
		actor:     actor,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q GetInvoiceArtifactQuery) Validate() error {
	return q.guard.Validate(ErrGetInvoiceArtifactQueryIsNotConstructed)
}

func (q GetInvoiceArtifactQuery) InvoiceID() kernel.UUID {
	return q.invoiceID
}

func (q GetInvoiceArtifactQuery) Actor() kernel.Actor {
	return q.actor
}

// InvoiceArtifact is the PDF together with the invoice number used to name it.
type InvoiceArtifact struct {
	Number string
	PDF    []byte
}

// FileName is the download name of the artifact, e.g. "F00000042.pdf".
func (a InvoiceArtifact) FileName() string {
	return a.Number + ".pdf"
}
