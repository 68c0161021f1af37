package commands

import (
	"errors"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/guard"
)

var ErrInvoiceCommandIsNotConstructed = errors.New(
	"invoice command must be created via its constructor",
)

// invoiceCommand is the shared shape of the pipeline commands: each targets a
// single invoice by id.
type invoiceCommand struct { //nolint:recvcheck //using for validation
	invoiceID kernel.UUID

	guard guard.ConstructorGuard
}

func newInvoiceCommand(invoiceID kernel.UUID) (invoiceCommand, error) {
	if err := invoiceID.Validate(); err != nil {
		return invoiceCommand{}, err
	}
	return invoiceCommand{invoiceID: invoiceID, guard: guard.NewConstructorGuard()}, nil
}

func (c invoiceCommand) Validate() error {
	return c.guard.Validate(ErrInvoiceCommandIsNotConstructed)
}

func (c invoiceCommand) InvoiceID() kernel.UUID {
	return c.invoiceID
}

// EmitInvoiceXMLCommand renders the tax document of a pending_issue invoice.
type EmitInvoiceXMLCommand struct{ invoiceCommand }

func NewEmitInvoiceXMLCommand(invoiceID kernel.UUID) (EmitInvoiceXMLCommand, error) {
	c, err := newInvoiceCommand(invoiceID)
	return EmitInvoiceXMLCommand{c}, err
}

// SendInvoiceToAuthorityCommand submits an issued invoice.
type SendInvoiceToAuthorityCommand struct{ invoiceCommand }

func NewSendInvoiceToAuthorityCommand(invoiceID kernel.UUID) (SendInvoiceToAuthorityCommand, error) {
	c, err := newInvoiceCommand(invoiceID)
	return SendInvoiceToAuthorityCommand{c}, err
}

// RenderInvoiceArtifactCommand renders and stores the invoice PDF.
type RenderInvoiceArtifactCommand struct{ invoiceCommand }

func NewRenderInvoiceArtifactCommand(invoiceID kernel.UUID) (RenderInvoiceArtifactCommand, error) {
	c, err := newInvoiceCommand(invoiceID)
	return RenderInvoiceArtifactCommand{c}, err
}

// ProcessInvoicePipelineCommand runs every pending pipeline step.
type ProcessInvoicePipelineCommand struct{ invoiceCommand }

func NewProcessInvoicePipelineCommand(invoiceID kernel.UUID) (ProcessInvoicePipelineCommand, error) {
	c, err := newInvoiceCommand(invoiceID)
	return ProcessInvoicePipelineCommand{c}, err
}
