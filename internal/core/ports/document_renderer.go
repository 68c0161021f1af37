package ports

import "checkout/internal/core/domain/model/invoice"

// DocumentRenderer produces the tax document and the printable artifact of an
// invoice.
type DocumentRenderer interface {
	RenderXML(inv *invoice.Invoice) (string, error)
	RenderPDF(inv *invoice.Invoice) ([]byte, error)
}
