package document_test

import (
	"bytes"
	"encoding/xml"
	"testing"
	"time"

	"checkout/internal/adapters/out/document"
	"checkout/internal/core/domain/model/invoice"
	"checkout/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInvoice(t *testing.T) *invoice.Invoice {
	t.Helper()
	inv, err := invoice.NewInvoice(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		"F00000042",
		decimal.NewFromInt(10000),
		invoice.Party{TaxID: "76.123.456-7", LegalName: "Ferreteria Sur SpA", Activity: "Retail", Address: "Av. Matta 120"},
		invoice.Party{TaxID: "11.111.111-1", LegalName: "Ana Rojas & Co", Address: "Store pickup"},
		time.Date(2026, 3, 2, 2, 30, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return inv
}

func TestRenderXML(t *testing.T) {
	santiago := time.FixedZone("CLT", -3*60*60)
	renderer := document.NewRenderer(document.WithLocation(santiago))

	out, err := renderer.RenderXML(newInvoice(t))
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix([]byte(out), []byte(xml.Header)))

	var parsed struct {
		Folio    string `xml:"Documento>Encabezado>IdDoc>Folio"`
		Type     int    `xml:"Documento>Encabezado>IdDoc>TipoDTE"`
		Date     string `xml:"Documento>Encabezado>IdDoc>FchEmis"`
		Emitter  string `xml:"Documento>Encabezado>Emisor>RUTEmisor"`
		Receiver string `xml:"Documento>Encabezado>Receptor>RznSocRecep"`
		Net      string `xml:"Documento>Encabezado>Totales>MntNeto"`
		Rate     string `xml:"Documento>Encabezado>Totales>TasaIVA"`
		Tax      string `xml:"Documento>Encabezado>Totales>IVA"`
		Total    string `xml:"Documento>Encabezado>Totales>MntTotal"`
	}
	require.NoError(t, xml.Unmarshal([]byte(out), &parsed))

	assert.Equal(t, "F00000042", parsed.Folio)
	assert.Equal(t, document.DocumentType, parsed.Type)
	assert.Equal(t, "2026-03-01", parsed.Date, "issue date is local to the store")
	assert.Equal(t, "76.123.456-7", parsed.Emitter)
	assert.Equal(t, "Ana Rojas & Co", parsed.Receiver)
	assert.Equal(t, "8403.36", parsed.Net)
	assert.Equal(t, "19", parsed.Rate)
	assert.Equal(t, "1596.64", parsed.Tax)
	assert.Equal(t, "10000", parsed.Total)
	assert.Contains(t, out, "Ana Rojas &amp; Co")
}

func TestRenderXML_RequiresConstructedInvoice(t *testing.T) {
	_, err := document.NewRenderer().RenderXML(&invoice.Invoice{})
	assert.ErrorIs(t, err, invoice.ErrInvoiceIsNotConstructed)
}

func TestRenderPDF(t *testing.T) {
	pdf, err := document.NewRenderer().RenderPDF(newInvoice(t))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}
