// Package document renders invoices: the electronic tax document (DTE type 33)
// as XML and the printable copy as PDF.
package document

import (
	"encoding/xml"
	"time"

	"checkout/internal/core/domain/model/invoice"
	"checkout/internal/pkg/errs"
)

// DocumentType is the DTE code of an electronic invoice.
const DocumentType = 33

type dte struct {
	XMLName   xml.Name  `xml:"DTE"`
	Version   string    `xml:"version,attr"`
	Documento documento `xml:"Documento"`
}

type documento struct {
	ID         string     `xml:"ID,attr"`
	Encabezado encabezado `xml:"Encabezado"`
	Detalle    []detalle  `xml:"Detalle"`
}

type encabezado struct {
	IDDoc    idDoc    `xml:"IdDoc"`
	Emisor   emisor   `xml:"Emisor"`
	Receptor receptor `xml:"Receptor"`
	Totales  totales  `xml:"Totales"`
}

type idDoc struct {
	TipoDTE int    `xml:"TipoDTE"`
	Folio   string `xml:"Folio"`
	FchEmis string `xml:"FchEmis"`
}

type emisor struct {
	RUTEmisor string `xml:"RUTEmisor"`
	RznSoc    string `xml:"RznSoc"`
	GiroEmis  string `xml:"GiroEmis,omitempty"`
	DirOrigen string `xml:"DirOrigen,omitempty"`
}

type receptor struct {
	RUTRecep    string `xml:"RUTRecep,omitempty"`
	RznSocRecep string `xml:"RznSocRecep"`
	GiroRecep   string `xml:"GiroRecep,omitempty"`
	DirRecep    string `xml:"DirRecep,omitempty"`
}

type totales struct {
	MntNeto  string `xml:"MntNeto"`
	TasaIVA  string `xml:"TasaIVA"`
	IVA      string `xml:"IVA"`
	MntTotal string `xml:"MntTotal"`
}

type detalle struct {
	NroLinDet int    `xml:"NroLinDet"`
	NmbItem   string `xml:"NmbItem"`
	QtyItem   int    `xml:"QtyItem"`
	PrcItem   string `xml:"PrcItem"`
	MontoItem string `xml:"MontoItem"`
}

// RenderXML builds the tax document. The issue date is the date the invoice
// was generated, in the renderer's location.
func (r *Renderer) RenderXML(inv *invoice.Invoice) (string, error) {
	if err := inv.Validate(); err != nil {
		return "", err
	}

	emitter := inv.Emitter()
	receiver := inv.Receiver()
	net := inv.Net().String()

	doc := dte{
		Version: "1.0",
		Documento: documento{
			ID: "F" + inv.Number() + "T33",
			Encabezado: encabezado{
				IDDoc: idDoc{
					TipoDTE: DocumentType,
					Folio:   inv.Number(),
					FchEmis: r.issueDate(inv).Format(time.DateOnly),
				},
				Emisor: emisor{
					RUTEmisor: emitter.TaxID,
					RznSoc:    emitter.LegalName,
					GiroEmis:  emitter.Activity,
					DirOrigen: emitter.Address,
				},
				Receptor: receptor{
					RUTRecep:    receiver.TaxID,
					RznSocRecep: receiver.LegalName,
					GiroRecep:   receiver.Activity,
					DirRecep:    receiver.Address,
				},
				Totales: totales{
					MntNeto:  net,
					TasaIVA:  invoice.VATRate.Mul(hundred).String(),
					IVA:      inv.Tax().String(),
					MntTotal: inv.Total().String(),
				},
			},
			Detalle: []detalle{{
				NroLinDet: 1,
				NmbItem:   r.itemName,
				QtyItem:   1,
				PrcItem:   net,
				MontoItem: net,
			}},
		},
	}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", errs.NewValueIsInvalidErrorWithCause("invoice document", err)
	}
	return xml.Header + string(out), nil
}

func (r *Renderer) issueDate(inv *invoice.Invoice) time.Time {
	return inv.CreatedAt().In(r.location)
}
