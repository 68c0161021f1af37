package document

import (
	"fmt"
	"time"

	"checkout/internal/core/domain/model/invoice"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
)

// RenderPDF lays out the printable copy of the invoice.
func (r *Renderer) RenderPDF(inv *invoice.Invoice) ([]byte, error) {
	if err := inv.Validate(); err != nil {
		return nil, err
	}

	emitter := inv.Emitter()
	receiver := inv.Receiver()

	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(12,
		text.NewCol(8, emitter.LegalName, props.Text{Size: 14, Style: fontstyle.Bold}),
		text.NewCol(4, fmt.Sprintf("INVOICE No. %s", inv.Number()), props.Text{
			Size:  11,
			Style: fontstyle.Bold,
			Align: align.Right,
		}),
	)

	m.AddRow(20,
		col.New(8).Add(
			text.New("Tax ID: "+emitter.TaxID, props.Text{Size: 9}),
			text.New(emitter.Activity, props.Text{Size: 9, Top: 4}),
			text.New(emitter.Address, props.Text{Size: 9, Top: 8}),
		),
		col.New(4).Add(
			text.New(fmt.Sprintf("Document type %d", DocumentType), props.Text{Size: 9, Align: align.Right}),
			text.New("Issued "+r.issueDate(inv).Format(time.DateOnly), props.Text{Size: 9, Top: 4, Align: align.Right}),
		),
	)

	m.AddRow(24,
		col.New(12).Add(
			text.New("Bill to", props.Text{Size: 10, Style: fontstyle.Bold}),
			text.New(receiver.LegalName, props.Text{Size: 9, Top: 5}),
			text.New("Tax ID: "+orDash(receiver.TaxID), props.Text{Size: 9, Top: 9}),
			text.New(receiver.Address, props.Text{Size: 9, Top: 13}),
		),
	)

	m.AddRow(10,
		text.NewCol(8, "Description", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(4, "Amount", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)
	m.AddRow(10,
		text.NewCol(8, r.itemName, props.Text{Size: 9}),
		text.NewCol(4, money(inv.Net()), props.Text{Size: 9, Align: align.Right}),
	)

	m.AddRow(8,
		col.New(8),
		text.NewCol(2, "Net", props.Text{Size: 9}),
		text.NewCol(2, money(inv.Net()), props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(8,
		col.New(8),
		text.NewCol(2, fmt.Sprintf("VAT %s%%", invoice.VATRate.Mul(hundred).String()), props.Text{Size: 9}),
		text.NewCol(2, money(inv.Tax()), props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(8,
		col.New(8),
		text.NewCol(2, "Total", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, money(inv.Total()), props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("render invoice %s: %w", inv.Number(), err)
	}
	return doc.GetBytes(), nil
}

func money(d decimal.Decimal) string {
	return "$ " + d.StringFixed(2)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
