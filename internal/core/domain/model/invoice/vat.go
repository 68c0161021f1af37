package invoice

import (
	"checkout/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// VATRate is the single value-added tax rate applied to every invoice.
var VATRate = decimal.RequireFromString("0.19")

// SplitVAT derives the net and tax parts of a VAT-inclusive total:
// net = round(total / (1 + VATRate)), tax = total - net. net + tax == total holds
// exactly.
func SplitVAT(total decimal.Decimal) (net, tax decimal.Decimal) {
	total = kernel.RoundMoney(total)
	net = kernel.RoundMoney(total.Div(decimal.NewFromInt(1).Add(VATRate)))
	tax = total.Sub(net)
	return net, tax
}
