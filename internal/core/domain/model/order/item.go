package order

import (
	"fmt"
	"strings"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Item is one line of the cart snapshot. The unit price is locked at checkout.
type Item struct {
	productID   string
	productName string
	quantity    int
	unitPrice   decimal.Decimal
}

// NewItem validates a cart line: product reference and name present, quantity
// positive, unit price not negative.
func NewItem(productID, productName string, quantity int, unitPrice decimal.Decimal) (Item, error) {
	if strings.TrimSpace(productID) == "" {
		return Item{}, errs.NewValueIsRequiredError("product id")
	}
	if strings.TrimSpace(productName) == "" {
		return Item{}, errs.NewValueIsRequiredError("product name")
	}
	if quantity <= 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	if err := kernel.ValidateAmount("unit price", unitPrice); err != nil {
		return Item{}, err
	}

	return Item{
		productID:   productID,
		productName: productName,
		quantity:    quantity,
		unitPrice:   kernel.RoundMoney(unitPrice),
	}, nil
}

func (i Item) ProductID() string {
	return i.productID
}

func (i Item) ProductName() string {
	return i.productName
}

func (i Item) Quantity() int {
	return i.quantity
}

func (i Item) UnitPrice() decimal.Decimal {
	return i.unitPrice
}

// Subtotal is quantity * unit price.
func (i Item) Subtotal() decimal.Decimal {
	return i.unitPrice.Mul(decimal.NewFromInt(int64(i.quantity)))
}
