package kernel

import (
	"fmt"

	"checkout/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// MoneyPlaces is the number of decimal places kept for every stored amount.
const MoneyPlaces int32 = 2

// RoundMoney rounds half away from zero to MoneyPlaces.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPlaces)
}

// ValidateAmount rejects negative amounts. paramName is used in the error.
func ValidateAmount(paramName string, d decimal.Decimal) error {
	if d.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause(paramName, fmt.Errorf("%s is negative", d.String()))
	}
	return nil
}

// ValidatePositiveAmount rejects zero and negative amounts.
func ValidatePositiveAmount(paramName string, d decimal.Decimal) error {
	if !d.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause(paramName, fmt.Errorf("%s is not greater than 0", d.String()))
	}
	return nil
}
