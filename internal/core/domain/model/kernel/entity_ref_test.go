package kernel_test

import (
	"testing"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEntityRef(t *testing.T) {
	id := kernel.NewUUID()

	ref, err := kernel.NewEntityRef(kernel.InvoiceEntity, id)
	require.NoError(t, err)
	assert.Equal(t, kernel.InvoiceEntity, ref.Kind())
	assert.Equal(t, "invoice:"+id.String(), ref.String())

	_, err = kernel.NewEntityRef(kernel.UnknownEntity, id)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = kernel.NewEntityRef(kernel.OrderEntity, kernel.UUID{})
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestMoneyRules(t *testing.T) {
	assert.Equal(t, "8403.36", kernel.RoundMoney(decimal.RequireFromString("8403.361344")).String())

	require.NoError(t, kernel.ValidateAmount("shipping cost", decimal.Zero))
	require.ErrorIs(t, kernel.ValidateAmount("shipping cost", decimal.NewFromInt(-1)), errs.ErrValueIsInvalid)
	require.ErrorIs(t, kernel.ValidatePositiveAmount("amount", decimal.Zero), errs.ErrValueIsInvalid)
}
