package commands_test

import (
	"testing"

	"checkout/internal/core/application/usecases/commands"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/order"
	"checkout/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateOrderCommand_ValidInput(t *testing.T) {
	id := kernel.NewUUID()
	customer := newActor(t, kernel.Customer)

	cmd, err := commands.NewCreateOrderCommand(id, customer, newDelivery(t, order.Pickup), cartItems(t), decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, id, cmd.OrderID())
	assert.Equal(t, customer, cmd.Actor())
	assert.Len(t, cmd.Items(), 1)
	require.NoError(t, cmd.Validate())
}

func TestNewCreateOrderCommand_EmptyCart(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), newActor(t, kernel.Customer),
		newDelivery(t, order.Pickup), nil, decimal.Zero)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewCreateOrderCommand_NegativeShipping(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), newActor(t, kernel.Customer),
		newDelivery(t, order.Shipping), cartItems(t), decimal.NewFromInt(-1))
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestNewCreateOrderCommand_InvalidOrderID(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(kernel.UUID{}, newActor(t, kernel.Customer),
		newDelivery(t, order.Pickup), cartItems(t), decimal.Zero)
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestCreateOrderCommand_ZeroValueIsNotConstructed(t *testing.T) {
	require.ErrorIs(t, commands.CreateOrderCommand{}.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
}
