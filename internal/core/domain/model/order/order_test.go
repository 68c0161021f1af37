package order_test

import (
	"testing"
	"time"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/order"
	"checkout/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var checkoutTime = time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)

func newItem(t *testing.T, sku string, qty int, price int64) order.Item {
	t.Helper()
	item, err := order.NewItem(sku, "Product "+sku, qty, decimal.NewFromInt(price))
	require.NoError(t, err)
	return item
}

func newDelivery(t *testing.T, deliveryType order.DeliveryType) order.DeliveryInfo {
	t.Helper()
	info, err := order.NewDeliveryInfo(
		deliveryType,
		order.Contact{Name: "Ana Rojas", Email: "ana@example.com", Phone: "+56911111111"},
		order.Address{Street: "Av. Principal 123", City: "Santiago", Region: "RM"},
		"",
	)
	require.NoError(t, err)
	return info
}

func newPendingOrder(t *testing.T, deliveryType order.DeliveryType) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(),
		"00000001",
		kernel.NewUUID(),
		newDelivery(t, deliveryType),
		[]order.Item{newItem(t, "hammer", 2, 4000), newItem(t, "nails", 1, 2000)},
		decimal.NewFromInt(3500),
		checkoutTime,
	)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("computes totals and starts pending", func(t *testing.T) {
		o := newPendingOrder(t, order.Shipping)

		assert.Equal(t, order.Pending, o.Status())
		assert.True(t, o.Subtotal().Equal(decimal.NewFromInt(10000)))
		assert.True(t, o.ShippingCost().Equal(decimal.NewFromInt(3500)))
		assert.True(t, o.Total().Equal(decimal.NewFromInt(13500)))
		assert.Len(t, o.Items(), 2)
		assert.Empty(t, o.Changes())

		events := o.PullEvents()
		require.Len(t, events, 1)
		assert.Equal(t, order.CreatedEventName, events[0].EventName())
		assert.Empty(t, o.PullEvents())
	})

	t.Run("rejects empty cart", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), "00000001", kernel.NewUUID(),
			newDelivery(t, order.Pickup), nil, decimal.Zero, checkoutTime)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.True(t, errs.IsValidation(err))
	})

	t.Run("rejects negative shipping cost", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), "00000001", kernel.NewUUID(),
			newDelivery(t, order.Pickup), []order.Item{newItem(t, "a", 1, 10)}, decimal.NewFromInt(-1), checkoutTime)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("joins every problem", func(t *testing.T) {
		_, err := order.NewOrder(kernel.UUID{}, "", kernel.UUID{},
			order.DeliveryInfo{}, nil, decimal.Zero, checkoutTime)

		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestNewDeliveryInfo(t *testing.T) {
	contact := order.Contact{Name: "Ana", Email: "ana@example.com"}

	t.Run("shipping requires full address", func(t *testing.T) {
		_, err := order.NewDeliveryInfo(order.Shipping, contact, order.Address{Street: "Main 1", City: "Santiago"}, "")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("pickup drops the address", func(t *testing.T) {
		info, err := order.NewDeliveryInfo(order.Pickup, contact, order.Address{Street: "Main 1"}, " leave at desk ")
		require.NoError(t, err)
		assert.Equal(t, order.Address{}, info.Address())
		assert.Equal(t, "leave at desk", info.Notes())
	})

	t.Run("contact is required", func(t *testing.T) {
		_, err := order.NewDeliveryInfo(order.Pickup, order.Contact{}, order.Address{}, "")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("unknown delivery type", func(t *testing.T) {
		_, err := order.NewDeliveryInfo(order.UnknownDeliveryType, contact, order.Address{}, "")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestNewItem(t *testing.T) {
	_, err := order.NewItem("sku", "Drill", 0, decimal.NewFromInt(10))
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = order.NewItem("sku", "Drill", 1, decimal.NewFromInt(-10))
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = order.NewItem("", "Drill", 1, decimal.NewFromInt(10))
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	item, err := order.NewItem("sku", "Drill", 3, decimal.RequireFromString("1990.5"))
	require.NoError(t, err)
	assert.Equal(t, "5971.5", item.Subtotal().String())
}

func TestOrder_Transition(t *testing.T) {
	actor := kernel.NewUUID()

	t.Run("stamps timestamp and appends change", func(t *testing.T) {
		o := newPendingOrder(t, order.Shipping)
		o.PullEvents()
		paidAt := checkoutTime.Add(time.Hour)

		require.NoError(t, o.Transition(order.Paid, actor, "payment approved", paidAt))

		assert.Equal(t, order.Paid, o.Status())
		require.NotNil(t, o.Timestamps().PaidAt)
		assert.Equal(t, paidAt, *o.Timestamps().PaidAt)
		assert.Equal(t, paidAt, o.UpdatedAt())

		changes := o.Changes()
		require.Len(t, changes, 1)
		assert.Equal(t, order.Pending, changes[0].From())
		assert.Equal(t, order.Paid, changes[0].To())
		assert.True(t, changes[0].ActorID().IsEqual(actor))
		assert.Equal(t, "payment approved", changes[0].Notes())

		events := o.PullEvents()
		require.Len(t, events, 1)
		changed, ok := events[0].(order.StatusChanged)
		require.True(t, ok)
		assert.Equal(t, order.Pending, changed.From)
		assert.Equal(t, order.Paid, changed.To)
		assert.Equal(t, kernel.OrderEntity, changed.Subject().Kind())
	})

	t.Run("pending to preparation is rejected", func(t *testing.T) {
		o := newPendingOrder(t, order.Shipping)

		err := o.Transition(order.Preparation, actor, "", checkoutTime)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, order.Pending, o.Status())
		assert.Empty(t, o.Changes())
		assert.Nil(t, o.Timestamps().PreparedAt)
	})

	t.Run("full shipping lifecycle", func(t *testing.T) {
		o := newPendingOrder(t, order.Shipping)
		for _, next := range []order.Status{order.Paid, order.Preparation, order.InShipping, order.Delivered} {
			require.NoError(t, o.Transition(next, actor, "", checkoutTime))
		}

		assert.Len(t, o.Changes(), 4)
		assert.NotNil(t, o.Timestamps().ShippedAt)
		assert.NotNil(t, o.Timestamps().DeliveredAt)
		require.ErrorIs(t, o.Transition(order.Cancelled, actor, "", checkoutTime), errs.ErrInvalidTransition)
	})

	t.Run("pickup order cannot be shipped", func(t *testing.T) {
		o := newPendingOrder(t, order.Pickup)
		require.NoError(t, o.Transition(order.Paid, actor, "", checkoutTime))
		require.NoError(t, o.Transition(order.Preparation, actor, "", checkoutTime))

		require.ErrorIs(t, o.Transition(order.InShipping, actor, "", checkoutTime), errs.ErrInvalidTransition)
		require.NoError(t, o.Transition(order.ReadyForPickup, actor, "", checkoutTime))
		assert.NotNil(t, o.Timestamps().ReadyAt)
	})

	t.Run("shipping order cannot wait for pickup", func(t *testing.T) {
		o := newPendingOrder(t, order.Shipping)
		require.NoError(t, o.Transition(order.Paid, actor, "", checkoutTime))
		require.NoError(t, o.Transition(order.Preparation, actor, "", checkoutTime))

		require.ErrorIs(t, o.Transition(order.ReadyForPickup, actor, "", checkoutTime), errs.ErrInvalidTransition)
	})

	t.Run("requires an actor", func(t *testing.T) {
		o := newPendingOrder(t, order.Shipping)
		require.ErrorIs(t, o.Transition(order.Paid, kernel.UUID{}, "", checkoutTime), kernel.ErrUUIDIsNotConstructed)
	})
}

func TestRestoreOrder(t *testing.T) {
	original := newPendingOrder(t, order.Shipping)
	require.NoError(t, original.Transition(order.Paid, kernel.NewUUID(), "", checkoutTime))

	restored, err := order.RestoreOrder(order.State{
		ID:           original.ID(),
		Number:       original.Number(),
		OwnerID:      original.OwnerID(),
		Delivery:     original.Delivery(),
		Items:        original.Items(),
		ShippingCost: original.ShippingCost(),
		Status:       original.Status(),
		Timestamps:   original.Timestamps(),
		Changes:      original.Changes(),
		CreatedAt:    original.CreatedAt(),
		UpdatedAt:    original.UpdatedAt(),
	})

	require.NoError(t, err)
	require.NoError(t, restored.Validate())
	assert.True(t, restored.Total().Equal(original.Total()))
	assert.Equal(t, order.Paid, restored.Status())
	assert.Len(t, restored.Changes(), 1)
	assert.Empty(t, restored.PullEvents())

	_, err = order.RestoreOrder(order.State{})
	require.Error(t, err)

	var zero *order.Order
	require.ErrorIs(t, zero.Validate(), order.ErrOrderIsNotConstructed)
}
