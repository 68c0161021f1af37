package commands_test

import (
	"testing"

	"checkout/internal/core/domain/model/invoice"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/order"
	"checkout/internal/core/domain/model/payment"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var emitter = invoice.Party{
	TaxID:     "76.123.456-7",
	LegalName: "Ferretería Central SpA",
	Activity:  "Hardware retail",
	Address:   "Av. Matta 500, Santiago",
}

func newActor(t *testing.T, caps ...kernel.Capability) kernel.Actor {
	t.Helper()
	a, err := kernel.NewActor(kernel.NewUUID(), caps...)
	require.NoError(t, err)
	return a
}

func newActorWithID(t *testing.T, id kernel.UUID, caps ...kernel.Capability) kernel.Actor {
	t.Helper()
	a, err := kernel.NewActor(id, caps...)
	require.NoError(t, err)
	return a
}

func cartItems(t *testing.T) []order.Item {
	t.Helper()
	item, err := order.NewItem("sku-drill", "Cordless drill", 1, decimal.NewFromInt(10000))
	require.NoError(t, err)
	return []order.Item{item}
}

func newDelivery(t *testing.T, deliveryType order.DeliveryType) order.DeliveryInfo {
	t.Helper()
	info, err := order.NewDeliveryInfo(
		deliveryType,
		order.Contact{Name: "Ana Rojas", Email: "ana@example.com"},
		order.Address{Street: "Los Leones 12", City: "Providencia", Region: "RM"},
		"",
	)
	require.NoError(t, err)
	return info
}

// orderIn restores an order in the given status with a total of 10000.
func orderIn(t *testing.T, owner kernel.UUID, deliveryType order.DeliveryType, status order.Status) *order.Order {
	t.Helper()
	o, err := order.RestoreOrder(order.State{
		ID:        kernel.NewUUID(),
		Number:    "00000042",
		OwnerID:   owner,
		Delivery:  newDelivery(t, deliveryType),
		Items:     cartItems(t),
		Status:    status,
		CreatedAt: testTime,
		UpdatedAt: testTime,
	})
	require.NoError(t, err)
	return o
}

func pendingTransaction(t *testing.T, orderID kernel.UUID) *payment.Transaction {
	t.Helper()
	tx, err := payment.NewTransaction(kernel.NewUUID(), orderID, "pref-42",
		"https://gateway.example/checkout/pref-42", decimal.NewFromInt(10000), testTime)
	require.NoError(t, err)
	return tx
}

func canonicalPayment(status payment.Status, amount int64) payment.CanonicalPayment {
	return payment.CanonicalPayment{
		PaymentID:       "9001",
		PreferenceID:    "pref-42",
		MerchantOrderID: "7001",
		Status:          status,
		Amount:          decimal.NewFromInt(amount),
		Raw:             []byte(`{"id":9001}`),
	}
}

func invoiceIn(t *testing.T, status invoice.Status) *invoice.Invoice {
	t.Helper()
	state := invoice.State{
		ID:         kernel.NewUUID(),
		OrderID:    kernel.NewUUID(),
		CustomerID: kernel.NewUUID(),
		Number:     "F00000001",
		Status:     status,
		Emitter:    emitter,
		Receiver:   invoice.Party{LegalName: "Ana Rojas"},
		Net:        decimal.RequireFromString("8403.36"),
		Tax:        decimal.RequireFromString("1596.64"),
		Total:      decimal.NewFromInt(10000),
		CreatedAt:  testTime,
		UpdatedAt:  testTime,
	}
	if status != invoice.PendingIssue {
		issued := testTime
		state.Document = "<DTE/>"
		state.IssuedAt = &issued
	}
	inv, err := invoice.RestoreInvoice(state)
	require.NoError(t, err)
	return inv
}
