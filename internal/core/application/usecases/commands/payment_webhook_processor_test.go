package commands_test

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"checkout/internal/core/application/usecases/commands"
	"checkout/internal/core/domain/model/invoice"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/order"
	"checkout/internal/core/domain/model/payment"
	"checkout/internal/core/domain/model/webhook"
	"checkout/internal/core/ports"
	"checkout/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type webhookFixture struct {
	orders    *MockOrderRepository
	txs       *MockTransactionRepository
	invoices  *MockInvoiceRepository
	events    *MockWebhookEventRepository
	uow       *MockUoW
	factory   *MockPaymentUoWFactory
	gateway   *MockGateway
	locker    *MockLocker
	customers *MockCustomerDirectory
	publisher *MockEventPublisher
	processor *commands.PaymentWebhookProcessor
}

func newWebhookFixture() webhookFixture {
	f := webhookFixture{
		orders:    new(MockOrderRepository),
		txs:       new(MockTransactionRepository),
		invoices:  new(MockInvoiceRepository),
		events:    new(MockWebhookEventRepository),
		uow:       new(MockUoW),
		factory:   new(MockPaymentUoWFactory),
		gateway:   new(MockGateway),
		locker:    new(MockLocker),
		customers: new(MockCustomerDirectory),
		publisher: new(MockEventPublisher),
	}
	f.factory.On("Create").Return(f.uow)
	f.uow.On("OrderRepository").Return(f.orders)
	f.uow.On("TransactionRepository").Return(f.txs)
	f.uow.On("InvoiceRepository").Return(f.invoices)
	f.uow.On("WebhookEventRepository").Return(f.events)
	f.uow.On("Rollback", mock.Anything).Return(nil)
	f.locker.On("Lock", mock.Anything, mock.Anything).Return(noopRelease, nil)

	generator := commands.NewInvoiceGenerator(f.customers, emitter)
	f.processor = commands.NewPaymentWebhookProcessor(f.factory, f.gateway, f.locker, generator, f.publisher)
	return f
}

func paymentEvent(t *testing.T) *webhook.Event {
	t.Helper()
	e, err := webhook.NewEvent(1, []byte(`{"type":"payment","data":{"id":9001}}`), testTime)
	require.NoError(t, err)
	return e
}

// expectSettlementTx wires the transaction lookup, locks and commit around a
// settlement attempt.
func (f webhookFixture) expectSettlementTx(t *testing.T, tx *payment.Transaction) {
	t.Helper()
	ctx := t.Context()
	f.txs.On("GetByPreferenceID", ctx, "pref-42").Return(tx, nil).Once()
	f.uow.On("Begin", ctx).Return(nil).Once()
	f.txs.On("GetByPreferenceIDForUpdate", ctx, "pref-42").Return(tx, nil).Once()
	f.txs.On("Update", ctx, tx).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()
	f.uow.On("CollectEvents").Return([]kernel.DomainEvent(nil)).Once()
	f.publisher.On("Publish", ctx, mock.Anything).Once()
}

func TestPaymentWebhookProcessor_FirstApprovalSettles(t *testing.T) {
	ctx := t.Context()
	f := newWebhookFixture()
	o := orderIn(t, kernel.NewUUID(), order.Pickup, order.Pending)
	tx := pendingTransaction(t, o.ID())

	f.gateway.On("FetchPayment", ctx, "9001").Return(canonicalPayment(payment.Approved, 10000), nil).Once()
	f.expectSettlementTx(t, tx)
	f.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	f.orders.On("Update", ctx, o).Return(nil).Once()
	f.invoices.On("ExistsForOrder", ctx, o.ID()).Return(false, nil).Once()
	f.invoices.On("NextNumber", ctx).Return("F00000001", nil).Once()
	f.customers.On("GetCustomer", ctx, o.OwnerID()).
		Return(ports.Customer{}, errs.NewObjectNotFoundError("customer", o.OwnerID())).Once()

	var generated *invoice.Invoice
	f.invoices.On("Add", ctx, mock.AnythingOfType("*invoice.Invoice")).
		Run(func(args mock.Arguments) { generated = args.Get(1).(*invoice.Invoice) }).
		Return(nil).Once()

	event := paymentEvent(t)
	disposition, err := f.processor.Process(ctx, event)
	require.NoError(t, err)
	assert.Equal(t, webhook.Processed, disposition)
	assert.Equal(t, "payment", event.EventType())
	assert.Equal(t, "9001", event.ExternalID())

	assert.Equal(t, order.Paid, o.Status())
	require.NotNil(t, o.Timestamps().PaidAt)
	assert.True(t, tx.IsSettled())
	assert.Equal(t, payment.Approved, tx.Status())

	require.NotNil(t, generated)
	assert.Equal(t, "F00000001", generated.Number())
	assert.True(t, generated.Total().Equal(decimal.NewFromInt(10000)))
	assert.Equal(t, "8403.36", generated.Net().StringFixed(2))
	assert.Equal(t, "1596.64", generated.Tax().StringFixed(2))
	assert.Equal(t, "Ana Rojas", generated.Receiver().LegalName)
	assert.Equal(t, commands.StorePickupAddress, generated.Receiver().Address)

	// transaction lock is taken before the order lock
	require.Len(t, f.locker.Calls, 2)
	assert.Equal(t, "transaction:pref-42", f.locker.Calls[0].Arguments.String(1))
	assert.Equal(t, "order:"+o.ID().String(), f.locker.Calls[1].Arguments.String(1))

	f.orders.AssertExpectations(t)
	f.txs.AssertExpectations(t)
	f.invoices.AssertExpectations(t)
}

func TestPaymentWebhookProcessor_SettledApprovalIsNoop(t *testing.T) {
	ctx := t.Context()
	f := newWebhookFixture()
	tx := pendingTransaction(t, kernel.NewUUID())
	require.NoError(t, tx.ApplyCanonical(canonicalPayment(payment.Approved, 10000), testTime))
	require.NoError(t, tx.MarkSettled(testTime))
	settledAt := *tx.SettledAt()

	f.gateway.On("FetchPayment", ctx, "9001").Return(canonicalPayment(payment.Approved, 10000), nil).Once()
	f.expectSettlementTx(t, tx)

	disposition, err := f.processor.Process(ctx, paymentEvent(t))
	require.NoError(t, err)
	assert.Equal(t, webhook.Processed, disposition)
	assert.Equal(t, settledAt, *tx.SettledAt())

	f.orders.AssertNotCalled(t, "GetForUpdate", mock.Anything, mock.Anything)
	f.invoices.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestPaymentWebhookProcessor_AmountMismatchIsRecorded(t *testing.T) {
	ctx := t.Context()
	f := newWebhookFixture()
	tx := pendingTransaction(t, kernel.NewUUID())

	f.gateway.On("FetchPayment", ctx, "9001").Return(canonicalPayment(payment.Approved, 9500), nil).Once()
	f.expectSettlementTx(t, tx)

	disposition, err := f.processor.Process(ctx, paymentEvent(t))
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Equal(t, webhook.Rejected, disposition)

	assert.Equal(t, payment.Approved, tx.Status())
	assert.False(t, tx.IsSettled())
	f.orders.AssertNotCalled(t, "GetForUpdate", mock.Anything, mock.Anything)
	f.txs.AssertExpectations(t)
}

func TestPaymentWebhookProcessor_CancelledOrderIsNotPaid(t *testing.T) {
	ctx := t.Context()
	f := newWebhookFixture()
	o := orderIn(t, kernel.NewUUID(), order.Pickup, order.Cancelled)
	tx := pendingTransaction(t, o.ID())

	f.gateway.On("FetchPayment", ctx, "9001").Return(canonicalPayment(payment.Approved, 10000), nil).Once()
	f.expectSettlementTx(t, tx)
	f.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()

	disposition, err := f.processor.Process(ctx, paymentEvent(t))
	require.ErrorIs(t, err, errs.ErrInvalidTransition)
	assert.Equal(t, webhook.Rejected, disposition)
	assert.Equal(t, order.Cancelled, o.Status())
	assert.False(t, tx.IsSettled())
	f.orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestPaymentWebhookProcessor_UnknownPreference(t *testing.T) {
	ctx := t.Context()
	f := newWebhookFixture()

	f.gateway.On("FetchPayment", ctx, "9001").Return(canonicalPayment(payment.Approved, 10000), nil).Once()
	f.txs.On("GetByPreferenceID", ctx, "pref-42").
		Return(nil, errs.NewObjectNotFoundError("preference", "pref-42")).Once()

	disposition, err := f.processor.Process(ctx, paymentEvent(t))
	require.ErrorIs(t, err, errs.ErrUnknownTransaction)
	assert.Equal(t, webhook.UnknownTransaction, disposition)
	f.locker.AssertNotCalled(t, "Lock", mock.Anything, mock.Anything)
	f.uow.AssertNotCalled(t, "Begin", mock.Anything)
}

func TestPaymentWebhookProcessor_NonPaymentIsIgnored(t *testing.T) {
	f := newWebhookFixture()
	e, err := webhook.NewEvent(2, []byte(`{"type":"merchant_order","data":{"id":"7001"}}`), testTime)
	require.NoError(t, err)

	disposition, err := f.processor.Process(t.Context(), e)
	require.NoError(t, err)
	assert.Equal(t, webhook.Ignored, disposition)
	f.gateway.AssertNotCalled(t, "FetchPayment", mock.Anything, mock.Anything)
}

func TestPaymentWebhookProcessor_FetchFailureIsRetryable(t *testing.T) {
	ctx := t.Context()
	f := newWebhookFixture()
	f.gateway.On("FetchPayment", ctx, "9001").
		Return(payment.CanonicalPayment{}, errors.New("connection reset")).Once()

	disposition, err := f.processor.Process(ctx, paymentEvent(t))
	require.ErrorIs(t, err, errs.ErrGateway)
	assert.Equal(t, webhook.Failed, disposition)
}

func TestPaymentWebhookProcessor_MalformedBody(t *testing.T) {
	f := newWebhookFixture()
	e, err := webhook.NewEvent(3, []byte(`not json`), testTime)
	require.NoError(t, err)

	disposition, err := f.processor.Process(t.Context(), e)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Equal(t, webhook.Rejected, disposition)
}

func TestApplyPaymentWebhookCommandHandler_RecordsEventFirst(t *testing.T) {
	ctx := t.Context()
	f := newWebhookFixture()

	var stored []webhook.Disposition
	record := func(args mock.Arguments) { stored = append(stored, args.Get(1).(*webhook.Event).Disposition()) }
	mock.InOrder(
		f.events.On("Add", ctx, mock.AnythingOfType("*webhook.Event")).Run(record).Return(nil).Once(),
		f.events.On("Update", ctx, mock.AnythingOfType("*webhook.Event")).Run(record).Return(nil).Once(),
	)

	h := commands.NewApplyPaymentWebhookCommandHandler(f.factory, &sequenceIDs{}, f.processor)
	cmd, err := commands.NewApplyPaymentWebhookCommand([]byte(`{"type":"plan","data":{"id":"1"}}`))
	require.NoError(t, err)

	disposition, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, webhook.Ignored, disposition)
	assert.Equal(t, []webhook.Disposition{webhook.Received, webhook.Ignored}, stored)
	f.events.AssertExpectations(t)
}

func TestApplyPaymentWebhookCommandHandler_RecordFailure(t *testing.T) {
	ctx := t.Context()
	f := newWebhookFixture()
	f.events.On("Add", ctx, mock.Anything).Return(errors.New("db down")).Once()

	h := commands.NewApplyPaymentWebhookCommandHandler(f.factory, &sequenceIDs{}, f.processor)
	cmd, err := commands.NewApplyPaymentWebhookCommand(paymentEvent(t).Body())
	require.NoError(t, err)

	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, commands.ErrWebhookNotRecorded)
	f.gateway.AssertNotCalled(t, "FetchPayment", mock.Anything, mock.Anything)
}

func TestApplyPaymentWebhookCommandHandler_OversizedBodyIsRejected(t *testing.T) {
	ctx := t.Context()
	f := newWebhookFixture()

	var saved *webhook.Event
	f.events.On("Add", ctx, mock.AnythingOfType("*webhook.Event")).Return(nil).Once()
	f.events.On("Update", ctx, mock.AnythingOfType("*webhook.Event")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*webhook.Event) }).
		Return(nil).Once()

	body := bytes.Repeat([]byte("x"), commands.MaxWebhookBodySize+64)
	cmd, err := commands.NewApplyPaymentWebhookCommand(body)
	require.NoError(t, err)
	assert.True(t, cmd.Oversized())
	assert.Len(t, cmd.Body(), commands.MaxWebhookBodySize+1)

	h := commands.NewApplyPaymentWebhookCommandHandler(f.factory, &sequenceIDs{}, f.processor)
	disposition, err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	require.NotErrorIs(t, err, commands.ErrWebhookNotRecorded)
	assert.Equal(t, webhook.Rejected, disposition)

	require.NotNil(t, saved)
	assert.Equal(t, webhook.Rejected, saved.Disposition())
	assert.False(t, saved.IsRetryable())
	f.gateway.AssertNotCalled(t, "FetchPayment", mock.Anything, mock.Anything)
	f.events.AssertExpectations(t)
}

func TestNewApplyPaymentWebhookCommand_BodyAtLimitIsNotOversized(t *testing.T) {
	cmd, err := commands.NewApplyPaymentWebhookCommand(bytes.Repeat([]byte("x"), commands.MaxWebhookBodySize))
	require.NoError(t, err)
	assert.False(t, cmd.Oversized())
	assert.Len(t, cmd.Body(), commands.MaxWebhookBodySize)
}

func TestReplayWebhookEventsCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	f := newWebhookFixture()

	failed := paymentEvent(t)
	failed.Resolve(webhook.Failed, errors.New("timeout"), testTime.Add(time.Minute))

	f.events.On("ListRetryable", ctx, 5, 50).Return([]*webhook.Event{failed}, nil).Once()
	f.gateway.On("FetchPayment", ctx, "9001").Return(payment.CanonicalPayment{}, errors.New("still down")).Once()
	f.events.On("Update", ctx, failed).Return(nil).Once()

	h := commands.NewReplayWebhookEventsCommandHandler(f.factory, f.processor)
	cmd, err := commands.NewReplayWebhookEventsCommand(5, 50)
	require.NoError(t, err)

	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, commands.ReplayResult{Attempted: 1, Failed: 1}, result)
	assert.Equal(t, 2, failed.Attempts())
	assert.True(t, failed.IsRetryable())
}

func TestNewReplayWebhookEventsCommand_InvalidInput(t *testing.T) {
	_, err := commands.NewReplayWebhookEventsCommand(0, 0)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}
