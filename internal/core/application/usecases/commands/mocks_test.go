package commands_test

import (
	"context"
	"time"

	"checkout/internal/core/application/usecases/commands"
	"checkout/internal/core/domain/model/invoice"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/order"
	"checkout/internal/core/domain/model/payment"
	"checkout/internal/core/domain/model/reconciliation"
	"checkout/internal/core/domain/model/webhook"
	"checkout/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetByNumber(ctx context.Context, number string) (*order.Order, error) {
	args := m.Called(ctx, number)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) NextNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

type MockTransactionRepository struct{ mock.Mock }

func (m *MockTransactionRepository) Add(ctx context.Context, tx *payment.Transaction) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *MockTransactionRepository) Update(ctx context.Context, tx *payment.Transaction) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *MockTransactionRepository) Get(ctx context.Context, id kernel.UUID) (*payment.Transaction, error) {
	args := m.Called(ctx, id)
	tx, _ := args.Get(0).(*payment.Transaction)
	return tx, args.Error(1)
}

func (m *MockTransactionRepository) GetByPreferenceID(ctx context.Context, id string) (*payment.Transaction, error) {
	args := m.Called(ctx, id)
	tx, _ := args.Get(0).(*payment.Transaction)
	return tx, args.Error(1)
}

func (m *MockTransactionRepository) GetByPreferenceIDForUpdate(
	ctx context.Context,
	id string,
) (*payment.Transaction, error) {
	args := m.Called(ctx, id)
	tx, _ := args.Get(0).(*payment.Transaction)
	return tx, args.Error(1)
}

type MockInvoiceRepository struct{ mock.Mock }

func (m *MockInvoiceRepository) Add(ctx context.Context, inv *invoice.Invoice) error {
	return m.Called(ctx, inv).Error(0)
}

func (m *MockInvoiceRepository) Update(ctx context.Context, inv *invoice.Invoice) error {
	return m.Called(ctx, inv).Error(0)
}

func (m *MockInvoiceRepository) Get(ctx context.Context, id kernel.UUID) (*invoice.Invoice, error) {
	args := m.Called(ctx, id)
	inv, _ := args.Get(0).(*invoice.Invoice)
	return inv, args.Error(1)
}

func (m *MockInvoiceRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*invoice.Invoice, error) {
	args := m.Called(ctx, id)
	inv, _ := args.Get(0).(*invoice.Invoice)
	return inv, args.Error(1)
}

func (m *MockInvoiceRepository) ExistsForOrder(ctx context.Context, orderID kernel.UUID) (bool, error) {
	args := m.Called(ctx, orderID)
	return args.Bool(0), args.Error(1)
}

func (m *MockInvoiceRepository) NextNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockInvoiceRepository) ListUnfinished(ctx context.Context, maxAttempts, limit int) ([]kernel.UUID, error) {
	args := m.Called(ctx, maxAttempts, limit)
	ids, _ := args.Get(0).([]kernel.UUID)
	return ids, args.Error(1)
}

type MockReconciliationRepository struct{ mock.Mock }

func (m *MockReconciliationRepository) Add(ctx context.Context, r *reconciliation.Reconciliation) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockReconciliationRepository) Update(ctx context.Context, r *reconciliation.Reconciliation) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockReconciliationRepository) Get(
	ctx context.Context,
	id kernel.UUID,
) (*reconciliation.Reconciliation, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*reconciliation.Reconciliation)
	return r, args.Error(1)
}

func (m *MockReconciliationRepository) GetForUpdate(
	ctx context.Context,
	id kernel.UUID,
) (*reconciliation.Reconciliation, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*reconciliation.Reconciliation)
	return r, args.Error(1)
}

func (m *MockReconciliationRepository) ExistsForTransaction(ctx context.Context, id kernel.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockReconciliationRepository) ExistsForInvoice(ctx context.Context, id kernel.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockWebhookEventRepository struct{ mock.Mock }

func (m *MockWebhookEventRepository) Add(ctx context.Context, e *webhook.Event) error {
	return m.Called(ctx, e).Error(0)
}

func (m *MockWebhookEventRepository) Update(ctx context.Context, e *webhook.Event) error {
	return m.Called(ctx, e).Error(0)
}

func (m *MockWebhookEventRepository) ListRetryable(
	ctx context.Context,
	maxAttempts, limit int,
) ([]*webhook.Event, error) {
	args := m.Called(ctx, maxAttempts, limit)
	events, _ := args.Get(0).([]*webhook.Event)
	return events, args.Error(1)
}

// MockUoW satisfies every unit of work interface of the commands package.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) CollectEvents() []kernel.DomainEvent {
	events, _ := m.Called().Get(0).([]kernel.DomainEvent)
	return events
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	return m.Called().Get(0).(ports.OrderRepository)
}

func (m *MockUoW) TransactionRepository() ports.TransactionRepository {
	return m.Called().Get(0).(ports.TransactionRepository)
}

func (m *MockUoW) InvoiceRepository() ports.InvoiceRepository {
	return m.Called().Get(0).(ports.InvoiceRepository)
}

func (m *MockUoW) ReconciliationRepository() ports.ReconciliationRepository {
	return m.Called().Get(0).(ports.ReconciliationRepository)
}

func (m *MockUoW) WebhookEventRepository() ports.WebhookEventRepository {
	return m.Called().Get(0).(ports.WebhookEventRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	return m.Called().Get(0).(commands.OrderUoW)
}

type MockPaymentUoWFactory struct{ mock.Mock }

func (m *MockPaymentUoWFactory) Create() commands.PaymentUoW {
	return m.Called().Get(0).(commands.PaymentUoW)
}

type MockInvoiceUoWFactory struct{ mock.Mock }

func (m *MockInvoiceUoWFactory) Create() commands.InvoiceUoW {
	return m.Called().Get(0).(commands.InvoiceUoW)
}

type MockReconciliationUoWFactory struct{ mock.Mock }

func (m *MockReconciliationUoWFactory) Create() commands.ReconciliationUoW {
	return m.Called().Get(0).(commands.ReconciliationUoW)
}

type MockLocker struct{ mock.Mock }

func (m *MockLocker) Lock(ctx context.Context, key string) (func(), error) {
	args := m.Called(ctx, key)
	release, _ := args.Get(0).(func())
	return release, args.Error(1)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, events []kernel.DomainEvent) {
	m.Called(ctx, events)
}

type MockGateway struct{ mock.Mock }

func (m *MockGateway) CreatePreference(ctx context.Context, req ports.PreferenceRequest) (ports.Preference, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(ports.Preference), args.Error(1)
}

func (m *MockGateway) FetchPayment(ctx context.Context, paymentID string) (payment.CanonicalPayment, error) {
	args := m.Called(ctx, paymentID)
	return args.Get(0).(payment.CanonicalPayment), args.Error(1)
}

type MockFiscalAuthority struct{ mock.Mock }

func (m *MockFiscalAuthority) SendDocument(ctx context.Context, folio, xml string) (string, error) {
	args := m.Called(ctx, folio, xml)
	return args.String(0), args.Error(1)
}

type MockDocumentRenderer struct{ mock.Mock }

func (m *MockDocumentRenderer) RenderXML(inv *invoice.Invoice) (string, error) {
	args := m.Called(inv)
	return args.String(0), args.Error(1)
}

func (m *MockDocumentRenderer) RenderPDF(inv *invoice.Invoice) ([]byte, error) {
	args := m.Called(inv)
	pdf, _ := args.Get(0).([]byte)
	return pdf, args.Error(1)
}

type MockCustomerDirectory struct{ mock.Mock }

func (m *MockCustomerDirectory) GetCustomer(ctx context.Context, ownerID kernel.UUID) (ports.Customer, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(ports.Customer), args.Error(1)
}

type MockNotificationPublisher struct{ mock.Mock }

func (m *MockNotificationPublisher) Publish(ctx context.Context, n ports.Notification) error {
	return m.Called(ctx, n).Error(0)
}

type sequenceIDs struct{ next int64 }

func (s *sequenceIDs) NextID() int64 {
	s.next++
	return s.next
}

func noopRelease() {}

var testTime = time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
