package cmd

import (
	"context"
	"fmt"
	"time"

	httpin "checkout/internal/adapters/in/http"
	"checkout/internal/adapters/out/document"
	"checkout/internal/adapters/out/fiscal"
	"checkout/internal/adapters/out/idgen"
	"checkout/internal/adapters/out/lock"
	"checkout/internal/adapters/out/mercadopago"
	"checkout/internal/adapters/out/notification"
	"checkout/internal/adapters/out/postgres"
	"checkout/internal/adapters/out/postgres/customerrepo"
	"checkout/internal/core/application/usecases/commands"
	"checkout/internal/core/application/usecases/queries"
	"checkout/internal/core/domain/model/invoice"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/ports"
	"checkout/internal/jobs"
	"checkout/internal/pkg/metrics"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory

	locker    ports.Locker
	publisher commands.EventDispatcher
	gateway   ports.PaymentGatewayClient
	authority ports.FiscalAuthorityClient
	renderer  ports.DocumentRenderer
	ids       ports.IDGenerator
	customers ports.CustomerDirectory

	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewCompositionRoot builds the outbound adapters. A nil redis client selects
// in-process locks and logged notifications.
func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	redisClient *redis.Client,
	m *metrics.Metrics,
	logger *zap.Logger,
) (*CompositionRoot, error) {
	gateway, err := mercadopago.NewClient(mercadopago.Config{
		BaseURL:     config.GatewayBaseURL,
		AccessToken: config.GatewayAccessToken,
		Currency:    config.GatewayCurrency,
		Timeout:     config.GatewayTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("payment gateway client: %w", err)
	}

	authority, err := fiscal.NewClient(fiscal.Config{
		BaseURL: config.FiscalBaseURL,
		APIKey:  config.FiscalAPIKey,
		Timeout: config.FiscalTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("fiscal authority client: %w", err)
	}

	ids, err := idgen.NewSnowflakeGenerator(config.SnowflakeNode)
	if err != nil {
		return nil, fmt.Errorf("id generator: %w", err)
	}

	location, err := time.LoadLocation(config.DocumentTimeZone)
	if err != nil {
		return nil, fmt.Errorf("document time zone: %w", err)
	}

	var (
		locker      ports.Locker
		notifyingTo ports.NotificationPublisher
	)
	if redisClient != nil {
		locker = lock.NewRedisLocker(redisClient, config.LockTTL, logger)
		notifyingTo = notification.NewRedisPublisher(redisClient, config.RedisChannel)
	} else {
		locker = lock.NewMemoryLocker()
		notifyingTo = notification.NewLogPublisher(logger)
	}

	return &CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		locker:     locker,
		publisher:  commands.NewEventDispatcher(notifyingTo, logger),
		gateway:    gateway,
		authority:  authority,
		renderer:   document.NewRenderer(document.WithLocation(location)),
		ids:        ids,
		customers:  customerrepo.NewGormCustomerDirectory(gormDB),
		metrics:    m,
		logger:     logger,
	}, nil
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) paymentUoWFactory() commands.PaymentUoWFactory {
	return FuncPaymentUoWFactory(func() commands.PaymentUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) invoiceUoWFactory() commands.InvoiceUoWFactory {
	return FuncInvoiceUoWFactory(func() commands.InvoiceUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) reconciliationUoWFactory() commands.ReconciliationUoWFactory {
	return FuncReconciliationUoWFactory(func() commands.ReconciliationUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) createPaymentWebhookProcessor() *commands.PaymentWebhookProcessor {
	emitter := invoice.Party{
		TaxID:     c.config.EmitterTaxID,
		LegalName: c.config.EmitterLegalName,
		Activity:  c.config.EmitterActivity,
		Address:   c.config.EmitterAddress,
	}
	return commands.NewPaymentWebhookProcessor(
		c.paymentUoWFactory(),
		c.gateway,
		c.locker,
		commands.NewInvoiceGenerator(c.customers, emitter),
		c.publisher,
	)
}

func (c *CompositionRoot) CreateApplyPaymentWebhookCommandHandler() commands.ApplyPaymentWebhookCommandHandler {
	return commands.NewApplyPaymentWebhookCommandHandler(c.paymentUoWFactory(), c.ids, c.createPaymentWebhookProcessor())
}

func (c *CompositionRoot) CreateReplayWebhookEventsCommandHandler() commands.ReplayWebhookEventsCommandHandler {
	return commands.NewReplayWebhookEventsCommandHandler(c.paymentUoWFactory(), c.createPaymentWebhookProcessor())
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	return commands.NewTransitionOrderCommandHandler(c.orderUoWFactory(), c.locker, c.publisher)
}

func (c *CompositionRoot) CreateCreatePaymentPreferenceCommandHandler() commands.CreatePaymentPreferenceCommandHandler {
	return commands.NewCreatePaymentPreferenceCommandHandler(c.paymentUoWFactory(), c.gateway, commands.CallbackURLs{
		SuccessURL:      c.config.SiteURL + "/checkout/success",
		FailureURL:      c.config.SiteURL + "/checkout/failure",
		PendingURL:      c.config.SiteURL + "/checkout/pending",
		NotificationURL: c.config.PublicURL + "/payments/webhook",
	})
}

func (c *CompositionRoot) CreateProcessInvoicePipelineCommandHandler() commands.ProcessInvoicePipelineCommandHandler {
	f := c.invoiceUoWFactory()
	return commands.NewProcessInvoicePipelineCommandHandler(
		commands.NewEmitInvoiceXMLCommandHandler(f, c.locker, c.renderer, c.publisher),
		commands.NewSendInvoiceToAuthorityCommandHandler(f, c.locker, c.authority, c.publisher),
		commands.NewRenderInvoiceArtifactCommandHandler(f, c.locker, c.renderer, c.publisher),
	)
}

func (c *CompositionRoot) CreateRecordAuthorityResponseCommandHandler() commands.RecordAuthorityResponseCommandHandler {
	return commands.NewRecordAuthorityResponseCommandHandler(c.invoiceUoWFactory(), c.locker)
}

func (c *CompositionRoot) CreateCreateReconciliationCommandHandler() commands.CreateReconciliationCommandHandler {
	return commands.NewCreateReconciliationCommandHandler(c.reconciliationUoWFactory())
}

func (c *CompositionRoot) CreateMarkReconciledCommandHandler() commands.MarkReconciledCommandHandler {
	return commands.NewMarkReconciledCommandHandler(c.reconciliationUoWFactory())
}

func (c *CompositionRoot) CreateMarkDiscrepancyCommandHandler() commands.MarkDiscrepancyCommandHandler {
	return commands.NewMarkDiscrepancyCommandHandler(c.reconciliationUoWFactory())
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListTransactionsQueryHandler() queries.ListTransactionsQueryHandler {
	return queries.NewListTransactionsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListInvoicesQueryHandler() queries.ListInvoicesQueryHandler {
	return queries.NewListInvoicesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetInvoiceArtifactQueryHandler() queries.GetInvoiceArtifactQueryHandler {
	return queries.NewGetInvoiceArtifactQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListReconciliationsQueryHandler() queries.ListReconciliationsQueryHandler {
	return queries.NewListReconciliationsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		ApplyWebhook:            c.CreateApplyPaymentWebhookCommandHandler(),
		CreateOrder:             c.CreateCreateOrderCommandHandler(),
		TransitionOrder:         c.CreateTransitionOrderCommandHandler(),
		CreatePayment:           c.CreateCreatePaymentPreferenceCommandHandler(),
		ProcessInvoice:          c.CreateProcessInvoicePipelineCommandHandler(),
		RecordAuthorityResponse: c.CreateRecordAuthorityResponseCommandHandler(),
		CreateReconciliation:    c.CreateCreateReconciliationCommandHandler(),
		MarkReconciled:          c.CreateMarkReconciledCommandHandler(),
		MarkDiscrepancy:         c.CreateMarkDiscrepancyCommandHandler(),

		GetOrder:            c.CreateGetOrderQueryHandler(),
		ListOrders:          c.CreateListOrdersQueryHandler(),
		ListTransactions:    c.CreateListTransactionsQueryHandler(),
		ListInvoices:        c.CreateListInvoicesQueryHandler(),
		GetInvoiceArtifact:  c.CreateGetInvoiceArtifactQueryHandler(),
		ListReconciliations: c.CreateListReconciliationsQueryHandler(),
	}, c.metrics, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	invoices := unfinishedInvoices{uowFactory: c.uowFactory}
	return jobs.NewJobManager(c.logger, c.metrics, c.config.JobTimeout,
		jobs.NewInvoicePipelineJob(
			invoices,
			c.CreateProcessInvoicePipelineCommandHandler(),
			c.config.InvoiceJobSchedule,
			c.config.InvoiceJobMaxAttempts,
			c.config.InvoiceJobBatchSize,
			c.metrics,
			c.logger,
		),
		jobs.NewWebhookReplayJob(
			c.CreateReplayWebhookEventsCommandHandler(),
			c.config.ReplayJobSchedule,
			c.config.ReplayJobMaxAttempts,
			c.config.ReplayJobBatchSize,
			c.logger,
		),
	)
}

// unfinishedInvoices reads outside any transaction.
type unfinishedInvoices struct {
	uowFactory ports.UnitOfWorkFactory
}

func (u unfinishedInvoices) ListUnfinished(ctx context.Context, maxAttempts, limit int) ([]kernel.UUID, error) {
	return u.uowFactory.Create().InvoiceRepository().ListUnfinished(ctx, maxAttempts, limit)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncPaymentUoWFactory func() commands.PaymentUoW

func (f FuncPaymentUoWFactory) Create() commands.PaymentUoW {
	return f()
}

type FuncInvoiceUoWFactory func() commands.InvoiceUoW

func (f FuncInvoiceUoWFactory) Create() commands.InvoiceUoW {
	return f()
}

type FuncReconciliationUoWFactory func() commands.ReconciliationUoW

func (f FuncReconciliationUoWFactory) Create() commands.ReconciliationUoW {
	return f()
}
