package http

import (
	"context"

	"checkout/internal/core/application/usecases/commands"
	"checkout/internal/core/application/usecases/queries"
	"checkout/internal/core/domain/model/payment"
	"checkout/internal/core/domain/model/reconciliation"
	"checkout/internal/core/domain/model/webhook"
)

// Use case contracts consumed by the server. The command and query handler
// structs satisfy them.
type (
	WebhookHandler interface {
		Handle(ctx context.Context, cmd commands.ApplyPaymentWebhookCommand) (webhook.Disposition, error)
	}

	CreateOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) (string, error)
	}

	TransitionOrderHandler interface {
		Handle(ctx context.Context, cmd commands.TransitionOrderCommand) error
	}

	CreatePaymentPreferenceHandler interface {
		Handle(ctx context.Context, cmd commands.CreatePaymentPreferenceCommand) (*payment.Transaction, error)
	}

	ProcessInvoicePipelineHandler interface {
		Handle(ctx context.Context, cmd commands.ProcessInvoicePipelineCommand) error
	}

	RecordAuthorityResponseHandler interface {
		Handle(ctx context.Context, cmd commands.RecordAuthorityResponseCommand) error
	}

	CreateReconciliationHandler interface {
		Handle(ctx context.Context, cmd commands.CreateReconciliationCommand) (*reconciliation.Reconciliation, error)
	}

	MarkReconciledHandler interface {
		Handle(ctx context.Context, cmd commands.MarkReconciledCommand) error
	}

	MarkDiscrepancyHandler interface {
		Handle(ctx context.Context, cmd commands.MarkDiscrepancyCommand) error
	}

	GetOrderHandler interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (queries.OrderView, error)
	}

	ListOrdersHandler interface {
		Handle(ctx context.Context, query queries.ListOrdersQuery) (queries.OrderPage, error)
	}

	GetInvoiceArtifactHandler interface {
		Handle(ctx context.Context, query queries.GetInvoiceArtifactQuery) (queries.InvoiceArtifact, error)
	}

	ListTransactionsHandler interface {
		Handle(ctx context.Context, query queries.ListTransactionsQuery) (queries.TransactionPage, error)
	}

	ListInvoicesHandler interface {
		Handle(ctx context.Context, query queries.ListInvoicesQuery) (queries.InvoicePage, error)
	}

	ListReconciliationsHandler interface {
		Handle(ctx context.Context, query queries.ListReconciliationsQuery) ([]queries.ReconciliationView, error)
	}
)

// Handlers groups the use cases wired into the server.
type Handlers struct {
	// Command handlers
	ApplyWebhook            WebhookHandler
	CreateOrder             CreateOrderHandler
	TransitionOrder         TransitionOrderHandler
	CreatePayment           CreatePaymentPreferenceHandler
	ProcessInvoice          ProcessInvoicePipelineHandler
	RecordAuthorityResponse RecordAuthorityResponseHandler
	CreateReconciliation    CreateReconciliationHandler
	MarkReconciled          MarkReconciledHandler
	MarkDiscrepancy         MarkDiscrepancyHandler

	// Query handlers
	GetOrder            GetOrderHandler
	ListOrders          ListOrdersHandler
	ListTransactions    ListTransactionsHandler
	ListInvoices        ListInvoicesHandler
	GetInvoiceArtifact  GetInvoiceArtifactHandler
	ListReconciliations ListReconciliationsHandler
}
