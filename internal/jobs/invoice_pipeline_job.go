package jobs

import (
	"context"

	"checkout/internal/core/application/usecases/commands"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/metrics"

	"go.uber.org/zap"
)

type (
	// UnfinishedInvoices lists invoices that still have pipeline steps to run.
	UnfinishedInvoices interface {
		ListUnfinished(ctx context.Context, maxAttempts, limit int) ([]kernel.UUID, error)
	}

	InvoicePipelineHandler interface {
		Handle(ctx context.Context, cmd commands.ProcessInvoicePipelineCommand) error
	}
)

// InvoicePipelineJob advances every unfinished invoice by one pipeline run.
// Invoices are independent: one failing at the authority does not hold the
// others back, and it is picked up again on the next run until it reaches
// maxAttempts.
type InvoicePipelineJob struct {
	invoices    UnfinishedInvoices
	handler     InvoicePipelineHandler
	schedule    string
	maxAttempts int
	batchSize   int
	metrics     *metrics.Metrics
	logger      *zap.Logger
}

func NewInvoicePipelineJob(
	invoices UnfinishedInvoices,
	handler InvoicePipelineHandler,
	schedule string,
	maxAttempts, batchSize int,
	m *metrics.Metrics,
	logger *zap.Logger,
) *InvoicePipelineJob {
	return &InvoicePipelineJob{
		invoices:    invoices,
		handler:     handler,
		schedule:    schedule,
		maxAttempts: maxAttempts,
		batchSize:   batchSize,
		metrics:     m,
		logger:      logger.Named("invoice-pipeline-job"),
	}
}

func (j *InvoicePipelineJob) Name() string     { return "invoice-pipeline" }
func (j *InvoicePipelineJob) Schedule() string { return j.schedule }

// Run returns an error only when the batch could not be listed.
func (j *InvoicePipelineJob) Run(ctx context.Context) error {
	ids, err := j.invoices.ListUnfinished(ctx, j.maxAttempts, j.batchSize)
	if err != nil {
		return err
	}

	failed := 0
	for _, id := range ids {
		if ctx.Err() != nil {
			break
		}

		cmd, cmdErr := commands.NewProcessInvoicePipelineCommand(id)
		if cmdErr != nil {
			j.logger.Error("invalid invoice id", zap.Stringer("invoice_id", id), zap.Error(cmdErr))
			continue
		}

		runErr := j.handler.Handle(ctx, cmd)
		j.metrics.InvoicePipeline("job", runErr)
		if runErr != nil {
			failed++
			j.logger.Warn("invoice pipeline step failed",
				zap.Stringer("invoice_id", id),
				zap.Error(runErr),
			)
		}
	}

	if len(ids) > 0 {
		j.logger.Info("invoice pipeline run",
			zap.Int("invoices", len(ids)),
			zap.Int("failed", failed),
		)
	}

	return nil
}
