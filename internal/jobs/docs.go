// Package jobs provides scheduled background tasks for the checkout service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to drive the work that must eventually happen even when no request asks for it.
//
// # Available Jobs
//
// 1. InvoicePipelineJob - advances unfinished invoices through emit, send and render
// 2. WebhookReplayJob - re-processes webhook events that failed for a transient reason
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(logger, invoiceJob, replayJob)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules use the six field cron syntax with seconds ("*/30 * * * * *").
// A run still in progress when the next tick fires makes that tick a no-op.
//
// # Error Handling
//
// - A failing item never stops the batch; it is logged and retried next run
// - Failed job starts will stop any already running jobs
package jobs
