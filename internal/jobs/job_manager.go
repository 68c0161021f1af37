package jobs

import (
	"context"
	"fmt"
	"time"

	"checkout/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Job is one unit of scheduled work.
type Job interface {
	Name() string
	Schedule() string
	Run(ctx context.Context) error
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	jobs    []Job
	timeout time.Duration
	metrics *metrics.Metrics
	logger  *zap.Logger
	cron    *cron.Cron
}

// NewJobManager creates a job manager for jobs. Every run gets a context
// bounded by timeout.
func NewJobManager(logger *zap.Logger, m *metrics.Metrics, timeout time.Duration, jobs ...Job) *JobManager {
	logger = logger.Named("jobs")
	return &JobManager{
		jobs:    jobs,
		timeout: timeout,
		metrics: m,
		logger:  logger,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cronLogger{logger.Sugar()})),
		),
	}
}

// StartAll schedules all jobs and starts the scheduler.
// Returns an error if any schedule is invalid; nothing runs in that case.
func (jm *JobManager) StartAll() error {
	for _, job := range jm.jobs {
		if _, err := jm.cron.AddJob(job.Schedule(), jm.wrap(job)); err != nil {
			// Remove the jobs added so far
			for _, entry := range jm.cron.Entries() {
				jm.cron.Remove(entry.ID)
			}
			return fmt.Errorf("failed to schedule %s job: %w", job.Name(), err)
		}
		jm.logger.Info("job scheduled",
			zap.String("job", job.Name()),
			zap.String("schedule", job.Schedule()),
		)
	}

	jm.cron.Start()
	return nil
}

// StopAll stops the scheduler and waits for running jobs to return.
func (jm *JobManager) StopAll() {
	<-jm.cron.Stop().Done()
	jm.logger.Info("jobs stopped")
}

func (jm *JobManager) wrap(job Job) cron.Job {
	return cron.FuncJob(func() {
		ctx, cancel := context.WithTimeout(context.Background(), jm.timeout)
		defer cancel()

		err := job.Run(ctx)
		jm.metrics.JobRun(job.Name(), err)
		if err != nil {
			jm.logger.Error("job failed", zap.String("job", job.Name()), zap.Error(err))
		}
	})
}

// cronLogger adapts zap to the cron.Logger interface.
type cronLogger struct {
	logger *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Errorw(msg, append(keysAndValues, "error", err)...)
}
