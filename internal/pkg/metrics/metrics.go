// Package metrics holds the Prometheus counters of the checkout service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "checkout"

// Outcome labels shared by the counters.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Metrics groups the service counters. Label values are kept low-cardinality:
// dispositions, statuses, step names and route templates, never ids.
type Metrics struct {
	webhookDispositions *prometheus.CounterVec
	orderTransitions    *prometheus.CounterVec
	invoiceSteps        *prometheus.CounterVec
	jobRuns             *prometheus.CounterVec
	httpRequests        *prometheus.CounterVec
}

// New registers the counters on registerer, or on the default registerer when
// it is nil.
func New(registerer prometheus.Registerer) *Metrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		webhookDispositions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "webhook_events_total",
			Help:      "Payment webhook events by disposition.",
		}, []string{"disposition"}),
		orderTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_transitions_total",
			Help:      "Order transition requests by target status and outcome.",
		}, []string{"target", "outcome"}),
		invoiceSteps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invoice_pipeline_runs_total",
			Help:      "Invoice pipeline runs by trigger and outcome.",
		}, []string{"trigger", "outcome"}),
		jobRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "job_runs_total",
			Help:      "Scheduled job runs by name and outcome.",
		}, []string{"job", "outcome"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "code"}),
	}

	registerer.MustRegister(
		m.webhookDispositions,
		m.orderTransitions,
		m.invoiceSteps,
		m.jobRuns,
		m.httpRequests,
	)

	return m
}

func (m *Metrics) WebhookDisposition(disposition string) {
	m.webhookDispositions.WithLabelValues(disposition).Inc()
}

func (m *Metrics) OrderTransition(target string, err error) {
	m.orderTransitions.WithLabelValues(target, outcome(err)).Inc()
}

// InvoicePipeline counts one pipeline run; trigger is "api" or "job".
func (m *Metrics) InvoicePipeline(trigger string, err error) {
	m.invoiceSteps.WithLabelValues(trigger, outcome(err)).Inc()
}

func (m *Metrics) JobRun(job string, err error) {
	m.jobRuns.WithLabelValues(job, outcome(err)).Inc()
}

func (m *Metrics) HTTPRequest(method, route, code string) {
	m.httpRequests.WithLabelValues(method, route, code).Inc()
}

func outcome(err error) string {
	if err != nil {
		return OutcomeFailure
	}
	return OutcomeSuccess
}
