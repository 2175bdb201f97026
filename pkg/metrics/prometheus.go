package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	JobRuns             *prometheus.CounterVec
	JobDuration         prometheus.Histogram
	DestinationFailures *prometheus.CounterVec
	MessagesPublished   prometheus.Counter
	GateDecisions       *prometheus.CounterVec
	WebhookRequests     *prometheus.CounterVec
}

// NewMetrics creates the service metrics and registers them with reg.
// A nil reg skips registration.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		JobRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "job_runs_total",
			Help:      "Daily fare job runs by outcome",
		}, []string{"outcome"}),
		JobDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "job_duration_seconds",
			Help:      "Time taken by a full fare job run",
			Buckets:   prometheus.DefBuckets,
		}),
		DestinationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "destination_failures_total",
			Help:      "Destination pipelines that failed, by destination and stage",
		}, []string{"destination", "stage"}),
		MessagesPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_published_total",
			Help:      "Chat messages posted to the channel",
		}),
		GateDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "schedule_gate_decisions_total",
			Help:      "Schedule gate outcomes per tick",
		}, []string{"decision"}),
		WebhookRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "webhook_requests_total",
			Help:      "Interaction webhook requests by result",
		}, []string{"result"}),
	}

	if reg != nil {
		reg.MustRegister(
			m.JobRuns,
			m.JobDuration,
			m.DestinationFailures,
			m.MessagesPublished,
			m.GateDecisions,
			m.WebhookRequests,
		)
	}
	return m
}
