package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all custom Prometheus metrics for the application
type Metrics struct {
	// Completion metrics
	CompletionRequests  *prometheus.CounterVec
	CompletionFallbacks *prometheus.CounterVec

	// Integration metrics
	SlackPosts   prometheus.Counter
	TasksCreated prometheus.Counter
	DigestRuns   *prometheus.CounterVec
}

var globalMetrics *Metrics

// InitMetrics initializes the Prometheus metrics. Call once at startup.
func InitMetrics() *Metrics {
	metrics := &Metrics{
		// Completion requests by operation and outcome
		CompletionRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "slackagent_completion_requests_total",
			Help: "Total number of completion API calls by operation and outcome",
		}, []string{"operation", "outcome"}), // outcome: "ok" or "error"

		// Fallback strings served instead of model output
		CompletionFallbacks: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "slackagent_completion_fallbacks_total",
			Help: "Total number of fallback responses served by operation",
		}, []string{"operation"}),

		SlackPosts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "slackagent_slack_messages_posted_total",
			Help: "Total number of messages posted to Slack",
		}),

		TasksCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "slackagent_tasks_created_total",
			Help: "Total number of tasks created in the task store",
		}),

		DigestRuns: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "slackagent_digest_runs_total",
			Help: "Total number of daily digest generations by outcome",
		}, []string{"outcome"}), // outcome: "ok" or "fallback"
	}

	globalMetrics = metrics
	return metrics
}

// GetMetrics returns the global metrics instance. May be nil in tests.
func GetMetrics() *Metrics {
	return globalMetrics
}

// RecordCompletion records one completion API call.
func (m *Metrics) RecordCompletion(operation, outcome string) {
	if m == nil {
		return
	}
	m.CompletionRequests.WithLabelValues(operation, outcome).Inc()
}

// RecordFallback records a fallback string served instead of model output.
func (m *Metrics) RecordFallback(operation string) {
	if m == nil {
		return
	}
	m.CompletionFallbacks.WithLabelValues(operation).Inc()
}

// RecordSlackPost records a message posted to Slack.
func (m *Metrics) RecordSlackPost() {
	if m == nil {
		return
	}
	m.SlackPosts.Inc()
}

// RecordTaskCreated records a task created in the task store.
func (m *Metrics) RecordTaskCreated() {
	if m == nil {
		return
	}
	m.TasksCreated.Inc()
}

// RecordDigestRun records one digest generation.
func (m *Metrics) RecordDigestRun(outcome string) {
	if m == nil {
		return
	}
	m.DigestRuns.WithLabelValues(outcome).Inc()
}
