// Package metrics defines the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "splitapp"

// Result labels shared by the reminder and receipt counters.
const (
	ResultOK        = "ok"
	ResultError     = "error"
	ResultThrottled = "throttled"
	ResultUnread    = "unreadable"
)

// Metrics holds every collector the server updates.
type Metrics struct {
	registry *prometheus.Registry

	RPCRequests        *prometheus.CounterVec
	RPCDuration        *prometheus.HistogramVec
	Reminders          *prometheus.CounterVec
	ReceiptExtractions *prometheus.CounterVec
}

// New creates the collectors on a dedicated registry together with the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		RPCRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "RPC calls by procedure and result code.",
		}, []string{"procedure", "code"}),
		RPCDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "RPC latency by procedure and result code.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure", "code"}),
		Reminders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reminders_total",
			Help:      "Payment reminders by result.",
		}, []string{"result"}),
		ReceiptExtractions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "receipt_extractions_total",
			Help:      "Receipt image extractions by result.",
		}, []string{"result"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.RPCRequests,
		m.RPCDuration,
		m.Reminders,
		m.ReceiptExtractions,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveReminder counts a reminder outcome. Safe on a nil receiver.
func (m *Metrics) ObserveReminder(result string) {
	if m == nil {
		return
	}
	m.Reminders.WithLabelValues(result).Inc()
}

// ObserveExtraction counts a receipt extraction outcome. Safe on a nil receiver.
func (m *Metrics) ObserveExtraction(result string) {
	if m == nil {
		return
	}
	m.ReceiptExtractions.WithLabelValues(result).Inc()
}
