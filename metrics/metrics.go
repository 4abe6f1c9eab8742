// Package metrics holds the Prometheus collectors for the sales listing path
// and the ingestion pipeline. Collectors live in their own registry so the
// server can expose it on /metrics and the import command can push it to a
// Pushgateway when it finishes.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Metrics groups every collector the application records.
type Metrics struct {
	Registry *prometheus.Registry

	queryDuration *prometheus.HistogramVec
	queryFailures prometheus.Counter

	records *prometheus.CounterVec
	batches prometheus.Counter
	runs    *prometheus.CounterVec
}

// New builds and registers the collectors. withRuntime adds the Go and
// process collectors, which only make sense for a long-running server.
func New(withRuntime bool) *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		Registry: reg,
		queryDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sales_query_duration_seconds",
				Help:    "Duration of sales listing reads, partitioned by step.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"step"},
		),
		queryFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sales_query_failures_total",
			Help: "Sales listing requests that failed in storage.",
		}),
		records: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sales_import_records_total",
				Help: "Imported record counts per kind (read, inserted, rejected).",
			},
			[]string{"kind"},
		),
		batches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sales_import_batches_total",
			Help: "Batches committed by the importer.",
		}),
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sales_import_runs_total",
				Help: "Import runs partitioned by outcome.",
			},
			[]string{"status"},
		),
	}
	reg.MustRegister(m.queryDuration, m.queryFailures, m.records, m.batches, m.runs)
	if withRuntime {
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}
	return m
}

// ObserveQueryStep records how long one read step (find, count, summary) took.
func (m *Metrics) ObserveQueryStep(step string, d time.Duration) {
	if m == nil {
		return
	}
	m.queryDuration.WithLabelValues(step).Observe(d.Seconds())
}

// QueryFailed counts a listing request that failed in storage.
func (m *Metrics) QueryFailed() {
	if m == nil {
		return
	}
	m.queryFailures.Inc()
}

// RecordRows adds delta to the record counter of kind.
func (m *Metrics) RecordRows(kind string, delta int64) {
	if m == nil || delta <= 0 {
		return
	}
	m.records.WithLabelValues(kind).Add(float64(delta))
}

// BatchCommitted counts one committed batch.
func (m *Metrics) BatchCommitted() {
	if m == nil {
		return
	}
	m.batches.Inc()
}

// RunFinished counts an import run by outcome.
func (m *Metrics) RunFinished(err error) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "failure"
	}
	m.runs.WithLabelValues(status).Inc()
}

// Push sends the registry to a Pushgateway under job.
func (m *Metrics) Push(gatewayURL, job string) error {
	if err := push.New(gatewayURL, job).Gatherer(m.Registry).Push(); err != nil {
		return fmt.Errorf("push metrics: %w", err)
	}
	return nil
}
