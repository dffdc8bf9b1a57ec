// Package monitoring tracks analysis-run metrics, exposing them both as an
// in-process snapshot and through a Prometheus registry.
package monitoring

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Monitor collects metrics across analysis runs.
type Monitor struct {
	metrics      map[string]interface{}
	metricsMutex sync.RWMutex
	startTime    time.Time

	registry    *prometheus.Registry
	runsTotal   prometheus.Counter
	runDuration prometheus.Histogram
	warnings    *prometheus.CounterVec
	datasetRows *prometheus.GaugeVec
}

// NewMonitor creates a monitoring instance with a dedicated Prometheus
// registry.
func NewMonitor() *Monitor {
	m := &Monitor{
		metrics:   make(map[string]interface{}),
		startTime: time.Now(),
		registry:  prometheus.NewRegistry(),
		runsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "brasserie_runs_total",
			Help: "Number of completed analysis runs.",
		}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "brasserie_run_duration_seconds",
			Help:    "Wall time of one analysis run.",
			Buckets: prometheus.DefBuckets,
		}),
		warnings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "brasserie_run_warnings_total",
			Help: "Data warnings collected during analysis runs, by kind.",
		}, []string{"kind"}),
		datasetRows: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "brasserie_dataset_rows",
			Help: "Rows loaded per source dataset.",
		}, []string{"dataset"}),
	}
	m.registry.MustRegister(m.runsTotal, m.runDuration, m.warnings, m.datasetRows)
	return m
}

// Registry exposes the Prometheus registry for the metrics endpoint.
func (m *Monitor) Registry() *prometheus.Registry {
	return m.registry
}

// RecordMetric records an ad-hoc metric value in the snapshot.
func (m *Monitor) RecordMetric(name string, value interface{}) {
	m.metricsMutex.Lock()
	defer m.metricsMutex.Unlock()
	m.metrics[name] = value
}

// GetMetric returns a specific metric value.
func (m *Monitor) GetMetric(name string) (interface{}, bool) {
	m.metricsMutex.RLock()
	defer m.metricsMutex.RUnlock()
	value, exists := m.metrics[name]
	return value, exists
}

// GetMetrics returns a copy of all current snapshot metrics.
func (m *Monitor) GetMetrics() map[string]interface{} {
	m.metricsMutex.RLock()
	defer m.metricsMutex.RUnlock()

	metrics := make(map[string]interface{}, len(m.metrics)+1)
	for k, v := range m.metrics {
		metrics[k] = v
	}
	metrics["uptime_seconds"] = time.Since(m.startTime).Seconds()

	return metrics
}

// Reset clears the snapshot metrics. Prometheus counters are cumulative and
// keep their values.
func (m *Monitor) Reset() {
	m.metricsMutex.Lock()
	defer m.metricsMutex.Unlock()
	m.metrics = make(map[string]interface{})
}

// RecordRun records the outcome of one analysis run: its duration and the
// warnings it collected, keyed by warning kind.
func (m *Monitor) RecordRun(duration time.Duration, warningKinds []string) {
	m.runsTotal.Inc()
	m.runDuration.Observe(duration.Seconds())
	for _, kind := range warningKinds {
		m.warnings.WithLabelValues(kind).Inc()
	}

	m.metricsMutex.Lock()
	defer m.metricsMutex.Unlock()
	m.metrics["last_run_duration_seconds"] = duration.Seconds()
	m.metrics["last_run_warnings"] = len(warningKinds)
	m.metrics["last_run_at"] = time.Now().Format(time.RFC3339)
}

// RecordDatasetRows records how many rows each source dataset contributed to
// the latest run.
func (m *Monitor) RecordDatasetRows(rows map[string]int) {
	m.metricsMutex.Lock()
	defer m.metricsMutex.Unlock()

	for dataset, count := range rows {
		m.datasetRows.WithLabelValues(dataset).Set(float64(count))
		m.metrics["rows_"+dataset] = count
	}
}
