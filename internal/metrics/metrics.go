// Package metrics exposes extraction telemetry as Prometheus collectors.
package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/phrazzld/tasksift/internal/extraction"
)

const namespace = "tasksift"

var (
	defaultMetrics *Metrics
	defaultOnce    sync.Once
)

// Metrics holds the extraction collectors and implements extraction.Recorder.
type Metrics struct {
	ExtractionsTotal    *prometheus.CounterVec
	RemoteFailuresTotal *prometheus.CounterVec
	TasksExtractedTotal *prometheus.CounterVec
	RemoteDuration      *prometheus.HistogramVec
}

var _ extraction.Recorder = (*Metrics)(nil)

// New creates the collectors and registers them with reg.
//
// Metrics:
//   - tasksift_extractions_total{operation, path}
//   - tasksift_remote_failures_total{operation, kind}
//   - tasksift_tasks_extracted_total{path}
//   - tasksift_remote_duration_seconds{operation}
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		ExtractionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "extractions_total",
				Help:      "Completed extraction operations by engine path",
			},
			[]string{"operation", "path"}, // path: remote, local, fallback
		),
		RemoteFailuresTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "remote_failures_total",
				Help:      "Remote engine failures recovered by the local fallback",
			},
			[]string{"operation", "kind"},
		),
		TasksExtractedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "tasks_extracted_total",
				Help:      "Tasks returned to callers by engine path",
			},
			[]string{"path"},
		),
		RemoteDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "remote_duration_seconds",
				Help:      "Latency of remote engine calls, failures included",
				Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10), // 50ms to ~25s
			},
			[]string{"operation"},
		),
	}
}

// Default returns the process-wide Metrics registered on the default
// registry. Repeated calls return the same instance.
func Default() *Metrics {
	defaultOnce.Do(func() {
		defaultMetrics = New(prometheus.DefaultRegisterer)
	})
	return defaultMetrics
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveExtraction counts a finished operation and, for extractions, its tasks.
func (m *Metrics) ObserveExtraction(operation, path string, tasks int) {
	m.ExtractionsTotal.WithLabelValues(operation, path).Inc()
	if operation == extraction.OperationExtract && tasks > 0 {
		m.TasksExtractedTotal.WithLabelValues(path).Add(float64(tasks))
	}
}

// ObserveRemoteFailure counts a remote failure by kind.
func (m *Metrics) ObserveRemoteFailure(operation, kind string) {
	m.RemoteFailuresTotal.WithLabelValues(operation, kind).Inc()
}

// ObserveRemoteDuration records the latency of one remote call.
func (m *Metrics) ObserveRemoteDuration(operation string, d time.Duration) {
	m.RemoteDuration.WithLabelValues(operation).Observe(d.Seconds())
}
