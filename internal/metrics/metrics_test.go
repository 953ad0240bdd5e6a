package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/tasksift/internal/extraction"
)

func TestObserveExtraction(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveExtraction(extraction.OperationExtract, extraction.PathRemote, 3)
	m.ObserveExtraction(extraction.OperationExtract, extraction.PathFallback, 2)
	m.ObserveExtraction(extraction.OperationExtract, extraction.PathFallback, 0)
	m.ObserveExtraction(extraction.OperationPriority, extraction.PathLocal, 1)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.ExtractionsTotal.WithLabelValues("extract", "remote")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ExtractionsTotal.WithLabelValues("extract", "fallback")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ExtractionsTotal.WithLabelValues("priority", "local")))

	assert.Equal(t, 3.0, testutil.ToFloat64(m.TasksExtractedTotal.WithLabelValues("remote")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.TasksExtractedTotal.WithLabelValues("fallback")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.TasksExtractedTotal.WithLabelValues("local")),
		"priority operations do not count tasks")
}

func TestObserveRemoteFailureAndDuration(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveRemoteFailure(extraction.OperationExtract, extraction.KindTransport)
	m.ObserveRemoteFailure(extraction.OperationExtract, extraction.KindTransport)
	m.ObserveRemoteFailure(extraction.OperationPriority, extraction.KindTimeout)
	m.ObserveRemoteDuration(extraction.OperationExtract, 120*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RemoteFailuresTotal.WithLabelValues("extract", "transport")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RemoteFailuresTotal.WithLabelValues("priority", "timeout")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.RemoteDuration, "tasksift_remote_duration_seconds"))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "tasksift_remote_failures_total")
	assert.Contains(t, names, "tasksift_remote_duration_seconds")
}

func TestNewPanicsOnDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)

	assert.Panics(t, func() { New(reg) })
}

func TestDefaultIsSingleton(t *testing.T) {
	assert.Same(t, Default(), Default())
}

func TestHandlerExposesCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	m.ObserveExtraction(extraction.OperationExtract, extraction.PathLocal, 4)

	srv := httptest.NewServer(promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body := new(strings.Builder)
	_, err = io.Copy(body, resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body.String(), `tasksift_extractions_total{operation="extract",path="local"} 1`)
	assert.Contains(t, body.String(), `tasksift_tasks_extracted_total{path="local"} 4`)
}
