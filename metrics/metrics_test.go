package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorders(t *testing.T) {
	m := New(false)

	m.RecordRows("inserted", 1500)
	m.RecordRows("inserted", 0)
	m.RecordRows("rejected", 2)
	m.BatchCommitted()
	m.BatchCommitted()
	m.RunFinished(nil)
	m.RunFinished(errors.New("boom"))
	m.QueryFailed()
	m.ObserveQueryStep("count", 5*time.Millisecond)

	assert.Equal(t, 1500.0, testutil.ToFloat64(m.records.WithLabelValues("inserted")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.records.WithLabelValues("rejected")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.batches))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.runs.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.runs.WithLabelValues("failure")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.queryFailures))
	assert.Equal(t, 1, testutil.CollectAndCount(m.queryDuration))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordRows("inserted", 1)
		m.BatchCommitted()
		m.RunFinished(nil)
		m.QueryFailed()
		m.ObserveQueryStep("find", time.Second)
	})
}

func TestPush(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	m := New(false)
	m.RecordRows("inserted", 10)
	require.NoError(t, m.Push(srv.URL, "import-sales"))
	assert.Equal(t, "/metrics/job/import-sales", gotPath)
}
