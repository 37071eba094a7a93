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

func TestObserveTreeOp(t *testing.T) {
	m := NewMetrics("test")

	m.ObserveTreeOp("query", "max", time.Now(), nil)
	m.ObserveTreeOp("query", "max", time.Now(), errors.New("bad range"))
	m.ObserveTreeOp("rebuild", "", time.Now(), nil)

	assert.InDelta(t, 1, testutil.ToFloat64(m.TreeOperationsTotal.WithLabelValues("query", "max", ResultOK)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.TreeOperationsTotal.WithLabelValues("query", "max", ResultError)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.TreeOperationsTotal.WithLabelValues("rebuild", "all", ResultOK)), 0)
	assert.Equal(t, 2, testutil.CollectAndCount(m.TreeOperationDuration))
}

func TestObserveTreeOpNilSafe(t *testing.T) {
	var m *Metrics
	m.ObserveTreeOp("query", "min", time.Now(), nil)
	m.RegisterBuildInfo(BuildInfo{Service: "svc", Version: "v1"})
}

func TestHandlerExposesRegistry(t *testing.T) {
	m := NewMetrics("test")
	m.RegisterBuildInfo(BuildInfo{Service: "rangequery", Version: "v0.1.0", Representation: "node", InitialSize: 6})
	m.RegisterBuildInfo(BuildInfo{Service: "ignored", Version: "ignored"})
	m.TreeSize.Set(6)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `rangequery_build_info{initial_size="6",representation="node",service="rangequery",version="v0.1.0"} 1`)
	assert.Contains(t, body, "rangequery_sequence_length 6")
	assert.NotContains(t, body, "ignored")
}

func TestBuildInfoDefaultsUnknownLabels(t *testing.T) {
	m := NewMetrics("test")
	m.RegisterBuildInfo(BuildInfo{InitialSize: 3})
	assert.InDelta(t, 1, testutil.ToFloat64(m.BuildInfo.WithLabelValues("unknown", "unknown", "unknown", "3")), 0)
}
