package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/wyfcoding/rangequery/limiter"
	"github.com/wyfcoding/rangequery/metrics"
	"github.com/wyfcoding/rangequery/segtree"
	"github.com/wyfcoding/rangequery/service"
)

type envelope struct {
	Code   int             `json:"code"`
	Msg    string          `json:"msg"`
	Data   json.RawMessage `json:"data"`
	Detail string          `json:"detail"`
}

func newRouter(t *testing.T, opts RouterOptions) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc, err := service.New([]int64{10, 15, 55, 15, 9, 12}, segtree.ArrayBacked, service.WithLogger(logger))
	require.NoError(t, err)
	opts.Logger = logger
	return NewRouter(svc, opts)
}

func do(t *testing.T, r http.Handler, method, target, body string) (int, envelope) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec.Code, env
}

func TestQueryRange(t *testing.T) {
	r := newRouter(t, RouterOptions{})

	code, env := do(t, r, http.MethodGet, "/v1/range/max?left=0&right=5", "")
	require.Equal(t, http.StatusOK, code)
	var data struct {
		Aggregate string `json:"aggregate"`
		Value     int64  `json:"value"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "max", data.Aggregate)
	assert.Equal(t, int64(55), data.Value)

	code, env = do(t, r, http.MethodGet, "/v1/range/avg?left=0&right=5", "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, 400105, env.Code)

	code, env = do(t, r, http.MethodGet, "/v1/range/min?left=3&right=1", "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, 400103, env.Code)

	code, env = do(t, r, http.MethodGet, "/v1/range/min?left=0", "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, 400100, env.Code)
}

func TestUpdateThenSummary(t *testing.T) {
	r := newRouter(t, RouterOptions{})

	code, _ := do(t, r, http.MethodPut, "/v1/values/5", `{"value": 80}`)
	require.Equal(t, http.StatusOK, code)

	code, env := do(t, r, http.MethodGet, "/v1/summary?left=4&right=5", "")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"min":9,"max":80,"sum":89}`, string(env.Data))

	code, env = do(t, r, http.MethodPut, "/v1/values/6", `{"value": 1}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, 400102, env.Code)

	code, env = do(t, r, http.MethodPut, "/v1/values/1", `{}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, 400100, env.Code)
}

func TestRebuildValuesAndTree(t *testing.T) {
	r := newRouter(t, RouterOptions{})

	code, _ := do(t, r, http.MethodPost, "/v1/rebuild", `{"values": [60, 10, 5, 15, 6]}`)
	require.Equal(t, http.StatusOK, code)

	code, env := do(t, r, http.MethodGet, "/v1/values", "")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"size":5,"values":[60,10,5,15,6]}`, string(env.Data))

	code, env = do(t, r, http.MethodGet, "/v1/trees/sum", "")
	require.Equal(t, http.StatusOK, code)
	var tree struct {
		Tree string `json:"tree"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &tree))
	assert.Equal(t, " [ 96 75 21 70 5 15 6 60 10 - - - - - - ] ", tree.Tree)

	code, env = do(t, r, http.MethodPost, "/v1/rebuild", `{"values": []}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, 400100, env.Code)
}

func TestCompare(t *testing.T) {
	r := newRouter(t, RouterOptions{})

	code, env := do(t, r, http.MethodGet, "/v1/compare?a=3&b=2", "")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"a":3,"b":2,"result":-1}`, string(env.Data))

	code, _ = do(t, r, http.MethodGet, "/v1/compare?a=3", "")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestHealthAndMetrics(t *testing.T) {
	r := newRouter(t, RouterOptions{Metrics: metrics.NewMetrics("test")})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","size":6,"representation":"array"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	do(t, r, http.MethodGet, "/v1/range/sum?left=0&right=1", "")

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `http_server_requests_total{method="GET",path="/v1/range/:aggregate",status="200"} 1`)
}

func TestRateLimitedRouter(t *testing.T) {
	r := newRouter(t, RouterOptions{Limiter: limiter.NewKeyedLimiter(rate.Every(time.Hour), 1)})

	code, _ := do(t, r, http.MethodGet, "/v1/values", "")
	assert.Equal(t, http.StatusOK, code)
	code, env := do(t, r, http.MethodGet, "/v1/values", "")
	assert.Equal(t, http.StatusTooManyRequests, code)
	assert.Equal(t, 429001, env.Code)
}
