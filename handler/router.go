package handler

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wyfcoding/rangequery/limiter"
	"github.com/wyfcoding/rangequery/metrics"
	"github.com/wyfcoding/rangequery/middleware"
	"github.com/wyfcoding/rangequery/server"
	"github.com/wyfcoding/rangequery/service"
)

// RouterOptions 组装 HTTP 引擎所需的依赖，nil 字段对应的中间件不启用。
type RouterOptions struct {
	ServiceName   string
	Logger        *slog.Logger
	Metrics       *metrics.Metrics
	MetricsPath   string
	Limiter       limiter.Limiter
	Tracing       bool
	SlowThreshold time.Duration
	MaxBodyBytes  int64
}

// NewRouter 构建带完整中间件链的 Gin 引擎并注册全部路由。
// 中间件顺序：Recovery → Tracing → TraceID → RequestID → Logger → Metrics → RateLimit → MaxBody → ErrorHandler。
func NewRouter(svc *service.RangeService, opts RouterOptions) *gin.Engine {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	metricsPath := opts.MetricsPath
	if metricsPath == "" {
		metricsPath = "/metrics"
	}

	mws := []gin.HandlerFunc{middleware.Recovery(logger)}
	if opts.Tracing {
		mws = append(mws, middleware.TracingMiddleware(opts.ServiceName, metricsPath, "/healthz"), middleware.TraceIDHeader())
	}
	mws = append(mws,
		middleware.RequestID(),
		middleware.Logger(logger, opts.SlowThreshold),
	)
	if opts.Metrics != nil {
		mws = append(mws, middleware.HTTPMetrics(opts.Metrics, metricsPath, "/healthz"))
	}
	if opts.Limiter != nil {
		mws = append(mws, middleware.RateLimit(opts.Limiter, opts.Metrics))
	}
	mws = append(mws, middleware.MaxBodyBytes(opts.MaxBodyBytes), middleware.HTTPErrorHandler())

	engine := server.NewDefaultGinEngine(mws...)
	if opts.Metrics != nil {
		engine.GET(metricsPath, gin.WrapH(opts.Metrics.Handler()))
	}
	NewRangeHandler(svc).Register(engine)
	return engine
}
