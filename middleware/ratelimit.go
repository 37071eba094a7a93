package middleware

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/wyfcoding/rangequery/limiter"
	"github.com/wyfcoding/rangequery/metrics"
	"github.com/wyfcoding/rangequery/response"
	"github.com/wyfcoding/rangequery/xerrors"
)

// RateLimit 以客户端 IP 为键限流，被拒绝的请求返回 429。
// 限流器内部出错时放行请求并记录错误日志。
func RateLimit(l limiter.Limiter, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		key := c.ClientIP()

		allowed, err := l.Allow(ctx, key)
		if err != nil {
			slog.ErrorContext(ctx, "rate limiter internal error, fail-open applied", "key", key, "error", err)
			c.Next()
			return
		}
		if !allowed {
			slog.WarnContext(ctx, "request rejected by rate limiter", "key", key, "path", c.Request.URL.Path)
			if m != nil {
				m.RateLimitedTotal.WithLabelValues(c.FullPath()).Inc()
			}
			response.Error(c, xerrors.ErrRateLimited.Derive())
			c.Abort()
			return
		}
		c.Next()
	}
}
