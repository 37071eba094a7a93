// Package middleware 提供 rangequery HTTP 服务使用的 Gin 中间件。
package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wyfcoding/rangequery/contextx"
)

// Logger 结构化访问日志；耗时超过 slowThreshold（> 0 时）的请求以 Warn 级别输出。
func Logger(logger *slog.Logger, slowThreshold time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		cost := time.Since(start)
		ctx := c.Request.Context()
		args := []any{
			"status", c.Writer.Status(),
			"method", c.Request.Method,
			"path", path,
			"query", query,
			"ip", c.ClientIP(),
			"cost", cost,
			"user_agent", c.Request.UserAgent(),
		}
		args = append(args, contextx.LogAttrs(ctx)...)
		if len(c.Errors) > 0 {
			args = append(args, "errors", c.Errors.String())
		}

		if slowThreshold > 0 && cost > slowThreshold {
			logger.WarnContext(ctx, "slow http request", args...)
			return
		}
		logger.InfoContext(ctx, "http request", args...)
	}
}
