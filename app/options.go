package app

import (
	"log/slog"
	"time"

	"github.com/wyfcoding/rangequery/server"
)

// Option 配置 App。
type Option func(*options)

type options struct {
	version         string
	logger          *slog.Logger
	servers         []server.Server
	cleanups        []func()
	shutdownTimeout time.Duration
}

// WithVersion 设置版本号，仅用于启动日志。
func WithVersion(v string) Option {
	return func(o *options) { o.version = v }
}

// WithLogger 设置日志输出，默认 slog.Default()。
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithServer 注册随应用启动、停止的服务器。
func WithServer(servers ...server.Server) Option {
	return func(o *options) {
		o.servers = append(o.servers, servers...)
	}
}

// WithCleanup 注册关闭时执行的清理函数，按注册的逆序执行。
func WithCleanup(cleanup func()) Option {
	return func(o *options) {
		o.cleanups = append(o.cleanups, cleanup)
	}
}

// WithShutdownTimeout 设置停止服务器的超时时间，默认 10 秒。
func WithShutdownTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.shutdownTimeout = d
		}
	}
}
