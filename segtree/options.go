package segtree

import "log/slog"

// Option 配置树实例。
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger 设置诊断日志输出，默认使用 slog.Default()。
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return o
}
