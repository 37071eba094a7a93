// Package logging 提供基于 slog 的结构化日志：JSON 输出、OpenTelemetry 追踪上下文注入、lumberjack 文件切割与运行期级别调整。
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/trace"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	defaultLogger *Logger
	once          sync.Once

	// level 仅由 InitLogger 创建的全局 Logger 使用，SetLevel 修改后立即生效。
	level = new(slog.LevelVar)
)

// 输出目标。
const (
	OutputStdout = "stdout"
	OutputFile   = "file"
	OutputBoth   = "both"
)

// Config 日志配置。
type Config struct {
	Service    string
	Module     string
	Level      string
	Output     string // stdout | file | both，File 为空时退化为 stdout
	File       string // 日志文件路径
	MaxSize    int    // 单个文件最大尺寸 (MB)
	MaxBackups int    // 保留旧文件个数
	MaxAge     int    // 保留旧文件天数
	Compress   bool   // 是否压缩旧文件
}

// Logger 封装 *slog.Logger，附带服务名和模块名。
type Logger struct {
	*slog.Logger
	Service string
	Module  string
}

// TraceHandler 从 context 中提取 OpenTelemetry 的 trace_id 与 span_id 并写入日志记录。
type TraceHandler struct {
	slog.Handler
}

func (h *TraceHandler) Handle(ctx context.Context, r slog.Record) error {
	spanCtx := trace.SpanContextFromContext(ctx)
	if spanCtx.IsValid() {
		r.AddAttrs(
			slog.String("trace_id", spanCtx.TraceID().String()),
			slog.String("span_id", spanCtx.SpanID().String()),
		)
	}
	return h.Handler.Handle(ctx, r)
}

func (h *TraceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &TraceHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h *TraceHandler) WithGroup(name string) slog.Handler {
	return &TraceHandler{Handler: h.Handler.WithGroup(name)}
}

// ParseLevel 解析级别名称，未知值回落到 info。
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// SetLevel 在运行期调整全局日志级别，配置热更新时调用。
func SetLevel(s string) {
	level.Set(ParseLevel(s))
}

// Level 返回当前全局日志级别。
func Level() slog.Level {
	return level.Level()
}

// NewFromConfig 按配置创建独立级别的 Logger，不受 SetLevel 影响。
func NewFromConfig(cfg Config) *Logger {
	return newLogger(cfg, ownLevel(cfg.Level), writers(cfg)...)
}

// NewWithWriter 创建输出到 w 的独立级别 Logger。
func NewWithWriter(cfg Config, w io.Writer) *Logger {
	return newLogger(cfg, ownLevel(cfg.Level), w)
}

func ownLevel(s string) *slog.LevelVar {
	lv := new(slog.LevelVar)
	lv.Set(ParseLevel(s))
	return lv
}

func writers(cfg Config) []io.Writer {
	if cfg.File == "" || cfg.Output == "" || cfg.Output == OutputStdout {
		return []io.Writer{os.Stdout}
	}
	file := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	}
	if cfg.Output == OutputBoth {
		return []io.Writer{os.Stdout, file}
	}
	return []io.Writer{file}
}

// newLogger 构建 JSON Logger，多个输出目标共用同一个 Handler。
func newLogger(cfg Config, lv slog.Leveler, ws ...io.Writer) *Logger {
	opts := &slog.HandlerOptions{
		Level: lv,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				a.Key = "timestamp"
			}
			return a
		},
	}

	out := ws[0]
	if len(ws) > 1 {
		out = io.MultiWriter(ws...)
	}
	handler := slog.NewJSONHandler(out, opts)

	logger := slog.New(&TraceHandler{Handler: handler}).With(
		slog.String("service", cfg.Service),
		slog.String("module", cfg.Module),
	)
	return &Logger{Logger: logger, Service: cfg.Service, Module: cfg.Module}
}

// InitLogger 初始化全局默认 Logger 并设置为 slog 默认实例，只生效一次。
func InitLogger(cfg Config) *Logger {
	once.Do(func() {
		level.Set(ParseLevel(cfg.Level))
		defaultLogger = newLogger(cfg, level, writers(cfg)...)
		slog.SetDefault(defaultLogger.Logger)
	})
	return defaultLogger
}

// Default 返回全局默认 Logger，未初始化时以 stdout/info 初始化。
func Default() *Logger {
	return InitLogger(Config{Service: "rangequery", Module: "default", Level: "info"})
}

// Info 使用全局默认 Logger 输出 Info 日志。
func Info(ctx context.Context, msg string, args ...any) {
	Default().InfoContext(ctx, msg, args...)
}

// LogDuration 返回一个在调用时记录 operation 耗时的函数，用法：defer LogDuration(ctx, "rebuild")()。
func LogDuration(ctx context.Context, operation string, args ...any) func() {
	start := time.Now()
	return func() {
		Info(ctx, fmt.Sprintf("%s finished", operation), append(args, "duration", time.Since(start))...)
	}
}
