// Package service 为 analyzer 提供并发安全的访问入口，并统一记录指标、链路与日志。
package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/wyfcoding/rangequery/analyzer"
	"github.com/wyfcoding/rangequery/metrics"
	"github.com/wyfcoding/rangequery/segtree"
	"github.com/wyfcoding/rangequery/tracing"
)

// 操作名，用作指标与 Span 标签。
const (
	OpQuery   = "query"
	OpSummary = "summary"
	OpUpdate  = "update"
	OpRebuild = "rebuild"
	OpValues  = "values"
	OpDebug   = "debug"
)

// Option 配置 RangeService。
type Option func(*RangeService)

// WithMetrics 设置指标采集器，nil 表示不采集。
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *RangeService) { s.metrics = m }
}

// WithLogger 设置日志输出。
func WithLogger(l *slog.Logger) Option {
	return func(s *RangeService) {
		if l != nil {
			s.logger = l
		}
	}
}

// RangeService 以读写锁串行化对 Analyzer 的访问：查询共享读锁，更新与重建独占写锁。
type RangeService struct {
	mu       sync.RWMutex
	analyzer *analyzer.Analyzer
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// New 以初始序列构建服务。
func New(values []int64, rep segtree.Representation, opts ...Option) (*RangeService, error) {
	s := &RangeService{logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	a, err := analyzer.New(values, rep, analyzer.WithLogger(s.logger))
	if err != nil {
		return nil, err
	}
	s.analyzer = a
	s.observeSize()
	return s, nil
}

func (s *RangeService) observeSize() {
	if s.metrics != nil {
		s.metrics.TreeSize.Set(float64(s.analyzer.Size()))
	}
}

// finish 结束一次操作：记录指标，失败时标记 Span 并输出日志。
func (s *RangeService) finish(ctx context.Context, op, aggregate string, start time.Time, err error) {
	s.metrics.ObserveTreeOp(op, aggregate, start, err)
	if err != nil {
		tracing.SetError(ctx, err)
		s.logger.WarnContext(ctx, "range operation failed", "op", op, "aggregate", aggregate, "error", err)
	}
}

// Query 返回 [left, right] 上 kind 类型的聚合值。
func (s *RangeService) Query(ctx context.Context, kind segtree.Kind, left, right int) (v int64, err error) {
	ctx, span := tracing.StartSpan(ctx, "rangequery.query")
	defer span.End()
	tracing.AddTag(ctx, "aggregate", kind.String())
	tracing.AddTag(ctx, "left", left)
	tracing.AddTag(ctx, "right", right)

	start := time.Now()
	defer func() { s.finish(ctx, OpQuery, kind.String(), start, err) }()

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.analyzer.Query(kind, left, right)
}

// Summary 返回 [left, right] 上的 min、max 与 sum。
func (s *RangeService) Summary(ctx context.Context, left, right int) (sum segtree.Summary[int64], err error) {
	ctx, span := tracing.StartSpan(ctx, "rangequery.summary")
	defer span.End()
	tracing.AddTag(ctx, "left", left)
	tracing.AddTag(ctx, "right", right)

	start := time.Now()
	defer func() { s.finish(ctx, OpSummary, "", start, err) }()

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.analyzer.Summary(left, right)
}

// Update 修改 index 处的值。
func (s *RangeService) Update(ctx context.Context, index int, value int64) (err error) {
	ctx, span := tracing.StartSpan(ctx, "rangequery.update")
	defer span.End()
	tracing.AddTag(ctx, "index", index)
	tracing.AddTag(ctx, "value", value)

	start := time.Now()
	defer func() { s.finish(ctx, OpUpdate, "", start, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.analyzer.Update(index, value)
}

// Rebuild 以新序列重建所有树，失败时保持原状态。
func (s *RangeService) Rebuild(ctx context.Context, values []int64) (err error) {
	ctx, span := tracing.StartSpan(ctx, "rangequery.rebuild")
	defer span.End()
	tracing.AddTag(ctx, "size", len(values))

	start := time.Now()
	defer func() { s.finish(ctx, OpRebuild, "", start, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.analyzer.Rebuild(values); err != nil {
		return err
	}
	s.observeSize()
	s.logger.InfoContext(ctx, "trees rebuilt", "size", len(values), "representation", s.analyzer.Representation().String())
	return nil
}

// Values 通过迭代器读取当前序列。
func (s *RangeService) Values(ctx context.Context) []int64 {
	_, span := tracing.StartSpan(ctx, "rangequery.values")
	defer span.End()

	start := time.Now()
	defer s.metrics.ObserveTreeOp(OpValues, "", start, nil)

	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]int64, 0, s.analyzer.Size())
	for _, v := range s.analyzer.All() {
		out = append(out, v)
	}
	return out
}

// TreeString 返回 kind 类型树的调试字符串。
func (s *RangeService) TreeString(ctx context.Context, kind segtree.Kind) (str string, err error) {
	ctx, span := tracing.StartSpan(ctx, "rangequery.debug")
	defer span.End()

	start := time.Now()
	defer func() { s.finish(ctx, OpDebug, kind.String(), start, err) }()

	s.mu.RLock()
	defer s.mu.RUnlock()
	t, err := s.analyzer.Tree(kind)
	if err != nil {
		return "", err
	}
	return t.String(), nil
}

// Size 返回序列长度。
func (s *RangeService) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.analyzer.Size()
}

// Representation 返回树的结构表示。
func (s *RangeService) Representation() segtree.Representation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.analyzer.Representation()
}

// Compare 奇偶优先比较，见 analyzer.Compare。
func (s *RangeService) Compare(a, b int64) int {
	return analyzer.Compare(a, b)
}
