// Package analyzer 在同一序列上同时维护最小值、最大值与求和三棵线段树，对外提供统一的区间统计入口。
package analyzer

import (
	"log/slog"
	"slices"

	"github.com/wyfcoding/rangequery/segtree"
	"github.com/wyfcoding/rangequery/xerrors"
)

// Option 配置 Analyzer。
type Option func(*Analyzer)

// WithLogger 设置三棵树共用的日志输出。
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// Analyzer 持有序列副本及其三棵同构线段树。
// 与 segtree 一样不做并发保护，并发场景请使用 service.RangeService。
type Analyzer struct {
	values []int64
	rep    segtree.Representation
	trees  [3]segtree.Tree[int64] // 按 segtree.Kind 下标
	logger *slog.Logger
}

// New 以 values 的副本构建 Analyzer，rep 决定三棵树的结构表示。
func New(values []int64, rep segtree.Representation, opts ...Option) (*Analyzer, error) {
	a := &Analyzer{rep: rep, logger: slog.Default()}
	for _, opt := range opts {
		opt(a)
	}
	if err := a.Rebuild(values); err != nil {
		return nil, err
	}
	return a, nil
}

// Rebuild 以新序列重建三棵树；失败时保留原有状态。
func (a *Analyzer) Rebuild(values []int64) error {
	var trees [3]segtree.Tree[int64]
	for _, kind := range segtree.Kinds {
		t, err := segtree.New(a.rep, kind, values, segtree.WithLogger(a.logger))
		if err != nil {
			return err
		}
		trees[kind] = t
	}
	a.trees = trees
	a.values = slices.Clone(values)
	return nil
}

// Query 按聚合类型查询 [left, right]。
func (a *Analyzer) Query(kind segtree.Kind, left, right int) (int64, error) {
	if int(kind) >= len(a.trees) {
		return 0, xerrors.ErrUnknownAggregate.Derive().WithContext("aggregate", int(kind))
	}
	return a.trees[kind].QueryRange(left, right)
}

// GetMin 返回 [left, right] 内的最小值。
func (a *Analyzer) GetMin(left, right int) (int64, error) {
	return a.Query(segtree.KindMin, left, right)
}

// GetMax 返回 [left, right] 内的最大值。
func (a *Analyzer) GetMax(left, right int) (int64, error) {
	return a.Query(segtree.KindMax, left, right)
}

// GetSum 返回 [left, right] 内的元素和。
func (a *Analyzer) GetSum(left, right int) (int64, error) {
	return a.Query(segtree.KindSum, left, right)
}

// Summary 一次返回 [left, right] 的三种聚合。
func (a *Analyzer) Summary(left, right int) (segtree.Summary[int64], error) {
	var s segtree.Summary[int64]
	var err error
	if s.Min, err = a.GetMin(left, right); err != nil {
		return segtree.Summary[int64]{}, err
	}
	if s.Max, err = a.GetMax(left, right); err != nil {
		return segtree.Summary[int64]{}, err
	}
	if s.Sum, err = a.GetSum(left, right); err != nil {
		return segtree.Summary[int64]{}, err
	}
	return s, nil
}

// Update 修改 index 处的值，序列与三棵树同步更新。
// 越界时直接返回错误，序列和树均不改变。
func (a *Analyzer) Update(index int, value int64) error {
	if index < 0 || index >= len(a.values) {
		a.logger.Warn("analyzer: index not in sequence", "index", index, "size", len(a.values))
		return xerrors.IndexOutOfRange(index, len(a.values))
	}
	a.values[index] = value
	for _, t := range a.trees {
		if err := t.Update(index, value); err != nil {
			return err
		}
	}
	return nil
}

// Size 返回序列长度。
func (a *Analyzer) Size() int { return len(a.values) }

// Representation 返回三棵树的结构表示。
func (a *Analyzer) Representation() segtree.Representation { return a.rep }

// Values 返回当前序列的副本。
func (a *Analyzer) Values() []int64 { return slices.Clone(a.values) }

// Tree 返回指定聚合类型的树，供调试输出使用，调用方不应修改它。
func (a *Analyzer) Tree(kind segtree.Kind) (segtree.Tree[int64], error) {
	if int(kind) >= len(a.trees) {
		return nil, xerrors.ErrUnknownAggregate.Derive().WithContext("aggregate", int(kind))
	}
	return a.trees[kind], nil
}

// Compare 见包级函数 Compare。
func (a *Analyzer) Compare(x, y int64) int { return Compare(x, y) }
