package segtree

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/wyfcoding/rangequery/xerrors"
)

// NodeTree 基于显式节点的线段树。
// 每个节点同时维护 min/max/sum，聚合策略只决定 QueryRange 与 String 暴露哪个字段。
type NodeTree[T Value] struct {
	arena  arena[T]
	root   int
	size   int
	agg    Aggregator[T]
	logger *slog.Logger
}

// NewNodeTree 使用给定聚合策略构建节点线段树。
func NewNodeTree[T Value](values []T, agg Aggregator[T], opts ...Option) (*NodeTree[T], error) {
	o := buildOptions(opts)
	t := &NodeTree[T]{agg: agg, logger: o.logger, root: noChild}
	if err := t.Build(values); err != nil {
		return nil, err
	}
	return t, nil
}

// Build 以 values 重新构建整棵树。
func (t *NodeTree[T]) Build(values []T) error {
	if len(values) == 0 {
		return xerrors.ErrEmptySequence.Derive()
	}
	t.size = len(values)
	t.arena = newArena[T](t.size)
	t.root = t.build(values, 0, t.size-1)

	t.logger.Debug("segtree built",
		"representation", NodeBacked.String(),
		"aggregate", t.agg.Kind().String(),
		"size", t.size,
		"nodes", t.arena.len(),
	)
	return nil
}

func (t *NodeTree[T]) build(values []T, start, end int) int {
	idx := t.arena.alloc(start, end)
	if start == end {
		t.arena.at(idx).agg = leafSummary(values[start])
		return idx
	}
	mid := midpoint(start, end)
	left := t.build(values, start, mid)
	right := t.build(values, mid+1, end)
	n := t.arena.at(idx)
	n.left, n.right = left, right
	t.recompute(idx)
	return idx
}

// recompute 由两个孩子重新计算节点 idx 的 min/max/sum。
func (t *NodeTree[T]) recompute(idx int) {
	n := t.arena.at(idx)
	if n.isLeaf() {
		return
	}
	n.agg = mergeSummary(t.arena.at(n.left).agg, t.arena.at(n.right).agg)
}

// Update 将 index 处的值替换为 value，叶子的 min/max/sum 同时置为 value。
func (t *NodeTree[T]) Update(index int, value T) error {
	if index < 0 || index >= t.size {
		t.logger.Warn("segtree: index not in tree",
			"representation", NodeBacked.String(),
			"aggregate", t.agg.Kind().String(),
			"index", index,
			"size", t.size,
		)
		return xerrors.IndexOutOfRange(index, t.size)
	}
	t.update(t.root, index, value)
	return nil
}

func (t *NodeTree[T]) update(idx, index int, value T) {
	n := t.arena.at(idx)
	if n.isLeaf() {
		n.agg = leafSummary(value)
		return
	}
	if index <= midpoint(n.start, n.end) {
		t.update(n.left, index, value)
	} else {
		t.update(n.right, index, value)
	}
	t.recompute(idx)
}

// QueryRange 返回 [left, right] 上的聚合值。
func (t *NodeTree[T]) QueryRange(left, right int) (T, error) {
	s, err := t.QuerySummary(left, right)
	if err != nil {
		var zero T
		return zero, err
	}
	return t.agg.Extract(s), nil
}

// QuerySummary 一次性返回 [left, right] 上的 min、max 与 sum。
func (t *NodeTree[T]) QuerySummary(left, right int) (Summary[T], error) {
	if left < 0 || right >= t.size || left > right {
		return Summary[T]{}, xerrors.InvalidRange(left, right, t.size)
	}
	return t.query(t.root, left, right), nil
}

// query 要求 [left, right] 落在节点 idx 的区间内。
// 区间跨越中点时两侧结果合并为一个栈上的临时 Summary，不写回树中。
func (t *NodeTree[T]) query(idx, left, right int) Summary[T] {
	n := t.arena.at(idx)
	if n.start >= left && n.end <= right {
		return n.agg
	}
	mid := midpoint(n.start, n.end)
	switch {
	case right <= mid:
		return t.query(n.left, left, right)
	case left > mid:
		return t.query(n.right, left, right)
	default:
		return mergeSummary(t.query(n.left, left, mid), t.query(n.right, mid+1, right))
	}
}

// Size 返回原始序列长度。
func (t *NodeTree[T]) Size() int { return t.size }

// NodeCount 返回树中节点个数，恒为 2*Size()-1。
func (t *NodeTree[T]) NodeCount() int { return t.arena.len() }

func (t *NodeTree[T]) Kind() Kind { return t.agg.Kind() }

func (t *NodeTree[T]) Representation() Representation { return NodeBacked }

// String 前序遍历输出每个节点被选中的聚合值，例如 " [ 96 75 70 60 10 5 21 15 6 ] "。
func (t *NodeTree[T]) String() string {
	var b strings.Builder
	b.WriteString(" [")
	if t.root != noChild {
		t.writePreorder(&b, t.root)
	}
	b.WriteString(" ] ")
	return b.String()
}

func (t *NodeTree[T]) writePreorder(b *strings.Builder, idx int) {
	if idx == noChild {
		return
	}
	n := t.arena.at(idx)
	b.WriteByte(' ')
	b.WriteString(strconv.FormatInt(int64(t.agg.Extract(n.agg)), 10))
	t.writePreorder(b, n.left)
	t.writePreorder(b, n.right)
}
