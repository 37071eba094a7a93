package segtree

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/wyfcoding/rangequery/xerrors"
)

// slot 数组树中的一个槽位，ok 为 false 表示该位置在树形中不存在。
type slot[T Value] struct {
	val T
	ok  bool
}

// ArrayTree 基于扁平数组的线段树，0 下标布局：左孩子 2i+1，右孩子 2i+2，父节点 (i-1)/2。
// 每个实例只维护一种聚合值。
type ArrayTree[T Value] struct {
	slots  []slot[T]
	size   int
	agg    Aggregator[T]
	logger *slog.Logger
}

// NewArrayTree 使用给定聚合策略构建数组线段树。
func NewArrayTree[T Value](values []T, agg Aggregator[T], opts ...Option) (*ArrayTree[T], error) {
	o := buildOptions(opts)
	t := &ArrayTree[T]{agg: agg, logger: o.logger}
	if err := t.Build(values); err != nil {
		return nil, err
	}
	return t, nil
}

// Build 以 values 重新构建整棵树。
func (t *ArrayTree[T]) Build(values []T) error {
	if len(values) == 0 {
		return xerrors.ErrEmptySequence.Derive()
	}
	t.size = len(values)
	t.slots = make([]slot[T], slotCount(t.size))
	t.build(values, 0, 0, t.size-1)

	t.logger.Debug("segtree built",
		"representation", ArrayBacked.String(),
		"aggregate", t.agg.Kind().String(),
		"size", t.size,
		"slots", len(t.slots),
	)
	return nil
}

func (t *ArrayTree[T]) build(values []T, idx, start, end int) {
	if start == end {
		t.slots[idx] = slot[T]{val: t.agg.Leaf(values[start]), ok: true}
		return
	}
	mid := midpoint(start, end)
	t.build(values, leftChild(idx), start, mid)
	t.build(values, rightChild(idx), mid+1, end)
	t.recompute(idx)
}

// recompute 由左右孩子重新计算 idx 处的聚合值，叶子（无孩子槽位）保持不变。
func (t *ArrayTree[T]) recompute(idx int) {
	l, r := leftChild(idx), rightChild(idx)
	if r >= len(t.slots) || (!t.slots[l].ok && !t.slots[r].ok) {
		return
	}
	t.slots[idx] = slot[T]{val: t.agg.Merge(t.slots[l].val, t.slots[r].val), ok: true}
}

// Update 将 index 处的值替换为 value。
// 先沿中点划分下降到叶子槽位，再经 parent 回溯修复路径上的每个祖先直至根。
func (t *ArrayTree[T]) Update(index int, value T) error {
	if index < 0 || index >= t.size {
		t.logger.Warn("segtree: index not in tree",
			"representation", ArrayBacked.String(),
			"aggregate", t.agg.Kind().String(),
			"index", index,
			"size", t.size,
		)
		return xerrors.IndexOutOfRange(index, t.size)
	}

	idx, start, end := 0, 0, t.size-1
	for start != end {
		mid := midpoint(start, end)
		if index <= mid {
			idx, end = leftChild(idx), mid
		} else {
			idx, start = rightChild(idx), mid+1
		}
	}
	t.slots[idx] = slot[T]{val: t.agg.Leaf(value), ok: true}

	for idx > 0 {
		idx = parent(idx)
		t.recompute(idx)
	}
	return nil
}

// QueryRange 返回 [left, right] 上的聚合值。
func (t *ArrayTree[T]) QueryRange(left, right int) (T, error) {
	if left < 0 || right >= t.size || left > right {
		var zero T
		return zero, xerrors.InvalidRange(left, right, t.size)
	}
	return t.query(0, 0, t.size-1, left, right), nil
}

// query 要求 [left, right] ⊆ [start, end]。
func (t *ArrayTree[T]) query(idx, start, end, left, right int) T {
	if start >= left && end <= right {
		return t.slots[idx].val
	}
	mid := midpoint(start, end)
	switch {
	case right <= mid:
		return t.query(leftChild(idx), start, mid, left, right)
	case left > mid:
		return t.query(rightChild(idx), mid+1, end, left, right)
	default:
		return t.agg.Merge(
			t.query(leftChild(idx), start, mid, left, mid),
			t.query(rightChild(idx), mid+1, end, mid+1, right),
		)
	}
}

// Size 返回原始序列长度。
func (t *ArrayTree[T]) Size() int { return t.size }

// SlotCount 返回补齐后的槽位总数。
func (t *ArrayTree[T]) SlotCount() int { return len(t.slots) }

func (t *ArrayTree[T]) Kind() Kind { return t.agg.Kind() }

func (t *ArrayTree[T]) Representation() Representation { return ArrayBacked }

// String 按下标顺序输出每个槽位，不存在的槽位输出 "-"。
// 例如 {10,15,55,15,9,12} 的最大值树为 " [ 55 55 15 15 55 15 12 10 15 - - 15 9 - - ] "。
func (t *ArrayTree[T]) String() string {
	var b strings.Builder
	b.WriteString(" [")
	for _, s := range t.slots {
		if !s.ok {
			b.WriteString(" -")
			continue
		}
		b.WriteByte(' ')
		b.WriteString(strconv.FormatInt(int64(s.val), 10))
	}
	b.WriteString(" ] ")
	return b.String()
}
