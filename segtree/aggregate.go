package segtree

import "github.com/wyfcoding/rangequery/xerrors"

// Summary 同时携带一个区间的 min、max、sum。
// 节点树的每个节点缓存一份；区间跨越中点时查询会在栈上合成一份临时 Summary。
type Summary[T Value] struct {
	Min T
	Max T
	Sum T
}

func leafSummary[T Value](v T) Summary[T] {
	return Summary[T]{Min: v, Max: v, Sum: v}
}

func mergeSummary[T Value](a, b Summary[T]) Summary[T] {
	return Summary[T]{
		Min: min(a.Min, b.Min),
		Max: max(a.Max, b.Max),
		Sum: a.Sum + b.Sum,
	}
}

// Aggregator 是树引擎的聚合策略。
// 数组引擎使用 Leaf 与 Merge 维护单一聚合值；节点引擎维护完整 Summary，只通过 Extract 选择对外暴露的字段。
type Aggregator[T Value] interface {
	Kind() Kind
	// Leaf 由原始值得到叶子聚合值。
	Leaf(v T) T
	// Merge 合并左右两个子区间的聚合值。
	Merge(a, b T) T
	// Extract 从 Summary 中取出本聚合对应的字段。
	Extract(s Summary[T]) T
}

type minAggregator[T Value] struct{}

func (minAggregator[T]) Kind() Kind             { return KindMin }
func (minAggregator[T]) Leaf(v T) T             { return v }
func (minAggregator[T]) Merge(a, b T) T         { return min(a, b) }
func (minAggregator[T]) Extract(s Summary[T]) T { return s.Min }

type maxAggregator[T Value] struct{}

func (maxAggregator[T]) Kind() Kind             { return KindMax }
func (maxAggregator[T]) Leaf(v T) T             { return v }
func (maxAggregator[T]) Merge(a, b T) T         { return max(a, b) }
func (maxAggregator[T]) Extract(s Summary[T]) T { return s.Max }

// 溢出按 Go 整数语义回绕，不做饱和处理。
type sumAggregator[T Value] struct{}

func (sumAggregator[T]) Kind() Kind             { return KindSum }
func (sumAggregator[T]) Leaf(v T) T             { return v }
func (sumAggregator[T]) Merge(a, b T) T         { return a + b }
func (sumAggregator[T]) Extract(s Summary[T]) T { return s.Sum }

// Min 返回最小值聚合策略。
func Min[T Value]() Aggregator[T] { return minAggregator[T]{} }

// Max 返回最大值聚合策略。
func Max[T Value]() Aggregator[T] { return maxAggregator[T]{} }

// Sum 返回求和聚合策略。
func Sum[T Value]() Aggregator[T] { return sumAggregator[T]{} }

// AggregatorFor 按聚合类型返回对应策略。
func AggregatorFor[T Value](kind Kind) (Aggregator[T], error) {
	switch kind {
	case KindMin:
		return Min[T](), nil
	case KindMax:
		return Max[T](), nil
	case KindSum:
		return Sum[T](), nil
	default:
		return nil, xerrors.ErrUnknownAggregate.Derive().WithContext("aggregate", int(kind))
	}
}
