// Package segtree 实现定长整数序列上的线段树：单点更新与闭区间 min/max/sum 查询均为 O(log n)，构建为 O(n)。
//
// 提供两种结构表示：
//   - ArrayTree：0 下标的隐式完全二叉树，容量为 2*2^ceil(log2 n)-1，未使用的槽位以显式标记区分。
//   - NodeTree：显式节点树，节点存放在连续的 arena 中，每个节点同时缓存 min/max/sum。
//
// 两种表示共享相同的中点划分、更新回溯与三路区间查询算法，具体聚合语义由 Aggregator 策略提供。
// 树本身不是并发安全的，并发访问必须由调用方串行化。
package segtree

import (
	"strings"

	"github.com/wyfcoding/rangequery/xerrors"
)

// Value 约束线段树可承载的整数类型。
type Value interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// Tree 是六种具体线段树共享的公共契约。
type Tree[T Value] interface {
	// Build 以新序列重新初始化整棵树，序列不能为空。
	Build(values []T) error
	// Update 将 index 处的逻辑值替换为 value 并修复根到叶路径上的聚合。
	Update(index int, value T) error
	// QueryRange 返回闭区间 [left, right] 上的聚合值。
	QueryRange(left, right int) (T, error)
	// Size 返回原始序列长度，而非补齐后的存储长度。
	Size() int
	// Kind 返回树的聚合类型。
	Kind() Kind
	// Representation 返回树的结构表示。
	Representation() Representation
	// String 返回调试字符串。
	String() string
}

// Kind 聚合类型。
type Kind uint8

const (
	KindMin Kind = iota // 最小值
	KindMax             // 最大值
	KindSum             // 求和
)

// Kinds 按固定顺序列出所有聚合类型。
var Kinds = []Kind{KindMin, KindMax, KindSum}

func (k Kind) String() string {
	switch k {
	case KindMin:
		return "min"
	case KindMax:
		return "max"
	case KindSum:
		return "sum"
	default:
		return "unknown"
	}
}

// ParseKind 解析聚合名称（大小写不敏感）。
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "min", "minimum":
		return KindMin, nil
	case "max", "maximum":
		return KindMax, nil
	case "sum", "summation":
		return KindSum, nil
	default:
		return 0, xerrors.ErrUnknownAggregate.Derive().WithContext("aggregate", s)
	}
}

// Representation 树的结构表示方式。
type Representation uint8

const (
	ArrayBacked Representation = iota // 数组隐式完全二叉树
	NodeBacked                        // 显式节点树
)

func (r Representation) String() string {
	switch r {
	case ArrayBacked:
		return "array"
	case NodeBacked:
		return "node"
	default:
		return "unknown"
	}
}

// ParseRepresentation 解析表示方式名称（大小写不敏感）。
func ParseRepresentation(s string) (Representation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "array":
		return ArrayBacked, nil
	case "node", "tree":
		return NodeBacked, nil
	default:
		return 0, xerrors.ErrUnknownRepresentation.Derive().WithContext("representation", s)
	}
}

// New 按表示方式与聚合类型构建一棵树。
func New[T Value](rep Representation, kind Kind, values []T, opts ...Option) (Tree[T], error) {
	agg, err := AggregatorFor[T](kind)
	if err != nil {
		return nil, err
	}
	switch rep {
	case ArrayBacked:
		t, err := NewArrayTree(values, agg, opts...)
		if err != nil {
			return nil, err
		}
		return t, nil
	case NodeBacked:
		t, err := NewNodeTree(values, agg, opts...)
		if err != nil {
			return nil, err
		}
		return t, nil
	default:
		return nil, xerrors.ErrUnknownRepresentation.Derive().WithContext("representation", int(rep))
	}
}

// NewMinArrayTree 构建数组表示的最小值线段树。
func NewMinArrayTree[T Value](values []T, opts ...Option) (*ArrayTree[T], error) {
	return NewArrayTree(values, Min[T](), opts...)
}

// NewMaxArrayTree 构建数组表示的最大值线段树。
func NewMaxArrayTree[T Value](values []T, opts ...Option) (*ArrayTree[T], error) {
	return NewArrayTree(values, Max[T](), opts...)
}

// NewSumArrayTree 构建数组表示的求和线段树。
func NewSumArrayTree[T Value](values []T, opts ...Option) (*ArrayTree[T], error) {
	return NewArrayTree(values, Sum[T](), opts...)
}

// NewMinNodeTree 构建节点表示的最小值线段树。
func NewMinNodeTree[T Value](values []T, opts ...Option) (*NodeTree[T], error) {
	return NewNodeTree(values, Min[T](), opts...)
}

// NewMaxNodeTree 构建节点表示的最大值线段树。
func NewMaxNodeTree[T Value](values []T, opts ...Option) (*NodeTree[T], error) {
	return NewNodeTree(values, Max[T](), opts...)
}

// NewSumNodeTree 构建节点表示的求和线段树。
func NewSumNodeTree[T Value](values []T, opts ...Option) (*NodeTree[T], error) {
	return NewNodeTree(values, Sum[T](), opts...)
}
