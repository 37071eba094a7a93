package segtree

const noChild = -1

// node 显式树的节点，覆盖闭区间 [start, end]。
// 孩子以 arena 下标引用，叶子两个孩子均为 noChild；每个节点独占其两个孩子。
type node[T Value] struct {
	start, end  int
	left, right int
	agg         Summary[T]
}

func (n *node[T]) isLeaf() bool {
	return n.left == noChild && n.right == noChild
}

// arena 按前序分配节点，长度为 n 的序列恰好需要 2n-1 个节点。
type arena[T Value] struct {
	nodes []node[T]
}

func newArena[T Value](size int) arena[T] {
	return arena[T]{nodes: make([]node[T], 0, 2*size-1)}
}

func (a *arena[T]) alloc(start, end int) int {
	a.nodes = append(a.nodes, node[T]{start: start, end: end, left: noChild, right: noChild})
	return len(a.nodes) - 1
}

func (a *arena[T]) at(i int) *node[T] {
	return &a.nodes[i]
}

func (a *arena[T]) len() int {
	return len(a.nodes)
}
