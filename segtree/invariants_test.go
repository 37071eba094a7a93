package segtree

import "testing"

// checkArrayInvariants 校验每个存在的内部槽位等于其两个孩子的合并结果。
func checkArrayInvariants[T Value](t *testing.T, tree *ArrayTree[T]) {
	t.Helper()
	count := 0
	var walk func(idx, start, end int)
	walk = func(idx, start, end int) {
		s := tree.slots[idx]
		if !s.ok {
			t.Fatalf("slot %d covering [%d,%d] is absent", idx, start, end)
		}
		count++
		if start == end {
			return
		}
		mid := midpoint(start, end)
		walk(leftChild(idx), start, mid)
		walk(rightChild(idx), mid+1, end)
		want := tree.agg.Merge(tree.slots[leftChild(idx)].val, tree.slots[rightChild(idx)].val)
		if s.val != want {
			t.Fatalf("slot %d = %d, want %d", idx, s.val, want)
		}
	}
	walk(0, 0, tree.size-1)

	present := 0
	for _, s := range tree.slots {
		if s.ok {
			present++
		}
	}
	if present != count || count != 2*tree.size-1 {
		t.Fatalf("present slots = %d, reachable = %d, want %d", present, count, 2*tree.size-1)
	}
}

// checkNodeInvariants 校验区间划分与每个内部节点缓存的 Summary。
func checkNodeInvariants[T Value](t *testing.T, tree *NodeTree[T]) {
	t.Helper()
	var walk func(idx, start, end int)
	walk = func(idx, start, end int) {
		n := tree.arena.at(idx)
		if n.start != start || n.end != end {
			t.Fatalf("node %d covers [%d,%d], want [%d,%d]", idx, n.start, n.end, start, end)
		}
		if start == end {
			if !n.isLeaf() {
				t.Fatalf("node %d covers a single index but has children", idx)
			}
			return
		}
		if n.left == noChild || n.right == noChild {
			t.Fatalf("internal node %d is missing a child", idx)
		}
		mid := midpoint(start, end)
		walk(n.left, start, mid)
		walk(n.right, mid+1, end)
		want := mergeSummary(tree.arena.at(n.left).agg, tree.arena.at(n.right).agg)
		if n.agg != want {
			t.Fatalf("node %d summary = %+v, want %+v", idx, n.agg, want)
		}
	}
	walk(tree.root, 0, tree.size-1)
	if tree.NodeCount() != 2*tree.size-1 {
		t.Fatalf("node count = %d, want %d", tree.NodeCount(), 2*tree.size-1)
	}
}
