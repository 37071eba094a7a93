package segtree

import "math/bits"

// midpoint 向下取整的中点，左半为 [start, mid]，右半为 [mid+1, end]。
// 构建、更新、查询必须使用同一划分，否则树形不一致。
func midpoint(start, end int) int {
	return (start + end) / 2
}

func leftChild(i int) int  { return 2*i + 1 }
func rightChild(i int) int { return 2*i + 2 }
func parent(i int) int     { return (i - 1) / 2 }

// paddedSize 返回不小于 n 的最小 2 的幂，n >= 1。
func paddedSize(n int) int {
	return 1 << bits.Len(uint(n-1))
}

// slotCount 返回长度为 n 的序列所需的数组槽位数 2*2^ceil(log2 n)-1。
func slotCount(n int) int {
	return 2*paddedSize(n) - 1
}
