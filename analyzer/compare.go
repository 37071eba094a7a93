package analyzer

import (
	"cmp"
	"slices"
)

// Compare 奇偶优先的全序：同奇偶按数值比较，否则偶数大于奇数。
// 返回 -1、0 或 1。
func Compare(a, b int64) int {
	ea, eb := isEven(a), isEven(b)
	switch {
	case ea == eb:
		return cmp.Compare(a, b)
	case ea:
		return 1
	default:
		return -1
	}
}

func isEven(v int64) bool { return v%2 == 0 }

// SortByParity 按 Compare 原地排序：奇数在前，偶数在后，各自升序。
func SortByParity(values []int64) {
	slices.SortFunc(values, Compare)
}
