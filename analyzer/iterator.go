package analyzer

import (
	"iter"

	"github.com/wyfcoding/rangequery/xerrors"
)

// Iterator 单向、一次性地遍历 Analyzer 的当前序列。
// 遍历期间的 Update 对尚未读取的位置可见。
type Iterator struct {
	a    *Analyzer
	next int
}

// Iterator 返回从下标 0 开始的新迭代器。
func (a *Analyzer) Iterator() *Iterator {
	return &Iterator{a: a}
}

// HasNext 报告是否还有未读取的元素。
func (it *Iterator) HasNext() bool {
	return it.next < len(it.a.values)
}

// Next 返回下一个元素，越过末尾时返回 ErrNoMoreElements。
func (it *Iterator) Next() (int64, error) {
	if !it.HasNext() {
		return 0, xerrors.ErrNoMoreElements.Derive()
	}
	v := it.a.values[it.next]
	it.next++
	return v, nil
}

// All 以 range-over-func 的形式返回 (下标, 值)。
func (a *Analyzer) All() iter.Seq2[int, int64] {
	return func(yield func(int, int64) bool) {
		it := a.Iterator()
		for i := 0; it.HasNext(); i++ {
			v, _ := it.Next()
			if !yield(i, v) {
				return
			}
		}
	}
}
