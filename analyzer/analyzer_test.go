package analyzer

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wyfcoding/rangequery/segtree"
	"github.com/wyfcoding/rangequery/xerrors"
)

func TestAnalyzerScenario(t *testing.T) {
	for _, rep := range []segtree.Representation{segtree.NodeBacked, segtree.ArrayBacked} {
		t.Run(rep.String(), func(t *testing.T) {
			a, err := New([]int64{10, 30, 50}, rep)
			require.NoError(t, err)

			v, err := a.GetMax(0, 1)
			require.NoError(t, err)
			assert.Equal(t, int64(30), v)

			v, err = a.GetMin(0, 1)
			require.NoError(t, err)
			assert.Equal(t, int64(10), v)

			v, err = a.GetSum(0, 2)
			require.NoError(t, err)
			assert.Equal(t, int64(90), v)

			v, err = a.GetSum(0, 1)
			require.NoError(t, err)
			assert.Equal(t, int64(40), v)

			require.NoError(t, a.Update(2, 5))

			s, err := a.Summary(0, 2)
			require.NoError(t, err)
			assert.Equal(t, segtree.Summary[int64]{Min: 5, Max: 30, Sum: 45}, s)

			var b strings.Builder
			for _, v := range a.All() {
				fmt.Fprintf(&b, " %d", v)
			}
			assert.Equal(t, " 10 30 5", b.String())
		})
	}
}

func TestAnalyzerKeepsPrivateCopy(t *testing.T) {
	input := []int64{1, 2, 3}
	a, err := New(input, segtree.ArrayBacked)
	require.NoError(t, err)

	input[0] = 100
	v, err := a.GetMax(0, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), v)

	out := a.Values()
	out[1] = -7
	assert.Equal(t, []int64{1, 2, 3}, a.Values())
}

func TestAnalyzerErrors(t *testing.T) {
	_, err := New(nil, segtree.NodeBacked)
	assert.ErrorIs(t, err, xerrors.ErrEmptySequence)

	a, err := New([]int64{4, 8}, segtree.NodeBacked)
	require.NoError(t, err)

	assert.ErrorIs(t, a.Update(2, 1), xerrors.ErrIndexOutOfRange)
	assert.Equal(t, []int64{4, 8}, a.Values())

	_, err = a.GetSum(1, 0)
	assert.ErrorIs(t, err, xerrors.ErrInvalidRange)

	_, err = a.Query(segtree.Kind(7), 0, 1)
	assert.ErrorIs(t, err, xerrors.ErrUnknownAggregate)

	// a failed rebuild keeps the previous sequence
	assert.ErrorIs(t, a.Rebuild([]int64{}), xerrors.ErrEmptySequence)
	assert.Equal(t, 2, a.Size())
}

func TestAnalyzerRebuild(t *testing.T) {
	a, err := New([]int64{1, 2, 3}, segtree.ArrayBacked)
	require.NoError(t, err)
	require.NoError(t, a.Rebuild([]int64{9, 8, 7, 6, 5}))

	assert.Equal(t, 5, a.Size())
	v, err := a.GetSum(0, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(35), v)

	tree, err := a.Tree(segtree.KindMin)
	require.NoError(t, err)
	assert.Equal(t, segtree.ArrayBacked, tree.Representation())
	assert.Equal(t, segtree.KindMin, tree.Kind())
}

func TestIterator(t *testing.T) {
	a, err := New([]int64{3, 1}, segtree.NodeBacked)
	require.NoError(t, err)

	it := a.Iterator()
	require.True(t, it.HasNext())
	v, err := it.Next()
	require.NoError(t, err)
	assert.Equal(t, int64(3), v)

	// updates ahead of the cursor are visible
	require.NoError(t, a.Update(1, 11))
	v, err = it.Next()
	require.NoError(t, err)
	assert.Equal(t, int64(11), v)

	assert.False(t, it.HasNext())
	_, err = it.Next()
	assert.ErrorIs(t, err, xerrors.ErrNoMoreElements)

	// a fresh iterator starts over
	assert.True(t, a.Iterator().HasNext())
}

func TestAllStopsEarly(t *testing.T) {
	a, err := New([]int64{1, 2, 3, 4}, segtree.ArrayBacked)
	require.NoError(t, err)

	var seen []int
	for i := range a.All() {
		if i == 2 {
			break
		}
		seen = append(seen, i)
	}
	assert.Equal(t, []int{0, 1}, seen)
}
