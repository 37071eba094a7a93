package segtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wyfcoding/rangequery/xerrors"
)

var arrayInput = []int{10, 15, 55, 15, 9, 12}

func TestArrayTreeMax(t *testing.T) {
	tree, err := NewMaxArrayTree(arrayInput)
	require.NoError(t, err)

	assert.Equal(t, 6, tree.Size())
	assert.Equal(t, 15, tree.SlotCount())
	assert.Equal(t, " [ 55 55 15 15 55 15 12 10 15 - - 15 9 - - ] ", tree.String())

	got, err := tree.QueryRange(0, 5)
	require.NoError(t, err)
	assert.Equal(t, 55, got)

	require.NoError(t, tree.Update(0, 80))
	assert.Equal(t, " [ 80 80 15 80 55 15 12 80 15 - - 15 9 - - ] ", tree.String())

	got, err = tree.QueryRange(0, 5)
	require.NoError(t, err)
	assert.Equal(t, 80, got)
	assert.Equal(t, 6, tree.Size())
	checkArrayInvariants(t, tree)
}

func TestArrayTreeMin(t *testing.T) {
	tree, err := NewMinArrayTree(arrayInput)
	require.NoError(t, err)
	assert.Equal(t, " [ 9 10 9 10 55 9 12 10 15 - - 15 9 - - ] ", tree.String())

	got, err := tree.QueryRange(0, 2)
	require.NoError(t, err)
	assert.Equal(t, 10, got)

	require.NoError(t, tree.Update(5, 80))
	assert.Equal(t, " [ 9 10 9 10 55 9 80 10 15 - - 15 9 - - ] ", tree.String())

	got, err = tree.QueryRange(0, 5)
	require.NoError(t, err)
	assert.Equal(t, 9, got)
	checkArrayInvariants(t, tree)
}

func TestArrayTreeSum(t *testing.T) {
	tree, err := NewSumArrayTree(arrayInput)
	require.NoError(t, err)
	assert.Equal(t, " [ 116 80 36 25 55 24 12 10 15 - - 15 9 - - ] ", tree.String())

	got, err := tree.QueryRange(4, 5)
	require.NoError(t, err)
	assert.Equal(t, 21, got)

	require.NoError(t, tree.Update(5, 80))
	assert.Equal(t, " [ 184 80 104 25 55 24 80 10 15 - - 15 9 - - ] ", tree.String())

	got, err = tree.QueryRange(4, 5)
	require.NoError(t, err)
	assert.Equal(t, 89, got)
	checkArrayInvariants(t, tree)
}

func TestArrayTreeSlotCount(t *testing.T) {
	cases := []struct {
		n     int
		slots int
	}{
		{1, 1},
		{2, 3},
		{3, 7},
		{4, 7},
		{5, 15},
		{8, 15},
		{9, 31},
	}
	for _, tc := range cases {
		values := make([]int, tc.n)
		tree, err := NewSumArrayTree(values)
		require.NoError(t, err)
		assert.Equal(t, tc.slots, tree.SlotCount(), "n=%d", tc.n)
		assert.Equal(t, tc.n, tree.Size())
	}
}

func TestArrayTreeSingleElement(t *testing.T) {
	tree, err := NewMinArrayTree([]int{7})
	require.NoError(t, err)
	assert.Equal(t, " [ 7 ] ", tree.String())

	got, err := tree.QueryRange(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 7, got)

	require.NoError(t, tree.Update(0, -3))
	got, err = tree.QueryRange(0, 0)
	require.NoError(t, err)
	assert.Equal(t, -3, got)
}

func TestArrayTreeEmptyInput(t *testing.T) {
	tree, err := NewMaxArrayTree([]int{})
	assert.Nil(t, tree)
	assert.ErrorIs(t, err, xerrors.ErrEmptySequence)
}

func TestArrayTreeUpdateOutOfRangeLeavesTreeUnchanged(t *testing.T) {
	tree, err := NewMaxArrayTree(arrayInput)
	require.NoError(t, err)
	before := tree.String()

	for _, idx := range []int{-1, 6, 100} {
		err := tree.Update(idx, 1000)
		assert.ErrorIs(t, err, xerrors.ErrIndexOutOfRange, "index=%d", idx)
	}
	assert.Equal(t, before, tree.String())
}

func TestArrayTreeInvalidRange(t *testing.T) {
	tree, err := NewSumArrayTree(arrayInput)
	require.NoError(t, err)

	for _, r := range [][2]int{{-1, 2}, {0, 6}, {3, 2}} {
		_, err := tree.QueryRange(r[0], r[1])
		assert.ErrorIs(t, err, xerrors.ErrInvalidRange, "range=%v", r)
	}
}

func TestArrayTreeRebuildWithNewLength(t *testing.T) {
	tree, err := NewSumArrayTree(arrayInput)
	require.NoError(t, err)

	require.NoError(t, tree.Build([]int{1, 2, 3}))
	assert.Equal(t, 3, tree.Size())
	assert.Equal(t, 7, tree.SlotCount())

	got, err := tree.QueryRange(0, 2)
	require.NoError(t, err)
	assert.Equal(t, 6, got)

	err = tree.Build(nil)
	assert.ErrorIs(t, err, xerrors.ErrEmptySequence)
}
