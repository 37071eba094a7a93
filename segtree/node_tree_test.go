package segtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wyfcoding/rangequery/xerrors"
)

var nodeInput = []int{60, 10, 5, 15, 6}

func TestNodeTreeMax(t *testing.T) {
	tree, err := NewMaxNodeTree(nodeInput)
	require.NoError(t, err)
	assert.Equal(t, " [ 60 60 60 60 10 5 15 15 6 ] ", tree.String())
	assert.Equal(t, 9, tree.NodeCount())

	require.NoError(t, tree.Update(1, 80))
	assert.Equal(t, " [ 80 80 80 60 80 5 15 15 6 ] ", tree.String())
	assert.Equal(t, 5, tree.Size())
	checkNodeInvariants(t, tree)
}

func TestNodeTreeMin(t *testing.T) {
	tree, err := NewMinNodeTree(nodeInput)
	require.NoError(t, err)
	assert.Equal(t, " [ 5 5 10 60 10 5 6 15 6 ] ", tree.String())

	got, err := tree.QueryRange(0, 4)
	require.NoError(t, err)
	assert.Equal(t, 5, got)

	require.NoError(t, tree.Update(1, 2))
	assert.Equal(t, " [ 2 2 2 60 2 5 6 15 6 ] ", tree.String())

	got, err = tree.QueryRange(0, 4)
	require.NoError(t, err)
	assert.Equal(t, 2, got)
	checkNodeInvariants(t, tree)
}

func TestNodeTreeSum(t *testing.T) {
	tree, err := NewSumNodeTree(nodeInput)
	require.NoError(t, err)
	assert.Equal(t, " [ 96 75 70 60 10 5 21 15 6 ] ", tree.String())

	got, err := tree.QueryRange(0, 4)
	require.NoError(t, err)
	assert.Equal(t, 96, got)

	require.NoError(t, tree.Update(4, 10))
	assert.Equal(t, " [ 100 75 70 60 10 5 25 15 10 ] ", tree.String())

	got, err = tree.QueryRange(0, 4)
	require.NoError(t, err)
	assert.Equal(t, 100, got)
	checkNodeInvariants(t, tree)
}

func TestNodeTreeSummaryCarriesAllAggregates(t *testing.T) {
	tree, err := NewSumNodeTree(nodeInput)
	require.NoError(t, err)

	s, err := tree.QuerySummary(1, 3)
	require.NoError(t, err)
	assert.Equal(t, Summary[int]{Min: 5, Max: 15, Sum: 30}, s)

	// straddling queries must not leave merged summaries behind
	assert.Equal(t, " [ 96 75 70 60 10 5 21 15 6 ] ", tree.String())
	assert.Equal(t, 9, tree.NodeCount())
}

func TestNodeTreeErrors(t *testing.T) {
	_, err := NewMinNodeTree([]int{})
	assert.ErrorIs(t, err, xerrors.ErrEmptySequence)

	tree, err := NewMinNodeTree(nodeInput)
	require.NoError(t, err)
	before := tree.String()

	assert.ErrorIs(t, tree.Update(5, 1), xerrors.ErrIndexOutOfRange)
	assert.ErrorIs(t, tree.Update(-1, 1), xerrors.ErrIndexOutOfRange)
	assert.Equal(t, before, tree.String())

	_, err = tree.QueryRange(2, 1)
	assert.ErrorIs(t, err, xerrors.ErrInvalidRange)
	_, err = tree.QueryRange(0, 5)
	assert.ErrorIs(t, err, xerrors.ErrInvalidRange)
}

func TestNodeTreeSingleElement(t *testing.T) {
	tree, err := NewMaxNodeTree([]int{42})
	require.NoError(t, err)
	assert.Equal(t, " [ 42 ] ", tree.String())
	assert.Equal(t, 1, tree.NodeCount())
}
