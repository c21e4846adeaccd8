package partition_test

import (
	"testing"

	"github.com/openmander/redistrict-core/partition"
	"github.com/stretchr/testify/require"
)

func TestFrontierEdgeList_InsertRemove(t *testing.T) {
	fe := partition.NewFrontierEdgeList(3, 8)
	fe.Insert(2, 1)
	require.True(t, fe.Contains(2))
	require.ElementsMatch(t, []int{2}, fe.Get(1))

	fe.Remove(2)
	require.False(t, fe.Contains(2))
	require.Empty(t, fe.Get(1))
}

func TestFrontierEdgeList_MoveBetweenParts(t *testing.T) {
	fe := partition.NewFrontierEdgeList(3, 8)
	fe.Insert(5, 1)
	fe.Insert(5, 2)
	require.Empty(t, fe.Get(1))
	require.ElementsMatch(t, []int{5}, fe.Get(2))
}

func TestFrontierEdgeList_Clear(t *testing.T) {
	fe := partition.NewFrontierEdgeList(2, 4)
	fe.Insert(0, 1)
	fe.Insert(1, 1)
	fe.Clear()
	require.Empty(t, fe.Get(1))
	require.False(t, fe.Contains(0))
}
