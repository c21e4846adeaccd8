package partition_test

import (
	"testing"

	"github.com/openmander/redistrict-core/partition"
	"github.com/stretchr/testify/require"
)

func TestMultiSet_NewStartsEmpty(t *testing.T) {
	ms := partition.NewMultiSet(3, 5)
	for e := 0; e < 5; e++ {
		require.False(t, ms.Contains(e))
	}
}

func TestMultiSet_InsertAndFind(t *testing.T) {
	ms := partition.NewMultiSet(3, 5)
	ms.Insert(2, 1)
	require.True(t, ms.Contains(2))
	set, _, ok := ms.Find(2)
	require.True(t, ok)
	require.Equal(t, 1, set)
}

func TestMultiSet_InsertMovesBetweenSets(t *testing.T) {
	ms := partition.NewMultiSet(3, 5)
	ms.Insert(2, 1)
	ms.Insert(2, 2)
	require.ElementsMatch(t, []int{}, ms.Get(1))
	require.ElementsMatch(t, []int{2}, ms.Get(2))
}

func TestMultiSet_InsertNoopWhenAlreadyCorrect(t *testing.T) {
	ms := partition.NewMultiSet(3, 5)
	ms.Insert(2, 1)
	ms.Insert(2, 1)
	require.ElementsMatch(t, []int{2}, ms.Get(1))
}

func TestMultiSet_RemoveIsNoopWhenAbsent(t *testing.T) {
	ms := partition.NewMultiSet(3, 5)
	require.NotPanics(t, func() { ms.Remove(3) })
	require.False(t, ms.Contains(3))
}

func TestMultiSet_RemoveSwapFixesPosition(t *testing.T) {
	ms := partition.NewMultiSet(2, 5)
	ms.Insert(0, 1)
	ms.Insert(1, 1)
	ms.Insert(2, 1)
	ms.Remove(0)
	require.ElementsMatch(t, []int{1, 2}, ms.Get(1))
	_, _, ok := ms.Find(1)
	require.True(t, ok)
}

func TestMultiSet_RebuildFrom(t *testing.T) {
	ms := partition.NewMultiSet(3, 4)
	ms.Insert(0, 1)
	ms.RebuildFrom([][2]int{{2, 1}, {3, 2}})
	require.False(t, ms.Contains(0))
	require.True(t, ms.Contains(2))
	require.True(t, ms.Contains(3))
}

func TestMultiSet_RebuildFrom_DuplicateElementPanics(t *testing.T) {
	ms := partition.NewMultiSet(2, 3)
	require.Panics(t, func() { ms.RebuildFrom([][2]int{{0, 0}, {0, 1}}) })
}

func TestMultiSet_IterAll(t *testing.T) {
	ms := partition.NewMultiSet(3, 4)
	ms.Insert(0, 1)
	ms.Insert(3, 2)
	seen := map[int]int{}
	ms.IterAll(func(elem, set int) { seen[elem] = set })
	require.Equal(t, map[int]int{0: 1, 3: 2}, seen)
}
