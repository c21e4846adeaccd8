package partition_test

import (
	"testing"

	"github.com/openmander/redistrict-core/internal/rng"
	"github.com/openmander/redistrict-core/partition"
	"github.com/stretchr/testify/require"
)

func pathOfTen(t *testing.T) *partition.Partition {
	t.Helper()
	n := 10
	edges := make([][]int, n)
	pops := make([]int64, n)
	for i := 0; i < n; i++ {
		var nbrs []int
		if i > 0 {
			nbrs = append(nbrs, i-1)
		}
		if i < n-1 {
			nbrs = append(nbrs, i+1)
		}
		edges[i] = nbrs
		pops[i] = 1
	}
	g := buildGraph(t, edges, pops)
	p := partition.New(2, g)
	assign := make([]int, n)
	for i := 0; i < n; i++ {
		if i < 5 {
			assign[i] = 1
		} else {
			assign[i] = 2
		}
	}
	p.SetAssignments(assign)
	return p
}

// Scenario 6: a path of 10 unit-population blocks split 5/5 across two
// parts. Recombining them must yield two connected parts whose populations
// sum to 10 and each land within 1 of the target 5 (the balanced cut picks
// the tightest subtree; on a path a size-5 subtree always exists, so the
// split is in fact exact, but the contract only promises +/-1).
func TestRecombineParts_PathOfTenStaysBalancedAndContiguous(t *testing.T) {
	p := pathOfTen(t)
	r := rng.FromSeed(5)

	p.RecombineParts(1, 2, "pop", r)

	total := p.PartTotal("pop", 1) + p.PartTotal("pop", 2)
	require.Equal(t, 10.0, total)

	for part := 1; part <= 2; part++ {
		require.InDelta(t, 5.0, p.PartTotal("pop", part), 1.0, "part %d outside the balance bound", part)
		comps := p.FindComponents(part)
		require.Len(t, comps, 1)
	}
}

func TestRecombineParts_NoopWhenNotAdjacent(t *testing.T) {
	edges := [][]int{{1}, {0}, {3}, {2}}
	g := buildGraph(t, edges, []int64{1, 1, 1, 1})
	p := partition.New(2, g)
	p.SetAssignments([]int{1, 1, 2, 2})

	before := append([]int{}, p.Assignments()...)
	r := rng.FromSeed(9)
	p.RecombineParts(1, 2, "pop", r)

	require.Equal(t, before, p.Assignments())
}
