package partition_test

import (
	"testing"

	"github.com/openmander/redistrict-core/internal/rng"
	"github.com/openmander/redistrict-core/partition"
	"github.com/stretchr/testify/require"
)

// Randomize on a connected graph must leave no node unassigned and every
// real part nonempty and connected, regardless of seed.
func TestRandomize_ProducesConnectedNonemptyParts(t *testing.T) {
	edges := gridEdges(4, 4)
	pops := make([]int64, 16)
	for i := range pops {
		pops[i] = 1
	}
	g := buildGraph(t, edges, pops)

	for _, seed := range []int64{1, 7, 42, 1234} {
		p := partition.New(4, g)
		p.Randomize(rng.FromSeed(seed))

		require.Equal(t, 0.0, p.PartTotal("pop", 0), "seed %d left unassigned nodes", seed)

		sum := 0.0
		for part := 1; part <= 4; part++ {
			pt := p.PartTotal("pop", part)
			require.Greater(t, pt, 0.0, "seed %d produced an empty part %d", seed, part)
			sum += pt

			comps := p.FindComponents(part)
			require.Len(t, comps, 1, "seed %d produced a disconnected part %d", seed, part)
		}
		require.Equal(t, 16.0, sum)
	}
}

func TestRandomize_IsDeterministicPerSeed(t *testing.T) {
	edges := gridEdges(3, 3)
	pops := make([]int64, 9)
	for i := range pops {
		pops[i] = 1
	}
	g := buildGraph(t, edges, pops)

	p1 := partition.New(3, g)
	p1.Randomize(rng.FromSeed(99))
	p2 := partition.New(3, g)
	p2.Randomize(rng.FromSeed(99))

	require.Equal(t, p1.Assignments(), p2.Assignments())
}
