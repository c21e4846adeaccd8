package objective_test

import (
	"testing"

	"github.com/openmander/redistrict-core/graph"
	"github.com/openmander/redistrict-core/objective"
	"github.com/openmander/redistrict-core/partition"
	"github.com/openmander/redistrict-core/weightmatrix"
	"github.com/stretchr/testify/require"
)

// fourNodePathPartition mirrors scenario 1 from the end-to-end test suite: a 4-node
// path with populations [10, 20, 30, 40] split 1,1,2,2 across two parts.
func fourNodePathPartition(t *testing.T) *partition.Partition {
	t.Helper()
	edges := [][]int{{1}, {0, 2}, {1, 3}, {2}}
	weights := [][]float64{{1}, {1, 1}, {1, 1}, {1}}
	pops := []int64{10, 20, 30, 40}

	m, err := weightmatrix.New(4, []string{"pop"}, []weightmatrix.Kind{weightmatrix.Int64})
	require.NoError(t, err)
	for i, v := range pops {
		require.NoError(t, m.SetInt64("pop", i, v))
	}
	g, err := graph.New(edges, weights, m)
	require.NoError(t, err)

	p := partition.New(2, g)
	p.SetAssignments([]int{1, 1, 2, 2})
	return p
}

func TestPopulationDeviation_PerfectBalanceScoresOne(t *testing.T) {
	edges := [][]int{{1}, {0, 2}, {1, 3}, {2}}
	weights := [][]float64{{1}, {1, 1}, {1, 1}, {1}}
	m, err := weightmatrix.New(4, []string{"pop"}, []weightmatrix.Kind{weightmatrix.Int64})
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		require.NoError(t, m.SetInt64("pop", i, 10))
	}
	g, err := graph.New(edges, weights, m)
	require.NoError(t, err)
	p := partition.New(2, g)
	p.SetAssignments([]int{1, 1, 2, 2})

	metric := objective.PopulationDeviation("pop")
	scores := metric.Compute(p)
	require.Len(t, scores, 2)
	for _, s := range scores {
		require.InDelta(t, 1.0, s, 1e-9)
	}
}

func TestPopulationDeviation_ImbalancedPartsScoreLower(t *testing.T) {
	p := fourNodePathPartition(t)
	metric := objective.PopulationDeviation("pop")
	scores := metric.Compute(p)
	require.Len(t, scores, 2)
	for _, s := range scores {
		require.Less(t, s, 1.0)
	}
}

func TestProportionality_IsZeroStub(t *testing.T) {
	p := fourNodePathPartition(t)
	metric := objective.Proportionality("dem", "rep")
	scores := metric.Compute(p)
	require.Equal(t, []float64{0, 0}, scores)
}

func TestCompetitiveness_CountsWithinThreshold(t *testing.T) {
	edges := [][]int{{1}, {0, 2}, {1, 3}, {2}}
	weights := [][]float64{{1}, {1, 1}, {1, 1}, {1}}
	m, err := weightmatrix.New(4, []string{"dem", "rep"}, []weightmatrix.Kind{weightmatrix.Int64, weightmatrix.Int64})
	require.NoError(t, err)
	dem := []int64{10, 10, 10, 30}
	rep := []int64{10, 10, 10, 10}
	for i := 0; i < 4; i++ {
		require.NoError(t, m.SetInt64("dem", i, dem[i]))
		require.NoError(t, m.SetInt64("rep", i, rep[i]))
	}
	g, err := graph.New(edges, weights, m)
	require.NoError(t, err)
	p := partition.New(2, g)
	p.SetAssignments([]int{1, 1, 2, 2})

	metric := objective.Competitiveness("dem", "rep", 0.1)
	scores := metric.Compute(p)
	require.Equal(t, 1.0, scores[0]) // part 1: dem=rep=20, share=0 <= 0.1
	require.Equal(t, 0.0, scores[1]) // part 2: dem=40, rep=20, share > 0.1
}

func TestMetric_ComputeScoreIsMeanOfParts(t *testing.T) {
	p := fourNodePathPartition(t)
	metric := objective.PopulationDeviation("pop")
	scores := metric.Compute(p)
	mean := (scores[0] + scores[1]) / 2
	require.InDelta(t, mean, metric.ComputeScore(p), 1e-9)
}
