package plan_test

import (
	"testing"

	"github.com/openmander/redistrict-core/graph"
	"github.com/openmander/redistrict-core/objective"
	"github.com/openmander/redistrict-core/plan"
	"github.com/openmander/redistrict-core/weightmatrix"
	"github.com/stretchr/testify/require"
)

func fourBlockGraph(t *testing.T) (*graph.Graph, []graph.GeoId) {
	t.Helper()
	edges := [][]int{{1}, {0, 2}, {1, 3}, {2}}
	weights := [][]float64{{1}, {1, 1}, {1, 1}, {1}}
	m, err := weightmatrix.New(4, []string{"pop"}, []weightmatrix.Kind{weightmatrix.Int64})
	require.NoError(t, err)
	pops := []int64{10, 20, 30, 40}
	for i, v := range pops {
		require.NoError(t, m.SetInt64("pop", i, v))
	}
	g, err := graph.New(edges, weights, m)
	require.NoError(t, err)

	geoIDs := []graph.GeoId{
		{Kind: graph.Block, Code: "000010001001000"},
		{Kind: graph.Block, Code: "000010001001001"},
		{Kind: graph.Block, Code: "000010001001002"},
		{Kind: graph.Block, Code: "000010001001003"},
	}
	return g, geoIDs
}

func TestNew_RejectsMismatchedGeoIDLength(t *testing.T) {
	g, geoIDs := fourBlockGraph(t)
	_, err := plan.New(g, 2, geoIDs[:2])
	require.Error(t, err)
}

func TestNew_RejectsDuplicateGeoID(t *testing.T) {
	g, geoIDs := fourBlockGraph(t)
	dup := append([]graph.GeoId{}, geoIDs...)
	dup[1] = dup[0]
	_, err := plan.New(g, 2, dup)
	require.Error(t, err)
}

func TestSetAssignments_AndDistrictTotals(t *testing.T) {
	g, geoIDs := fourBlockGraph(t)
	pl, err := plan.New(g, 2, geoIDs)
	require.NoError(t, err)

	err = pl.SetAssignments(map[string]int{
		geoIDs[0].Code: 1,
		geoIDs[1].Code: 1,
		geoIDs[2].Code: 2,
		geoIDs[3].Code: 2,
	})
	require.NoError(t, err)

	totals, err := pl.DistrictTotals("pop")
	require.NoError(t, err)
	require.Equal(t, []float64{0, 30, 70}, totals)
}

func TestSetAssignments_UnknownGeoIDErrors(t *testing.T) {
	g, geoIDs := fourBlockGraph(t)
	pl, err := plan.New(g, 2, geoIDs)
	require.NoError(t, err)

	err = pl.SetAssignments(map[string]int{"not-a-real-geoid": 1})
	require.Error(t, err)
}

func TestSetAssignments_DistrictOutOfRangeErrors(t *testing.T) {
	g, geoIDs := fourBlockGraph(t)
	pl, err := plan.New(g, 2, geoIDs)
	require.NoError(t, err)

	err = pl.SetAssignments(map[string]int{geoIDs[0].Code: 5})
	require.Error(t, err)
}

func TestGetAssignments_RoundTrips(t *testing.T) {
	g, geoIDs := fourBlockGraph(t)
	pl, err := plan.New(g, 2, geoIDs)
	require.NoError(t, err)

	want := map[string]int{
		geoIDs[0].Code: 1,
		geoIDs[1].Code: 1,
		geoIDs[2].Code: 2,
		geoIDs[3].Code: 2,
	}
	require.NoError(t, pl.SetAssignments(want))
	require.Equal(t, want, pl.GetAssignments())
}

func TestComputeObjective_ReflectsAssignment(t *testing.T) {
	g, geoIDs := fourBlockGraph(t)
	pl, err := plan.New(g, 2, geoIDs)
	require.NoError(t, err)
	require.NoError(t, pl.SetAssignments(map[string]int{
		geoIDs[0].Code: 1, geoIDs[1].Code: 1,
		geoIDs[2].Code: 2, geoIDs[3].Code: 2,
	}))

	obj := objective.New([]objective.Metric{objective.PopulationDeviation("pop")}, nil)
	score := pl.ComputeObjective(obj)
	require.Greater(t, score, 0.0)
	require.Less(t, score, 1.0)
}

func TestRandomizeAndEqualize_KeepsTotalPopulation(t *testing.T) {
	g, geoIDs := fourBlockGraph(t)
	pl, err := plan.New(g, 2, geoIDs)
	require.NoError(t, err)

	pl.Randomize(42)
	pl.Equalize("pop", 0.5, 50, 1)

	totals, err := pl.DistrictTotals("pop")
	require.NoError(t, err)
	sum := 0.0
	for _, v := range totals {
		sum += v
	}
	require.Equal(t, 100.0, sum)
}
