package graph_test

import (
	"testing"

	"github.com/openmander/redistrict-core/graph"
	"github.com/openmander/redistrict-core/weightmatrix"
	"github.com/stretchr/testify/require"
)

func nodeWeights(t *testing.T, n int) *weightmatrix.Matrix {
	t.Helper()
	m, err := weightmatrix.New(n, []string{"population"}, []weightmatrix.Kind{weightmatrix.Int64})
	require.NoError(t, err)
	return m
}

// A tiny 3-node path: 0-1-2, each undirected edge stored as two half-edges.
func pathGraph(t *testing.T) *graph.Graph {
	t.Helper()
	edges := [][]int{{1}, {0, 2}, {1}}
	weights := [][]float64{{1.0}, {1.0, 1.0}, {1.0}}
	g, err := graph.New(edges, weights, nodeWeights(t, 3))
	require.NoError(t, err)
	return g
}

func TestNew_OffsetsMatchDegrees(t *testing.T) {
	g := pathGraph(t)
	require.Equal(t, 3, g.NodeCount())
	require.Equal(t, 4, g.EdgeCount())
	require.Equal(t, 1, g.Degree(0))
	require.Equal(t, 2, g.Degree(1))
	require.Equal(t, 1, g.Degree(2))
}

func TestNew_RangeMatchesOffsets(t *testing.T) {
	g := pathGraph(t)
	start, end := g.Range(1)
	require.Equal(t, 2, end-start)
}

func TestEdge_OutOfRangeReturnsFalse(t *testing.T) {
	g := pathGraph(t)
	_, ok := g.Edge(0, 5)
	require.False(t, ok)
}

func TestEdges_VisitsAllNeighbors(t *testing.T) {
	g := pathGraph(t)
	require.ElementsMatch(t, []int{0, 2}, g.Edges(1))
}

func TestEdgesWithWeights(t *testing.T) {
	g := pathGraph(t)
	nbrs, weights := g.EdgesWithWeights(1)
	require.Len(t, nbrs, 2)
	require.Len(t, weights, 2)
	for _, w := range weights {
		require.Equal(t, 1.0, w)
	}
}

func TestNew_EmptyGraphIsValid(t *testing.T) {
	g, err := graph.New(nil, nil, nodeWeights(t, 0))
	require.NoError(t, err)
	require.Equal(t, 0, g.NodeCount())
	require.Equal(t, 0, g.EdgeCount())
}

func TestNew_IsolatedNodeHasZeroDegree(t *testing.T) {
	g, err := graph.New([][]int{{}}, [][]float64{{}}, nodeWeights(t, 1))
	require.NoError(t, err)
	require.Equal(t, 0, g.Degree(0))
}

func TestNew_EdgeWeightLengthMismatch(t *testing.T) {
	_, err := graph.New([][]int{{1}, {0}}, [][]float64{{1.0, 2.0}, {1.0}}, nodeWeights(t, 2))
	require.ErrorIs(t, err, graph.ErrLengthMismatch)
}

func TestNew_NeighborOutOfRange(t *testing.T) {
	_, err := graph.New([][]int{{5}}, [][]float64{{1.0}}, nodeWeights(t, 1))
	require.ErrorIs(t, err, graph.ErrOutOfRange)
}

func TestNew_NodeWeightsRowCountMismatch(t *testing.T) {
	_, err := graph.New([][]int{{1}, {0}}, [][]float64{{1.0}, {1.0}}, nodeWeights(t, 5))
	require.ErrorIs(t, err, graph.ErrLengthMismatch)
}

func TestGeoId_ParentTruncates(t *testing.T) {
	block := graph.GeoId{Kind: graph.Block, Code: "060014001001000"}
	tract := block.Parent(graph.Tract)
	require.Equal(t, "06001400100", tract.Code)
	require.Equal(t, graph.Tract, tract.Kind)
}

func TestGeoId_ParentPanicsOnFinerTarget(t *testing.T) {
	tract := graph.GeoId{Kind: graph.Tract, Code: "06001400100"}
	require.Panics(t, func() { tract.Parent(graph.Block) })
}

func TestGeoId_ParentPanicsOnVTDTarget(t *testing.T) {
	block := graph.GeoId{Kind: graph.Block, Code: "060014001001000"}
	require.Panics(t, func() { block.Parent(graph.VTD) })
}
