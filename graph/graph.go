// Package graph provides an immutable compressed-sparse-row adjacency
// structure over census-block-like nodes, with per-node weight series carried
// alongside the topology.
package graph

import (
	"errors"
	"fmt"

	"github.com/openmander/redistrict-core/weightmatrix"
)

// ErrLengthMismatch indicates that edges/edge_weights/node_weights rows do
// not line up with the declared node count.
var ErrLengthMismatch = errors.New("graph: length mismatch")

// ErrOutOfRange indicates a node or half-edge index outside its valid range.
var ErrOutOfRange = errors.New("graph: index out of range")

func graphErrorf(method string, err error) error {
	return fmt.Errorf("graph.%s: %w", method, err)
}

// Graph is an immutable compressed-sparse-row adjacency list: offsets has
// length n+1, edges/edgeWeights have length offsets[n] (every directed
// half-edge, so undirected edges appear twice). NodeWeights carries per-node
// series aligned with node index.
//
// A *Graph is never mutated after construction; it is safe to share a single
// pointer across many Partitions and across goroutines.
type Graph struct {
	offsets     []int
	edges       []int
	edgeWeights []float64
	nodeWeights *weightmatrix.Matrix
}

// New builds a Graph from per-node adjacency lists and edge weights, and an
// already-populated node WeightMatrix. edges and edgeWeights must each have
// exactly n rows (one per node), with matching per-row lengths; nodeWeights
// must have n rows.
//
// New validates its CSR invariants at construction so downstream code can
// assume them unconditionally.
func New(edges [][]int, edgeWeights [][]float64, nodeWeights *weightmatrix.Matrix) (*Graph, error) {
	n := len(edges)
	if len(edgeWeights) != n {
		return nil, graphErrorf("New", fmt.Errorf("%w: edges has %d rows, edge_weights has %d", ErrLengthMismatch, n, len(edgeWeights)))
	}
	if nodeWeights.Rows() != n {
		return nil, graphErrorf("New", fmt.Errorf("%w: node_weights has %d rows, expected %d", ErrLengthMismatch, nodeWeights.Rows(), n))
	}

	offsets := make([]int, n+1)
	total := 0
	for u := 0; u < n; u++ {
		if len(edges[u]) != len(edgeWeights[u]) {
			return nil, graphErrorf("New", fmt.Errorf("%w: node %d has %d edges but %d edge weights", ErrLengthMismatch, u, len(edges[u]), len(edgeWeights[u])))
		}
		offsets[u] = total
		total += len(edges[u])
	}
	offsets[n] = total

	flatEdges := make([]int, 0, total)
	flatWeights := make([]float64, 0, total)
	for u := 0; u < n; u++ {
		for i, v := range edges[u] {
			if v < 0 || v >= n {
				return nil, graphErrorf("New", fmt.Errorf("%w: node %d neighbor %d out of range [0,%d)", ErrOutOfRange, u, v, n))
			}
			flatEdges = append(flatEdges, v)
			flatWeights = append(flatWeights, edgeWeights[u][i])
		}
	}

	return &Graph{offsets: offsets, edges: flatEdges, edgeWeights: flatWeights, nodeWeights: nodeWeights}, nil
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.offsets) - 1 }

// EdgeCount returns the number of directed half-edges (twice the number of
// undirected edges for a symmetric graph).
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Range returns the half-open half-edge index range [start,end) for node u's
// adjacency list, matching offsets[u] and offsets[u+1].
func (g *Graph) Range(u int) (int, int) {
	return g.offsets[u], g.offsets[u+1]
}

// Degree returns the number of neighbors of node u.
func (g *Graph) Degree(u int) int {
	start, end := g.Range(u)
	return end - start
}

// Edge returns the i-th neighbor of node u and whether i was in range.
func (g *Graph) Edge(u, i int) (int, bool) {
	start, end := g.Range(u)
	idx := start + i
	if idx < 0 || idx >= end {
		return 0, false
	}
	return g.edges[idx], true
}

// Edges returns the neighbor node ids of u, in CSR order.
func (g *Graph) Edges(u int) []int {
	start, end := g.Range(u)
	return g.edges[start:end]
}

// EdgesWithWeights returns the (neighbor, weight) pairs for u's incident
// half-edges, in CSR order.
func (g *Graph) EdgesWithWeights(u int) ([]int, []float64) {
	start, end := g.Range(u)
	return g.edges[start:end], g.edgeWeights[start:end]
}

// HalfEdgeWeight returns the weight of the half-edge at global half-edge
// index idx (as returned by Range/degree arithmetic).
func (g *Graph) HalfEdgeWeight(idx int) float64 {
	return g.edgeWeights[idx]
}

// NodeWeights returns the node-level WeightMatrix embedded in this graph.
func (g *Graph) NodeWeights() *weightmatrix.Matrix {
	return g.nodeWeights
}
