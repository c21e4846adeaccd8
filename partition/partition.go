// Package partition implements a mutable k-way assignment over an immutable
// graph.Graph, with incrementally-maintained frontier-node and frontier-edge
// caches and per-part weight aggregates, plus the contiguity, equalize,
// anneal, tabu, and recombination drivers built on top of it.
package partition

import (
	"fmt"
	"math/rand"

	"github.com/openmander/redistrict-core/graph"
	"github.com/openmander/redistrict-core/weightmatrix"
)

// Partition owns a shared Graph handle plus the mutable assignment state: a
// PartitionSet of node-to-part assignments, a MultiSet of frontier nodes per
// part, a FrontierEdgeList of frontier half-edges per part, and a
// part-level WeightMatrix mirroring row sums of the graph's node weights.
//
// Part id 0 is reserved for "unassigned"; parts [1, k] are the real
// districts. Partition carries no internal locking: callers serialize
// mutation externally when a Partition is shared across goroutines.
type Partition struct {
	g *graph.Graph

	parts     *PartitionSet
	frontiers *MultiSet
	frontierE *FrontierEdgeList
	partW     *weightmatrix.Matrix

	k int
}

// New constructs a Partition with k real parts (plus part 0 for
// unassigned) around g, with every node initially unassigned and
// part_weights[0] seeded to the column sum of the graph's node weights.
func New(k int, g *graph.Graph) *Partition {
	if k < 1 {
		panic("partition: New requires k >= 1")
	}
	n := g.NodeCount()
	p := &Partition{
		g:         g,
		k:         k,
		parts:     NewPartitionSet(k+1, n),
		frontiers: NewMultiSet(k+1, n),
		frontierE: NewFrontierEdgeList(k+1, g.EdgeCount()),
		partW:     weightmatrix.CopyOfSize(g.NodeWeights(), k+1),
	}
	if err := p.partW.SetRowToSumOf(0, g.NodeWeights()); err != nil {
		panic(err)
	}
	return p
}

// Graph returns the shared graph this partition assigns nodes over.
func (p *Partition) Graph() *graph.Graph { return p.g }

// NumParts returns k, the number of real parts (excluding the unassigned
// bucket 0).
func (p *Partition) NumParts() int { return p.k }

// NumNodes returns the number of nodes in the underlying graph.
func (p *Partition) NumNodes() int { return p.g.NodeCount() }

// Assignment returns the part currently holding node u.
func (p *Partition) Assignment(u int) int { return p.parts.Of(u) }

// Assignments returns the full assignment vector; index u holds u's part.
func (p *Partition) Assignments() []int {
	out := make([]int, p.NumNodes())
	for u := range out {
		out[u] = p.parts.Of(u)
	}
	return out
}

// Frontier returns the frontier nodes of part, i.e. nodes assigned to part
// with at least one neighbor assigned elsewhere.
func (p *Partition) Frontier(part int) []int { return p.frontiers.Get(part) }

// PartWeights returns the part-level weight matrix (row p mirrors the sum
// of node_weights over nodes assigned to part p).
func (p *Partition) PartWeights() *weightmatrix.Matrix { return p.partW }

// PartTotal returns the value of series summed over all nodes assigned to
// part.
func (p *Partition) PartTotal(series string, part int) float64 {
	return p.partW.MustGetAsF64(series, part)
}

// RegionTotal returns the value of series summed over every node in the
// graph, regardless of assignment.
func (p *Partition) RegionTotal(series string) float64 {
	total := 0.0
	for part := 0; part <= p.k; part++ {
		total += p.partW.MustGetAsF64(series, part)
	}
	return total
}

// Clone deep-copies the mutable partition state while sharing the
// underlying Graph pointer (cheap: only per-part caches are duplicated).
func (p *Partition) Clone() *Partition {
	cp := &Partition{g: p.g, k: p.k}
	cp.parts = NewPartitionSet(p.k+1, p.NumNodes())
	cp.parts.Rebuild(p.Assignments())
	cp.frontiers = NewMultiSet(p.k+1, p.NumNodes())
	var pairs [][2]int
	p.frontiers.IterAll(func(elem, set int) { pairs = append(pairs, [2]int{elem, set}) })
	cp.frontiers.RebuildFrom(pairs)
	cp.frontierE = NewFrontierEdgeList(p.k+1, p.g.EdgeCount())
	var epairs [][2]int
	p.frontierE.inner.IterAll(func(elem, set int) { epairs = append(epairs, [2]int{elem, set}) })
	cp.frontierE.inner.RebuildFrom(epairs)
	cp.partW = weightmatrix.CopyOfSize(p.partW, p.k+1)
	for row := 0; row <= p.k; row++ {
		if err := cp.partW.AddRowFrom(row, p.partW, row); err != nil {
			panic(err)
		}
	}
	return cp
}

// ClearAssignments resets every node to unassigned (part 0), restoring the
// construction-time state.
func (p *Partition) ClearAssignments() {
	assignments := make([]int, p.NumNodes())
	p.SetAssignments(assignments)
}

// SetAssignments replaces the entire assignment vector and rebuilds every
// derived cache (frontier nodes, frontier edges, part weights) from
// scratch in O(n + m + k*K).
func (p *Partition) SetAssignments(v []int) {
	if len(v) != p.NumNodes() {
		panic(fmt.Sprintf("partition: SetAssignments: length mismatch (%d != %d)", len(v), p.NumNodes()))
	}
	p.parts.Rebuild(v)

	var frontierPairs [][2]int
	for u, pu := range v {
		isBoundary := false
		for _, nb := range p.g.Edges(u) {
			if v[nb] != pu {
				isBoundary = true
				break
			}
		}
		if isBoundary {
			frontierPairs = append(frontierPairs, [2]int{u, pu})
		}
	}
	p.frontiers.RebuildFrom(frontierPairs)

	var edgePairs [][2]int
	for u, pu := range v {
		start, end := p.g.Range(u)
		for he := start; he < end; he++ {
			nb, _ := p.g.Edge(u, he-start)
			if v[nb] != pu {
				edgePairs = append(edgePairs, [2]int{he, pu})
			}
		}
	}
	p.frontierE.inner.RebuildFrom(edgePairs)

	p.partW.ClearAllRows()
	nw := p.g.NodeWeights()
	for u, pu := range v {
		if err := p.partW.AddRowFrom(pu, nw, u); err != nil {
			panic(err)
		}
	}
}

// refreshNodeFrontier recomputes whether u belongs to its own frontier
// bucket, inserting or removing it as needed.
func (p *Partition) refreshNodeFrontier(u int) {
	pu := p.parts.Of(u)
	isBoundary := false
	for _, nb := range p.g.Edges(u) {
		if p.parts.Of(nb) != pu {
			isBoundary = true
			break
		}
	}
	if isBoundary {
		p.frontiers.Insert(u, pu)
	} else {
		p.frontiers.Remove(u)
	}
}

// refreshHalfEdge recomputes the frontier-edge membership of half-edge
// heIndex, which runs from u to v (and relies on the caller to do the same
// for the twin half-edge separately).
func (p *Partition) refreshHalfEdge(heIndex, u, v int) {
	pu := p.parts.Of(u)
	pv := p.parts.Of(v)
	if pu != pv {
		p.frontierE.Insert(heIndex, pu)
	} else {
		p.frontierE.Remove(heIndex)
	}
}

// MoveNode moves node u into part dst. If check is true, the caller's
// requested move is validated for contiguity via CheckNodeContiguity and
// the call panics if it would disconnect u's source part; if check is
// false, the caller is asserting contiguity has already been ensured (e.g.
// because u is known non-articulating, or a dangling bundle has already
// been carried along via MoveSubgraph).
func (p *Partition) MoveNode(u, dst int, check bool) {
	prev := p.parts.Of(u)
	if prev == dst {
		return
	}
	if check && !p.CheckNodeContiguity(u, dst) {
		panic(fmt.Sprintf("partition: MoveNode(%d, %d): would disconnect part %d", u, dst, prev))
	}

	p.parts.MoveTo(u, dst)
	p.refreshNodeFrontier(u)

	for _, v := range p.g.Edges(u) {
		p.refreshNodeFrontier(v)
	}

	start, _ := p.g.Range(u)
	for i, v := range p.g.Edges(u) {
		heUV := start + i
		p.refreshHalfEdge(heUV, u, v)
		heVU := p.reverseHalfEdge(v, u)
		p.refreshHalfEdge(heVU, v, u)
	}

	nw := p.g.NodeWeights()
	if err := p.partW.SubtractRowFrom(prev, nw, u); err != nil {
		panic(err)
	}
	if err := p.partW.AddRowFrom(dst, nw, u); err != nil {
		panic(err)
	}
}

// reverseHalfEdge locates the half-edge index of the edge from v back to u,
// by scanning v's (typically small, planar-bounded-degree) adjacency list.
func (p *Partition) reverseHalfEdge(v, u int) int {
	start, end := p.g.Range(v)
	for he := start; he < end; he++ {
		nb, _ := p.g.Edge(v, he-start)
		if nb == u {
			return he
		}
	}
	panic(fmt.Sprintf("partition: no half-edge from %d back to %d: graph twin invariant violated", v, u))
}

// MoveSubgraph moves every node in S into part dst atomically. S must be
// non-empty and every element must currently belong to the same source
// part. A single-element S delegates to MoveNode. If check is true, the
// move is validated via CheckSubgraphContiguity.
func (p *Partition) MoveSubgraph(S []int, dst int, check bool) {
	if len(S) == 0 {
		panic("partition: MoveSubgraph: S must be non-empty")
	}
	if len(S) == 1 {
		p.MoveNode(S[0], dst, check)
		return
	}

	prev := p.parts.Of(S[0])
	for _, u := range S {
		if p.parts.Of(u) != prev {
			panic("partition: MoveSubgraph: all elements of S must share a source part")
		}
	}

	if check && !p.CheckSubgraphContiguity(S, dst) {
		panic(fmt.Sprintf("partition: MoveSubgraph: would violate contiguity for part %d or %d", prev, dst))
	}

	inS := make(map[int]bool, len(S))
	for _, u := range S {
		inS[u] = true
	}

	for _, u := range S {
		p.parts.MoveTo(u, dst)
	}

	boundary := make(map[int]bool, len(S)*4)
	for _, u := range S {
		boundary[u] = true
		for _, v := range p.g.Edges(u) {
			boundary[v] = true
		}
	}
	for w := range boundary {
		p.refreshNodeFrontier(w)
	}
	for w := range boundary {
		start, _ := p.g.Range(w)
		for i, v := range p.g.Edges(w) {
			heWV := start + i
			p.refreshHalfEdge(heWV, w, v)
		}
	}

	nw := p.g.NodeWeights()
	if err := p.partW.SubtractRowsFrom(prev, nw, S); err != nil {
		panic(err)
	}
	if err := p.partW.AddRowsFrom(dst, nw, S); err != nil {
		panic(err)
	}
}

// MoveNodeWithArticulation moves u into dst, automatically carrying along
// the dangling bundle computed by CutSubgraphWithinPart so the source part
// stays contiguous, then validates the combined move.
func (p *Partition) MoveNodeWithArticulation(u, dst int, check bool) {
	bundle := p.CutSubgraphWithinPart(u)
	if len(bundle) == 0 {
		p.MoveNode(u, dst, check)
		return
	}
	subgraph := append(append([]int{}, bundle...), u)
	p.MoveSubgraph(subgraph, dst, check)
}

// partBordersPart reports whether any frontier edge of part a lands in
// part b, i.e. whether a and b share an adjacency.
func (p *Partition) partBordersPart(a, b int) bool {
	for _, he := range p.frontierE.Get(a) {
		if p.parts.Of(p.halfEdgeTarget(he)) == b {
			return true
		}
	}
	return false
}

// halfEdgeSource returns the node u owning half-edge index he (the node
// whose adjacency range contains he).
func (p *Partition) halfEdgeSource(he int) int {
	lo, hi := 0, p.NumNodes()
	for lo < hi {
		mid := (lo + hi) / 2
		start, end := p.g.Range(mid)
		if he < start {
			hi = mid
		} else if he >= end {
			lo = mid + 1
		} else {
			return mid
		}
	}
	panic(fmt.Sprintf("partition: halfEdgeSource: half-edge %d not found", he))
}

// halfEdgeTarget returns the neighbor node that half-edge he points to.
func (p *Partition) halfEdgeTarget(he int) int {
	u := p.halfEdgeSource(he)
	start, _ := p.g.Range(u)
	v, _ := p.g.Edge(u, he-start)
	return v
}

// MergeParts merges part b into part a (or vice versa if b is larger),
// returning the part id that became empty and true, or (0, false) if a
// and b are not adjacent and check is true.
func (p *Partition) MergeParts(a, b int, check bool) (int, bool) {
	if a == b {
		panic(fmt.Sprintf("partition: MergeParts: a and b must be distinct parts, got %d", a))
	}
	if len(p.parts.Get(a)) < len(p.parts.Get(b)) {
		a, b = b, a
	}
	if check && !p.partBordersPart(a, b) {
		return 0, false
	}

	moving := append([]int{}, p.parts.Get(b)...)
	for _, u := range moving {
		p.parts.MoveTo(u, a)
	}
	for _, u := range moving {
		p.refreshNodeFrontier(u)
		for _, v := range p.g.Edges(u) {
			p.refreshNodeFrontier(v)
		}
	}
	for _, u := range moving {
		start, _ := p.g.Range(u)
		for i, v := range p.g.Edges(u) {
			he := start + i
			p.refreshHalfEdge(he, u, v)
			p.refreshHalfEdge(p.reverseHalfEdge(v, u), v, u)
		}
	}

	if err := p.partW.AddRowFrom(a, p.partW, b); err != nil {
		panic(err)
	}
	if err := p.partW.ClearRow(b); err != nil {
		panic(err)
	}

	return b, true
}

// randomFromSlice returns a uniformly random element of s, panicking if s
// is empty (callers check emptiness first where "no candidate" is a valid
// outcome rather than a programming error).
func randomFromSlice(r *rand.Rand, s []int) int {
	return s[r.Intn(len(s))]
}
