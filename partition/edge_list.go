package partition

// FrontierEdgeList tracks, per part, which directed half-edges currently
// cross a part boundary (i.e. whose endpoints lie in different parts). It
// has the same swap-remove bucket semantics as MultiSet, keyed by half-edge
// id in [0, 2*numEdges) rather than by node id.
type FrontierEdgeList struct {
	inner *MultiSet
}

// NewFrontierEdgeList builds an empty FrontierEdgeList over numParts buckets
// and numHalfEdges half-edge ids.
func NewFrontierEdgeList(numParts, numHalfEdges int) *FrontierEdgeList {
	return &FrontierEdgeList{inner: NewMultiSet(numParts, numHalfEdges)}
}

// NumParts returns the number of part buckets.
func (fe *FrontierEdgeList) NumParts() int { return fe.inner.NumSets() }

// NumHalfEdges returns the number of half-edge ids tracked.
func (fe *FrontierEdgeList) NumHalfEdges() int { return fe.inner.NumElems() }

// Clear empties every bucket.
func (fe *FrontierEdgeList) Clear() { fe.inner.Clear() }

// Contains reports whether half-edge heid currently crosses some boundary.
func (fe *FrontierEdgeList) Contains(heid int) bool { return fe.inner.Contains(heid) }

// Get returns the half-edge ids currently bucketed under part p.
func (fe *FrontierEdgeList) Get(p int) []int { return fe.inner.Get(p) }

// Insert marks half-edge heid as crossing the boundary of part p.
func (fe *FrontierEdgeList) Insert(heid, p int) { fe.inner.Insert(heid, p) }

// Remove unmarks half-edge heid, if it was tracked in any part.
func (fe *FrontierEdgeList) Remove(heid int) { fe.inner.Remove(heid) }
