package partition

import "math/rand"

// RandomNode returns a uniformly random node id from [0, NumNodes()), or
// false if the graph has no nodes.
func (p *Partition) RandomNode(r *rand.Rand) (int, bool) {
	n := p.NumNodes()
	if n == 0 {
		return 0, false
	}
	return r.Intn(n), true
}

// RandomUnassignedNode returns a uniformly random node currently in part 0,
// or false if none remain.
func (p *Partition) RandomUnassignedNode(r *rand.Rand) (int, bool) {
	pool := p.parts.Get(0)
	if len(pool) == 0 {
		return 0, false
	}
	return randomFromSlice(r, pool), true
}

// RandomUnassignedBoundaryNode returns a uniformly random node currently
// unassigned (part 0) that already borders some assigned part, or false if
// none exist.
func (p *Partition) RandomUnassignedBoundaryNode(r *rand.Rand) (int, bool) {
	pool := p.frontiers.Get(0)
	if len(pool) == 0 {
		return 0, false
	}
	return randomFromSlice(r, pool), true
}

// RandomEdge returns a uniformly random neighbor of u, or false if u is
// isolated.
func (p *Partition) RandomEdge(u int, r *rand.Rand) (int, bool) {
	nbrs := p.g.Edges(u)
	if len(nbrs) == 0 {
		return 0, false
	}
	return randomFromSlice(r, nbrs), true
}

// RandomSamePartEdge returns a uniformly random neighbor of u that shares
// u's current part, or false if none exist.
func (p *Partition) RandomSamePartEdge(u int, r *rand.Rand) (int, bool) {
	pu := p.parts.Of(u)
	var same []int
	for _, v := range p.g.Edges(u) {
		if p.parts.Of(v) == pu {
			same = append(same, v)
		}
	}
	if len(same) == 0 {
		return 0, false
	}
	return randomFromSlice(r, same), true
}

// RandomNeighboringPart returns a uniformly random part, distinct from u's
// own, held by one of u's neighbors, or false if u has no such neighbor.
func (p *Partition) RandomNeighboringPart(u int, r *rand.Rand) (int, bool) {
	pu := p.parts.Of(u)
	var distinct []int
	seen := map[int]bool{}
	for _, v := range p.g.Edges(u) {
		pv := p.parts.Of(v)
		if pv != pu && !seen[pv] {
			seen[pv] = true
			distinct = append(distinct, pv)
		}
	}
	if len(distinct) == 0 {
		return 0, false
	}
	return randomFromSlice(r, distinct), true
}

// RandomPartWeightedByFrontier picks a real part (1..k) with probability
// proportional to max(0, |frontier[p]|-1), returning false if every part's
// weight is zero (e.g. every part has at most one frontier node, or no
// parts are populated yet).
func (p *Partition) RandomPartWeightedByFrontier(r *rand.Rand) (int, bool) {
	weights := make([]float64, p.k+1)
	total := 0.0
	for part := 1; part <= p.k; part++ {
		w := len(p.frontiers.Get(part)) - 1
		if w < 0 {
			w = 0
		}
		weights[part] = float64(w)
		total += float64(w)
	}
	if total <= 0 {
		return 0, false
	}
	target := r.Float64() * total
	acc := 0.0
	for part := 1; part <= p.k; part++ {
		acc += weights[part]
		if target < acc {
			return part, true
		}
	}
	return p.k, true
}

// Randomize performs a contiguity-preserving flood-fill randomization:
// every part is seeded with one random unassigned node, then unassigned
// boundary nodes are repeatedly claimed by a random neighboring part until
// no unassigned nodes remain. Each part grows outward from its seed along
// its own frontier, so every part is contiguous by construction.
func (p *Partition) Randomize(r *rand.Rand) {
	p.ClearAssignments()

	for part := 1; part <= p.k; part++ {
		u, ok := p.RandomUnassignedNode(r)
		if !ok {
			panic("partition: Randomize: ran out of unassigned nodes while seeding parts")
		}
		p.MoveNode(u, part, false)
	}

	for {
		u, ok := p.RandomUnassignedBoundaryNode(r)
		if !ok {
			if len(p.parts.Get(0)) == 0 {
				break
			}
			panic("partition: Randomize: unassigned nodes remain but the graph is disconnected from assigned parts")
		}
		dst, ok := p.RandomNeighboringPart(u, r)
		if !ok {
			panic("partition: Randomize: boundary node has no assigned neighbor")
		}
		p.MoveNode(u, dst, false)
	}
}
