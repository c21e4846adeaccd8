package partition

import (
	"math"
	"math/rand"
	"sort"
)

// Equalize performs greedy surplus redistribution between adjacent parts
// until every part's series total is within tolerance of the mean, or
// maxIter outer iterations have elapsed. tolerance is a fraction of the
// target total (e.g. 0.01 allows 1% deviation).
//
// Each outer iteration acts on a maximally-deviating part (ties broken at
// random so a stuck pair cannot monopolize the loop) and routes weight
// toward the most-complementary neighboring part observed on its frontier.
// Surplus that cannot reach a deficit part directly migrates through
// intermediate parts one hop per iteration, so an exact split is still
// reached when one exists but the deficit sits several parts away.
func (p *Partition) Equalize(series string, tolerance float64, maxIter int, r *rand.Rand) {
	target := p.RegionTotal(series) / float64(p.k)
	allowed := target * tolerance

	for iter := 0; iter < maxIter; iter++ {
		worst, worstDeviation, ok := p.worstDeviatingPart(series, target, r)
		if !ok || math.Abs(worstDeviation) <= allowed {
			break
		}

		surplus := worstDeviation > 0
		dst, ok := p.complementaryNeighboringPart(series, worst, surplus, r, 8)
		if !ok {
			continue
		}

		if surplus {
			p.distributeSurplus(series, worst, dst)
		} else {
			p.distributeSurplus(series, dst, worst)
		}
	}
}

// worstDeviatingPart returns a part whose series total deviates most from
// target, chosen uniformly among ties, along with its signed deviation.
func (p *Partition) worstDeviatingPart(series string, target float64, r *rand.Rand) (int, float64, bool) {
	var ties []int
	worstAbs := -1.0
	for part := 1; part <= p.k; part++ {
		abs := math.Abs(p.PartTotal(series, part) - target)
		if abs > worstAbs {
			worstAbs = abs
			ties = ties[:0]
		}
		if abs == worstAbs {
			ties = append(ties, part)
		}
	}
	if len(ties) == 0 {
		return 0, 0, false
	}
	worst := randomFromSlice(r, ties)
	return worst, p.PartTotal(series, worst) - target, true
}

// complementaryNeighboringPart samples up to attempts random frontier nodes
// of part to collect its neighboring parts, then returns the one whose
// series total best complements part's deviation: the lightest neighbor
// when part holds a surplus, the heaviest when it holds a deficit. Ties are
// broken at random. Returns false if no frontier nodes/neighbors were found.
func (p *Partition) complementaryNeighboringPart(series string, part int, surplus bool, r *rand.Rand, attempts int) (int, bool) {
	frontier := p.frontiers.Get(part)
	if len(frontier) == 0 {
		return 0, false
	}
	seen := map[int]bool{}
	var ties []int
	bestTotal := 0.0
	for i := 0; i < attempts; i++ {
		u := randomFromSlice(r, frontier)
		for _, v := range p.g.Edges(u) {
			pv := p.parts.Of(v)
			if pv == part || pv == 0 || seen[pv] {
				continue
			}
			seen[pv] = true
			total := p.PartTotal(series, pv)
			better := (surplus && total < bestTotal) || (!surplus && total > bestTotal)
			if len(ties) == 0 || better {
				bestTotal = total
				ties = ties[:0]
			}
			if total == bestTotal {
				ties = append(ties, pv)
			}
		}
	}
	if len(ties) == 0 {
		return 0, false
	}
	return randomFromSlice(r, ties), true
}

// surplusCandidate is a frontier node of src adjacent to dst, scored by how
// much moving it to dst would improve the shared boundary length.
type surplusCandidate struct {
	node         int
	seriesWeight float64
	boundaryGain float64
}

// distributeSurplus greedily moves nodes from src to dst until roughly half
// of their series imbalance has been transferred, preferring moves that
// most improve the src/dst boundary and skipping any that would violate
// contiguity. A candidate heavier than the remaining half-gap is still
// moved as long as it does not widen the src/dst gap (its weight is at
// most the full gap, 2*remaining): rejecting it outright would strand a
// one-node surplus next to a part at the mean, whereas carrying it flips
// the gap's sign at equal magnitude and lets the surplus migrate onward
// in a later Equalize iteration.
func (p *Partition) distributeSurplus(series string, src, dst int) {
	remaining := (p.PartTotal(series, src) - p.PartTotal(series, dst)) / 2
	if remaining <= 0 {
		return
	}

	candidates := p.buildSurplusCandidates(series, src, dst)
	touched := map[int]bool{}

	for len(candidates) > 0 && remaining > 0 {
		sort.Slice(candidates, func(i, j int) bool {
			return candidates[i].boundaryGain > candidates[j].boundaryGain
		})
		best := candidates[0]
		candidates = candidates[1:]

		if !p.CheckNodeContiguity(best.node, dst) {
			continue
		}
		if best.seriesWeight > 2*remaining {
			break
		}

		p.MoveNode(best.node, dst, false)
		remaining -= best.seriesWeight
		touched[best.node] = true
		for _, v := range p.g.Edges(best.node) {
			touched[v] = true
		}

		candidates = p.refreshSurplusCandidates(candidates, series, src, dst, best.node)
	}

	for w := range touched {
		p.refreshNodeFrontier(w)
	}
}

func (p *Partition) buildSurplusCandidates(series string, src, dst int) []surplusCandidate {
	var out []surplusCandidate
	for _, u := range p.frontiers.Get(src) {
		bordersDst := false
		for _, v := range p.g.Edges(u) {
			if p.parts.Of(v) == dst {
				bordersDst = true
				break
			}
		}
		if !bordersDst {
			continue
		}
		out = append(out, surplusCandidate{
			node:         u,
			seriesWeight: p.g.NodeWeights().MustGetAsF64(series, u),
			boundaryGain: p.boundaryGainIfMoved(u, src, dst),
		})
	}
	return out
}

// boundaryGainIfMoved approximates how much the src/dst shared boundary
// length would shrink if u moved from src to dst: edge weight to dst nodes
// (no longer crossing) minus edge weight to remaining src nodes (now
// crossing).
func (p *Partition) boundaryGainIfMoved(u, src, dst int) float64 {
	neighbors, weights := p.g.EdgesWithWeights(u)
	gain := 0.0
	for i, v := range neighbors {
		switch p.parts.Of(v) {
		case dst:
			gain += weights[i]
		case src:
			gain -= weights[i]
		}
	}
	return gain
}

// refreshSurplusCandidates appends moved's newly-exposed same-side (src)
// neighbors as fresh candidates and rescores any existing candidate whose
// boundary gain may have changed because moved left src. moved itself must
// already have been taken off candidates by the caller.
func (p *Partition) refreshSurplusCandidates(candidates []surplusCandidate, series string, src, dst, moved int) []surplusCandidate {
	inList := make(map[int]int, len(candidates))
	for i, c := range candidates {
		inList[c.node] = i
	}

	for _, v := range p.g.Edges(moved) {
		if p.parts.Of(v) != src {
			continue
		}
		if idx, ok := inList[v]; ok {
			candidates[idx].boundaryGain = p.boundaryGainIfMoved(v, src, dst)
			continue
		}
		bordersDst := false
		for _, w := range p.g.Edges(v) {
			if p.parts.Of(w) == dst {
				bordersDst = true
				break
			}
		}
		if bordersDst {
			candidates = append(candidates, surplusCandidate{
				node:         v,
				seriesWeight: p.g.NodeWeights().MustGetAsF64(series, v),
				boundaryGain: p.boundaryGainIfMoved(v, src, dst),
			})
		}
	}

	return candidates
}
