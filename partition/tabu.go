package partition

import (
	"math"
	"math/rand"
)

// tabuKey identifies a forbidden (node, part) reassignment for the
// remainder of its tenure.
type tabuKey struct {
	node int
	part int
}

// TabuBalance runs tabu search to balance series across parts while
// controlling cut length, mixed via boundaryFactor exactly as in
// AnnealBalance (0 = balance only, 1 = boundary length only). tabuTenure
// iterations forbid reassigning a moved node back to its source part
// unless the candidate move improves on the best cost seen so far
// (aspiration criterion). candidatesPerIter random frontier moves are
// sampled per iteration and the best admissible one is applied.
func (p *Partition) TabuBalance(series string, maxIter, tabuTenure int, boundaryFactor float64, candidatesPerIter int, r *rand.Rand) {
	if p.k <= 1 {
		panic("partition: TabuBalance requires at least two real parts")
	}

	target := p.RegionTotal(series) / float64(p.k)

	popCost := 0.0
	for part := 1; part <= p.k; part++ {
		w := p.PartTotal(series, part)
		d := w - target
		popCost += d * d / target
	}

	boundaryCost := 0.0
	for u := 0; u < p.NumNodes(); u++ {
		neighbors, weights := p.g.EdgesWithWeights(u)
		for i, v := range neighbors {
			if p.parts.Of(u) != p.parts.Of(v) {
				boundaryCost += weights[i]
			}
		}
	}
	boundaryCost *= 0.5

	currentCost := popCost*(1-boundaryFactor) + boundaryCost*boundaryFactor
	bestCost := currentCost
	best := p.Clone()

	tabu := map[tabuKey]int{}

	for iter := 0; iter < maxIter; iter++ {
		var (
			bestMove    proposedMove
			bestNewCost = math.Inf(1)
			found       bool
		)

		for c := 0; c < candidatesPerIter; c++ {
			src, ok := p.RandomPartWeightedByFrontier(r)
			if !ok {
				break
			}
			frontier := p.frontiers.Get(src)
			if len(frontier) == 0 {
				continue
			}
			node := randomFromSlice(r, frontier)

			seen := map[int]bool{}
			var destParts []int
			for _, v := range p.g.Edges(node) {
				pv := p.parts.Of(v)
				if pv != src && pv != 0 && !seen[pv] {
					seen[pv] = true
					destParts = append(destParts, pv)
				}
			}
			if len(destParts) == 0 {
				continue
			}

			for _, dst := range destParts {
				var bundle []int
				if !p.CheckNodeContiguity(node, dst) {
					bundle = p.CutSubgraphWithinPart(node)
				}

				if len(bundle)+1 >= len(p.parts.Get(src)) {
					continue
				}

				move := proposedMove{node: node, bundle: bundle, src: src, dst: dst}
				dw := p.weightDelta(series, move, target)
				db := p.boundaryDelta(move)
				delta := dw*(1-boundaryFactor) + db*boundaryFactor
				newCost := currentCost + delta

				expire, isTabuEntry := tabu[tabuKey{node: node, part: dst}]
				isTabu := isTabuEntry && expire > iter
				isAspiration := newCost < bestCost

				if isTabu && !isAspiration {
					continue
				}

				if newCost < bestNewCost {
					bestNewCost = newCost
					bestMove = move
					found = true
				}
			}
		}

		if !found {
			break
		}

		p.applyMove(bestMove)
		currentCost = bestNewCost
		tabu[tabuKey{node: bestMove.node, part: bestMove.src}] = iter + tabuTenure

		if currentCost < bestCost {
			bestCost = currentCost
			best = p.Clone()
		}
	}

	*p = *best
}
