package partition

import (
	"math"
	"math/rand"
)

// Objective is the minimal interface the annealing driver needs from a
// scalarized multi-metric objective: a single score to maximize, given the
// current partition state. package objective's Objective type satisfies
// this interface without partition importing that package, avoiding an
// import cycle (objective.Objective.Compute takes a *Partition).
type Objective interface {
	Compute(p *Partition) float64
}

// annealEpsilon preserves tiny positive Metropolis deltas from stalling
// purely on floating-point noise.
const annealEpsilon = 1e-10

// acceptanceProbability is the Metropolis acceptance probability for an
// energy change delta at temperature temp: 1 if delta <= epsilon (improving
// or flat moves always accepted), else exp(-delta/temp).
func acceptanceProbability(delta, temp float64) float64 {
	if delta <= annealEpsilon {
		return 1.0
	}
	if temp <= 0 {
		return 0.0
	}
	return math.Exp(-delta / temp)
}

func acceptMetropolis(delta, temp float64, r *rand.Rand) bool {
	return r.Float64() < acceptanceProbability(delta, temp)
}

// temperatureGeometric returns the geometric-cooling temperature at step k
// of maxIter, interpolating from t0 to tf: T_k = t0 * (tf/t0)^(k/maxIter).
func temperatureGeometric(t0, tf float64, k, maxIter int) float64 {
	if maxIter <= 0 {
		return t0
	}
	ratio := tf / t0
	exponent := float64(k) / float64(maxIter)
	return t0 * math.Pow(ratio, exponent)
}

// proposedMove is a candidate (possibly bundled) node relocation sampled by
// the annealing/tabu proposal step, along with its estimated effect.
type proposedMove struct {
	node   int
	bundle []int
	src    int
	dst    int
}

// proposeMove samples src by frontier-weighted selection, a random frontier
// node u of src, and a random neighboring part dst, and computes u's
// dangling bundle (empty if u is non-articulating for src). It returns
// false if no part currently has a usable frontier.
func (p *Partition) proposeMove(r *rand.Rand) (proposedMove, bool) {
	src, ok := p.RandomPartWeightedByFrontier(r)
	if !ok {
		return proposedMove{}, false
	}
	frontier := p.frontiers.Get(src)
	if len(frontier) == 0 {
		return proposedMove{}, false
	}
	u := randomFromSlice(r, frontier)
	dst, ok := p.RandomNeighboringPart(u, r)
	if !ok {
		return proposedMove{}, false
	}
	bundle := p.CutSubgraphWithinPart(u)
	return proposedMove{node: u, bundle: bundle, src: src, dst: dst}, true
}

// weightDelta returns the normalized population-imbalance delta (node(s)
// being moved) used by both anneal_balance and tabu_balance: moving weight
// w from src to dst changes src's squared-imbalance term and dst's by
// 2*w*(w + dst_total - src_total) / target.
func (p *Partition) weightDelta(series string, move proposedMove, target float64) float64 {
	w := p.g.NodeWeights().MustGetAsF64(series, move.node)
	for _, b := range move.bundle {
		w += p.g.NodeWeights().MustGetAsF64(series, b)
	}
	srcTotal := p.PartTotal(series, move.src)
	dstTotal := p.PartTotal(series, move.dst)
	return 2.0 * w * (w + dstTotal - srcTotal) / target
}

// boundaryDelta returns the change in cross-part boundary edge weight if
// move's node (plus its bundle) moved from src to dst: edges from node to
// remaining-src neighbors newly cross, edges from node and from bundle
// members to dst neighbors stop crossing; edges to bundle members that were internal to src are
// subtracted once (they were not boundary before and remain internal
// conceptually, since the whole bundle moves together).
func (p *Partition) boundaryDelta(move proposedMove) float64 {
	neighbors, weights := p.g.EdgesWithWeights(move.node)
	var toSrc, toDst float64
	for i, v := range neighbors {
		switch p.parts.Of(v) {
		case move.src:
			toSrc += weights[i]
		case move.dst:
			toDst += weights[i]
		}
	}

	var bundleAdjust float64
	if len(move.bundle) > 0 {
		inBundle := make(map[int]bool, len(move.bundle))
		for _, b := range move.bundle {
			inBundle[b] = true
		}
		for i, v := range neighbors {
			if p.parts.Of(v) == move.src && inBundle[v] {
				bundleAdjust += weights[i]
			}
		}
		for _, b := range move.bundle {
			bNeighbors, bWeights := p.g.EdgesWithWeights(b)
			for i, v := range bNeighbors {
				if p.parts.Of(v) == move.dst {
					toDst += bWeights[i]
				}
			}
		}
	}

	return toSrc - toDst - bundleAdjust
}

// applyMove commits move.node (and its bundle, if any) from src to dst
// without re-checking contiguity: the bundle was already computed so the
// combined relocation is guaranteed contiguous.
func (p *Partition) applyMove(move proposedMove) {
	if len(move.bundle) == 0 {
		p.MoveNode(move.node, move.dst, false)
		return
	}
	subgraph := append(append([]int{}, move.bundle...), move.node)
	p.MoveSubgraph(subgraph, move.dst, false)
}

// AnnealBalance runs geometric-cooling simulated annealing to balance
// series across parts, trading population imbalance against boundary
// length via boundaryFactor (0 = balance only, 1 = boundary length only).
func (p *Partition) AnnealBalance(series string, maxIter int, t0, tf, boundaryFactor float64, r *rand.Rand) {
	target := p.RegionTotal(series) / float64(p.k)

	for k := 0; k < maxIter; k++ {
		temp := temperatureGeometric(t0, tf, k, maxIter)

		move, ok := p.proposeMove(r)
		if !ok {
			continue
		}

		dw := p.weightDelta(series, move, target)
		db := p.boundaryDelta(move)
		delta := (1-boundaryFactor)*dw + boundaryFactor*db

		if acceptMetropolis(delta, temp, r) {
			p.applyMove(move)
		}
	}
}

// Anneal runs adaptive two-phase simulated annealing against objective:
// phase one binary-searches an initial temperature whose rolling-window
// average acceptance probability lands near 0.9, phase two cools
// geometrically with early stopping once no improvement has been seen for
// earlyStop iterations. The partition is left at the best assignment found.
func (p *Partition) Anneal(obj Objective, maxIter int, tInit, coolingRate float64, earlyStop, window int, r *rand.Rand) {
	temp := p.tuneInitialTemperature(obj, tInit, window, r)
	p.coolToTargetAcceptance(obj, temp, maxIter, coolingRate, earlyStop, r)
}

const annealTargetAcceptance = 0.9

// tuneInitialTemperature binary-searches a starting temperature over
// [tInit*1e-10, tInit*1e10] so the measured average acceptance probability
// lands within 1% of annealTargetAcceptance. tInit only centers the search
// bracket; any positive value converges.
func (p *Partition) tuneInitialTemperature(obj Objective, tInit float64, window int, r *rand.Rand) float64 {
	if tInit <= 0 {
		tInit = 1.0
	}
	lo, hi := tInit*1e-10, tInit*1e10

	best := (lo + hi) / 2
	for i := 0; i < 50; i++ {
		mid := (lo + hi) / 2
		avg := p.measureAverageAcceptance(obj, mid, window, r)
		best = mid
		if math.Abs(avg-annealTargetAcceptance) <= 0.01 {
			break
		}
		if avg < annealTargetAcceptance {
			lo = mid
		} else {
			hi = mid
		}
	}
	return best
}

// measureAverageAcceptance runs window proposals at a fixed temperature
// without committing any of them, returning the mean Metropolis acceptance
// probability observed.
func (p *Partition) measureAverageAcceptance(obj Objective, temp float64, window int, r *rand.Rand) float64 {
	total := 0.0
	count := 0
	for i := 0; i < window; i++ {
		move, ok := p.proposeMove(r)
		if !ok {
			continue
		}
		before := obj.Compute(p)
		p.applyMove(move)
		after := obj.Compute(p)
		p.applyMove(proposedMove{node: move.node, bundle: move.bundle, src: move.dst, dst: move.src})

		delta := before - after // objective is maximized
		total += acceptanceProbability(delta, temp)
		count++
	}
	if count == 0 {
		return 0
	}
	return total / float64(count)
}

// coolToTargetAcceptance runs geometric cooling from temp, accepting or
// reverting each proposal against obj, tracking the best assignment seen,
// and stopping early once earlyStop consecutive iterations pass without
// improvement.
func (p *Partition) coolToTargetAcceptance(obj Objective, temp float64, maxIter int, coolingRate float64, earlyStop int, r *rand.Rand) {
	best := p.Clone()
	bestScore := obj.Compute(p)
	sinceImprovement := 0

	for iter := 0; iter < maxIter && sinceImprovement < earlyStop; iter++ {
		temp *= 1.0 - coolingRate

		move, ok := p.proposeMove(r)
		if !ok {
			sinceImprovement++
			continue
		}

		before := obj.Compute(p)
		p.applyMove(move)
		after := obj.Compute(p)

		delta := before - after // objective is maximized: negative delta is improving
		if !acceptMetropolis(delta, temp, r) {
			p.applyMove(proposedMove{node: move.node, bundle: move.bundle, src: move.dst, dst: move.src})
			sinceImprovement++
			continue
		}

		if after > bestScore {
			bestScore = after
			best = p.Clone()
			sinceImprovement = 0
		} else {
			sinceImprovement++
		}
	}

	*p = *best
}
