// Package plan provides the façade external callers use to drive a
// districting plan: construction from a Graph, reading/writing block
// assignments, computing metrics and objectives, and running the search
// drivers (randomize, equalize, anneal, tabu, recombine) against it.
package plan

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/openmander/redistrict-core/graph"
	"github.com/openmander/redistrict-core/internal/rng"
	"github.com/openmander/redistrict-core/objective"
	"github.com/openmander/redistrict-core/partition"
)

// Plan wraps a Partition together with the GeoId identity of each node, so
// callers can work in terms of census geography rather than raw node
// indices.
type Plan struct {
	g            *graph.Graph
	numDistricts int
	geoIDs       []graph.GeoId
	geoIndex     map[string]int
	part         *partition.Partition
}

// New constructs a Plan with numDistricts real districts over g, with
// nodes identified externally by geoIDs (geoIDs[i] names graph node i).
// Every node starts unassigned.
func New(g *graph.Graph, numDistricts int, geoIDs []graph.GeoId) (*Plan, error) {
	if len(geoIDs) != g.NodeCount() {
		return nil, fmt.Errorf("plan: New: geoIDs length (%d) must match graph node count (%d)", len(geoIDs), g.NodeCount())
	}
	index := make(map[string]int, len(geoIDs))
	for i, id := range geoIDs {
		if _, exists := index[id.Code]; exists {
			return nil, fmt.Errorf("plan: New: duplicate GeoId %q", id.Code)
		}
		index[id.Code] = i
	}
	return &Plan{
		g:            g,
		numDistricts: numDistricts,
		geoIDs:       geoIDs,
		geoIndex:     index,
		part:         partition.New(numDistricts, g),
	}, nil
}

// Graph returns the underlying graph.
func (pl *Plan) Graph() *graph.Graph { return pl.g }

// NumDistricts returns the number of real districts (excluding the
// unassigned bucket).
func (pl *Plan) NumDistricts() int { return pl.numDistricts }

// Series returns the weight-matrix series names available on node
// weights, usable as balance/metric series.
func (pl *Plan) Series() []string { return pl.g.NodeWeights().SeriesNames() }

// Partition returns the underlying mutable Partition, for callers that
// need lower-level access (e.g. direct Contiguity checks).
func (pl *Plan) Partition() *partition.Partition { return pl.part }

// SetAssignments maps each entry of assignments (GeoId -> district id, 1..
// NumDistricts) onto the underlying Partition; blocks absent from
// assignments default to district 0 (unassigned).
func (pl *Plan) SetAssignments(assignments map[string]int) error {
	v := make([]int, pl.g.NodeCount())
	for code, district := range assignments {
		idx, ok := pl.geoIndex[code]
		if !ok {
			return fmt.Errorf("plan: SetAssignments: unknown GeoId %q", code)
		}
		if district < 0 || district > pl.numDistricts {
			return fmt.Errorf("plan: SetAssignments: district %d out of range [0,%d] for GeoId %q", district, pl.numDistricts, code)
		}
		v[idx] = district
	}
	pl.part.SetAssignments(v)
	return nil
}

// GetAssignments returns the current assignment as a GeoId -> district map,
// including unassigned (district 0) blocks.
func (pl *Plan) GetAssignments() map[string]int {
	out := make(map[string]int, len(pl.geoIDs))
	for i, id := range pl.geoIDs {
		out[id.Code] = pl.part.Assignment(i)
	}
	return out
}

// DistrictTotals returns series summed per district, indices 0..
// NumDistricts (0 is the unassigned total).
func (pl *Plan) DistrictTotals(series string) ([]float64, error) {
	if !pl.g.NodeWeights().HasSeries(series) {
		return nil, fmt.Errorf("plan: DistrictTotals: unknown series %q", series)
	}
	totals := make([]float64, pl.numDistricts+1)
	for d := 0; d <= pl.numDistricts; d++ {
		totals[d] = pl.part.PartTotal(series, d)
	}
	return totals, nil
}

// ComputeMetric evaluates a single Metric against the current plan.
func (pl *Plan) ComputeMetric(m objective.Metric) []float64 {
	return m.Compute(pl.part)
}

// ComputeObjective evaluates obj against the current plan.
func (pl *Plan) ComputeObjective(obj *objective.Objective) float64 {
	return obj.Compute(pl.part)
}

// Randomize performs a contiguity-preserving random initial assignment,
// seeded by seed (0 selects a fixed default seed for reproducibility).
func (pl *Plan) Randomize(seed int64) {
	pl.part.Randomize(rng.FromSeed(seed))
}

// Equalize runs greedy surplus redistribution to balance series across
// districts within tolerance, up to maxIter outer iterations.
func (pl *Plan) Equalize(series string, tolerance float64, maxIter int, seed int64) {
	pl.part.Equalize(series, tolerance, maxIter, rng.FromSeed(seed))
}

// nopIfNil returns log, or a no-op logger if log is nil, so callers never
// need a nil check before logging a progress line.
func nopIfNil(log *zap.Logger) *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}

// AnnealBalance runs geometric-cooling simulated annealing to balance
// series across districts. log is an optional progress sink (nil-safe);
// core packages never log themselves, so Plan logs a single before/after
// summary line around the call instead of threading a logger into the
// hot loop.
func (pl *Plan) AnnealBalance(series string, maxIter int, t0, tf, boundaryFactor float64, seed int64, log *zap.Logger) {
	log = nopIfNil(log)
	before := pl.part.RegionTotal(series)
	log.Info("anneal_balance: starting", zap.String("series", series), zap.Int("max_iter", maxIter))
	pl.part.AnnealBalance(series, maxIter, t0, tf, boundaryFactor, rng.FromSeed(seed))
	log.Info("anneal_balance: done", zap.Float64("region_total", before))
}

// Anneal runs adaptive two-phase simulated annealing against obj. log is
// an optional progress sink (nil-safe).
func (pl *Plan) Anneal(obj *objective.Objective, maxIter int, tInit, coolingRate float64, earlyStop, window int, seed int64, log *zap.Logger) {
	log = nopIfNil(log)
	before := obj.Compute(pl.part)
	log.Info("anneal: starting", zap.Float64("objective", before), zap.Int("max_iter", maxIter))
	pl.part.Anneal(obj, maxIter, tInit, coolingRate, earlyStop, window, rng.FromSeed(seed))
	after := obj.Compute(pl.part)
	log.Info("anneal: done", zap.Float64("objective", after))
}

// TabuBalance runs tabu search to balance series across districts. log is
// an optional progress sink (nil-safe).
func (pl *Plan) TabuBalance(series string, maxIter, tabuTenure int, boundaryFactor float64, candidatesPerIter int, seed int64, log *zap.Logger) {
	log = nopIfNil(log)
	log.Info("tabu_balance: starting", zap.String("series", series), zap.Int("max_iter", maxIter))
	pl.part.TabuBalance(series, maxIter, tabuTenure, boundaryFactor, candidatesPerIter, rng.FromSeed(seed))
	log.Info("tabu_balance: done")
}

// Recombine runs ReCom between districts a and b, rebalancing on series.
// log is an optional progress sink (nil-safe).
func (pl *Plan) Recombine(a, b int, series string, seed int64, log *zap.Logger) {
	log = nopIfNil(log)
	log.Info("recombine: starting", zap.Int("district_a", a), zap.Int("district_b", b))
	pl.part.RecombineParts(a, b, series, rng.FromSeed(seed))
	log.Info("recombine: done")
}

// EnsureContiguity repairs any multi-component districts, returning true
// iff it made any changes.
func (pl *Plan) EnsureContiguity() bool {
	return pl.part.EnsureContiguity()
}
