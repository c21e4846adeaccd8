// Package objective implements per-part scalar metrics and their weighted
// scalarization into a single objective score, used by Partition.Anneal to
// drive adaptive simulated annealing.
package objective

import (
	"fmt"

	"github.com/openmander/redistrict-core/partition"
)

// Kind is the closed set of metric variants this package supports.
type Kind int

const (
	// PopulationDeviationKind scores population-equality deviation of each
	// part from the per-part average of a weight series.
	PopulationDeviationKind Kind = iota
	// CompactnessKind scores each part's Polsby-Popper compactness.
	CompactnessKind
	// CompetitivenessKind counts parts whose vote-share margin falls
	// within a threshold.
	CompetitivenessKind
	// ProportionalityKind scores seats-votes proportionality; currently
	// an unimplemented stub, see Metric.Compute.
	ProportionalityKind
)

// Metric is a single named metric specification (no weight; weights live
// in Objective). It maps a Partition to one score per real part, and
// aggregates those into a single scalar via the mean.
type Metric struct {
	kind      Kind
	series    string
	demSeries string
	repSeries string
	threshold float64
}

// PopulationDeviation builds a population-equality metric over series.
func PopulationDeviation(series string) Metric {
	return Metric{kind: PopulationDeviationKind, series: series}
}

// CompactnessPolsbyPopper builds a Polsby-Popper compactness metric.
func CompactnessPolsbyPopper() Metric {
	return Metric{kind: CompactnessKind}
}

// Competitiveness builds a district-competitiveness metric: the count of
// parts whose |dem_share - rep_share| falls within threshold.
func Competitiveness(demSeries, repSeries string, threshold float64) Metric {
	return Metric{kind: CompetitivenessKind, demSeries: demSeries, repSeries: repSeries, threshold: threshold}
}

// Proportionality builds a seats-votes proportionality metric. Its
// Compute implementation is an intentional stub (see Compute) pending a
// concrete partisan-fairness formula.
func Proportionality(demSeries, repSeries string) Metric {
	return Metric{kind: ProportionalityKind, demSeries: demSeries, repSeries: repSeries}
}

// ShortName returns a short display name for the metric, for logging.
func (m Metric) ShortName() string {
	switch m.kind {
	case PopulationDeviationKind:
		return "PopulationEquality"
	case CompactnessKind:
		return "CompactnessPolsbyPopper"
	case CompetitivenessKind:
		return "Competitiveness"
	case ProportionalityKind:
		return "Proportionality"
	default:
		return "Unknown"
	}
}

func (m Metric) String() string {
	switch m.kind {
	case PopulationDeviationKind:
		return fmt.Sprintf("PopulationEquality(series=%q)", m.series)
	case CompactnessKind:
		return "CompactnessPolsbyPopper"
	case CompetitivenessKind:
		return fmt.Sprintf("Competitiveness(dem=%q, rep=%q, threshold=%g)", m.demSeries, m.repSeries, m.threshold)
	case ProportionalityKind:
		return fmt.Sprintf("Proportionality(dem=%q, rep=%q)", m.demSeries, m.repSeries)
	default:
		return "Metric(unknown)"
	}
}

// Compute evaluates this metric for every real part (1..NumParts) of p,
// returning one score per part.
//
// Proportionality is an intentional stub: seats-votes partisan-fairness
// scoring has no single agreed formula, and the upstream algorithm this
// package is ported from leaves it unimplemented too. Compute returns a
// slice of zeros for it rather than guessing a formula; callers that need
// partisan fairness should supply their own Objective term until this is
// resolved.
func (m Metric) Compute(p *partition.Partition) []float64 {
	switch m.kind {
	case PopulationDeviationKind:
		return m.computePopulationDeviation(p)
	case CompactnessKind:
		return m.computeCompactness(p)
	case CompetitivenessKind:
		return m.computeCompetitiveness(p)
	case ProportionalityKind:
		out := make([]float64, p.NumParts())
		return out
	default:
		panic(fmt.Sprintf("objective: Metric.Compute: unknown kind %d", m.kind))
	}
}

func (m Metric) computePopulationDeviation(p *partition.Partition) []float64 {
	total := p.RegionTotal(m.series)
	average := total / float64(p.NumParts())

	out := make([]float64, p.NumParts())
	for part := 1; part <= p.NumParts(); part++ {
		deviation := p.PartTotal(m.series, part)/average - 1.0
		limit := 1.0
		if deviation > 0 {
			limit = float64(p.NumParts() - 1)
		}
		out[part-1] = (1.0 - deviation*deviation/(limit*limit)) / (1.0 + deviation*deviation)
	}
	return out
}

func (m Metric) computeCompactness(p *partition.Partition) []float64 {
	out := make([]float64, p.NumParts())
	for part := 1; part <= p.NumParts(); part++ {
		out[part-1] = PolsbyPopper(p, part)
	}
	return out
}

func (m Metric) computeCompetitiveness(p *partition.Partition) []float64 {
	out := make([]float64, p.NumParts())
	for part := 1; part <= p.NumParts(); part++ {
		dem := p.PartTotal(m.demSeries, part)
		rep := p.PartTotal(m.repSeries, part)
		total := dem + rep
		share := 0.0
		if total > 0 {
			share = dem/total - rep/total
			if share < 0 {
				share = -share
			}
		}
		if share <= m.threshold {
			out[part-1] = 1.0
		}
	}
	return out
}

// ComputeScore aggregates Compute's per-part scores into a single scalar
// via the arithmetic mean; 0 if the partition has no real parts.
func (m Metric) ComputeScore(p *partition.Partition) float64 {
	values := m.Compute(p)
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
