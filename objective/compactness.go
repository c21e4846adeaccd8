package objective

import (
	"math"

	"github.com/openmander/redistrict-core/partition"
)

// areaSeries is the weight-matrix series name expected to carry each
// node's land area (populated by the external pack loader; this package
// never computes area from geometry itself).
const areaSeries = "area_m2"

// PolsbyPopper returns the Polsby-Popper compactness score
// 4*pi*area/perimeter^2 for part, or +Inf if the part's perimeter is zero.
//
// Exact-area geometric computation is out of scope for this module: area
// is read directly from the area_m2 node-weight series (populated upstream
// by the pack loader), and perimeter is derived from the sum of the part's
// frontier half-edge weights rather than from polygon boundaries. Edge
// weights in graph.Graph already represent shared-boundary length between
// adjacent nodes (the contiguity/equalize drivers treat them the same
// way), so no polygon or projection math is needed here.
func PolsbyPopper(p *partition.Partition, part int) float64 {
	area := p.PartTotal(areaSeries, part)
	perimeter := FrontierPerimeter(p, part)
	if perimeter == 0 {
		return math.Inf(1)
	}
	return 4 * math.Pi * area / (perimeter * perimeter)
}

// Schwartzberg returns the Schwartzberg compactness score
// 2*pi*sqrt(area/pi)/perimeter for part, or +Inf if perimeter is zero.
func Schwartzberg(p *partition.Partition, part int) float64 {
	area := p.PartTotal(areaSeries, part)
	perimeter := FrontierPerimeter(p, part)
	if perimeter == 0 {
		return math.Inf(1)
	}
	return 2 * math.Pi * math.Sqrt(area/math.Pi) / perimeter
}

// FrontierPerimeter sums the edge weight of every half-edge leaving part
// toward a different part (i.e. part's frontier edges), used as a
// geometry-free proxy for the part's boundary length.
func FrontierPerimeter(p *partition.Partition, part int) float64 {
	g := p.Graph()
	total := 0.0
	for _, u := range p.Frontier(part) {
		neighbors, weights := g.EdgesWithWeights(u)
		for i, v := range neighbors {
			if p.Assignment(v) != part {
				total += weights[i]
			}
		}
	}
	return total
}
