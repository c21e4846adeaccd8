package objective

import (
	"fmt"
	"strings"

	"github.com/openmander/redistrict-core/partition"
)

// Objective is a weighted-average scalarization over a set of Metrics, the
// single scalar search drivers such as Partition.Anneal maximize.
type Objective struct {
	metrics []Metric
	weights []float64
}

// New builds an Objective from metrics and optional weights. If weights is
// nil, every metric defaults to weight 1.0; otherwise its length must
// match len(metrics).
func New(metrics []Metric, weights []float64) *Objective {
	if weights == nil {
		weights = make([]float64, len(metrics))
		for i := range weights {
			weights[i] = 1.0
		}
	}
	if len(weights) != len(metrics) {
		panic(fmt.Sprintf("objective: New: weights length (%d) must match metrics length (%d)", len(weights), len(metrics)))
	}
	return &Objective{metrics: metrics, weights: weights}
}

// NumMetrics returns the number of metric terms.
func (o *Objective) NumMetrics() int { return len(o.metrics) }

// Weights returns the current per-metric weights.
func (o *Objective) Weights() []float64 { return o.weights }

// SetWeights replaces the current weights; length must match NumMetrics.
func (o *Objective) SetWeights(weights []float64) {
	if len(weights) != len(o.metrics) {
		panic(fmt.Sprintf("objective: SetWeights: weights length (%d) must match metrics length (%d)", len(weights), len(o.metrics)))
	}
	o.weights = weights
}

// Compute evaluates every metric against p and returns the weighted
// average of their per-metric scores, satisfying partition.Objective so
// it can be passed directly to Partition.Anneal.
func (o *Objective) Compute(p *partition.Partition) float64 {
	weightedSum := 0.0
	totalWeight := 0.0
	for i, m := range o.metrics {
		weightedSum += o.weights[i] * m.ComputeScore(p)
		totalWeight += o.weights[i]
	}
	if totalWeight > 0 {
		return weightedSum / totalWeight
	}
	return 0
}

func (o *Objective) String() string {
	var b strings.Builder
	b.WriteString("Objective{\n")
	for i, m := range o.metrics {
		fmt.Fprintf(&b, "  %2d: %s * weight=%g\n", i, m, o.weights[i])
	}
	b.WriteString("}")
	return b.String()
}
