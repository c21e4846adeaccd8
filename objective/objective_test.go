package objective_test

import (
	"testing"

	"github.com/openmander/redistrict-core/objective"
	"github.com/stretchr/testify/require"
)

func TestObjective_DefaultWeightsAreOne(t *testing.T) {
	metrics := []objective.Metric{
		objective.PopulationDeviation("pop"),
		objective.CompactnessPolsbyPopper(),
	}
	obj := objective.New(metrics, nil)
	require.Equal(t, []float64{1.0, 1.0}, obj.Weights())
	require.Equal(t, 2, obj.NumMetrics())
}

func TestObjective_MismatchedWeightsPanics(t *testing.T) {
	metrics := []objective.Metric{objective.PopulationDeviation("pop")}
	require.Panics(t, func() { objective.New(metrics, []float64{1, 2}) })
}

func TestObjective_ComputeIsWeightedAverage(t *testing.T) {
	p := fourNodePathPartition(t)
	metric := objective.PopulationDeviation("pop")
	obj := objective.New([]objective.Metric{metric, metric}, []float64{1, 3})

	want := metric.ComputeScore(p) // both terms identical, weighted average equals same value
	require.InDelta(t, want, obj.Compute(p), 1e-9)
}

func TestObjective_SetWeightsLengthMismatchPanics(t *testing.T) {
	obj := objective.New([]objective.Metric{objective.PopulationDeviation("pop")}, nil)
	require.Panics(t, func() { obj.SetWeights([]float64{1, 2}) })
}
