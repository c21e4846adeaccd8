package weightmatrix_test

import (
	"testing"

	"github.com/openmander/redistrict-core/weightmatrix"
	"github.com/stretchr/testify/require"
)

func newTestMatrix(t *testing.T, rows int) *weightmatrix.Matrix {
	t.Helper()
	m, err := weightmatrix.New(rows,
		[]string{"population", "area_m2"},
		[]weightmatrix.Kind{weightmatrix.Int64, weightmatrix.Float64})
	require.NoError(t, err)
	return m
}

func TestNew_DuplicateSeriesRejected(t *testing.T) {
	_, err := weightmatrix.New(2, []string{"pop", "pop"}, []weightmatrix.Kind{weightmatrix.Int64, weightmatrix.Int64})
	require.ErrorIs(t, err, weightmatrix.ErrDuplicateSeries)
}

func TestGetAsF64_CoercesIntColumn(t *testing.T) {
	m := newTestMatrix(t, 2)
	require.NoError(t, m.SetInt64("population", 0, 42))

	v, err := m.GetAsF64("population", 0)
	require.NoError(t, err)
	require.Equal(t, 42.0, v)
}

func TestGetAsF64_UnknownSeries(t *testing.T) {
	m := newTestMatrix(t, 1)
	_, err := m.GetAsF64("nope", 0)
	require.ErrorIs(t, err, weightmatrix.ErrUnknownSeries)
}

func TestGetAsF64_RowOutOfRange(t *testing.T) {
	m := newTestMatrix(t, 1)
	_, err := m.GetAsF64("population", 5)
	require.ErrorIs(t, err, weightmatrix.ErrRowOutOfRange)
}

func TestAddSubtractRowFrom(t *testing.T) {
	nodes := newTestMatrix(t, 3)
	require.NoError(t, nodes.SetInt64("population", 0, 10))
	require.NoError(t, nodes.SetInt64("population", 1, 20))
	require.NoError(t, nodes.SetFloat64("area_m2", 0, 1.5))
	require.NoError(t, nodes.SetFloat64("area_m2", 1, 2.5))

	parts := weightmatrix.CopyOfSize(nodes, 2)
	require.NoError(t, parts.AddRowFrom(0, nodes, 0))
	require.NoError(t, parts.AddRowFrom(0, nodes, 1))

	pop, err := parts.GetAsF64("population", 0)
	require.NoError(t, err)
	require.Equal(t, 30.0, pop)

	area, err := parts.GetAsF64("area_m2", 0)
	require.NoError(t, err)
	require.Equal(t, 4.0, area)

	require.NoError(t, parts.SubtractRowFrom(0, nodes, 1))
	pop, err = parts.GetAsF64("population", 0)
	require.NoError(t, err)
	require.Equal(t, 10.0, pop)
}

func TestSetRowToSumOf(t *testing.T) {
	nodes := newTestMatrix(t, 3)
	for i := 0; i < 3; i++ {
		require.NoError(t, nodes.SetInt64("population", i, int64(i+1)))
	}
	parts := weightmatrix.CopyOfSize(nodes, 1)
	require.NoError(t, parts.SetRowToSumOf(0, nodes))

	total, err := parts.GetAsF64("population", 0)
	require.NoError(t, err)
	require.Equal(t, 6.0, total)
}

func TestClearRowAndClearAllRows(t *testing.T) {
	m := newTestMatrix(t, 2)
	require.NoError(t, m.SetInt64("population", 0, 7))
	require.NoError(t, m.SetFloat64("area_m2", 1, 3.0))

	require.NoError(t, m.ClearRow(0))
	v, _ := m.GetAsF64("population", 0)
	require.Equal(t, 0.0, v)

	m.ClearAllRows()
	v, _ = m.GetAsF64("area_m2", 1)
	require.Equal(t, 0.0, v)
}
