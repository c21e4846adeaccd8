// Package weightmatrix provides a dense, named-column numeric store used to
// carry per-node and per-part weight series (population, vote counts, area)
// through a partition. Integer and floating columns are kept in separate
// backing slices so integer sums never lose precision to float rounding.
package weightmatrix

import (
	"errors"
	"fmt"
)

// Kind identifies which backing sub-matrix a named series lives in.
type Kind int

const (
	// Int64 marks a series stored in the integer sub-matrix.
	Int64 Kind = iota
	// Float64 marks a series stored in the floating sub-matrix.
	Float64
)

// ErrUnknownSeries indicates a series name not present in the matrix.
var ErrUnknownSeries = errors.New("weightmatrix: unknown series")

// ErrDuplicateSeries indicates an attempt to register a series name twice.
var ErrDuplicateSeries = errors.New("weightmatrix: duplicate series")

// ErrRowOutOfRange indicates a row index outside [0, Rows()).
var ErrRowOutOfRange = errors.New("weightmatrix: row out of range")

func wmErrorf(method string, err error) error {
	return fmt.Errorf("weightmatrix.%s: %w", method, err)
}

// column records where a named series lives.
type column struct {
	kind  Kind
	index int
}

// Matrix is a row-major dense store split into an integer sub-matrix and a
// floating sub-matrix, with a name-to-column index shared across both.
//
// Rows map to nodes (in Graph.NodeWeights) or to parts (in Partition's
// part-level weights); the same Matrix type serves both roles.
type Matrix struct {
	rows int
	cols map[string]column

	intCols   int
	floatCols int

	intData   []int64
	floatData []float64
}

// New allocates a Matrix with the given row count and named columns.
// kinds[i] selects the sub-matrix series names[i] belongs to; column order
// within each kind follows the order of names, so the layout is
// deterministic for a fixed argument order.
func New(rows int, names []string, kinds []Kind) (*Matrix, error) {
	if rows < 0 {
		return nil, wmErrorf("New", fmt.Errorf("rows must be >= 0, got %d", rows))
	}
	if len(names) != len(kinds) {
		return nil, wmErrorf("New", fmt.Errorf("names/kinds length mismatch: %d vs %d", len(names), len(kinds)))
	}

	m := &Matrix{rows: rows, cols: make(map[string]column, len(names))}
	for i, name := range names {
		if _, exists := m.cols[name]; exists {
			return nil, wmErrorf("New", fmt.Errorf("%w: %q", ErrDuplicateSeries, name))
		}
		switch kinds[i] {
		case Int64:
			m.cols[name] = column{kind: Int64, index: m.intCols}
			m.intCols++
		case Float64:
			m.cols[name] = column{kind: Float64, index: m.floatCols}
			m.floatCols++
		default:
			return nil, wmErrorf("New", fmt.Errorf("unknown kind for series %q", name))
		}
	}

	m.intData = make([]int64, rows*m.intCols)
	m.floatData = make([]float64, rows*m.floatCols)
	return m, nil
}

// Rows returns the number of rows in the matrix.
func (m *Matrix) Rows() int { return m.rows }

// HasSeries reports whether name is a registered column.
func (m *Matrix) HasSeries(name string) bool {
	_, ok := m.cols[name]
	return ok
}

// SeriesNames returns the registered series names in no particular order.
func (m *Matrix) SeriesNames() []string {
	names := make([]string, 0, len(m.cols))
	for name := range m.cols {
		names = append(names, name)
	}
	return names
}

func (m *Matrix) checkRow(method string, row int) error {
	if row < 0 || row >= m.rows {
		return wmErrorf(method, fmt.Errorf("%w: %d (rows=%d)", ErrRowOutOfRange, row, m.rows))
	}
	return nil
}

func (m *Matrix) column(method, name string) (column, error) {
	c, ok := m.cols[name]
	if !ok {
		return column{}, wmErrorf(method, fmt.Errorf("%w: %q", ErrUnknownSeries, name))
	}
	return c, nil
}

// GetAsF64 returns the value at (name, row) coerced to float64 regardless of
// the series' underlying kind.
func (m *Matrix) GetAsF64(name string, row int) (float64, error) {
	if err := m.checkRow("GetAsF64", row); err != nil {
		return 0, err
	}
	c, err := m.column("GetAsF64", name)
	if err != nil {
		return 0, err
	}
	switch c.kind {
	case Int64:
		return float64(m.intData[row*m.intCols+c.index]), nil
	default:
		return m.floatData[row*m.floatCols+c.index], nil
	}
}

// MustGetAsF64 panics on error; used by call sites where the series/row are
// known-good invariants (e.g. already-validated metric series).
func (m *Matrix) MustGetAsF64(name string, row int) float64 {
	v, err := m.GetAsF64(name, row)
	if err != nil {
		panic(err)
	}
	return v
}

// SetInt64 sets an integer-series cell directly.
func (m *Matrix) SetInt64(name string, row int, v int64) error {
	if err := m.checkRow("SetInt64", row); err != nil {
		return err
	}
	c, err := m.column("SetInt64", name)
	if err != nil {
		return err
	}
	if c.kind != Int64 {
		return wmErrorf("SetInt64", fmt.Errorf("series %q is not an integer series", name))
	}
	m.intData[row*m.intCols+c.index] = v
	return nil
}

// SetFloat64 sets a floating-series cell directly.
func (m *Matrix) SetFloat64(name string, row int, v float64) error {
	if err := m.checkRow("SetFloat64", row); err != nil {
		return err
	}
	c, err := m.column("SetFloat64", name)
	if err != nil {
		return err
	}
	if c.kind != Float64 {
		return wmErrorf("SetFloat64", fmt.Errorf("series %q is not a floating series", name))
	}
	m.floatData[row*m.floatCols+c.index] = v
	return nil
}

// AddRowFrom adds other's src-th row into self's dst-th row, column-wise,
// across both the integer and floating sub-matrices. other must share the
// same column layout as self (same series registered in the same kinds).
func (m *Matrix) AddRowFrom(dst int, other *Matrix, src int) error {
	return m.combineRow("AddRowFrom", dst, other, src, +1)
}

// SubtractRowFrom subtracts other's src-th row from self's dst-th row.
func (m *Matrix) SubtractRowFrom(dst int, other *Matrix, src int) error {
	return m.combineRow("SubtractRowFrom", dst, other, src, -1)
}

func (m *Matrix) combineRow(method string, dst int, other *Matrix, src int, sign int64) error {
	if err := m.checkRow(method, dst); err != nil {
		return err
	}
	if err := other.checkRow(method, src); err != nil {
		return err
	}
	if m.intCols != other.intCols || m.floatCols != other.floatCols {
		return wmErrorf(method, fmt.Errorf("column layout mismatch: self(int=%d,float=%d) other(int=%d,float=%d)",
			m.intCols, m.floatCols, other.intCols, other.floatCols))
	}
	for c := 0; c < m.intCols; c++ {
		if sign > 0 {
			m.intData[dst*m.intCols+c] += other.intData[src*other.intCols+c]
		} else {
			m.intData[dst*m.intCols+c] -= other.intData[src*other.intCols+c]
		}
	}
	fsign := float64(sign)
	for c := 0; c < m.floatCols; c++ {
		m.floatData[dst*m.floatCols+c] += fsign * other.floatData[src*other.floatCols+c]
	}
	return nil
}

// AddRowsFrom adds other's rows (identified by srcRows) into self's dst row,
// equivalent to looping AddRowFrom over each source row.
func (m *Matrix) AddRowsFrom(dst int, other *Matrix, srcRows []int) error {
	for _, src := range srcRows {
		if err := m.AddRowFrom(dst, other, src); err != nil {
			return err
		}
	}
	return nil
}

// SubtractRowsFrom subtracts other's rows (identified by srcRows) from self's
// dst row, equivalent to looping SubtractRowFrom over each source row.
func (m *Matrix) SubtractRowsFrom(dst int, other *Matrix, srcRows []int) error {
	for _, src := range srcRows {
		if err := m.SubtractRowFrom(dst, other, src); err != nil {
			return err
		}
	}
	return nil
}

// SetRowToSumOf sets self's dst row to the column-wise sum over all rows of
// other.
func (m *Matrix) SetRowToSumOf(dst int, other *Matrix) error {
	if err := m.ClearRow(dst); err != nil {
		return err
	}
	rows := make([]int, other.rows)
	for i := range rows {
		rows[i] = i
	}
	return m.AddRowsFrom(dst, other, rows)
}

// ClearRow zeroes out row dst across both sub-matrices.
func (m *Matrix) ClearRow(dst int) error {
	if err := m.checkRow("ClearRow", dst); err != nil {
		return err
	}
	for c := 0; c < m.intCols; c++ {
		m.intData[dst*m.intCols+c] = 0
	}
	for c := 0; c < m.floatCols; c++ {
		m.floatData[dst*m.floatCols+c] = 0
	}
	return nil
}

// ClearAllRows zeroes every row in the matrix.
func (m *Matrix) ClearAllRows() {
	for i := range m.intData {
		m.intData[i] = 0
	}
	for i := range m.floatData {
		m.floatData[i] = 0
	}
}

// CopyOfSize returns a new Matrix with the same column layout as other, sized
// to hold rows rows, all zeroed.
func CopyOfSize(other *Matrix, rows int) *Matrix {
	names := make([]string, 0, len(other.cols))
	kinds := make([]Kind, 0, len(other.cols))
	// Deterministic ordering by underlying column index within each kind.
	intNames := make([]string, other.intCols)
	floatNames := make([]string, other.floatCols)
	for name, c := range other.cols {
		if c.kind == Int64 {
			intNames[c.index] = name
		} else {
			floatNames[c.index] = name
		}
	}
	for _, n := range intNames {
		names = append(names, n)
		kinds = append(kinds, Int64)
	}
	for _, n := range floatNames {
		names = append(names, n)
		kinds = append(kinds, Float64)
	}
	m, err := New(rows, names, kinds)
	if err != nil {
		// Column layout was copied from an already-valid Matrix; this cannot fail.
		panic(err)
	}
	return m
}
