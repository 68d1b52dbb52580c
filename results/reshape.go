package results

import (
	"math"
	"sort"

	"golang.org/x/xerrors"
	"gonum.org/v1/gonum/mat"
)

// ErrDuplicatePair is returned when a flow appears twice for the same dataset
// case in the rows given to the pivot.
var ErrDuplicatePair = xerrors.New("duplicate (flow_name, dataset_case) pair")

// SortBars returns a copy of the table sorted by network and then by case.
// Both keys are compared lexically and rows with equal keys keep their
// relative order.
func (t Table) SortBars() Table {
	out := make(Table, len(t))
	copy(out, t)

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Network != out[j].Network {
			return out[i].Network < out[j].Network
		}

		return out[i].Case < out[j].Case
	})

	return out
}

// Distinct returns the distinct values of the column in lexical order.
func (t Table) Distinct(column string) []string {
	set := make(map[string]string)
	for _, row := range t {
		switch column {
		case ColumnFlow:
			set[row.Flow] = row.Flow
		case ColumnCase:
			set[row.Case] = row.Case
		case ColumnNetwork:
			set[row.Network] = row.Network
		case ColumnType:
			set[row.Type] = row.Type
		}
	}

	return sortedKeys(set)
}

// Matrix is the pivot of a table: one row per flow and one column per
// dataset case. Cells without a value are NaN.
type Matrix struct {
	rows    []string
	columns []string
	data    *mat.Dense
}

// Pivot reshapes the table into a matrix indexed by the flows and the dataset
// cases present in the table, both sorted lexically. It returns an error if
// a (flow, case) pair appears more than once.
func Pivot(t Table) (*Matrix, error) {
	m := &Matrix{
		rows:    t.Distinct(ColumnFlow),
		columns: t.Distinct(ColumnCase),
	}

	if len(m.rows) == 0 || len(m.columns) == 0 {
		return m, nil
	}

	rowIndex := indexOf(m.rows)
	colIndex := indexOf(m.columns)

	m.data = mat.NewDense(len(m.rows), len(m.columns), nil)
	seen := make([]bool, len(m.rows)*len(m.columns))
	for i := range m.rows {
		for j := range m.columns {
			m.data.Set(i, j, math.NaN())
		}
	}

	for _, row := range t {
		i, j := rowIndex[row.Flow], colIndex[row.Case]

		if seen[i*len(m.columns)+j] {
			return nil, xerrors.Errorf("flow '%s' in case '%s': %w", row.Flow, row.Case, ErrDuplicatePair)
		}

		seen[i*len(m.columns)+j] = true
		m.data.Set(i, j, row.Delay)
	}

	return m, nil
}

// Dims returns the number of rows and columns.
func (m *Matrix) Dims() (int, int) {
	return len(m.rows), len(m.columns)
}

// Rows returns the flows in row order.
func (m *Matrix) Rows() []string {
	return m.rows
}

// Columns returns the dataset cases in column order.
func (m *Matrix) Columns() []string {
	return m.columns
}

// At returns the value of the cell.
func (m *Matrix) At(r, c int) float64 {
	return m.data.At(r, c)
}

// Lookup returns the value for the flow and the dataset case, and false when
// the pair is outside the matrix or has no value.
func (m *Matrix) Lookup(flow, datasetCase string) (float64, bool) {
	r := sort.SearchStrings(m.rows, flow)
	c := sort.SearchStrings(m.columns, datasetCase)

	if r >= len(m.rows) || m.rows[r] != flow || c >= len(m.columns) || m.columns[c] != datasetCase {
		return 0, false
	}

	value := m.data.At(r, c)

	return value, !math.IsNaN(value)
}

// Empty returns true when the matrix has no cell.
func (m *Matrix) Empty() bool {
	return m.data == nil
}

func indexOf(values []string) map[string]int {
	index := make(map[string]int, len(values))
	for i, value := range values {
		index[value] = i
	}

	return index
}
