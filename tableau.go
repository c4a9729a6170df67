package bigm

import (
	"encoding/json"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Sentinel labels of the objective row and of the right hand side column.
const (
	ObjectiveLabel = "Z"
	RHSLabel       = "RHS"
)

// Pivot describes the pivot chosen on a tableau. Element is read before the row is normalized.
type Pivot struct {
	Row      int      `json:"pivotRow" yaml:"pivotRow"`
	Col      int      `json:"pivotCol" yaml:"pivotCol"`
	Entering Variable `json:"enteringVariable" yaml:"enteringVariable"`
	Leaving  Variable `json:"leavingVariable" yaml:"leavingVariable"`
	Element  float64  `json:"pivotElement" yaml:"pivotElement"`
}

// Tableau is one stage of the simplex method.
//
// Matrix has m+1 rows and t+1 columns: rows 0..m-1 are constraints, row m is the objective row,
// columns 0..t-1 are variables and column t is the right hand side.
// Basic[i] is the basic variable of constraint row i, Columns[j] the variable of column j.
// Pivot is nil on the terminal tableau of a solve.
type Tableau struct {
	Matrix  *mat.Dense
	Basic   []Variable
	Columns []Variable
	Pivot   *Pivot
}

// Dims returns the number of constraint rows m and variable columns t.
func (t *Tableau) Dims() (m, vars int) {
	r, c := t.Matrix.Dims()
	return r - 1, c - 1
}

// RHS returns the right hand side of row i.
func (t *Tableau) RHS(i int) float64 {
	_, c := t.Matrix.Dims()
	return t.Matrix.At(i, c-1)
}

// ObjectiveValue is the bottom right entry: the objective of the maximized form at this stage.
func (t *Tableau) ObjectiveValue() float64 {
	r, c := t.Matrix.Dims()
	return t.Matrix.At(r-1, c-1)
}

// ObjectiveRow returns the reduced costs of the variable columns. The slice aliases the matrix.
func (t *Tableau) ObjectiveRow() []float64 {
	m, vars := t.Dims()
	return t.Matrix.RawRowView(m)[:vars]
}

// BasicLabels returns the row labels, terminated by the objective row label.
func (t *Tableau) BasicLabels() []string {
	labels := make([]string, 0, len(t.Basic)+1)
	for _, v := range t.Basic {
		labels = append(labels, v.String())
	}
	return append(labels, ObjectiveLabel)
}

// ColumnLabels returns the column labels, terminated by the right hand side label.
func (t *Tableau) ColumnLabels() []string {
	labels := make([]string, 0, len(t.Columns)+1)
	for _, v := range t.Columns {
		labels = append(labels, v.String())
	}
	return append(labels, RHSLabel)
}

// Column returns the index of the column holding v, or -1.
func (t *Tableau) Column(v Variable) int {
	for j, c := range t.Columns {
		if c == v {
			return j
		}
	}
	return -1
}

// Clone returns a deep copy. The matrix gets its own backing buffer.
func (t *Tableau) Clone() *Tableau {
	c := &Tableau{
		Matrix:  mat.DenseCopyOf(t.Matrix),
		Basic:   append([]Variable(nil), t.Basic...),
		Columns: append([]Variable(nil), t.Columns...),
	}
	if t.Pivot != nil {
		p := *t.Pivot
		c.Pivot = &p
	}
	return c
}

// Rows returns the matrix as a slice of row copies.
func (t *Tableau) Rows() [][]float64 {
	r, _ := t.Matrix.Dims()
	rows := make([][]float64, r)
	for i := range rows {
		rows[i] = mat.Row(nil, i, t.Matrix)
	}
	return rows
}

// String dumps the tableau with its labels, mainly for debugging.
func (t *Tableau) String() string {
	s := fmt.Sprintf("columns: %v\nrows: %v\n%v", t.ColumnLabels(), t.BasicLabels(),
		mat.Formatted(t.Matrix, mat.Squeeze()))
	if t.Pivot != nil {
		s += fmt.Sprintf("\npivot: %s enters, %s leaves at (%d,%d) = %g",
			t.Pivot.Entering, t.Pivot.Leaving, t.Pivot.Row, t.Pivot.Col, t.Pivot.Element)
	}
	return s
}

type tableauJSON struct {
	Matrix            [][]float64 `json:"matrix"`
	BasicVariables    []string    `json:"basicVariables"`
	NonBasicVariables []string    `json:"nonBasicVariables"`
	Pivot             *Pivot      `json:"pivot,omitempty"`
}

// MarshalJSON renders the tableau with string labels and sentinels, the shape display layers consume.
func (t *Tableau) MarshalJSON() ([]byte, error) {
	return json.Marshal(tableauJSON{
		Matrix:            t.Rows(),
		BasicVariables:    t.BasicLabels(),
		NonBasicVariables: t.ColumnLabels(),
		Pivot:             t.Pivot,
	})
}

// MarshalYAML mirrors MarshalJSON for yaml.v3 encoders.
func (t *Tableau) MarshalYAML() (interface{}, error) {
	return struct {
		Matrix            [][]float64 `yaml:"matrix"`
		BasicVariables    []string    `yaml:"basicVariables"`
		NonBasicVariables []string    `yaml:"nonBasicVariables"`
		Pivot             *Pivot      `yaml:"pivot,omitempty"`
	}{t.Rows(), t.BasicLabels(), t.ColumnLabels(), t.Pivot}, nil
}
