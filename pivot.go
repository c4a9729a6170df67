package bigm

import (
	"math"
	"strings"

	"github.com/pkg/errors"
)

// PivotRule selects the entering and leaving variables of an iteration.
type PivotRule int

const (
	// Dantzig enters the column with the most negative reduced cost and breaks every tie,
	// in the column choice as in the ratio test, on the first one encountered.
	Dantzig PivotRule = iota
	// Bland enters the lowest indexed improving column and, among rows tied on the ratio test,
	// leaves the one whose basic variable sits in the lowest column. It cannot cycle.
	Bland
)

func (r PivotRule) String() string {
	switch r {
	case Dantzig:
		return "dantzig"
	case Bland:
		return "bland"
	default:
		return "unknown"
	}
}

// ParsePivotRule reads "dantzig" or "bland".
func ParsePivotRule(s string) (PivotRule, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "dantzig":
		return Dantzig, nil
	case "bland":
		return Bland, nil
	}
	return 0, errors.Wrapf(ErrInvalidOption, "unknown pivot rule %q", s)
}

// enteringColumn returns the pivot column, or -1 when no reduced cost is below -eps,
// meaning the tableau is optimal.
func enteringColumn(t *Tableau, rule PivotRule, eps float64) int {
	col := -1
	lowest := -eps
	for j, v := range t.ObjectiveRow() {
		if v >= lowest {
			continue
		}
		if rule == Bland {
			return j
		}
		lowest = v
		col = j
	}
	return col
}

// leavingRow runs the minimum ratio test on col over rows whose entry is above eps.
// The first eligible row is always a candidate, even when its ratio overflows to +Inf.
// It returns -1 when no row qualifies, meaning the problem is unbounded along col.
func leavingRow(t *Tableau, col int, rule PivotRule, eps float64) int {
	m, _ := t.Dims()
	row := -1
	best := math.Inf(1)
	for i := 0; i < m; i++ {
		a := t.Matrix.At(i, col)
		if a <= eps {
			continue
		}
		ratio := t.RHS(i) / a
		switch {
		case row < 0 || ratio < best:
		case rule == Bland && row >= 0 && ratio == best && t.Column(t.Basic[i]) < t.Column(t.Basic[row]):
		default:
			continue
		}
		best = ratio
		row = i
	}
	return row
}

// choosePivot returns the pivot of the next iteration on t, or nil when t is optimal.
func choosePivot(t *Tableau, rule PivotRule, eps float64) (*Pivot, error) {
	col := enteringColumn(t, rule, eps)
	if col < 0 {
		return nil, nil
	}
	row := leavingRow(t, col, rule, eps)
	if row < 0 {
		return nil, errors.Wrapf(ErrUnbounded, "entering variable %s has no positive entry", t.Columns[col])
	}
	return &Pivot{
		Row:      row,
		Col:      col,
		Entering: t.Columns[col],
		Leaving:  t.Basic[row],
		Element:  t.Matrix.At(row, col),
	}, nil
}

// applyPivot performs one Gauss-Jordan elimination step and returns the resulting tableau.
// t is left untouched. The pivot row is divided by the pivot element, then the pivot column
// is cleared from every other row, the objective row included.
func applyPivot(t *Tableau, p *Pivot) *Tableau {
	next := t.Clone()
	next.Pivot = nil

	pr := next.Matrix.RawRowView(p.Row)
	for j := range pr {
		pr[j] /= p.Element
	}

	rows, _ := next.Matrix.Dims()
	for i := 0; i < rows; i++ {
		if i == p.Row {
			continue
		}
		r := next.Matrix.RawRowView(i)
		f := r[p.Col]
		if f == 0 {
			continue
		}
		for j := range r {
			r[j] -= f * pr[j]
		}
	}

	next.Basic[p.Row] = p.Entering
	return next
}
