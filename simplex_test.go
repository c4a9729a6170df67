package bigm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestSimplex(t *testing.T) {
	z := mat.NewDense(1, 4, []float64{7, 9, 18, 17})
	A := mat.NewDense(3, 4, []float64{
		2, 4, 5, 7,
		1, 1, 2, 2,
		1, 2, 3, 3,
	})
	b := mat.NewDense(3, 1, []float64{42, 17, 24})

	totalIter, results, score, err := Simplex(z, A, b, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, totalIter)
	assert.True(t, mat.EqualApprox(mat.NewDense(7, 1, []float64{3, 0, 7, 0, 1, 0, 0}), results, 0.000001))
	assert.InDelta(t, 147.0, score, 0.000001)
}

func TestSimplex2(t *testing.T) {
	z := mat.NewDense(1, 2, []float64{100, 85})
	A := mat.NewDense(3, 2, []float64{
		12, 24,
		9, 5,
		30, 30,
	})
	b := mat.NewDense(3, 1, []float64{480, 180, 720})

	totalIter, results, score, err := Simplex(z, A, b, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, totalIter)
	assert.True(t, mat.EqualApprox(mat.NewDense(5, 1, []float64{15, 9, 84, 0, 0}), results, 0.000001))
	assert.InDelta(t, 2265.0, score, 0.000001)
}

func TestProblemFromDenseMixed(t *testing.T) {
	c := mat.NewDense(1, 2, []float64{2, 3})
	A := mat.NewDense(2, 2, []float64{
		1, 1,
		1, 3,
	})
	b := mat.NewDense(2, 1, []float64{4, 6})

	p, err := ProblemFromDense(Minimize, c, A, b, GE)
	require.NoError(t, err)
	p.Constraints = append(p.Constraints, Constraint{Coefficients: []float64{1, 0}, Relation: LE, RHS: 3})

	res, err := Solve(p)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Pivots())
	assert.InDelta(t, 9.0, res.Solution.OptimalValue, 0.000001)
	assert.InDeltaSlice(t, []float64{3, 1}, res.Solution.Variables, 0.000001)

	// x1 x2 S1 E1 E2 A1 A2: both artificial variables have left the basis.
	assert.True(t, mat.EqualApprox(mat.NewDense(7, 1, []float64{3, 1, 0, 0, 0, 0, 0}),
		mat.NewDense(7, 1, ColumnValues(res.Final())), 0.000001))
}

func TestSimplexIterationLimit(t *testing.T) {
	z := mat.NewDense(1, 3, []float64{4, 3, 5})
	A := mat.NewDense(3, 3, []float64{
		4, 12, 8,
		4, 4, 8,
		12, 4, 8,
	})
	b := mat.NewDense(3, 1, []float64{4800, 4000, 5600})

	_, _, _, err := Simplex(z, A, b, 2)
	assert.ErrorIs(t, err, ErrIterationLimit)
}

func TestSimplexDims(t *testing.T) {
	A := mat.NewDense(2, 2, []float64{1, 0, 0, 1})
	b := mat.NewDense(2, 1, []float64{1, 1})

	_, _, _, err := Simplex(mat.NewDense(2, 2, nil), A, b, 10)
	assert.ErrorIs(t, err, ErrInvalidProblem)

	_, _, _, err = Simplex(mat.NewDense(1, 3, []float64{1, 1, 1}), A, b, 10)
	assert.ErrorIs(t, err, ErrInvalidProblem)

	_, _, _, err = Simplex(mat.NewDense(1, 2, []float64{1, 1}), A, mat.NewDense(3, 1, nil), 10)
	assert.ErrorIs(t, err, ErrInvalidProblem)
}

func TestIter(t *testing.T) {
	z := mat.NewDense(1, 4, []float64{7, 9, 18, 17})
	AConstraints := mat.NewDense(3, 4, []float64{
		2, 4, 5, 7,
		1, 1, 2, 2,
		1, 2, 3, 3,
	})
	b := mat.NewDense(3, 1, []float64{42, 17, 24})

	p, err := ProblemFromDense(Maximize, z, AConstraints, b, LE)
	require.NoError(t, err)
	tab := BuildTableau(p, DefaultBigM)

	pv, err := choosePivot(tab, Dantzig, 0)
	require.NoError(t, err)
	require.NotNil(t, pv)
	assert.Equal(t, Pivot{Row: 2, Col: 2, Entering: Variable{Decision, 3}, Leaving: Variable{Slack, 3}, Element: 3}, *pv)

	tab = applyPivot(tab, pv)
	assert.True(t, mat.EqualApprox(mat.NewDense(4, 8, []float64{
		1.0 / 3, 2.0 / 3, 0, 2, 1, 0, -5.0 / 3, 2,
		1.0 / 3, -1.0 / 3, 0, 0, 0, 1, -2.0 / 3, 1,
		1.0 / 3, 2.0 / 3, 1, 1, 0, 0, 1.0 / 3, 8,
		-1, 3, 0, 1, 0, 0, 6, 144,
	}), tab.Matrix, 0.000001))
	assert.Equal(t, []string{"S1", "S2", "x3", "Z"}, tab.BasicLabels())

	pv, err = choosePivot(tab, Dantzig, 0)
	require.NoError(t, err)
	require.NotNil(t, pv)
	assert.Equal(t, 1, pv.Row)
	assert.Equal(t, 0, pv.Col)
	assert.InDelta(t, 1.0/3, pv.Element, 0.000001)

	tab = applyPivot(tab, pv)
	pv, err = choosePivot(tab, Dantzig, 0)
	require.NoError(t, err)
	assert.Nil(t, pv)

	assert.True(t, mat.EqualApprox(mat.NewDense(7, 1, []float64{3, 0, 7, 0, 1, 0, 0}),
		mat.NewDense(7, 1, ColumnValues(tab)), 0.000001))
	assert.InDelta(t, 147.0, tab.ObjectiveValue(), 0.000001)
}
