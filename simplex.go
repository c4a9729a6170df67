package bigm

import (
	"context"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Simplex Solve a linear problem whose constraints are all "less than or equal".
// Input follows standard form:
// Maximize z = Σ(1<=j<=n) c_j*x_j
// Constraints:
// 1<=i<=m,  Σ(1<=j<=n) a_i_j*x_j <= b_i
// 1<=j<=n x_j >= 0
// c is a row vector (1,n), A a matrix (m,n) and b a column vector (m,1).
//
// It returns the number of pivots, a column vector (n+m,1) whose first n components are the
// best value for each variable and the others the slack left on each constraint, and the
// maximum score. It fails with ErrIterationLimit when maxIter pivots are not enough.
func Simplex(c, A, b *mat.Dense, maxIter int) (int, *mat.Dense, float64, error) {
	p, err := ProblemFromDense(Maximize, c, A, b, LE)
	if err != nil {
		return 0, nil, 0, err
	}
	s, err := NewSolver(WithMaxIterations(maxIter))
	if err != nil {
		return 0, nil, 0, err
	}
	res, err := s.Solve(context.Background(), p)
	if err != nil {
		return 0, nil, 0, err
	}

	values := ColumnValues(res.Final())
	return res.Pivots(), mat.NewDense(len(values), 1, values), res.Solution.OptimalValue, nil
}

// ProblemFromDense builds a problem from a row vector c (1,n), a matrix A (m,n) and a
// column vector b (m,1), every constraint sharing the relation rel.
func ProblemFromDense(dir Direction, c, A, b *mat.Dense, rel Relation) (Problem, error) {
	rows, n := c.Dims()
	if rows != 1 {
		return Problem{}, errors.Wrap(ErrInvalidProblem, "c dims.r != 1")
	}
	m, cols := A.Dims()
	if cols != n {
		return Problem{}, errors.Wrap(ErrInvalidProblem, "A dims.c != c dims.c")
	}
	rows, cols = b.Dims()
	if rows != m || cols != 1 {
		return Problem{}, errors.Wrap(ErrInvalidProblem, "b must be a column vector with one entry per row of A")
	}

	p := Problem{
		Direction:   dir,
		Objective:   mat.Row(nil, 0, c),
		Constraints: make([]Constraint, m),
	}
	for i := range p.Constraints {
		p.Constraints[i] = Constraint{
			Coefficients: mat.Row(nil, i, A),
			Relation:     rel,
			RHS:          b.At(i, 0),
		}
	}
	return p, p.Validate()
}
