package bigm

import (
	"github.com/pkg/errors"
)

// Solution is read off the terminal tableau.
type Solution struct {
	// OptimalValue is the objective value in the direction the caller asked for.
	OptimalValue float64 `json:"optimalValue" yaml:"optimalValue"`
	// Variables holds x1..xn. Variables not basic at the optimum are 0.
	Variables []float64 `json:"variables" yaml:"variables"`
}

// ExtractSolution reads the solution of a problem with n decision variables from an optimal tableau.
// The objective value is negated back when dir is Minimize.
func ExtractSolution(t *Tableau, n int, dir Direction) Solution {
	sol := Solution{
		OptimalValue: t.ObjectiveValue(),
		Variables:    make([]float64, n),
	}
	if dir == Minimize {
		sol.OptimalValue = -sol.OptimalValue
	}
	for i, v := range t.Basic {
		if v.Kind == Decision && v.Index <= n {
			sol.Variables[v.Index-1] = t.RHS(i)
		}
	}
	return sol
}

// ColumnValues returns the value of every variable column of t: the row's right hand side
// for basic variables and 0 for the others.
func ColumnValues(t *Tableau) []float64 {
	_, vars := t.Dims()
	values := make([]float64, vars)
	for i, v := range t.Basic {
		if j := t.Column(v); j >= 0 {
			values[j] = t.RHS(i)
		}
	}
	return values
}

// checkFeasible reports ErrInfeasible when an artificial variable is still basic above eps.
func checkFeasible(t *Tableau, eps float64) error {
	for i, v := range t.Basic {
		if v.Kind == Artificial && t.RHS(i) > eps {
			return errors.Wrapf(ErrInfeasible, "artificial variable %s is basic at %g", v, t.RHS(i))
		}
	}
	return nil
}
