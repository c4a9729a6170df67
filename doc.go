// Package bigm solves linear programs with the Big-M tableau simplex method.
//
// A Problem is standardized (slack, surplus and artificial variables are added), turned into an
// initial tableau whose objective row penalizes artificial variables by M, and pivoted until no
// reduced cost is negative. Every intermediate tableau is kept in the Result together with the
// pivot that was applied to it, so callers can display the whole run.
//
//	res, err := bigm.Solve(bigm.Problem{
//		Direction: bigm.Maximize,
//		Objective: []float64{3, 5},
//		Constraints: []bigm.Constraint{
//			{Coefficients: []float64{1, 0}, Relation: bigm.LE, RHS: 4},
//			{Coefficients: []float64{0, 2}, Relation: bigm.LE, RHS: 12},
//			{Coefficients: []float64{3, 2}, Relation: bigm.GE, RHS: 6},
//		},
//	})
package bigm
