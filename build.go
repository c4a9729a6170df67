package bigm

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// DefaultBigM is the penalty put on artificial variables when no other value is configured.
// It has to dominate every feasible objective value of the problem, otherwise the artificial
// variables may be cheaper to keep than to drive out. The right value is problem dependent.
const DefaultBigM = 1000.0

// BuildTableau constructs the initial tableau of p. p must pass Validate and be in maximization form
// (a Minimize problem has to go through its negated objective first). Constraints with a negative
// right hand side are multiplied by -1 beforehand.
//
// Columns are laid out as x1..xn, S1..Ss, E1..Ep, A1..Aa. Each LE row starts with its slack
// basic, each GE or EQ row with its artificial basic. The objective row stores -c and then has
// bigM times every artificial row subtracted from it, so that artificial columns read zero.
func BuildTableau(p Problem, bigM float64) *Tableau {
	p = p.withNonNegativeRHS()
	n := p.NumVariables()
	m := len(p.Constraints)
	counts := countVariables(p.Constraints)
	vars := n + counts.Total()

	tab := &Tableau{
		Matrix:  mat.NewDense(m+1, vars+1, nil),
		Basic:   make([]Variable, 0, m),
		Columns: make([]Variable, 0, vars),
	}

	obj := tab.Matrix.RawRowView(m)
	for j, c := range p.Objective {
		obj[j] = -c
	}

	slackCol := n
	surplusCol := n + counts.Slack
	artificialCol := n + counts.Slack + counts.Surplus
	var slack, surplus, artificial int

	for i, con := range p.Constraints {
		row := tab.Matrix.RawRowView(i)
		copy(row, con.Coefficients)
		row[vars] = con.RHS

		switch con.Relation {
		case LE:
			slack++
			row[slackCol] = 1
			slackCol++
			tab.Basic = append(tab.Basic, Variable{Slack, slack})
			continue
		case GE:
			surplus++
			row[surplusCol] = -1
			surplusCol++
		}

		artificial++
		row[artificialCol] = 1
		obj[artificialCol] = bigM
		floats.AddScaled(obj, -bigM, row)
		artificialCol++
		tab.Basic = append(tab.Basic, Variable{Artificial, artificial})
	}

	for k := 1; k <= n; k++ {
		tab.Columns = append(tab.Columns, Variable{Decision, k})
	}
	for k := 1; k <= counts.Slack; k++ {
		tab.Columns = append(tab.Columns, Variable{Slack, k})
	}
	for k := 1; k <= counts.Surplus; k++ {
		tab.Columns = append(tab.Columns, Variable{Surplus, k})
	}
	for k := 1; k <= counts.Artificial; k++ {
		tab.Columns = append(tab.Columns, Variable{Artificial, k})
	}
	return tab
}
