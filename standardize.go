package bigm

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// VariableCounts is the number of auxiliary variables each kind of constraint adds.
type VariableCounts struct {
	Slack      int `json:"slack" yaml:"slack"`
	Surplus    int `json:"surplus" yaml:"surplus"`
	Artificial int `json:"artificial" yaml:"artificial"`
}

// Total returns the number of auxiliary columns.
func (c VariableCounts) Total() int {
	return c.Slack + c.Surplus + c.Artificial
}

// countVariables scans the relations: LE adds a slack, GE a surplus and an artificial, EQ an artificial.
func countVariables(constraints []Constraint) VariableCounts {
	var c VariableCounts
	for _, con := range constraints {
		switch con.Relation {
		case LE:
			c.Slack++
		case GE:
			c.Surplus++
			c.Artificial++
		case EQ:
			c.Artificial++
		}
	}
	return c
}

// StandardizedForm explains how a problem maps to the standard form the tableau is built from.
// It is a narrative only: nothing in the solver reads it back.
type StandardizedForm struct {
	OriginalObjective       string         `json:"originalObjective" yaml:"originalObjective"`
	StandardizedObjective   string         `json:"standardizedObjective" yaml:"standardizedObjective"`
	OriginalConstraints     []string       `json:"originalConstraints" yaml:"originalConstraints"`
	StandardizedConstraints []string       `json:"standardizedConstraints" yaml:"standardizedConstraints"`
	VariablesAdded          VariableCounts `json:"variablesAdded" yaml:"variablesAdded"`
	Transformations         []string       `json:"transformations" yaml:"transformations"`
}

// Standardize renders the standardization narrative of p.
// It reads p as given by the caller, before any objective negation.
func Standardize(p Problem) StandardizedForm {
	sf := StandardizedForm{
		OriginalObjective:   objectiveText(p.Direction, p.Objective),
		OriginalConstraints: make([]string, 0, len(p.Constraints)),
	}
	std := p.withNonNegativeRHS()
	sf.VariablesAdded = countVariables(std.Constraints)

	stdObjective := p.maximizeForm().Objective
	var b strings.Builder
	b.WriteString(objectiveText(Maximize, stdObjective))
	for k := 1; k <= sf.VariablesAdded.Artificial; k++ {
		fmt.Fprintf(&b, " - M%s", Variable{Artificial, k})
	}
	sf.StandardizedObjective = b.String()

	if p.Direction == Minimize {
		sf.Transformations = append(sf.Transformations,
			"Convert the minimization problem to maximization by multiplying the objective function by -1")
	}

	var slack, surplus, artificial int
	for i, orig := range p.Constraints {
		sf.OriginalConstraints = append(sf.OriginalConstraints,
			fmt.Sprintf("%s %s %s", linearText(orig.Coefficients), orig.Relation, formatNumber(orig.RHS)))

		con := std.Constraints[i]
		var added, action string
		switch con.Relation {
		case LE:
			slack++
			s := Variable{Slack, slack}
			added = " + " + s.String()
			action = "add slack variable " + s.String()
		case GE:
			surplus++
			artificial++
			e, a := Variable{Surplus, surplus}, Variable{Artificial, artificial}
			added = fmt.Sprintf(" - %s + %s", e, a)
			action = fmt.Sprintf("add surplus variable %s and artificial variable %s", e, a)
		case EQ:
			artificial++
			a := Variable{Artificial, artificial}
			added = " + " + a.String()
			action = "add artificial variable " + a.String()
		}
		if orig.RHS < 0 {
			action = fmt.Sprintf("multiply by -1 to make the right hand side non-negative (%s becomes %s), then %s",
				orig.Relation, con.Relation, action)
		}
		sf.StandardizedConstraints = append(sf.StandardizedConstraints,
			fmt.Sprintf("%s%s = %s", linearText(con.Coefficients), added, formatNumber(con.RHS)))
		sf.Transformations = append(sf.Transformations, fmt.Sprintf("Constraint %d: %s", i+1, action))
	}

	if artificial > 0 {
		sf.Transformations = append(sf.Transformations,
			"Apply the Big-M method to penalize artificial variables in the objective function")
	}
	return sf
}

func objectiveText(d Direction, coefs []float64) string {
	verb := "Maximize"
	if d == Minimize {
		verb = "Minimize"
	}
	return verb + " Z = " + linearText(coefs)
}

// linearText renders c1x1 + c2x2 - |c3|x3 ... The first term keeps its own sign.
func linearText(coefs []float64) string {
	var b strings.Builder
	for j, c := range coefs {
		x := Variable{Decision, j + 1}
		switch {
		case j == 0:
			fmt.Fprintf(&b, "%s%s", formatNumber(c), x)
		case c >= 0:
			fmt.Fprintf(&b, " + %s%s", formatNumber(c), x)
		default:
			fmt.Fprintf(&b, " - %s%s", formatNumber(math.Abs(c)), x)
		}
	}
	return b.String()
}

func formatNumber(v float64) string {
	if v == 0 {
		v = math.Abs(v)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
