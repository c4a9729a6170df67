package bigm

import (
	"math"
	"strings"

	"github.com/pkg/errors"
)

// Direction of the optimization.
type Direction int

const (
	Maximize Direction = iota
	Minimize
)

// String returns the short text form used in problem files.
func (d Direction) String() string {
	switch d {
	case Maximize:
		return "max"
	case Minimize:
		return "min"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	if d != Maximize && d != Minimize {
		return nil, errors.Wrapf(ErrInvalidProblem, "unknown direction %d", int(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText accepts max, maximize, min and minimize, case insensitive.
func (d *Direction) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "max", "maximize", "maximise":
		*d = Maximize
	case "min", "minimize", "minimise":
		*d = Minimize
	default:
		return errors.Wrapf(ErrInvalidProblem, "unknown direction %q", string(text))
	}
	return nil
}

// Relation between the left hand side of a constraint and its right hand side.
type Relation int

const (
	// LE is a "less than or equal" constraint, standardized with a slack variable.
	LE Relation = iota
	// GE is a "greater than or equal" constraint, standardized with a surplus and an artificial variable.
	GE
	// EQ is an equality constraint, standardized with an artificial variable.
	EQ
)

// ParseRelation reads the symbolic form of a relation. Both the unicode and the ASCII spellings are accepted.
func ParseRelation(s string) (Relation, error) {
	switch strings.TrimSpace(s) {
	case "≤", "<=":
		return LE, nil
	case "≥", ">=":
		return GE, nil
	case "=", "==":
		return EQ, nil
	}
	return 0, errors.Wrapf(ErrInvalidProblem, "unknown relation %q", s)
}

func (r Relation) String() string {
	switch r {
	case LE:
		return "≤"
	case GE:
		return "≥"
	case EQ:
		return "="
	default:
		return "?"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (r Relation) MarshalText() ([]byte, error) {
	if !r.valid() {
		return nil, errors.Wrapf(ErrInvalidProblem, "unknown relation %d", int(r))
	}
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Relation) UnmarshalText(text []byte) error {
	rel, err := ParseRelation(string(text))
	if err != nil {
		return err
	}
	*r = rel
	return nil
}

// flip returns the relation obtained by multiplying both sides by -1.
func (r Relation) flip() Relation {
	switch r {
	case LE:
		return GE
	case GE:
		return LE
	default:
		return r
	}
}

func (r Relation) valid() bool {
	return r == LE || r == GE || r == EQ
}

// Constraint is one row of the problem: Σ coefficients[j]*x_(j+1) relation rhs.
type Constraint struct {
	Coefficients []float64 `json:"coefficients" yaml:"coefficients"`
	Relation     Relation  `json:"relation" yaml:"relation"`
	RHS          float64   `json:"rhs" yaml:"rhs"`
}

// Problem is a linear program over non-negative decision variables x1..xn.
// Objective[i] is the coefficient of x(i+1).
type Problem struct {
	Direction   Direction    `json:"direction" yaml:"direction"`
	Objective   []float64    `json:"objective" yaml:"objective"`
	Constraints []Constraint `json:"constraints" yaml:"constraints"`
}

// NumVariables returns the number of decision variables.
func (p Problem) NumVariables() int {
	return len(p.Objective)
}

// Validate checks the shape of the problem. Every failure wraps ErrInvalidProblem.
func (p Problem) Validate() error {
	if p.Direction != Maximize && p.Direction != Minimize {
		return errors.Wrapf(ErrInvalidProblem, "unknown direction %d", int(p.Direction))
	}
	n := len(p.Objective)
	if n == 0 {
		return errors.Wrap(ErrInvalidProblem, "objective has no coefficients")
	}
	if len(p.Constraints) == 0 {
		return errors.Wrap(ErrInvalidProblem, "no constraints")
	}
	for j, c := range p.Objective {
		if !finite(c) {
			return errors.Wrapf(ErrInvalidProblem, "objective coefficient %d is not finite", j+1)
		}
	}
	for i, con := range p.Constraints {
		if len(con.Coefficients) != n {
			return errors.Wrapf(ErrInvalidProblem, "constraint %d has %d coefficients, want %d", i+1, len(con.Coefficients), n)
		}
		if !con.Relation.valid() {
			return errors.Wrapf(ErrInvalidProblem, "constraint %d has unknown relation %d", i+1, int(con.Relation))
		}
		if !finite(con.RHS) {
			return errors.Wrapf(ErrInvalidProblem, "constraint %d rhs is not finite", i+1)
		}
		for j, c := range con.Coefficients {
			if !finite(c) {
				return errors.Wrapf(ErrInvalidProblem, "constraint %d coefficient %d is not finite", i+1, j+1)
			}
		}
	}
	return nil
}

// maximizeForm returns a copy of the problem whose objective is maximized.
// Minimization objectives are negated; constraints are shared since they are never written to.
func (p Problem) maximizeForm() Problem {
	obj := make([]float64, len(p.Objective))
	copy(obj, p.Objective)
	if p.Direction == Minimize {
		for j := range obj {
			obj[j] = -obj[j]
		}
	}
	return Problem{
		Direction:   Maximize,
		Objective:   obj,
		Constraints: p.Constraints,
	}
}

// withNonNegativeRHS returns a copy of p in which every constraint with a negative right hand
// side has been multiplied by -1, flipping its relation. The simplex start basis needs b >= 0.
func (p Problem) withNonNegativeRHS() Problem {
	out := p
	out.Constraints = make([]Constraint, len(p.Constraints))
	for i, con := range p.Constraints {
		if con.RHS < 0 {
			con = con.negated()
		}
		out.Constraints[i] = con
	}
	return out
}

func (c Constraint) negated() Constraint {
	coefs := make([]float64, len(c.Coefficients))
	for j, v := range c.Coefficients {
		coefs[j] = -v
	}
	return Constraint{Coefficients: coefs, Relation: c.Relation.flip(), RHS: -c.RHS}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
