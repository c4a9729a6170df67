package bigm

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/pkg/errors"

	"github.com/askiada/bigm/internal/logging"
)

const (
	// DefaultMaxIterations bounds the pivot loop when no other limit is configured.
	DefaultMaxIterations = 1000
	// DefaultTolerance is the magnitude under which reduced costs and pivot column entries count as zero.
	DefaultTolerance = 1e-9
	// feasibilityTolerance is the smallest level at which a basic artificial variable signals infeasibility.
	feasibilityTolerance = 1e-9
)

// PivotEvent is passed to Hooks.OnPivot after each pivot has been applied.
type PivotEvent struct {
	// Iteration is 1 for the first pivot.
	Iteration int
	Pivot     Pivot
	// Objective is the objective value of the maximized form after the pivot.
	Objective float64
}

// SolvedEvent is passed to Hooks.OnSolved once per Solve call, successful or not.
type SolvedEvent struct {
	Pivots   int
	Duration time.Duration
	Err      error
}

// Hooks lets callers observe a solve, e.g. to feed metrics. Nil fields are skipped.
type Hooks struct {
	OnPivot  func(ctx context.Context, e PivotEvent)
	OnSolved func(ctx context.Context, e SolvedEvent)
}

// Result is everything a solve produces.
type Result struct {
	// History holds one tableau per iteration, the initial one first. Every entry but the last
	// carries the pivot applied to it.
	History          []*Tableau       `json:"history" yaml:"history"`
	Solution         Solution         `json:"solution" yaml:"solution"`
	StandardizedForm StandardizedForm `json:"standardizedForm" yaml:"standardizedForm"`
}

// Pivots returns the number of pivots performed.
func (r *Result) Pivots() int {
	return len(r.History) - 1
}

// Final returns the terminal tableau.
func (r *Result) Final() *Tableau {
	return r.History[len(r.History)-1]
}

// Solver runs the Big-M tableau method. A Solver holds configuration only and is safe for concurrent use.
type Solver struct {
	bigM          float64
	maxIterations int
	rule          PivotRule
	tolerance     float64
	checkFeasible bool
	logger        *slog.Logger
	hooks         Hooks
}

// Option configures a Solver.
type Option func(*Solver) error

// WithBigM sets the penalty of artificial variables. It must be finite and positive, and large
// enough to dominate any feasible objective value of the problems solved.
func WithBigM(m float64) Option {
	return func(s *Solver) error {
		if !finite(m) || m <= 0 {
			return errors.Wrapf(ErrInvalidOption, "big M must be finite and positive, got %g", m)
		}
		s.bigM = m
		return nil
	}
}

// WithMaxIterations bounds the number of pivots. Solve fails with ErrIterationLimit past it.
func WithMaxIterations(n int) Option {
	return func(s *Solver) error {
		if n <= 0 {
			return errors.Wrapf(ErrInvalidOption, "max iterations must be positive, got %d", n)
		}
		s.maxIterations = n
		return nil
	}
}

// WithPivotRule selects Dantzig (default) or Bland.
func WithPivotRule(rule PivotRule) Option {
	return func(s *Solver) error {
		if rule != Dantzig && rule != Bland {
			return errors.Wrapf(ErrInvalidOption, "unknown pivot rule %d", int(rule))
		}
		s.rule = rule
		return nil
	}
}

// WithTolerance sets the zero tolerance of the pivot selection. 0 means exact comparisons.
func WithTolerance(eps float64) Option {
	return func(s *Solver) error {
		if !finite(eps) || eps < 0 {
			return errors.Wrapf(ErrInvalidOption, "tolerance must be finite and non-negative, got %g", eps)
		}
		s.tolerance = eps
		return nil
	}
}

// WithInfeasibilityCheck makes Solve fail with ErrInfeasible when the optimal tableau still has an
// artificial variable basic at a positive level. Disabled by default: without it such a tableau is
// returned as optimal.
func WithInfeasibilityCheck(enabled bool) Option {
	return func(s *Solver) error {
		s.checkFeasible = enabled
		return nil
	}
}

// WithLogger sets the structured logger. Pivots are logged at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Solver) error {
		if logger != nil {
			s.logger = logger
		}
		return nil
	}
}

// WithHooks registers lifecycle callbacks.
func WithHooks(hooks Hooks) Option {
	return func(s *Solver) error {
		s.hooks = hooks
		return nil
	}
}

// NewSolver returns a Solver with the defaults overridden by opts.
func NewSolver(opts ...Option) (*Solver, error) {
	s := &Solver{
		bigM:          DefaultBigM,
		maxIterations: DefaultMaxIterations,
		rule:          Dantzig,
		tolerance:     DefaultTolerance,
		logger:        logging.NewNop(),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, errors.WithMessage(err, "applying solver option")
		}
	}
	return s, nil
}

// Solve solves p with a default Solver.
func Solve(p Problem) (*Result, error) {
	s, err := NewSolver()
	if err != nil {
		return nil, err
	}
	return s.Solve(context.Background(), p)
}

// Solve validates p, standardizes it, builds the initial tableau and pivots until it is optimal.
//
// ctx is checked between iterations; a cancelled context stops the solve with ctx.Err().
// On failure no Result is returned.
func (s *Solver) Solve(ctx context.Context, p Problem) (*Result, error) {
	start := time.Now()
	res, err := s.solve(ctx, p)

	pivots := 0
	if res != nil {
		pivots = res.Pivots()
	}
	if err != nil {
		s.logger.Warn("solve failed", "error", err, "elapsed", time.Since(start))
	} else {
		s.logger.Info("solve finished",
			"pivots", pivots,
			"optimal_value", res.Solution.OptimalValue,
			"elapsed", time.Since(start))
	}
	if s.hooks.OnSolved != nil {
		s.hooks.OnSolved(ctx, SolvedEvent{Pivots: pivots, Duration: time.Since(start), Err: err})
	}
	return res, err
}

func (s *Solver) solve(ctx context.Context, p Problem) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	sf := Standardize(p)
	initial := BuildTableau(p.maximizeForm(), s.bigM)
	s.logger.Debug("initial tableau built",
		"rows", len(initial.Basic),
		"columns", len(initial.Columns),
		"artificial", sf.VariablesAdded.Artificial)

	history, err := s.iterate(ctx, initial)
	if err != nil {
		return nil, err
	}

	final := history[len(history)-1]
	if s.checkFeasible {
		if err := checkFeasible(final, math.Max(s.tolerance, feasibilityTolerance)); err != nil {
			return nil, err
		}
	}

	return &Result{
		History:          history,
		Solution:         ExtractSolution(final, p.NumVariables(), p.Direction),
		StandardizedForm: sf,
	}, nil
}

// iterate runs the pivot loop from initial and returns the whole history.
// Each non terminal entry gets the pivot that produced its successor.
func (s *Solver) iterate(ctx context.Context, initial *Tableau) ([]*Tableau, error) {
	history := []*Tableau{initial}
	for iter := 0; ; iter++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		cur := history[len(history)-1]
		pv, err := choosePivot(cur, s.rule, s.tolerance)
		if err != nil {
			return nil, errors.WithMessagef(err, "iteration %d", iter+1)
		}
		if pv == nil {
			return history, nil
		}
		if iter >= s.maxIterations {
			return nil, errors.Wrapf(ErrIterationLimit, "no optimum after %d pivots", s.maxIterations)
		}

		cur.Pivot = pv
		next := applyPivot(cur, pv)
		history = append(history, next)

		s.logger.Debug("pivot",
			"iteration", iter+1,
			"entering", pv.Entering.String(),
			"leaving", pv.Leaving.String(),
			"row", pv.Row,
			"col", pv.Col,
			"element", pv.Element,
			"objective", next.ObjectiveValue())
		if s.hooks.OnPivot != nil {
			s.hooks.OnPivot(ctx, PivotEvent{Iteration: iter + 1, Pivot: *pv, Objective: next.ObjectiveValue()})
		}
	}
}
