package bigm

import "github.com/pkg/errors"

// Sentinel errors returned by Solve. They are wrapped with context, match them with errors.Is.
var (
	// ErrInvalidProblem is returned before any work is done when the problem definition is malformed.
	ErrInvalidProblem = errors.New("bigm: invalid problem definition")
	// ErrUnbounded is returned when an entering column has no positive entry to pivot on.
	ErrUnbounded = errors.New("bigm: problem is unbounded")
	// ErrIterationLimit is returned when the pivot loop runs past the configured bound.
	ErrIterationLimit = errors.New("bigm: iteration limit exceeded")
	// ErrInfeasible is returned when an artificial variable stays basic at a positive level.
	// Only reported when the infeasibility check is enabled.
	ErrInfeasible = errors.New("bigm: problem is infeasible")
	// ErrInvalidOption is returned by NewSolver for out of range settings.
	ErrInvalidOption = errors.New("bigm: invalid solver option")
)
