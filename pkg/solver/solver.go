// Package solver is the boundary to an external non-linear optimisation engine.
//
// The engine itself is a black box. This package only fixes the shape of a
// problem handed to it and of the solution it returns, and provides an adapter
// that talks to an engine binary over stdin/stdout.
package solver

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	pkgerrors "github.com/pkg/errors"
)

var (
	// ErrInvalidProblem is returned when a Problem fails validation.
	ErrInvalidProblem = errors.New("solver: invalid problem")

	// ErrEngineUnavailable is returned when the engine binary cannot be started.
	ErrEngineUnavailable = errors.New("solver: engine unavailable")

	// ErrEngineFailed is returned when the engine exits abnormally.
	ErrEngineFailed = errors.New("solver: engine failed")

	// ErrBadSolution is returned when the engine output cannot be decoded.
	ErrBadSolution = errors.New("solver: undecodable solution")
)

// Status is the outcome reported by the engine.
type Status string

const (
	StatusOptimal    Status = "optimal"
	StatusFeasible   Status = "feasible"
	StatusInfeasible Status = "infeasible"
	StatusUnbounded  Status = "unbounded"
	StatusIterLimit  Status = "iteration_limit"
	StatusError      Status = "error"
)

// Valid reports whether s is one of the declared statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusOptimal, StatusFeasible, StatusInfeasible, StatusUnbounded, StatusIterLimit, StatusError:
		return true
	}
	return false
}

// Variable is a decision variable with optional bounds.
type Variable struct {
	Name    string   `json:"name" validate:"required"`
	Lower   *float64 `json:"lower,omitempty"`
	Upper   *float64 `json:"upper,omitempty"`
	Initial float64  `json:"initial"`
}

// Constraint restricts an expression over the variables to [Lower, Upper].
type Constraint struct {
	Name       string   `json:"name,omitempty"`
	Expression string   `json:"expression" validate:"required"`
	Lower      *float64 `json:"lower,omitempty"`
	Upper      *float64 `json:"upper,omitempty"`
}

// Problem is a non-linear program in the engine's expression syntax.
type Problem struct {
	Variables     []Variable   `json:"variables" validate:"required,min=1,dive"`
	Objective     string       `json:"objective" validate:"required"`
	Maximize      bool         `json:"maximize"`
	Constraints   []Constraint `json:"constraints,omitempty" validate:"dive"`
	MaxIterations int          `json:"max_iterations,omitempty" validate:"gte=0"`
	Tolerance     float64      `json:"tolerance,omitempty" validate:"gte=0"`
}

// Solution is what the engine reports back.
type Solution struct {
	Status     Status             `json:"status"`
	Objective  float64            `json:"objective"`
	Values     map[string]float64 `json:"values"`
	Iterations int                `json:"iterations"`
	Message    string             `json:"message,omitempty"`
}

// Solver solves a Problem.
type Solver interface {
	Solve(ctx context.Context, p *Problem) (*Solution, error)
}

// SolverFunc adapts a function to Solver.
type SolverFunc func(ctx context.Context, p *Problem) (*Solution, error)

func (f SolverFunc) Solve(ctx context.Context, p *Problem) (*Solution, error) {
	return f(ctx, p)
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the problem is well formed: at least one named variable, an objective,
// bounds that are not inverted and variable names that are unique.
func (p *Problem) Validate() error {
	if p == nil {
		return pkgerrors.Wrap(ErrInvalidProblem, "nil problem")
	}
	if err := validate.Struct(p); err != nil {
		return pkgerrors.Wrapf(ErrInvalidProblem, "%v", err)
	}

	seen := make(map[string]struct{}, len(p.Variables))
	for _, v := range p.Variables {
		if _, dup := seen[v.Name]; dup {
			return pkgerrors.Wrapf(ErrInvalidProblem, "duplicate variable %q", v.Name)
		}
		seen[v.Name] = struct{}{}
		if inverted(v.Lower, v.Upper) {
			return pkgerrors.Wrapf(ErrInvalidProblem, "variable %q has lower bound above upper bound", v.Name)
		}
	}
	for i, c := range p.Constraints {
		if inverted(c.Lower, c.Upper) {
			return pkgerrors.Wrapf(ErrInvalidProblem, "constraint %d has lower bound above upper bound", i)
		}
	}
	return nil
}

// Bound returns a pointer to v, for filling optional bounds.
func Bound(v float64) *float64 {
	return &v
}

func inverted(lo, hi *float64) bool {
	return lo != nil && hi != nil && *lo > *hi
}
