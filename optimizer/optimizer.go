// Package optimizer is the boundary to the external nonlinear solver. The
// core hands over an objective and simple bounds and gets back a structured
// result: optimal parameters, objective value, solver status, and curvature.
// Callers never introspect solver internals.
package optimizer

import (
	"math"

	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"

	"github.com/anhnguyendepocen/duke-julia-ssri/pkg/errors"
)

// Status classifies how a solve terminated. Only Optimal results are valid
// for downstream inference.
type Status int

const (
	// Optimal means the solver converged to a stationary point.
	Optimal Status = iota
	// Infeasible means the bounds admit no feasible point.
	Infeasible
	// IterationLimitReached means an iteration or evaluation budget ran out
	// before convergence.
	IterationLimitReached
	// NumericalFailure means the solve produced NaN/Inf or the method broke
	// down.
	NumericalFailure
)

func (s Status) String() string {
	switch s {
	case Optimal:
		return "Optimal"
	case Infeasible:
		return "Infeasible"
	case IterationLimitReached:
		return "IterationLimitReached"
	case NumericalFailure:
		return "NumericalFailure"
	default:
		return "Unknown"
	}
}

// Objective is a scalar function to maximize.
type Objective interface {
	// Value evaluates the objective at x. It must tolerate arbitrary x,
	// returning -Inf outside the domain rather than NaN.
	Value(x []float64) float64
	// Dim is the parameter count.
	Dim() int
}

// Bounds are per-coordinate box constraints. Supported lower bounds are
// -Inf (free) and 0 (non-negative); upper bounds must be +Inf.
type Bounds struct {
	Lower []float64
	Upper []float64
}

// Unbounded returns free bounds of the given dimension.
func Unbounded(dim int) *Bounds {
	b := &Bounds{Lower: make([]float64, dim), Upper: make([]float64, dim)}
	for i := 0; i < dim; i++ {
		b.Lower[i] = math.Inf(-1)
		b.Upper[i] = math.Inf(1)
	}
	return b
}

// NonNegative marks coordinate i as bounded below by zero.
func (b *Bounds) NonNegative(i int) *Bounds {
	b.Lower[i] = 0
	return b
}

// feasible reports whether the box admits any point.
func (b *Bounds) feasible() bool {
	for i := range b.Lower {
		if b.Lower[i] > b.Upper[i] {
			return false
		}
	}
	return true
}

// Result is the structured outcome of one solve.
type Result struct {
	// Params is the best point found, in the objective's own
	// parameterization.
	Params []float64
	// Value is the objective value at Params.
	Value float64
	// Hessian is the curvature of the objective at Params, computed by
	// finite differences on the unconstrained parameterization. It is nil
	// unless Status is Optimal. With only inactive simple bounds this is
	// the Hessian of the objective itself;
	// a solver enforcing active general constraints would return the
	// Lagrangian's Hessian instead, which conflates constraint curvature
	// with objective curvature and invalidates standard errors derived
	// from it.
	Hessian *mat.SymDense
	// Status classifies the termination.
	Status Status
	// Iterations is the number of major iterations used.
	Iterations int
}

// Maximizer solves max_x f(x) subject to simple bounds. The call is
// synchronous; tol is the gradient-norm convergence threshold.
type Maximizer interface {
	Maximize(obj Objective, start []float64, bounds *Bounds, tol float64) (*Result, error)
}

// Gonum maximizes objectives with gonum's optimize machinery: the negated
// objective is minimized with a quasi-Newton method, gradients come from
// finite differences, and zero lower bounds are enforced by a log
// reparameterization of the bounded coordinates (so the bound is never an
// active constraint at the optimum).
type Gonum struct {
	// Method is the gonum optimization method. Defaults to BFGS.
	Method optimize.Method
	// MaxIterations bounds the major iteration count. Defaults to 1000.
	MaxIterations int
}

// NewGonum returns a Gonum maximizer with default settings.
func NewGonum() *Gonum {
	return &Gonum{}
}

// Maximize implements Maximizer. The returned error reports misuse (shape
// mismatches, unsupported bounds); solve outcomes are conveyed by
// Result.Status.
func (g *Gonum) Maximize(obj Objective, start []float64, bounds *Bounds, tol float64) (*Result, error) {
	dim := obj.Dim()
	if len(start) != dim {
		return nil, errors.NewDimensionError("optimizer.Maximize", dim, len(start), 0)
	}
	if bounds == nil {
		bounds = Unbounded(dim)
	}
	if len(bounds.Lower) != dim || len(bounds.Upper) != dim {
		return nil, errors.NewDimensionError("optimizer.Maximize", dim, len(bounds.Lower), 0)
	}
	if !bounds.feasible() {
		return &Result{Status: Infeasible}, nil
	}

	logScaled := make([]bool, dim)
	for i := 0; i < dim; i++ {
		switch {
		case math.IsInf(bounds.Lower[i], -1) && math.IsInf(bounds.Upper[i], 1):
			// free coordinate
		case bounds.Lower[i] == 0 && math.IsInf(bounds.Upper[i], 1):
			logScaled[i] = true
			if start[i] <= 0 {
				return nil, errors.NewValueError("optimizer.Maximize",
					"start point must be strictly positive on non-negative coordinates")
			}
		default:
			return nil, errors.NewValueError("optimizer.Maximize",
				"only free and non-negative coordinates are supported")
		}
	}

	encode := func(x []float64) []float64 {
		z := make([]float64, dim)
		for i, v := range x {
			if logScaled[i] {
				z[i] = math.Log(v)
			} else {
				z[i] = v
			}
		}
		return z
	}
	decode := func(z []float64) []float64 {
		x := make([]float64, dim)
		for i, v := range z {
			if logScaled[i] {
				x[i] = math.Exp(v)
			} else {
				x[i] = v
			}
		}
		return x
	}

	negated := func(z []float64) float64 {
		return -obj.Value(decode(z))
	}
	problem := optimize.Problem{
		Func: negated,
		Grad: func(grad, z []float64) {
			// Central differences keep the gradient noise floor well below
			// the convergence thresholds used here.
			fd.Gradient(grad, negated, z, &fd.Settings{Formula: fd.Central})
		},
	}

	maxIter := g.MaxIterations
	if maxIter <= 0 {
		maxIter = 1000
	}
	settings := &optimize.Settings{
		MajorIterations:   maxIter,
		GradientThreshold: tol,
	}

	method := g.Method
	if method == nil {
		method = &optimize.BFGS{}
	}

	solution, err := optimize.Minimize(problem, encode(start), settings, method)
	if solution == nil {
		if err != nil {
			return &Result{Status: NumericalFailure}, nil
		}
		return nil, errors.New("optimizer: solver returned no result")
	}

	res := &Result{
		Status:     mapStatus(solution.Status),
		Iterations: solution.Stats.MajorIterations,
	}
	if err != nil && res.Status == Optimal {
		res.Status = NumericalFailure
	}
	if res.Status != Optimal && res.Status != IterationLimitReached {
		return res, nil
	}

	params := decode(solution.X)
	if chkErr := errors.CheckNumericalStability("optimizer.Maximize", params); chkErr != nil {
		res.Status = NumericalFailure
		return res, nil
	}

	res.Params = params
	res.Value = obj.Value(params)

	// A truncated solve still reports its best point, but inference needs
	// curvature at a stationary point, so skip the Hessian unless converged.
	if res.Status != Optimal {
		return res, nil
	}

	// Curvature of the objective itself, on the original parameterization,
	// at the converged point.
	res.Hessian = mat.NewSymDense(dim, nil)
	fd.Hessian(res.Hessian, obj.Value, params, nil)
	if chkErr := errors.CheckMatrix("optimizer.Maximize", res.Hessian, dim, dim); chkErr != nil {
		res.Status = NumericalFailure
		res.Hessian = nil
	}

	return res, nil
}

// mapStatus folds gonum's termination statuses onto the four-value taxonomy.
func mapStatus(s optimize.Status) Status {
	switch s {
	case optimize.Success, optimize.FunctionThreshold, optimize.FunctionConvergence,
		optimize.GradientThreshold, optimize.StepConvergence, optimize.MethodConverge:
		return Optimal
	case optimize.IterationLimit, optimize.FunctionEvaluationLimit, optimize.RuntimeLimit:
		return IterationLimitReached
	default:
		return NumericalFailure
	}
}
