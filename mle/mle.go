// Package mle implements the maximum-likelihood estimation path: the
// Gaussian log-likelihood is handed to the nonlinear solver as the objective,
// with the noise scale bounded below by zero, and standard errors are derived
// from the curvature the solver reports at the optimum.
package mle

import (
	"gonum.org/v1/gonum/mat"

	"github.com/anhnguyendepocen/duke-julia-ssri/core/model"
	"github.com/anhnguyendepocen/duke-julia-ssri/dataset"
	"github.com/anhnguyendepocen/duke-julia-ssri/inference"
	"github.com/anhnguyendepocen/duke-julia-ssri/likelihood"
	"github.com/anhnguyendepocen/duke-julia-ssri/optimizer"
	"github.com/anhnguyendepocen/duke-julia-ssri/pkg/errors"
)

// Estimator fits the linear-Gaussian model by numerical maximum likelihood.
// The solver is injected so tests can substitute failing or limited ones.
type Estimator struct {
	model.BaseEstimator

	maximizer optimizer.Maximizer
	tol       float64

	result    *model.EstimationResult
	curvature *mat.SymDense
}

// Option configures the estimator.
type Option func(*Estimator)

// WithMaximizer substitutes the nonlinear solver.
func WithMaximizer(m optimizer.Maximizer) Option {
	return func(e *Estimator) {
		e.maximizer = m
	}
}

// WithTolerance sets the solver convergence tolerance.
func WithTolerance(tol float64) Option {
	return func(e *Estimator) {
		e.tol = tol
	}
}

// New creates an unfitted MLE estimator backed by the gonum solver with a
// 1e-4 gradient tolerance. The log-likelihood of a dataset at the default
// sample sizes is of order 1e3, which puts the finite-difference gradient
// noise near 1e-5; tighter thresholds make the line search break down before
// the threshold is reached.
func New(opts ...Option) *Estimator {
	e := &Estimator{
		maximizer: optimizer.NewGonum(),
		tol:       1e-4,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Fit maximizes the Gaussian log-likelihood over (β, σ) with σ ≥ 0. The
// start point is β = 0, σ = 1, independent of the closed-form path. Any
// solver status other than Optimal surfaces as SolverFailureError.
func (e *Estimator) Fit(ds *dataset.Dataset) error {
	n, p := ds.Dims()
	if n <= p {
		return errors.NewInvalidDimensionError("MLE.Fit", n, p)
	}

	obj := likelihood.NewGaussian(ds)
	dim := obj.Dim()

	start := make([]float64, dim)
	start[dim-1] = 1.0

	bounds := optimizer.Unbounded(dim).NonNegative(dim - 1)

	solved, err := e.maximizer.Maximize(obj, start, bounds, e.tol)
	if err != nil {
		return errors.Wrap(err, "MLE.Fit")
	}
	if solved.Status != optimizer.Optimal {
		return errors.NewSolverFailureError("MLE.Fit", solved.Status.String(),
			"log-likelihood maximization did not reach an optimum")
	}

	se, err := inference.StandardErrorsFromHessian(solved.Hessian, true)
	if err != nil {
		return err
	}

	coef, noiseScale := obj.Unpack(solved.Params)
	coefficients := make([]float64, p)
	copy(coefficients, coef)

	e.result = &model.EstimationResult{
		Method:         "MLE",
		Coefficients:   coefficients,
		NoiseScale:     noiseScale,
		StandardErrors: se[:p],
		LogLikelihood:  solved.Value,
	}
	e.curvature = solved.Hessian
	e.SetFitted()
	return nil
}

// Result returns the estimation result of the last successful Fit.
func (e *Estimator) Result() (*model.EstimationResult, error) {
	if !e.IsFitted() {
		return nil, errors.NewNotFittedError("MLE", "Result")
	}
	return e.result, nil
}

// Curvature returns the Hessian of the log-likelihood at the optimum, or nil
// before Fit. The full (p+1)×(p+1) matrix includes the noise-scale row.
func (e *Estimator) Curvature() *mat.SymDense {
	return e.curvature
}
