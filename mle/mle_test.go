package mle

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/anhnguyendepocen/duke-julia-ssri/dataset"
	"github.com/anhnguyendepocen/duke-julia-ssri/inference"
	"github.com/anhnguyendepocen/duke-julia-ssri/linear"
	"github.com/anhnguyendepocen/duke-julia-ssri/optimizer"
	"github.com/anhnguyendepocen/duke-julia-ssri/pkg/errors"
)

func TestMLEMatchesClosedForm(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping iterative solve in short mode")
	}

	ds, err := dataset.Generate(1000, 2, 42)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	ols := linear.NewOLS()
	if err := ols.Fit(ds); err != nil {
		t.Fatalf("OLS Fit() error = %v", err)
	}
	olsRes, err := ols.Result()
	if err != nil {
		t.Fatalf("OLS Result() error = %v", err)
	}

	est := New()
	if err := est.Fit(ds); err != nil {
		t.Fatalf("MLE Fit() error = %v", err)
	}
	mleRes, err := est.Result()
	if err != nil {
		t.Fatalf("MLE Result() error = %v", err)
	}

	// No constraints are active, so the two paths must agree up to solver
	// tolerance: coefficients, noise scale, and standard errors.
	if !inference.Compare(olsRes, mleRes, 1e-2) {
		t.Errorf("MLE disagrees with closed form beyond tolerance:\nOLS: %+v\nMLE: %+v", olsRes, mleRes)
	}

	if math.Abs(olsRes.LogLikelihood-mleRes.LogLikelihood) > 1e-2*math.Abs(olsRes.LogLikelihood) {
		t.Errorf("log-likelihood mismatch: OLS %v, MLE %v", olsRes.LogLikelihood, mleRes.LogLikelihood)
	}

	// The MLE log-likelihood is the maximum, so it cannot be materially
	// below the value at the closed-form estimates.
	if mleRes.LogLikelihood < olsRes.LogLikelihood-1e-3 {
		t.Errorf("MLE log-likelihood %v below OLS value %v", mleRes.LogLikelihood, olsRes.LogLikelihood)
	}

	if est.Curvature() == nil {
		t.Error("Curvature() = nil after successful Fit")
	} else if got := est.Curvature().SymmetricDim(); got != len(mleRes.Coefficients)+1 {
		t.Errorf("Curvature() dim = %d, want %d", got, len(mleRes.Coefficients)+1)
	}
}

// stuckMaximizer always reports the given status without solving.
type stuckMaximizer struct {
	status optimizer.Status
}

func (s stuckMaximizer) Maximize(obj optimizer.Objective, start []float64, bounds *optimizer.Bounds, tol float64) (*optimizer.Result, error) {
	return &optimizer.Result{Status: s.status}, nil
}

func TestMLESolverFailure(t *testing.T) {
	ds, err := dataset.Generate(50, 2, 9)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	tests := []struct {
		name   string
		status optimizer.Status
	}{
		{name: "iteration limit", status: optimizer.IterationLimitReached},
		{name: "numerical failure", status: optimizer.NumericalFailure},
		{name: "infeasible", status: optimizer.Infeasible},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			est := New(WithMaximizer(stuckMaximizer{status: tt.status}))
			err := est.Fit(ds)
			if err == nil {
				t.Fatal("Fit() expected error, got nil")
			}
			var failure *errors.SolverFailureError
			if !errors.As(err, &failure) {
				t.Fatalf("error = %v, want SolverFailureError", err)
			}
			if failure.Status != tt.status.String() {
				t.Errorf("failure status = %q, want %q", failure.Status, tt.status.String())
			}
			if est.IsFitted() {
				t.Error("estimator marked fitted after solver failure")
			}
		})
	}
}

func TestMLETooFewObservations(t *testing.T) {
	under := &dataset.Dataset{
		X:                mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6}),
		Y:                mat.NewVecDense(2, []float64{1, 2}),
		TrueCoefficients: []float64{0, 0, 0},
		TrueNoiseScale:   1,
		N:                2,
		T:                1,
	}

	err := New().Fit(under)
	if err == nil {
		t.Fatal("Fit() with n <= p expected error, got nil")
	}
	var dim *errors.InvalidDimensionError
	if !errors.As(err, &dim) {
		t.Errorf("error = %v, want InvalidDimensionError", err)
	}
}

func TestMLENotFitted(t *testing.T) {
	_, err := New().Result()
	if err == nil {
		t.Fatal("Result() before Fit expected error, got nil")
	}
	var notFitted *errors.NotFittedError
	if !errors.As(err, &notFitted) {
		t.Errorf("error = %v, want NotFittedError", err)
	}
	if New().Curvature() != nil {
		t.Error("Curvature() before Fit = non-nil")
	}
}
