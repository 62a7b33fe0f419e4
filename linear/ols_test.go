package linear

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/anhnguyendepocen/duke-julia-ssri/dataset"
	"github.com/anhnguyendepocen/duke-julia-ssri/pkg/errors"
)

func TestOLSRecoversTrueParameters(t *testing.T) {
	// The reference scenario: 10000 observations, 16 regressors, noise 0.3.
	ds, err := dataset.Generate(2000, 5, 1234)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	ols := NewOLS()
	if err := ols.Fit(ds); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	res, err := ols.Result()
	if err != nil {
		t.Fatalf("Result() error = %v", err)
	}

	for j, want := range ds.TrueCoefficients {
		if math.Abs(res.Coefficients[j]-want) > 0.05 {
			t.Errorf("coefficient %d = %v, want within 0.05 of %v", j, res.Coefficients[j], want)
		}
	}
	if math.Abs(res.NoiseScale-ds.TrueNoiseScale) > 0.01 {
		t.Errorf("noise scale = %v, want within 0.01 of %v", res.NoiseScale, ds.TrueNoiseScale)
	}

	for j, se := range res.StandardErrors {
		if se <= 0 || se > 0.1 {
			t.Errorf("standard error %d = %v, implausible for this sample size", j, se)
		}
	}
	if math.IsNaN(res.LogLikelihood) || math.IsInf(res.LogLikelihood, 0) {
		t.Errorf("log-likelihood = %v, want finite", res.LogLikelihood)
	}
}

func TestOLSIdempotent(t *testing.T) {
	ds, err := dataset.Generate(100, 3, 7)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	ols := NewOLS()
	if err := ols.Fit(ds); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	first, err := ols.Result()
	if err != nil {
		t.Fatalf("Result() error = %v", err)
	}

	if err := ols.Fit(ds); err != nil {
		t.Fatalf("second Fit() error = %v", err)
	}
	second, err := ols.Result()
	if err != nil {
		t.Fatalf("Result() error = %v", err)
	}

	for j := range first.Coefficients {
		if first.Coefficients[j] != second.Coefficients[j] {
			t.Errorf("coefficient %d changed on refit: %v != %v", j, first.Coefficients[j], second.Coefficients[j])
		}
		if first.StandardErrors[j] != second.StandardErrors[j] {
			t.Errorf("standard error %d changed on refit", j)
		}
	}
	if first.NoiseScale != second.NoiseScale {
		t.Errorf("noise scale changed on refit: %v != %v", first.NoiseScale, second.NoiseScale)
	}
	if first.LogLikelihood != second.LogLikelihood {
		t.Errorf("log-likelihood changed on refit")
	}
}

func TestOLSSingularDesign(t *testing.T) {
	// Duplicated column: perfect collinearity.
	n := 12
	data := make([]float64, n*3)
	for i := 0; i < n; i++ {
		v := float64(i + 1)
		data[i*3] = 1
		data[i*3+1] = v
		data[i*3+2] = v
	}
	y := make([]float64, n)
	for i := range y {
		y[i] = float64(2 * i)
	}

	ds := &dataset.Dataset{
		X:                mat.NewDense(n, 3, data),
		Y:                mat.NewVecDense(n, y),
		TrueCoefficients: []float64{0, 1, 1},
		TrueNoiseScale:   1,
		N:                n,
		T:                1,
	}

	err := NewOLS().Fit(ds)
	if err == nil {
		t.Fatal("Fit() on singular design expected error, got nil")
	}
	var singular *errors.SingularMatrixError
	if !errors.As(err, &singular) {
		t.Errorf("error = %v, want SingularMatrixError", err)
	}
}

func TestOLSTooFewObservations(t *testing.T) {
	ds := &dataset.Dataset{
		X:                mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6}),
		Y:                mat.NewVecDense(2, []float64{1, 2}),
		TrueCoefficients: []float64{0, 0, 0},
		TrueNoiseScale:   1,
		N:                2,
		T:                1,
	}

	err := NewOLS().Fit(ds)
	if err == nil {
		t.Fatal("Fit() with n <= p expected error, got nil")
	}
	var dim *errors.InvalidDimensionError
	if !errors.As(err, &dim) {
		t.Errorf("error = %v, want InvalidDimensionError", err)
	}
}

func TestOLSNotFitted(t *testing.T) {
	_, err := NewOLS().Result()
	if err == nil {
		t.Fatal("Result() before Fit expected error, got nil")
	}
	var notFitted *errors.NotFittedError
	if !errors.As(err, &notFitted) {
		t.Errorf("error = %v, want NotFittedError", err)
	}
}
