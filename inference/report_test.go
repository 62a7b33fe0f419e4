package inference

import (
	"math"
	"strings"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/anhnguyendepocen/duke-julia-ssri/core/model"
	"github.com/anhnguyendepocen/duke-julia-ssri/dataset"
)

func TestReport(t *testing.T) {
	ols := &model.EstimationResult{
		Method:         "OLS",
		Coefficients:   []float64{2.1503, 0.0998},
		NoiseScale:     0.2991,
		StandardErrors: []float64{0.0091, 0.0042},
		LogLikelihood:  -2110.25,
	}
	mle := &model.EstimationResult{
		Method:         "MLE",
		Coefficients:   []float64{2.1503, 0.0998},
		NoiseScale:     0.2989,
		StandardErrors: []float64{0.0091, 0.0042},
		LogLikelihood:  -2110.25,
	}

	got := Report([]float64{2.15, 0.10}, ols, mle)

	for _, want := range []string{"parameter", "true", "OLS", "MLE", "beta[0]", "beta[1]", "sigma", "log-likelihood", "2.1503", "0.2991"} {
		if !strings.Contains(got, want) {
			t.Errorf("Report() missing %q in:\n%s", want, got)
		}
	}

	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	// Header, two coefficient rows, sigma, log-likelihood.
	if len(lines) != 5 {
		t.Errorf("Report() has %d lines, want 5:\n%s", len(lines), got)
	}
}

func TestReportWithoutTruth(t *testing.T) {
	res := &model.EstimationResult{
		Method:         "OLS",
		Coefficients:   []float64{1.0},
		NoiseScale:     0.5,
		StandardErrors: []float64{0.1},
		LogLikelihood:  -10,
	}

	got := Report(nil, res)
	if strings.Contains(got, "true") {
		t.Errorf("Report(nil, ...) should omit the true column:\n%s", got)
	}
}

func TestResidualSummary(t *testing.T) {
	// Exact linear data: residuals at the true coefficients are all zero.
	ds := &dataset.Dataset{
		X: mat.NewDense(4, 2, []float64{
			1, 0,
			1, 1,
			1, 2,
			1, 3,
		}),
		Y:                mat.NewVecDense(4, []float64{1, 3, 5, 7}),
		TrueCoefficients: []float64{1, 2},
		TrueNoiseScale:   1,
		N:                4,
		T:                1,
	}

	sum, err := ResidualSummary(ds, []float64{1, 2})
	if err != nil {
		t.Fatalf("ResidualSummary() error = %v", err)
	}

	for name, v := range map[string]float64{
		"mean":   sum.Mean,
		"median": sum.Median,
		"sd":     sum.StdDev,
		"min":    sum.Min,
		"max":    sum.Max,
	} {
		if math.Abs(v) > 1e-12 {
			t.Errorf("%s = %v, want 0", name, v)
		}
	}

	if s := sum.String(); !strings.Contains(s, "residuals:") {
		t.Errorf("String() = %q, want residuals prefix", s)
	}

	if _, err := ResidualSummary(ds, []float64{1}); err == nil {
		t.Error("ResidualSummary() with short coefficients expected error, got nil")
	}
}
