package model

// EstimationResult is the output of one estimation path over a dataset.
// It is created once per Fit and never mutated afterwards; the reporter
// consumes it read-only.
type EstimationResult struct {
	// Method labels the estimation path that produced the result, e.g.
	// "OLS" or "MLE".
	Method string

	// Coefficients are the estimated regression coefficients, one per
	// design-matrix column.
	Coefficients []float64

	// NoiseScale is the estimated standard deviation of the Gaussian
	// error term.
	NoiseScale float64

	// StandardErrors are the coefficient standard errors, aligned with
	// Coefficients.
	StandardErrors []float64

	// LogLikelihood is the Gaussian log-likelihood evaluated at the
	// estimated parameters.
	LogLikelihood float64
}

// NumParams returns the number of estimated coefficients.
func (r *EstimationResult) NumParams() int {
	return len(r.Coefficients)
}
