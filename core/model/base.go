// Package model holds the shared estimator plumbing: the fitted-state base
// embedded by every estimator and the result value both estimation paths
// produce.
package model

// EstimatorState tracks whether an estimator has been fitted.
type EstimatorState int

const (
	// NotFitted is the state before Fit has completed successfully.
	NotFitted EstimatorState = iota
	// Fitted is the state after a successful Fit.
	Fitted
)

// BaseEstimator is embedded by every estimator to carry fitted state.
type BaseEstimator struct {
	state EstimatorState
}

// IsFitted reports whether Fit has completed successfully.
func (e *BaseEstimator) IsFitted() bool {
	return e.state == Fitted
}

// SetFitted marks the estimator as fitted.
func (e *BaseEstimator) SetFitted() {
	e.state = Fitted
}

// Reset returns the estimator to the unfitted state.
func (e *BaseEstimator) Reset() {
	e.state = NotFitted
}
