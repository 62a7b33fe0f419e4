package model

import "github.com/anhnguyendepocen/duke-julia-ssri/dataset"

// Fitter is an estimator that can be fitted to a dataset.
type Fitter interface {
	Fit(ds *dataset.Dataset) error
}

// ResultProvider exposes the estimation result after a successful Fit.
type ResultProvider interface {
	Result() (*EstimationResult, error)
}

// Estimator is the interface both estimation paths satisfy.
type Estimator interface {
	Fitter
	ResultProvider
}
