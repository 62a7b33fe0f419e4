// Package likelihood defines the scalar log-likelihood of the linear-Gaussian
// model. The function is pure and evaluable at arbitrary parameter values; it
// is what gets handed to the nonlinear solver as the objective to maximize.
package likelihood

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/anhnguyendepocen/duke-julia-ssri/dataset"
)

// Gaussian is the log-likelihood of y = X·β + ε, ε ~ Normal(0, σ), closed
// over a dataset by reference. It has no mutable state.
type Gaussian struct {
	ds *dataset.Dataset
}

// NewGaussian returns the Gaussian likelihood model for ds.
func NewGaussian(ds *dataset.Dataset) *Gaussian {
	return &Gaussian{ds: ds}
}

// Dim returns the packed parameter count: one coefficient per design column
// plus the noise scale.
func (g *Gaussian) Dim() int {
	_, p := g.ds.Dims()
	return p + 1
}

// LogLikelihood evaluates
//
//	(n/2)·log(1/(2π·σ²)) − Σᵢ (yᵢ − xᵢ·β)² / (2σ²)
//
// at the given coefficients and noise scale. Noise scales at or below zero
// have likelihood zero, reported as -Inf so the maximizer steps away rather
// than propagating NaN.
func (g *Gaussian) LogLikelihood(coef []float64, noiseScale float64) float64 {
	if noiseScale <= 0 {
		return math.Inf(-1)
	}

	n, p := g.ds.Dims()
	if len(coef) != p {
		return math.Inf(-1)
	}

	resid := mat.NewVecDense(n, nil)
	resid.MulVec(g.ds.X, mat.NewVecDense(p, coef))
	resid.SubVec(g.ds.Y, resid)
	rss := mat.Dot(resid, resid)

	variance := noiseScale * noiseScale
	return float64(n)/2*math.Log(1/(2*math.Pi*variance)) - rss/(2*variance)
}

// Value evaluates the packed parameter vector θ = (β₀..β_{p−1}, σ). It makes
// Gaussian an optimizer.Objective.
func (g *Gaussian) Value(theta []float64) float64 {
	coef, sigma := g.Unpack(theta)
	return g.LogLikelihood(coef, sigma)
}

// Unpack splits a packed parameter vector into coefficients and noise scale.
// The slice returned aliases theta.
func (g *Gaussian) Unpack(theta []float64) (coef []float64, noiseScale float64) {
	return theta[:len(theta)-1], theta[len(theta)-1]
}
