// Package inference turns curvature information into parameter standard
// errors and compares estimation results across paths.
package inference

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"

	"github.com/anhnguyendepocen/duke-julia-ssri/core/model"
	"github.com/anhnguyendepocen/duke-julia-ssri/pkg/errors"
)

// StandardErrorsFromHessian converts the Hessian of an objective at its
// optimum into parameter standard errors. For a maximized objective the
// curvature is negative semi-definite, so the Hessian is negated before
// inversion; the information-matrix equality then gives the covariance as
// the inverse. Returns SingularHessianError when the (negated) Hessian is
// not positive definite.
func StandardErrorsFromHessian(hessian mat.Symmetric, isMaximization bool) ([]float64, error) {
	n := hessian.SymmetricDim()
	if n == 0 {
		return nil, errors.NewValueError("inference.StandardErrorsFromHessian", "empty Hessian")
	}

	info := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v := hessian.At(i, j)
			if isMaximization {
				v = -v
			}
			info.SetSym(i, j, v)
		}
	}

	var chol mat.Cholesky
	if ok := chol.Factorize(info); !ok {
		return nil, errors.NewSingularHessianError("inference.StandardErrorsFromHessian", n)
	}

	var cov mat.SymDense
	if err := chol.InverseTo(&cov); err != nil {
		return nil, errors.NewSingularHessianError("inference.StandardErrorsFromHessian", n)
	}

	se := make([]float64, n)
	for i := 0; i < n; i++ {
		se[i] = math.Sqrt(cov.At(i, i))
	}
	return se, nil
}

// Compare reports whether two estimation results agree within tol on every
// coefficient, the noise scale, and every standard error. Agreement is
// absolute-or-relative, so the check is scale-free for large estimates.
func Compare(a, b *model.EstimationResult, tol float64) bool {
	if a == nil || b == nil {
		return false
	}
	if len(a.Coefficients) != len(b.Coefficients) || len(a.StandardErrors) != len(b.StandardErrors) {
		return false
	}

	for i := range a.Coefficients {
		if !scalar.EqualWithinAbsOrRel(a.Coefficients[i], b.Coefficients[i], tol, tol) {
			return false
		}
	}
	if !scalar.EqualWithinAbsOrRel(a.NoiseScale, b.NoiseScale, tol, tol) {
		return false
	}
	for i := range a.StandardErrors {
		if !scalar.EqualWithinAbsOrRel(a.StandardErrors[i], b.StandardErrors[i], tol, tol) {
			return false
		}
	}
	return true
}
