package errors

import (
	"math"
)

// CheckNumericalStability returns a NumericalInstabilityError if any value is
// NaN or infinite.
func CheckNumericalStability(op string, values []float64) error {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return NewNumericalInstabilityError(op, values)
		}
	}
	return nil
}

// CheckScalar checks a single value for NaN or Inf.
func CheckScalar(op string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return NewNumericalInstabilityError(op, []float64{value})
	}
	return nil
}

// CheckMatrix checks every entry of a matrix for NaN or Inf. At most ten
// offending values are collected for the error message.
func CheckMatrix(op string, m interface{ At(int, int) float64 }, rows, cols int) error {
	var unstable []float64
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := m.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				unstable = append(unstable, v)
				if len(unstable) >= 10 {
					return NewNumericalInstabilityError(op, unstable)
				}
			}
		}
	}
	if len(unstable) > 0 {
		return NewNumericalInstabilityError(op, unstable)
	}
	return nil
}
