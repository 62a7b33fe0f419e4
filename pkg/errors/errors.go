// Package errors provides the structured error taxonomy for the estimation
// pipeline. Every failure mode in the library is deterministic and
// non-retriable, so each gets its own typed error that callers can match
// with As, plus a zerolog marshaler for structured log output.
package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// NotFittedError is returned when results are requested from an estimator
// before Fit has been called.
type NotFittedError struct {
	EstimatorName string
	Method        string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("ssri: %s: this estimator is not fitted yet. Call Fit() before using %s()", e.EstimatorName, e.Method)
}

// MarshalZerologObject adds structured error information to a zerolog event.
func (e *NotFittedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("estimator", e.EstimatorName).
		Str("method", e.Method).
		Str("type", "NotFittedError")
}

// NewNotFittedError creates a NotFittedError with a stack trace attached.
func NewNotFittedError(estimator, method string) error {
	err := &NotFittedError{EstimatorName: estimator, Method: method}
	return errors.WithStack(err)
}

// InvalidDimensionError is returned when a dataset would be under-identified:
// the number of observations does not exceed the number of regressors, so the
// normal equations have no unique solution.
type InvalidDimensionError struct {
	Op           string
	Observations int
	Regressors   int
}

func (e *InvalidDimensionError) Error() string {
	return fmt.Sprintf("ssri: %s: %d observations for %d regressors; need more observations than regressors",
		e.Op, e.Observations, e.Regressors)
}

// MarshalZerologObject adds structured error information to a zerolog event.
func (e *InvalidDimensionError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("observations", e.Observations).
		Int("regressors", e.Regressors).
		Str("type", "InvalidDimensionError")
}

// NewInvalidDimensionError creates an InvalidDimensionError with a stack trace attached.
func NewInvalidDimensionError(op string, observations, regressors int) error {
	err := &InvalidDimensionError{Op: op, Observations: observations, Regressors: regressors}
	return errors.WithStack(err)
}

// DimensionError is returned when an input's shape does not match what the
// operation expects, e.g. a coefficient vector of the wrong length.
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 for rows, 1 for columns
}

func (e *DimensionError) Error() string {
	axisName := "columns"
	if e.Axis == 0 {
		axisName = "rows"
	}
	return fmt.Sprintf("ssri: %s: dimension mismatch on axis %d (%s). Expected %d, got %d", e.Op, e.Axis, axisName, e.Expected, e.Got)
}

// MarshalZerologObject adds structured error information to a zerolog event.
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Str("type", "DimensionError")
}

// NewDimensionError creates a DimensionError with a stack trace attached.
func NewDimensionError(op string, expected, got, axis int) error {
	err := &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
	return errors.WithStack(err)
}

// SingularMatrixError is returned when the Gram matrix X'X cannot be
// inverted, i.e. the design matrix is rank deficient.
type SingularMatrixError struct {
	Op   string
	Size int
}

func (e *SingularMatrixError) Error() string {
	return fmt.Sprintf("ssri: %s: %dx%d matrix is singular or nearly singular", e.Op, e.Size, e.Size)
}

// MarshalZerologObject adds structured error information to a zerolog event.
func (e *SingularMatrixError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("size", e.Size).
		Str("type", "SingularMatrixError")
}

// NewSingularMatrixError creates a SingularMatrixError with a stack trace attached.
func NewSingularMatrixError(op string, size int) error {
	err := &SingularMatrixError{Op: op, Size: size}
	return errors.WithStack(err)
}

// SingularHessianError is returned when curvature information cannot be
// inverted into a covariance matrix, so no standard errors exist.
type SingularHessianError struct {
	Op   string
	Size int
}

func (e *SingularHessianError) Error() string {
	return fmt.Sprintf("ssri: %s: %dx%d Hessian is not positive definite after negation; standard errors are undefined", e.Op, e.Size, e.Size)
}

// MarshalZerologObject adds structured error information to a zerolog event.
func (e *SingularHessianError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("size", e.Size).
		Str("type", "SingularHessianError")
}

// NewSingularHessianError creates a SingularHessianError with a stack trace attached.
func NewSingularHessianError(op string, size int) error {
	err := &SingularHessianError{Op: op, Size: size}
	return errors.WithStack(err)
}

// SolverFailureError is returned when the nonlinear solver terminates with
// any status other than Optimal. The solve is deterministic, so retrying
// cannot help; the status names the reason.
type SolverFailureError struct {
	Op     string
	Status string
	Detail string
}

func (e *SolverFailureError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("ssri: %s: solver finished with status %s: %s", e.Op, e.Status, e.Detail)
	}
	return fmt.Sprintf("ssri: %s: solver finished with status %s", e.Op, e.Status)
}

// MarshalZerologObject adds structured error information to a zerolog event.
func (e *SolverFailureError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("status", e.Status).
		Str("detail", e.Detail).
		Str("type", "SolverFailureError")
}

// NewSolverFailureError creates a SolverFailureError with a stack trace attached.
func NewSolverFailureError(op, status, detail string) error {
	err := &SolverFailureError{Op: op, Status: status, Detail: detail}
	return errors.WithStack(err)
}

// ValueError is returned for arguments whose value (rather than shape) is
// invalid, e.g. a non-positive panel dimension.
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("ssri: %s: %s", e.Op, e.Message)
}

// MarshalZerologObject adds structured error information to a zerolog event.
func (e *ValueError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("message", e.Message).
		Str("type", "ValueError")
}

// NewValueError creates a ValueError with a stack trace attached.
func NewValueError(op, message string) error {
	err := &ValueError{Op: op, Message: message}
	return errors.WithStack(err)
}

// NumericalInstabilityError is returned when a computation produces NaN or
// Inf where a finite value is required.
type NumericalInstabilityError struct {
	Op     string
	Values []float64
}

func (e *NumericalInstabilityError) Error() string {
	valStr := ""
	for i, v := range e.Values {
		if i > 0 {
			valStr += ", "
		}
		if i >= 5 {
			valStr += "..."
			break
		}
		valStr += fmt.Sprintf("%.6g", v)
	}
	return fmt.Sprintf("ssri: %s: numerical instability detected. Values: [%s]", e.Op, valStr)
}

// MarshalZerologObject adds structured error information to a zerolog event.
func (e *NumericalInstabilityError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Floats64("values", e.Values).
		Str("type", "NumericalInstabilityError")
}

// NewNumericalInstabilityError creates a NumericalInstabilityError with a stack trace attached.
func NewNumericalInstabilityError(op string, values []float64) error {
	err := &NumericalInstabilityError{Op: op, Values: values}
	return errors.WithStack(err)
}

// ===========================================================================
//
//	cockroachdb/errors wrappers
//
// ===========================================================================

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap wraps an existing error with a message.
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf wraps an existing error with a format string.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New creates a new error with a stack trace.
func New(message string) error {
	return errors.New(message)
}

// Newf creates a new formatted error with a stack trace.
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack annotates an error with a stack trace.
func WithStack(err error) error {
	return errors.WithStack(err)
}
