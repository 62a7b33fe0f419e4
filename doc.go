// Package ssri demonstrates maximum-likelihood estimation of a linear
// Gaussian model against its closed-form least squares solution.
//
// The library generates a reproducible synthetic regression dataset, fits it
// twice — once by solving the normal equations directly, once by handing the
// Gaussian log-likelihood to a nonlinear solver — and compares coefficients,
// noise-scale estimates, standard errors, and log-likelihood values between
// the two paths. Absent active parameter constraints the two sets of
// estimates agree up to solver tolerance.
//
// Packages:
//
//   - dataset: seeded synthetic data generation
//   - linear: closed-form ordinary least squares with standard errors
//   - likelihood: the Gaussian log-likelihood objective
//   - optimizer: typed boundary to the nonlinear solver (gonum optimize)
//   - mle: the numerical maximum-likelihood estimator
//   - inference: Hessian-based standard errors, comparison, reporting
//
// See examples/olsmle for the runnable comparison pipeline.
package ssri
