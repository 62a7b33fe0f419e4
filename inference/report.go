package inference

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/montanaflynn/stats"

	"github.com/anhnguyendepocen/duke-julia-ssri/core/model"
	"github.com/anhnguyendepocen/duke-julia-ssri/dataset"
	"github.com/anhnguyendepocen/duke-julia-ssri/pkg/errors"
)

// Report renders a side-by-side comparison of estimation results: one row
// per coefficient with its standard error in parentheses, followed by the
// noise-scale estimates and log-likelihood values. An optional vector of
// true coefficients is shown in the first column when provided.
func Report(trueCoefficients []float64, results ...*model.EstimationResult) string {
	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', tabwriter.AlignRight)

	fmt.Fprint(w, "parameter")
	if trueCoefficients != nil {
		fmt.Fprint(w, "\ttrue")
	}
	for _, r := range results {
		fmt.Fprintf(w, "\t%s\t(se)", r.Method)
	}
	fmt.Fprintln(w)

	nCoef := 0
	for _, r := range results {
		if r.NumParams() > nCoef {
			nCoef = r.NumParams()
		}
	}
	if len(trueCoefficients) > nCoef {
		nCoef = len(trueCoefficients)
	}

	for i := 0; i < nCoef; i++ {
		fmt.Fprintf(w, "beta[%d]", i)
		if trueCoefficients != nil {
			if i < len(trueCoefficients) {
				fmt.Fprintf(w, "\t%.4f", trueCoefficients[i])
			} else {
				fmt.Fprint(w, "\t-")
			}
		}
		for _, r := range results {
			if i < len(r.Coefficients) {
				fmt.Fprintf(w, "\t%.4f", r.Coefficients[i])
			} else {
				fmt.Fprint(w, "\t-")
			}
			if i < len(r.StandardErrors) {
				fmt.Fprintf(w, "\t%.4f", r.StandardErrors[i])
			} else {
				fmt.Fprint(w, "\t-")
			}
		}
		fmt.Fprintln(w)
	}

	fmt.Fprint(w, "sigma")
	if trueCoefficients != nil {
		fmt.Fprint(w, "\t")
	}
	for _, r := range results {
		fmt.Fprintf(w, "\t%.4f\t", r.NoiseScale)
	}
	fmt.Fprintln(w)

	fmt.Fprint(w, "log-likelihood")
	if trueCoefficients != nil {
		fmt.Fprint(w, "\t")
	}
	for _, r := range results {
		fmt.Fprintf(w, "\t%.4f\t", r.LogLikelihood)
	}
	fmt.Fprintln(w)

	w.Flush()
	return sb.String()
}

// ResidualStats summarizes the residual distribution of a fitted model.
type ResidualStats struct {
	Mean   float64
	Median float64
	StdDev float64
	Min    float64
	Max    float64
}

func (s ResidualStats) String() string {
	return fmt.Sprintf("residuals: mean=%.5f median=%.5f sd=%.5f min=%.5f max=%.5f",
		s.Mean, s.Median, s.StdDev, s.Min, s.Max)
}

// ResidualSummary computes descriptive statistics of y − X·coef.
func ResidualSummary(ds *dataset.Dataset, coef []float64) (ResidualStats, error) {
	resid, err := ds.Residuals(coef)
	if err != nil {
		return ResidualStats{}, err
	}

	data := resid.RawVector().Data

	var out ResidualStats
	if out.Mean, err = stats.Mean(data); err != nil {
		return ResidualStats{}, errors.Wrap(err, "inference.ResidualSummary")
	}
	if out.Median, err = stats.Median(data); err != nil {
		return ResidualStats{}, errors.Wrap(err, "inference.ResidualSummary")
	}
	if out.StdDev, err = stats.StandardDeviationSample(data); err != nil {
		return ResidualStats{}, errors.Wrap(err, "inference.ResidualSummary")
	}
	if out.Min, err = stats.Min(data); err != nil {
		return ResidualStats{}, errors.Wrap(err, "inference.ResidualSummary")
	}
	if out.Max, err = stats.Max(data); err != nil {
		return ResidualStats{}, errors.Wrap(err, "inference.ResidualSummary")
	}
	return out, nil
}
