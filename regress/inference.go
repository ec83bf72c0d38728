package regress

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// CoefficientStat holds the per-coefficient inference results for a fitted
// regression.
type CoefficientStat struct {
	Estimate float64 `json:"estimate"`
	StdErr   float64 `json:"std_err"`
	TStat    float64 `json:"t_stat"`
	PValue   float64 `json:"p_value"`
}

// Summary computes per-coefficient standard errors, t-statistics and
// two-sided p-values under the requested covariance estimator. P-values use
// a Student's t distribution with T−K degrees of freedom. Ordering matches
// the fitted design matrix columns.
func (o *OLSRegression) Summary(kind CovarianceKind, lag int) ([]CoefficientStat, error) {
	if o.beta == nil {
		return nil, ErrNotFitted
	}

	se, err := o.StdErr(kind, lag)
	if err != nil {
		return nil, err
	}

	dof := float64(o.NumObs() - o.NumRegressors())
	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: dof}

	stats := make([]CoefficientStat, len(o.beta))
	for i, b := range o.beta {
		tStat := b / se[i]
		stats[i] = CoefficientStat{
			Estimate: b,
			StdErr:   se[i],
			TStat:    tStat,
			PValue:   2.0 * tDist.CDF(-math.Abs(tStat)),
		}
	}
	return stats, nil
}
