// Package econometrics runs portfolio sort studies end to end: rank assets
// on lagged returns, hold the extreme baskets, and summarize the resulting
// series with annualized performance statistics and a robust alpha test on
// the long-short spread.
package econometrics

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/quantfolio/econometrics/portfolio"
	"github.com/quantfolio/econometrics/regress"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Options represents input options to run a portfolio sort study
type Options struct {
	SortOptions *portfolio.SortOptions

	// Annualization is the number of periods per year used to scale Sharpe
	// ratios. Defaults to the trading day count of the current calendar year.
	Annualization float64

	// Covariance selects the estimator behind the spread alpha standard
	// error.
	Covariance regress.CovarianceKind

	// NeweyWestLag is the autocorrelation bandwidth consumed when Covariance
	// is set to NeweyWest.
	NeweyWestLag int
}

// Validate runs basic validation on study options
func (o *Options) Validate() (*Options, error) {
	if o == nil {
		o = NewDefaultOptions()
	}
	if _, err := o.SortOptions.Validate(); err != nil {
		return nil, fmt.Errorf("unable to validate sort options, %w", err)
	}
	if o.Annualization <= 0.0 {
		return nil, fmt.Errorf("annualization %f, %w", o.Annualization, portfolio.ErrInvalidAnnualization)
	}
	if o.NeweyWestLag < 0 {
		return nil, fmt.Errorf("newey-west lag %d, %w", o.NeweyWestLag, regress.ErrInvalidLag)
	}
	return o, nil
}

// NewDefaultOptions returns a default set of study options
func NewDefaultOptions() *Options {
	return &Options{
		SortOptions:   portfolio.NewDefaultSortOptions(),
		Annualization: portfolio.AnnualizationFactor(time.Now().Year()),
		Covariance:    regress.NeweyWest,
		NeweyWestLag:  5,
	}
}

// Study runs a portfolio sort over a panel of asset returns and can be
// reused across return panels with the same configuration.
type Study struct {
	opt *Options
}

// New creates a new instance of a Study using the provided options. If no
// options are provided a default is used.
func New(opt *Options) (*Study, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}
	return &Study{opt: opt}, nil
}

// Run sorts the returns panel into Hi and Lo baskets, computes annualized
// performance for both baskets, the long-short spread and an equal weighted
// benchmark over the same periods, and tests the spread mean against zero
// under the configured covariance estimator. The riskFree series may be nil
// and is only netted out of the Hi, Lo and benchmark legs since the spread
// is self financing.
func (s *Study) Run(returns mat.Matrix, riskFree []float64) (*Results, error) {
	sorted, err := portfolio.Sort(returns, s.opt.SortOptions)
	if err != nil {
		return nil, fmt.Errorf("unable to sort portfolios, %w", err)
	}

	m, n := returns.Dims()
	bench := make([]float64, m)
	spread := make([]float64, m)
	for t := 0; t < m; t++ {
		if math.IsNaN(sorted.Hi[t]) {
			bench[t] = math.NaN()
			spread[t] = math.NaN()
			continue
		}
		sum := 0.0
		for a := 0; a < n; a++ {
			sum += returns.At(t, a)
		}
		bench[t] = sum / float64(n)
		spread[t] = sorted.Hi[t] - sorted.Lo[t]
	}

	hi, err := portfolio.NewPerformance(sorted.Hi, riskFree, s.opt.Annualization)
	if err != nil {
		return nil, fmt.Errorf("unable to summarize hi basket, %w", err)
	}
	lo, err := portfolio.NewPerformance(sorted.Lo, riskFree, s.opt.Annualization)
	if err != nil {
		return nil, fmt.Errorf("unable to summarize lo basket, %w", err)
	}
	benchmark, err := portfolio.NewPerformance(bench, riskFree, s.opt.Annualization)
	if err != nil {
		return nil, fmt.Errorf("unable to summarize benchmark, %w", err)
	}
	spreadPerf, err := portfolio.NewPerformance(spread, nil, s.opt.Annualization)
	if err != nil {
		return nil, fmt.Errorf("unable to summarize spread, %w", err)
	}

	spreadStat, err := s.spreadStat(spread)
	if err != nil {
		return nil, fmt.Errorf("unable to test spread mean, %w", err)
	}

	return &Results{
		Hi:         hi,
		Lo:         lo,
		Spread:     spreadPerf,
		Benchmark:  benchmark,
		SpreadStat: spreadStat,
		Sort:       sorted,
	}, nil
}

// spreadStat regresses the spread on a constant. The estimate is the spread
// mean and the standard error comes from the configured covariance
// estimator, so serial correlation in the spread widens the test.
func (s *Study) spreadStat(spread []float64) (*regress.CoefficientStat, error) {
	obs := make([]float64, 0, len(spread))
	for _, v := range spread {
		if math.IsNaN(v) {
			continue
		}
		obs = append(obs, v)
	}

	ones := make([]float64, len(obs))
	floats.AddConst(1.0, ones)

	stats, err := RegressionSummary(obs, mat.NewDense(len(obs), 1, ones), s.opt.Covariance, s.opt.NeweyWestLag)
	if err != nil {
		return nil, err
	}
	return &stats[0], nil
}

// RegressionSummary fits an ordinary least squares regression of y on the
// design matrix x and returns the per-coefficient inference table under the
// requested covariance estimator. Fit failures are logged before returning.
func RegressionSummary(y []float64, x mat.Matrix, kind regress.CovarianceKind, lag int) ([]regress.CoefficientStat, error) {
	model, err := regress.NewOLSRegression(nil)
	if err != nil {
		return nil, err
	}

	if err := model.Fit(x, mat.NewDense(len(y), 1, y)); err != nil {
		slog.Error("unable to fit regression", "error", err, "num_obs", len(y))
		return nil, err
	}

	stats, err := model.Summary(kind, lag)
	if err != nil {
		slog.Error("unable to summarize regression", "error", err, "covariance", kind.String(), "lag", lag)
		return nil, err
	}
	return stats, nil
}
