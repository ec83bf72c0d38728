package econometrics

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/quantfolio/econometrics/dataset"
	mat_ "github.com/quantfolio/econometrics/mat"
	"github.com/quantfolio/econometrics/portfolio"
	"github.com/quantfolio/econometrics/regress"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestNewValidation(t *testing.T) {
	testData := map[string]struct {
		opt *Options
		err error
	}{
		"nil options": {nil, nil},
		"explicit options": {
			&Options{
				SortOptions:   portfolio.NewDefaultSortOptions(),
				Annualization: 252.0,
				Covariance:    regress.White,
			}, nil,
		},
		"bad annualization": {
			&Options{
				SortOptions:   portfolio.NewDefaultSortOptions(),
				Annualization: -1.0,
			}, portfolio.ErrInvalidAnnualization,
		},
		"bad basket size": {
			&Options{
				SortOptions:   &portfolio.SortOptions{BasketSize: 0, Lookback: 1},
				Annualization: 252.0,
			}, portfolio.ErrInvalidBasketSize,
		},
		"negative lag": {
			&Options{
				SortOptions:   portfolio.NewDefaultSortOptions(),
				Annualization: 252.0,
				Covariance:    regress.NeweyWest,
				NeweyWestLag:  -1,
			}, regress.ErrInvalidLag,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			s, err := New(td.opt)
			if td.err != nil {
				require.ErrorIs(t, err, td.err)
				return
			}
			require.Nil(t, err)
			require.NotNil(t, s)
		})
	}
}

func TestStudyRunFixture(t *testing.T) {
	returns, err := mat_.NewDenseFromArray([][]float64{
		{0.01, 0.02, 0.03, 0.04},
		{0.02, 0.04, 0.07, 0.08},
		{0.03, 0.01, 0.02, 0.05},
	})
	require.Nil(t, err)

	study, err := New(&Options{
		SortOptions:   &portfolio.SortOptions{BasketSize: 2, Lookback: 1},
		Annualization: 252.0,
		Covariance:    regress.IID,
	})
	require.Nil(t, err)

	res, err := study.Run(returns, nil)
	require.Nil(t, err)

	// period 1 holds assets {2, 3} hi and {0, 1} lo off the period-0
	// ranking; period 2 re-ranks on period-1 returns
	assert.InDelta(t, 0.055, res.Hi.Mean, 1e-12)
	assert.InDelta(t, 0.025, res.Lo.Mean, 1e-12)
	assert.InDelta(t, 0.030, res.Spread.Mean, 1e-12)
	assert.InDelta(t, 0.040, res.Benchmark.Mean, 1e-12)

	require.NotNil(t, res.SpreadStat)
	assert.InDelta(t, 0.030, res.SpreadStat.Estimate, 1e-12)
	assert.InDelta(t, 0.015, res.SpreadStat.StdErr, 1e-12)

	require.NotNil(t, res.Sort)
	assert.Equal(t, []int{2, 3}, res.Sort.HiAssets[1])
	assert.Equal(t, []int{0, 1}, res.Sort.LoAssets[1])
	assert.True(t, math.IsNaN(res.Sort.Hi[0]))
}

func TestStudyRunSimulated(t *testing.T) {
	rng := rand.New(rand.NewPCG(9, 0))
	returns := dataset.GenerateReturns(400, 12, 0.02, rng)
	riskFree := dataset.GenerateRiskFree(400, 0.0001)

	study, err := New(&Options{
		SortOptions:   portfolio.NewDefaultSortOptions(),
		Annualization: 252.0,
		Covariance:    regress.NeweyWest,
		NeweyWestLag:  5,
	})
	require.Nil(t, err)

	res, err := study.Run(returns, riskFree)
	require.Nil(t, err)

	// regressing the spread on a constant recovers its mean exactly
	assert.InDelta(t, res.Spread.Mean, res.SpreadStat.Estimate, 1e-12)
	assert.Greater(t, res.SpreadStat.StdErr, 0.0)
	assert.GreaterOrEqual(t, res.SpreadStat.PValue, 0.0)
	assert.LessOrEqual(t, res.SpreadStat.PValue, 1.0)

	for _, p := range []*portfolio.Performance{res.Hi, res.Lo, res.Spread, res.Benchmark} {
		require.NotNil(t, p)
		assert.False(t, math.IsNaN(p.Sharpe))
	}
}

func TestStudyRunErrors(t *testing.T) {
	returns := mat.NewDense(3, 4, []float64{
		0.01, 0.02, 0.03, 0.04,
		0.02, 0.04, 0.07, 0.08,
		0.03, 0.01, 0.02, 0.05,
	})

	testData := map[string]struct {
		returns  mat.Matrix
		riskFree []float64
		err      error
	}{
		"nil returns":        {nil, nil, portfolio.ErrNoReturns},
		"too few assets":     {returns, nil, portfolio.ErrTooFewAssets},
		"risk free mismatch": {returns, []float64{0.0001}, portfolio.ErrRiskFreeLenMismatch},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			opt := NewDefaultOptions()
			opt.Annualization = 252.0
			if name != "too few assets" {
				opt.SortOptions = &portfolio.SortOptions{BasketSize: 2, Lookback: 1}
			}

			study, err := New(opt)
			require.Nil(t, err)

			_, err = study.Run(td.returns, td.riskFree)
			require.ErrorIs(t, err, td.err)
		})
	}
}

func TestRegressionSummary(t *testing.T) {
	n := 8
	x := mat.NewDense(n, 2, nil)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		x.Set(i, 0, 1.0)
		x.Set(i, 1, float64(i))
		noise := 0.01
		if i%2 == 1 {
			noise = -0.01
		}
		y[i] = 1.0 + 2.0*float64(i) + noise
	}

	stats, err := RegressionSummary(y, x, regress.IID, 0)
	require.Nil(t, err)
	require.Len(t, stats, 2)

	assert.InDelta(t, 1.0, stats[0].Estimate, 0.05)
	assert.InDelta(t, 2.0, stats[1].Estimate, 0.01)
	assert.Less(t, stats[1].PValue, 1e-6)
}

func TestRegressionSummaryErrors(t *testing.T) {
	_, err := RegressionSummary([]float64{1, 2}, nil, regress.IID, 0)
	require.ErrorIs(t, err, regress.ErrNoDesignMatrix)

	x := mat.NewDense(3, 1, []float64{1, 1, 1})
	_, err = RegressionSummary([]float64{1, 2}, x, regress.IID, 0)
	require.ErrorIs(t, err, regress.ErrTargetLenMismatch)
}
