// Package portfolio implements a cross-sectional portfolio sort strategy:
// at each period assets are ranked on their lagged returns, the top and
// bottom baskets are held equal weighted over the next period, and the
// resulting return series are summarized with annualized Sharpe ratios.
package portfolio

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// SortOptions represents input options for the portfolio sort.
type SortOptions struct {
	// BasketSize is the number of assets held in each of the Hi and Lo
	// baskets.
	BasketSize int

	// Lookback is the offset in periods between the ranking signal and the
	// realized return, so weights formed at t-Lookback earn the period-t
	// return and no look-ahead occurs.
	Lookback int
}

// Validate runs basic validation on sort options
func (o *SortOptions) Validate() (*SortOptions, error) {
	if o == nil {
		o = NewDefaultSortOptions()
	}
	if o.BasketSize <= 0 {
		return nil, fmt.Errorf("basket size %d, %w", o.BasketSize, ErrInvalidBasketSize)
	}
	if o.Lookback <= 0 {
		return nil, fmt.Errorf("lookback %d, %w", o.Lookback, ErrInvalidLookback)
	}
	return o, nil
}

// NewDefaultSortOptions returns a default set of portfolio sort options
func NewDefaultSortOptions() *SortOptions {
	return &SortOptions{
		BasketSize: 5,
		Lookback:   1,
	}
}

// SortResult holds the per-period returns of the Hi and Lo baskets along
// with the asset columns each basket held. Entries before the first period
// with a ranking signal are NaN (nil for the basket slices).
type SortResult struct {
	Hi []float64 `json:"hi"`
	Lo []float64 `json:"lo"`

	HiAssets [][]int `json:"hi_assets"`
	LoAssets [][]int `json:"lo_assets"`
}

// Sort ranks the assets at every period t on their period t-Lookback
// returns, holds the bottom BasketSize assets as the Lo basket and the top
// BasketSize as the Hi basket, each equal weighted, and realizes the
// period-t returns. Ranking uses a stable ascending sort, so ties keep the
// original asset column order.
func Sort(returns mat.Matrix, opt *SortOptions) (*SortResult, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}
	if returns == nil {
		return nil, ErrNoReturns
	}

	m, n := returns.Dims()
	if n < 2*opt.BasketSize {
		return nil, fmt.Errorf("%d assets for baskets of %d, %w", n, opt.BasketSize, ErrTooFewAssets)
	}
	if m <= opt.Lookback {
		return nil, fmt.Errorf("%d periods with lookback %d, %w", m, opt.Lookback, ErrTooFewPeriods)
	}

	res := &SortResult{
		Hi:       make([]float64, m),
		Lo:       make([]float64, m),
		HiAssets: make([][]int, m),
		LoAssets: make([][]int, m),
	}
	for t := 0; t < opt.Lookback; t++ {
		res.Hi[t] = math.NaN()
		res.Lo[t] = math.NaN()
	}

	order := make([]int, n)
	for t := opt.Lookback; t < m; t++ {
		signal := mat.Row(nil, t-opt.Lookback, returns)

		for i := range order {
			order[i] = i
		}
		sort.SliceStable(order, func(a, b int) bool {
			return signal[order[a]] < signal[order[b]]
		})

		lo := append([]int(nil), order[:opt.BasketSize]...)
		hi := append([]int(nil), order[n-opt.BasketSize:]...)

		res.Lo[t] = basketReturn(returns, t, lo)
		res.Hi[t] = basketReturn(returns, t, hi)
		res.LoAssets[t] = lo
		res.HiAssets[t] = hi
	}
	return res, nil
}

// basketReturn is the equal weighted period-t return over the basket
// columns, weight 1/len(assets) each.
func basketReturn(returns mat.Matrix, t int, assets []int) float64 {
	sum := 0.0
	for _, a := range assets {
		sum += returns.At(t, a)
	}
	return sum / float64(len(assets))
}
