package portfolio

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// Performance summarizes a return series net of the risk free rate. Mean
// and StdDev are per period; Sharpe is annualized, mean scaled by the
// annualization factor and standard deviation by its square root.
type Performance struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Sharpe float64 `json:"sharpe"`
}

// NewPerformance computes the performance summary of a return series over
// an aligned risk free series. A nil riskFree is treated as zero. NaN
// return entries mark periods without a signal and are skipped.
func NewPerformance(returns, riskFree []float64, annualization float64) (*Performance, error) {
	if riskFree != nil && len(riskFree) != len(returns) {
		return nil, fmt.Errorf("risk free has length %d and returns %d, %w", len(riskFree), len(returns), ErrRiskFreeLenMismatch)
	}
	if annualization <= 0.0 {
		return nil, fmt.Errorf("annualization %f, %w", annualization, ErrInvalidAnnualization)
	}

	excess := make([]float64, 0, len(returns))
	for i, r := range returns {
		if math.IsNaN(r) {
			continue
		}
		rf := 0.0
		if riskFree != nil {
			if math.IsNaN(riskFree[i]) {
				continue
			}
			rf = riskFree[i]
		}
		excess = append(excess, r-rf)
	}
	if len(excess) < 2 {
		return nil, fmt.Errorf("%d usable periods, %w", len(excess), ErrNoObservations)
	}

	mean, std := stat.MeanStdDev(excess, nil)
	return &Performance{
		Mean:   mean,
		StdDev: std,
		Sharpe: mean * annualization / (std * math.Sqrt(annualization)),
	}, nil
}
