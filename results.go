package econometrics

import (
	"github.com/quantfolio/econometrics/portfolio"
	"github.com/quantfolio/econometrics/regress"
)

// Results holds the output of a portfolio sort study. The Sort field keeps
// the raw per-period basket series and is excluded from the JSON form since
// its head entries are NaN.
type Results struct {
	Hi        *portfolio.Performance `json:"hi"`
	Lo        *portfolio.Performance `json:"lo"`
	Spread    *portfolio.Performance `json:"spread"`
	Benchmark *portfolio.Performance `json:"benchmark"`

	SpreadStat *regress.CoefficientStat `json:"spread_stat"`

	Sort *portfolio.SortResult `json:"-"`
}
