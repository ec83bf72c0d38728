package econometrics

import (
	"math/rand/v2"
	"testing"

	"github.com/pkg/profile"
	"github.com/quantfolio/econometrics/dataset"
	"github.com/quantfolio/econometrics/portfolio"
	"github.com/quantfolio/econometrics/regress"
)

var benchRunRes *Results

func BenchmarkStudyRun(b *testing.B) {
	rng := rand.New(rand.NewPCG(11, 0))
	returns := dataset.GenerateReturns(2520, 100, 0.01, rng)
	riskFree := dataset.GenerateRiskFree(2520, 0.0001)

	study, err := New(&Options{
		SortOptions:   &portfolio.SortOptions{BasketSize: 10, Lookback: 1},
		Annualization: 252.0,
		Covariance:    regress.NeweyWest,
		NeweyWestLag:  5,
	})
	if err != nil {
		panic(err)
	}

	b.ResetTimer()
	defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	for b.Loop() {
		benchRunRes, err = study.Run(returns, riskFree)
		if err != nil {
			panic(err)
		}
	}
}
