package dataset

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// GenerateReturns simulates a periods×assets matrix of iid normal returns
// with the given per-period standard deviation and a mild positive drift
// that grows with the asset column, so higher columns tend to rank higher
// in a momentum sort.
func GenerateReturns(periods, assets int, scale float64, rng *rand.Rand) *mat.Dense {
	out := mat.NewDense(periods, assets, nil)
	for t := 0; t < periods; t++ {
		for a := 0; a < assets; a++ {
			drift := 0.1 * scale * float64(a) / float64(assets)
			out.Set(t, a, drift+rng.NormFloat64()*scale)
		}
	}
	return out
}

// GenerateRiskFree builds a constant per-period risk free series.
func GenerateRiskFree(periods int, rate float64) []float64 {
	out := make([]float64, periods)
	floats.AddConst(rate, out)
	return out
}

// GeneratePanel simulates a balanced panel with per-group random intercepts
// on top of the shared coefficients. coef is aligned with a design matrix
// carrying a constant first column; the remaining columns are uniform
// draws on [0, 10).
func GeneratePanel(numGroups, periods int, coef []float64, noise float64, rng *rand.Rand) ([]float64, *mat.Dense, []int) {
	nt := numGroups * periods
	k := len(coef)

	y := make([]float64, 0, nt)
	groups := make([]int, 0, nt)
	x := mat.NewDense(nt, k, nil)

	i := 0
	for g := 0; g < numGroups; g++ {
		alpha := rng.NormFloat64()
		for p := 0; p < periods; p++ {
			x.Set(i, 0, 1.0)
			val := coef[0] + alpha
			for j := 1; j < k; j++ {
				xv := rng.Float64() * 10.0
				x.Set(i, j, xv)
				val += coef[j] * xv
			}
			y = append(y, val+rng.NormFloat64()*noise)
			groups = append(groups, g)
			i++
		}
	}
	return y, x, groups
}
