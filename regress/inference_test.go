package regress

import (
	"math/rand/v2"
	"testing"

	mat_ "github.com/quantfolio/econometrics/mat"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestSummary(t *testing.T) {
	rng := rand.New(rand.NewPCG(11, 0))

	n := 500
	rows := make([][]float64, n)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		xi := rng.Float64() * 4.0
		zi := rng.Float64()
		rows[i] = []float64{1, xi, zi}
		// z carries no signal
		y[i] = 2.0 + 3.0*xi + rng.NormFloat64()*0.5
	}
	x, err := mat_.NewDenseFromArray(rows)
	require.Nil(t, err)

	model, err := NewOLSRegression(nil)
	require.Nil(t, err)
	require.Nil(t, model.Fit(x, mat.NewDense(n, 1, y)))

	for _, kind := range []CovarianceKind{IID, White, NeweyWest} {
		stats, err := model.Summary(kind, 2)
		require.Nil(t, err)
		require.Len(t, stats, 3)

		// strong signal on the slope
		assert.InDelta(t, 3.0, stats[1].Estimate, 0.1)
		assert.Greater(t, stats[1].TStat, 10.0, "kind %s", kind)
		assert.Less(t, stats[1].PValue, 1e-6, "kind %s", kind)

		// no signal on z
		assert.Greater(t, stats[2].PValue, 0.001, "kind %s", kind)

		for i, cs := range stats {
			assert.Greater(t, cs.StdErr, 0.0, "kind %s coefficient %d", kind, i)
			assert.GreaterOrEqual(t, cs.PValue, 0.0)
			assert.LessOrEqual(t, cs.PValue, 1.0)
		}
	}
}
