package dataset

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestGenerateReturns(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 0))
	returns := GenerateReturns(100, 8, 0.02, rng)

	m, n := returns.Dims()
	assert.Equal(t, 100, m)
	assert.Equal(t, 8, n)

	rngAgain := rand.New(rand.NewPCG(1, 0))
	again := GenerateReturns(100, 8, 0.02, rngAgain)
	assert.True(t, mat.Equal(returns, again), "same seed must reproduce the draw")
}

func TestGenerateRiskFree(t *testing.T) {
	rf := GenerateRiskFree(5, 0.0001)
	require.Len(t, rf, 5)
	for _, v := range rf {
		assert.Equal(t, 0.0001, v)
	}
}

func TestGeneratePanel(t *testing.T) {
	rng := rand.New(rand.NewPCG(2, 0))
	coef := []float64{1.0, 2.0, -0.5}

	y, x, groups := GeneratePanel(6, 10, coef, 0.1, rng)

	require.Len(t, y, 60)
	require.Len(t, groups, 60)
	m, n := x.Dims()
	assert.Equal(t, 60, m)
	assert.Equal(t, 3, n)

	// constant first column and individual-then-time group layout
	for i := 0; i < m; i++ {
		assert.Equal(t, 1.0, x.At(i, 0), "row %d", i)
		assert.Equal(t, i/10, groups[i], "row %d", i)
	}
}
