// Package resample implements bootstrap resampling of OLS coefficient
// estimates: an independent-observation bootstrap and a contiguous-block
// bootstrap that preserves short-range autocorrelation in the residuals.
//
// Both engines consume an explicit random source and never seed it; results
// are bit-for-bit reproducible given a recorded seed because draws are
// consumed in a fixed order, one per synthetic observation for the
// independent bootstrap and one per block start for the block bootstrap.
package resample

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"

	mat_ "github.com/quantfolio/econometrics/mat"
	"github.com/quantfolio/econometrics/regress"
)

// Bootstrap re-estimates the OLS coefficients numSim times on synthetic
// samples ỹ = Xb̂ + ũ where ũ gathers the fit residuals at T indices drawn
// independently and uniformly with replacement. Returns a numSim×K matrix
// with one re-estimated coefficient vector per row. The run aborts on the
// first estimation failure rather than skipping the bad draw.
func Bootstrap(y []float64, x mat.Matrix, coef, residuals []float64, numSim int, rng *rand.Rand) (*mat.Dense, error) {
	numObs, err := validateInputs(y, x, coef, residuals, numSim, rng)
	if err != nil {
		return nil, err
	}

	idx := make([]int, numObs)
	return simulate(x, coef, residuals, numSim, func() []int {
		for i := range idx {
			idx[i] = rng.IntN(numObs)
		}
		return idx
	})
}

// BlockBootstrap is the contiguous-block variant of Bootstrap: synthetic
// residuals are gathered block by block via DrawBlocks so short-range
// autocorrelation survives the resampling.
func BlockBootstrap(y []float64, x mat.Matrix, coef, residuals []float64, blockSize, numSim int, rng *rand.Rand) (*mat.Dense, error) {
	numObs, err := validateInputs(y, x, coef, residuals, numSim, rng)
	if err != nil {
		return nil, err
	}
	if blockSize <= 0 {
		return nil, fmt.Errorf("block size %d, %w", blockSize, ErrInvalidBlockSize)
	}

	return simulate(x, coef, residuals, numSim, func() []int {
		idx, _ := DrawBlocks(numObs, blockSize, rng)
		return idx
	})
}

// DrawBlocks generates exactly numObs row indices from ⌈numObs/blockSize⌉
// contiguous blocks. Each block begins at an independent uniform start and
// runs blockSize rows with cyclic wraparound past the last row. The
// concatenated sequence can exceed numObs, in which case the tail is
// truncated.
func DrawBlocks(numObs, blockSize int, rng *rand.Rand) ([]int, error) {
	if numObs <= 0 {
		return nil, fmt.Errorf("%d observations, %w", numObs, ErrNoObservations)
	}
	if blockSize <= 0 {
		return nil, fmt.Errorf("block size %d, %w", blockSize, ErrInvalidBlockSize)
	}
	if rng == nil {
		return nil, ErrNoRandSource
	}

	numBlocks := (numObs + blockSize - 1) / blockSize
	idx := make([]int, 0, numBlocks*blockSize)
	for b := 0; b < numBlocks; b++ {
		start := rng.IntN(numObs)
		idx = append(idx, blockIndices(start, blockSize, numObs)...)
	}
	return idx[:numObs], nil
}

// blockIndices expands one block start into its run of row indices, wrapping
// cyclically at numObs.
func blockIndices(start, blockSize, numObs int) []int {
	idx := make([]int, blockSize)
	for l := 0; l < blockSize; l++ {
		idx[l] = (start + l) % numObs
	}
	return idx
}

func validateInputs(y []float64, x mat.Matrix, coef, residuals []float64, numSim int, rng *rand.Rand) (int, error) {
	if x == nil {
		return 0, ErrNoDesignMatrix
	}
	if rng == nil {
		return 0, ErrNoRandSource
	}
	m, n := x.Dims()
	if m == 0 {
		return 0, ErrNoObservations
	}
	if len(y) != m {
		return 0, fmt.Errorf("target has length %d and design matrix has %d rows, %w", len(y), m, ErrTargetLenMismatch)
	}
	if len(coef) != n {
		return 0, fmt.Errorf("coefficients have length %d and design matrix has %d columns, %w", len(coef), n, ErrCoefLenMismatch)
	}
	if len(residuals) != m {
		return 0, fmt.Errorf("residuals have length %d and design matrix has %d rows, %w", len(residuals), m, ErrResidualLenMismatch)
	}
	if numSim <= 0 {
		return 0, fmt.Errorf("simulation count %d, %w", numSim, ErrInvalidSimCount)
	}
	return m, nil
}

func simulate(x mat.Matrix, coef, residuals []float64, numSim int, draw func() []int) (*mat.Dense, error) {
	m, n := x.Dims()

	var fittedMx mat.Dense
	fittedMx.Mul(x, mat.NewDense(n, 1, coef))
	fitted := mat.Col(nil, 0, &fittedMx)

	out := mat.NewDense(numSim, n, nil)
	yTilde := mat.NewDense(m, 1, nil)
	for s := 0; s < numSim; s++ {
		idx := draw()

		uTilde, err := mat_.GatherElems(residuals, idx)
		if err != nil {
			return nil, err
		}
		for i := 0; i < m; i++ {
			yTilde.Set(i, 0, fitted[i]+uTilde[i])
		}

		model, err := regress.NewOLSRegression(nil)
		if err != nil {
			return nil, err
		}
		if err := model.Fit(x, yTilde); err != nil {
			return nil, fmt.Errorf("simulation %d, %w", s, err)
		}
		out.SetRow(s, model.Coef())
	}
	return out, nil
}
