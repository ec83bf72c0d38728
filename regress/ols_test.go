package regress

import (
	"testing"

	mat_ "github.com/quantfolio/econometrics/mat"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestOLSOptionsValidate(t *testing.T) {
	testData := map[string]struct {
		opt      *OLSOptions
		err      error
		expected *OLSOptions
	}{
		"nil": {nil, nil, NewDefaultOLSOptions()},
		"valid": {
			&OLSOptions{
				FitIntercept: true,
			}, nil,
			&OLSOptions{
				FitIntercept: true,
			},
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			opt, err := td.opt.Validate()
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			require.Nil(t, err)
			assert.Equal(t, td.expected, opt)
		})
	}
}

func TestOLSRegressionFit(t *testing.T) {
	tol := 1e-8
	testData := map[string]struct {
		x    [][]float64
		y    []float64
		opt  *OLSOptions
		err  error
		beta []float64
		rsq  float64
	}{
		"exact linear model with explicit constant": {
			x: [][]float64{
				{1, 0},
				{1, 1},
				{1, 2},
				{1, 3},
				{1, 4},
			},
			y:    []float64{2, 5, 8, 11, 14},
			beta: []float64{2.0, 3.0},
			rsq:  1.0,
		},
		"exact model with intercept option": {
			x: [][]float64{
				{0, 0},
				{3, 5},
				{9, 20},
				{12, 6},
				{15, 10},
			},
			y:    []float64{2, 31, 109, 62, 87},
			opt:  &OLSOptions{FitIntercept: true},
			beta: []float64{3.0, 4.0},
			rsq:  1.0,
		},
		"collinear design": {
			x: [][]float64{
				{1, 2, 4},
				{1, 3, 6},
				{1, 4, 8},
				{1, 5, 10},
			},
			y:   []float64{1, 2, 3, 4},
			err: ErrSingularMatrix,
		},
		"more regressors than observations": {
			x: [][]float64{
				{1, 2, 3},
				{1, 3, 5},
			},
			y:   []float64{1, 2},
			err: ErrInsufficientObservations,
		},
		"target length mismatch": {
			x: [][]float64{
				{1, 2},
				{1, 3},
				{1, 4},
			},
			y:   []float64{1, 2},
			err: ErrTargetLenMismatch,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			x, err := mat_.NewDenseFromArray(td.x)
			require.Nil(t, err)
			y := mat.NewDense(len(td.y), 1, td.y)

			model, err := NewOLSRegression(td.opt)
			require.Nil(t, err)

			err = model.Fit(x, y)
			if td.err != nil {
				require.ErrorIs(t, err, td.err)
				return
			}
			require.Nil(t, err)

			assert.InDeltaSlice(t, td.beta, model.Coef(), tol, "coefficients")
			assert.InDelta(t, td.rsq, model.RSquared(), tol, "r-squared")

			fitted := model.Fitted()
			residuals := model.Residuals()
			require.Len(t, fitted, len(td.y))
			require.Len(t, residuals, len(td.y))
			for i := range td.y {
				assert.InDelta(t, td.y[i], fitted[i]+residuals[i], tol, "fitted plus residual")
			}
		})
	}
}

func TestOLSRegressionRecoversTrueCoefficients(t *testing.T) {
	// noise-free targets generated from a chosen coefficient vector must be
	// recovered exactly up to floating point tolerance
	b0 := []float64{1.5, -2.0, 0.25}
	x, err := mat_.NewDenseFromArray([][]float64{
		{1, 0.5, 2.0},
		{1, 1.5, 0.0},
		{1, 2.5, 1.0},
		{1, 3.0, 4.0},
		{1, 4.5, 3.0},
		{1, 5.0, 7.0},
	})
	require.Nil(t, err)

	m, _ := x.Dims()
	y := mat.NewDense(m, 1, nil)
	bMx := mat.NewDense(len(b0), 1, b0)
	y.Mul(x, bMx)

	model, err := NewOLSRegression(nil)
	require.Nil(t, err)
	require.Nil(t, model.Fit(x, y))

	assert.InDeltaSlice(t, b0, model.Coef(), 1e-10)
	assert.InDelta(t, 1.0, model.RSquared(), 1e-10)
	for _, u := range model.Residuals() {
		assert.InDelta(t, 0.0, u, 1e-10)
	}
}

func TestOLSRegressionPredict(t *testing.T) {
	x, err := mat_.NewDenseFromArray([][]float64{
		{1, 1},
		{1, 2},
		{1, 3},
	})
	require.Nil(t, err)
	y := mat.NewDense(3, 1, []float64{3, 5, 7})

	model, err := NewOLSRegression(nil)
	require.Nil(t, err)
	require.Nil(t, model.Fit(x, y))

	xNew, err := mat_.NewDenseFromArray([][]float64{{1, 4}, {1, 5}})
	require.Nil(t, err)
	pred, err := model.Predict(xNew)
	require.Nil(t, err)
	assert.InDeltaSlice(t, []float64{9, 11}, pred, 1e-10)

	score, err := model.Score(x, y)
	require.Nil(t, err)
	assert.InDelta(t, 1.0, score, 1e-10)

	xBad, err := mat_.NewDenseFromArray([][]float64{{1, 4, 2}})
	require.Nil(t, err)
	_, err = model.Predict(xBad)
	require.ErrorIs(t, err, ErrFeatureLenMismatch)
}

func TestOLSRegressionNotFitted(t *testing.T) {
	model, err := NewOLSRegression(nil)
	require.Nil(t, err)

	_, err = model.CoefCovariance(IID, 0)
	require.ErrorIs(t, err, ErrNotFitted)

	_, err = model.Summary(IID, 0)
	require.ErrorIs(t, err, ErrNotFitted)

	x := mat.NewDense(1, 1, []float64{1})
	_, err = model.Predict(x)
	require.ErrorIs(t, err, ErrNotFitted)
}
