// Package regress implements ordinary least squares estimation with
// interchangeable coefficient covariance estimators: the classical iid
// estimator, White's heteroskedasticity-robust estimator, and the
// Newey-West heteroskedasticity-and-autocorrelation-robust estimator.
package regress

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// OLSOptions represents input options to run the OLS Regression
type OLSOptions struct {
	// FitIntercept adds a constant 1.0 feature as the first column if set to true.
	// Defaults to false since econometric design matrices usually carry an
	// explicit constant column.
	FitIntercept bool
}

// Validate runs basic validation on OLS options
func (o *OLSOptions) Validate() (*OLSOptions, error) {
	if o == nil {
		o = NewDefaultOLSOptions()
	}

	return o, nil
}

// NewDefaultOLSOptions returns a default set of OLS Regression options
func NewDefaultOLSOptions() *OLSOptions {
	return &OLSOptions{
		FitIntercept: false,
	}
}

// OLSRegression computes ordinary least squares through the normal
// equations, b = (XᵗX)⁻¹XᵗY, keeping the pieces the covariance estimators
// need: residuals, fitted values and the inverted XᵗX.
type OLSRegression struct {
	opt *OLSOptions

	beta      []float64
	residuals []float64
	fitted    []float64
	rsq       float64

	design *mat.Dense
	xtxInv *mat.Dense
}

// NewOLSRegression initializes an ordinary least squares model ready for fitting
func NewOLSRegression(opt *OLSOptions) (*OLSRegression, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}
	return &OLSRegression{
		opt: opt,
	}, nil
}

// Fit the model according to the given training data. The target matrix y
// must be a single column with the same number of rows as x. A rank
// deficient design matrix surfaces ErrSingularMatrix; the estimator never
// regularizes.
func (o *OLSRegression) Fit(x, y mat.Matrix) error {
	if o.opt == nil {
		return ErrNoOptions
	}
	if x == nil {
		return ErrNoDesignMatrix
	}
	if y == nil {
		return ErrNoTargetMatrix
	}
	m, n := x.Dims()

	ym, _ := y.Dims()
	if ym != m {
		return fmt.Errorf("design matrix has %d rows and target has %d rows, %w", m, ym, ErrTargetLenMismatch)
	}

	if o.opt.FitIntercept {
		ones := make([]float64, m)
		floats.AddConst(1.0, ones)
		onesMx := mat.NewDense(1, m, ones)
		xT := x.T()

		var xWithOnes mat.Dense
		xWithOnes.Stack(onesMx, xT)
		x = xWithOnes.T()
		_, n = x.Dims()
	}

	if m < n {
		return fmt.Errorf("%d observations for %d regressors, %w", m, n, ErrInsufficientObservations)
	}

	design := mat.DenseCopyOf(x)

	var xtx mat.Dense
	xtx.Mul(design.T(), design)

	xtxInv := new(mat.Dense)
	if err := xtxInv.Inverse(&xtx); err != nil {
		return fmt.Errorf("inverting normal equations, %w", ErrSingularMatrix)
	}

	var xty mat.Dense
	xty.Mul(design.T(), y)

	var b mat.Dense
	b.Mul(xtxInv, &xty)

	beta := mat.Col(nil, 0, &b)

	var fittedMx mat.Dense
	fittedMx.Mul(design, &b)
	fitted := mat.Col(nil, 0, &fittedMx)

	ySlice := mat.Col(nil, 0, y)
	residuals := make([]float64, m)
	floats.SubTo(residuals, ySlice, fitted)

	o.beta = beta
	o.residuals = residuals
	o.fitted = fitted
	o.rsq = stat.RSquaredFrom(fitted, ySlice, nil)
	o.design = design
	o.xtxInv = xtxInv

	return nil
}

// Predict using the OLS model
func (o *OLSRegression) Predict(x mat.Matrix) ([]float64, error) {
	if o.opt == nil {
		return nil, ErrNoOptions
	}
	if x == nil {
		return nil, ErrNoDesignMatrix
	}
	if o.beta == nil {
		return nil, ErrNotFitted
	}

	if o.opt.FitIntercept {
		m, _ := x.Dims()
		ones := make([]float64, m)
		floats.AddConst(1.0, ones)
		onesMx := mat.NewDense(1, m, ones)
		xT := x.T()

		var xWithOnes mat.Dense
		xWithOnes.Stack(onesMx, xT)
		x = xWithOnes.T()
	}
	n := len(o.beta)

	xT := x.T()
	xn, _ := xT.Dims()
	if xn != n {
		return nil, fmt.Errorf("got %d features in design matrix, but expected %d, %w", xn, n, ErrFeatureLenMismatch)
	}
	coefMx := mat.NewDense(1, n, o.beta)

	var res mat.Dense
	res.Mul(coefMx, xT)
	return res.RawRowView(0), nil
}

// Score computes the coefficient of determination of the prediction
func (o *OLSRegression) Score(x, y mat.Matrix) (float64, error) {
	if o.opt == nil {
		return 0.0, ErrNoOptions
	}
	if x == nil {
		return 0.0, ErrNoDesignMatrix
	}
	if y == nil {
		return 0.0, ErrNoTargetMatrix
	}

	m, _ := x.Dims()

	ym, _ := y.Dims()
	if m != ym {
		return 0.0, fmt.Errorf("design matrix has %d rows and target has %d rows, %w", m, ym, ErrTargetLenMismatch)
	}

	res, err := o.Predict(x)
	if err != nil {
		return 0.0, err
	}

	ySlice := mat.Col(nil, 0, y)

	return stat.RSquaredFrom(res, ySlice, nil), nil
}

// Intercept returns the computed intercept if FitIntercept is set to true. Defaults to 0.0 if not set.
func (o *OLSRegression) Intercept() float64 {
	if o.opt != nil && o.opt.FitIntercept && len(o.beta) > 0 {
		return o.beta[0]
	}
	return 0.0
}

// Coef returns a slice of the trained coefficients in the same order of the training feature Matrix by column.
// The intercept is excluded if FitIntercept is set to true.
func (o *OLSRegression) Coef() []float64 {
	beta := o.beta
	if o.opt != nil && o.opt.FitIntercept && len(beta) > 0 {
		beta = beta[1:]
	}
	c := make([]float64, len(beta))
	copy(c, beta)
	return c
}

// Residuals returns one value per training observation, target minus fitted.
func (o *OLSRegression) Residuals() []float64 {
	u := make([]float64, len(o.residuals))
	copy(u, o.residuals)
	return u
}

// Fitted returns the in-sample fitted values from the last Fit.
func (o *OLSRegression) Fitted() []float64 {
	f := make([]float64, len(o.fitted))
	copy(f, o.fitted)
	return f
}

// RSquared returns the in-sample coefficient of determination from the last Fit.
func (o *OLSRegression) RSquared() float64 {
	return o.rsq
}

// NumObs returns the number of training observations from the last Fit.
func (o *OLSRegression) NumObs() int {
	return len(o.residuals)
}

// NumRegressors returns the number of design matrix columns from the last
// Fit, including the intercept column if one was added.
func (o *OLSRegression) NumRegressors() int {
	return len(o.beta)
}

// CoefCovariance computes the coefficient covariance matrix from the last
// Fit using the requested estimator. Rows and columns are ordered like the
// fitted design matrix columns, intercept first if one was added. The lag
// count is only consumed by the Newey-West estimator.
func (o *OLSRegression) CoefCovariance(kind CovarianceKind, lag int) (*mat.SymDense, error) {
	if o.beta == nil {
		return nil, ErrNotFitted
	}
	return Covariance(kind, o.residuals, o.design, lag)
}

// StdErr computes per-coefficient standard errors, the square roots of the
// covariance matrix diagonal.
func (o *OLSRegression) StdErr(kind CovarianceKind, lag int) ([]float64, error) {
	cov, err := o.CoefCovariance(kind, lag)
	if err != nil {
		return nil, err
	}
	return stdErrFromCovariance(cov), nil
}
