package panel

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/quantfolio/econometrics/regress"
)

// FitResult holds the output of a panel estimator. Coef and StdErr are
// aligned with the regressor columns handed to the estimator; the fixed
// effects estimator drops the constant column, so its result has one fewer
// entry than the input regressor count.
type FitResult struct {
	Coef      []float64 `json:"coef"`
	StdErr    []float64 `json:"std_err"`
	Residuals []float64 `json:"-"`
	RSquared  float64   `json:"r_squared"`
	NumObs    int       `json:"num_obs"`
	NumGroups int       `json:"num_groups"`

	// Theta is the quasi-demeaning weight, only set by RandomEffects.
	Theta float64 `json:"theta,omitempty"`
}

// Estimators expect x to carry an explicit constant column at position 0.
const constCol = 0

// joint stacks the target as column 0 in front of the regressor columns so
// a single transform pass covers both.
func joint(y []float64, x mat.Matrix) (*mat.Dense, error) {
	if x == nil {
		return nil, ErrNoData
	}
	m, n := x.Dims()
	if len(y) != m {
		return nil, fmt.Errorf("target has length %d and regressors have %d rows, %w", len(y), m, ErrTargetLenMismatch)
	}

	out := mat.NewDense(m, n+1, nil)
	out.SetCol(0, y)
	for j := 0; j < n; j++ {
		col := mat.Col(nil, j, x)
		out.SetCol(j+1, col)
	}
	return out, nil
}

// split separates a joint matrix back into target and regressors, optionally
// dropping the constant column from the regressors.
func split(data *mat.Dense, dropConst bool) (*mat.Dense, *mat.Dense) {
	m, n := data.Dims()
	y := mat.NewDense(m, 1, mat.Col(nil, 0, data))

	start := 1
	if dropConst {
		start = 2
	}
	x := mat.NewDense(m, n-start, nil)
	for j := start; j < n; j++ {
		x.SetCol(j-start, mat.Col(nil, j, data))
	}
	return y, x
}

func fitOLS(y, x *mat.Dense) (*regress.OLSRegression, error) {
	model, err := regress.NewOLSRegression(nil)
	if err != nil {
		return nil, err
	}
	if err := model.Fit(x, y); err != nil {
		return nil, err
	}
	return model, nil
}

func resultFromModel(model *regress.OLSRegression, numGroups int) (*FitResult, error) {
	se, err := model.StdErr(regress.IID, 0)
	if err != nil {
		return nil, err
	}
	return &FitResult{
		Coef:      model.Coef(),
		StdErr:    se,
		Residuals: model.Residuals(),
		RSquared:  model.RSquared(),
		NumObs:    model.NumObs(),
		NumGroups: numGroups,
	}, nil
}

// Pooled estimates the pooled OLS model, ignoring the panel structure
// beyond reporting the group count.
func Pooled(y []float64, x mat.Matrix, groups []int) (*FitResult, error) {
	data, err := joint(y, x)
	if err != nil {
		return nil, err
	}
	if _, _, err := validate(data, groups); err != nil {
		return nil, err
	}

	yMx, xMx := split(data, false)
	model, err := fitOLS(yMx, xMx)
	if err != nil {
		return nil, err
	}
	return resultFromModel(model, len(partition(groups)))
}

// FixedEffects estimates the within estimator: both target and regressors
// are demeaned per group, the constant column is dropped (demeaning
// annihilates it) and the iid coefficient covariance is rescaled by
// (NT−K)/(NT−N−K) to restore the residual degrees of freedom absorbed by
// the N group means.
func FixedEffects(y []float64, x mat.Matrix, groups []int) (*FitResult, error) {
	data, err := joint(y, x)
	if err != nil {
		return nil, err
	}

	demeaned, err := Within(data, groups)
	if err != nil {
		return nil, err
	}

	numGroups := len(partition(groups))
	yMx, xMx := split(demeaned, true)

	nt, k := xMx.Dims()
	dof := nt - numGroups - k
	if dof <= 0 {
		return nil, fmt.Errorf("%d observations, %d groups, %d regressors, %w", nt, numGroups, k, ErrInsufficientObservations)
	}

	model, err := fitOLS(yMx, xMx)
	if err != nil {
		return nil, err
	}

	cov, err := model.CoefCovariance(regress.IID, 0)
	if err != nil {
		return nil, err
	}
	scale := float64(nt-k) / float64(dof)

	se := make([]float64, k)
	for i := 0; i < k; i++ {
		se[i] = math.Sqrt(cov.At(i, i) * scale)
	}

	return &FitResult{
		Coef:      model.Coef(),
		StdErr:    se,
		Residuals: model.Residuals(),
		RSquared:  model.RSquared(),
		NumObs:    nt,
		NumGroups: numGroups,
	}, nil
}

// BetweenGroups estimates a cross-sectional OLS on the per-group means.
func BetweenGroups(y []float64, x mat.Matrix, groups []int) (*FitResult, error) {
	data, err := joint(y, x)
	if err != nil {
		return nil, err
	}

	means, err := Between(data, groups)
	if err != nil {
		return nil, err
	}

	numGroups, _ := means.Dims()
	_, k := x.Dims()
	if numGroups <= k {
		return nil, fmt.Errorf("%d groups for %d regressors, %w", numGroups, k, ErrInsufficientGroups)
	}

	yMx, xMx := split(means, false)
	model, err := fitOLS(yMx, xMx)
	if err != nil {
		return nil, err
	}
	return resultFromModel(model, numGroups)
}

// FirstDifferences estimates OLS on the per-group first differences. The
// constant column is forced back to literal 1 after differencing, so the
// reported constant coefficient measures a common trend.
func FirstDifferences(y []float64, x mat.Matrix, groups []int) (*FitResult, error) {
	data, err := joint(y, x)
	if err != nil {
		return nil, err
	}

	// the joint matrix carries y at column 0, shifting the constant to 1
	diffed, err := FirstDifference(data, groups, constCol+1)
	if err != nil {
		return nil, err
	}

	yMx, xMx := split(diffed, false)
	model, err := fitOLS(yMx, xMx)
	if err != nil {
		return nil, err
	}
	return resultFromModel(model, len(partition(groups)))
}

// RandomEffects estimates a feasible GLS for the random effects model. The
// variance components come from the fixed effects regression (within
// variance) and the between regression (group variance); the method of
// moments between component is clamped at zero. The quasi-demeaning weight
// uses the balanced-panel formula with the average group size.
func RandomEffects(y []float64, x mat.Matrix, groups []int) (*FitResult, error) {
	data, err := joint(y, x)
	if err != nil {
		return nil, err
	}
	if _, _, err := validate(data, groups); err != nil {
		return nil, err
	}

	parts := partition(groups)
	numGroups := len(parts)
	nt, cols := x.Dims()
	k := cols - 1 // excluding the constant

	withinDof := nt - numGroups - k
	if withinDof <= 0 {
		return nil, fmt.Errorf("%d observations, %d groups, %d regressors, %w", nt, numGroups, k, ErrInsufficientObservations)
	}
	if numGroups <= cols {
		return nil, fmt.Errorf("%d groups for %d regressors, %w", numGroups, cols, ErrInsufficientGroups)
	}

	fe, err := FixedEffects(y, x, groups)
	if err != nil {
		return nil, err
	}
	s2e := floats.Dot(fe.Residuals, fe.Residuals) / float64(withinDof)

	between, err := BetweenGroups(y, x, groups)
	if err != nil {
		return nil, err
	}
	s2b := floats.Dot(between.Residuals, between.Residuals) / float64(numGroups-cols)

	tBar := float64(nt) / float64(numGroups)
	s2u := math.Max(0.0, s2b-s2e/tBar)

	theta := 1.0 - math.Sqrt(s2e)/math.Sqrt(tBar*s2u+s2e)

	demeaned, err := QuasiDemean(data, groups, theta)
	if err != nil {
		return nil, err
	}

	yMx, xMx := split(demeaned, false)
	model, err := fitOLS(yMx, xMx)
	if err != nil {
		return nil, err
	}

	res, err := resultFromModel(model, numGroups)
	if err != nil {
		return nil, err
	}
	res.Theta = theta
	return res, nil
}
