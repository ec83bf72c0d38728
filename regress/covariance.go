package regress

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// CovarianceKind selects one of the closed set of coefficient covariance
// estimators.
type CovarianceKind int

const (
	// IID is the classical Gauss-Markov estimator, σ²(XᵗX)⁻¹, assuming
	// homoskedastic, uncorrelated residuals.
	IID CovarianceKind = iota
	// White is robust to heteroskedasticity but assumes no autocorrelation.
	White
	// NeweyWest is robust to both heteroskedasticity and autocorrelation,
	// weighting lagged autocovariances with a Bartlett kernel.
	NeweyWest
)

func (k CovarianceKind) String() string {
	switch k {
	case IID:
		return "iid"
	case White:
		return "white"
	case NeweyWest:
		return "newey-west"
	}
	return "unknown"
}

// Covariance computes the K×K covariance matrix of the OLS coefficient
// estimator from the fit residuals and the design matrix. The lag count is
// only consumed by the Newey-West estimator and is clamped to T−1.
func Covariance(kind CovarianceKind, residuals []float64, x mat.Matrix, lag int) (*mat.SymDense, error) {
	if x == nil {
		return nil, ErrNoDesignMatrix
	}
	m, n := x.Dims()
	if len(residuals) != m {
		return nil, fmt.Errorf("design matrix has %d rows and residuals have length %d, %w", m, len(residuals), ErrResidualLenMismatch)
	}

	xtxInv, err := invertNormal(x)
	if err != nil {
		return nil, err
	}

	switch kind {
	case IID:
		if m <= n {
			return nil, fmt.Errorf("%d observations for %d regressors, %w", m, n, ErrInsufficientObservations)
		}
		ssr := floats.Dot(residuals, residuals)
		sigma2 := ssr / float64(m-n)
		var cov mat.Dense
		cov.Scale(sigma2, xtxInv)
		return symmetrize(&cov), nil
	case White:
		s := momentOuterSum(x, residuals, false)
		return sandwich(xtxInv, s), nil
	case NeweyWest:
		if lag < 0 {
			return nil, fmt.Errorf("lag count %d, %w", lag, ErrInvalidLag)
		}
		if m <= 1 {
			return nil, fmt.Errorf("%d observations, %w", m, ErrInsufficientObservations)
		}
		if lag > m-1 {
			lag = m - 1
		}
		s := neweyWestSum(x, residuals, lag)
		return sandwich(xtxInv, s), nil
	}
	return nil, fmt.Errorf("kind %d, %w", kind, ErrUnknownCovarianceKind)
}

func invertNormal(x mat.Matrix) (*mat.Dense, error) {
	var xtx mat.Dense
	xtx.Mul(x.T(), x)

	xtxInv := new(mat.Dense)
	if err := xtxInv.Inverse(&xtx); err != nil {
		return nil, fmt.Errorf("inverting normal equations, %w", ErrSingularMatrix)
	}
	return xtxInv, nil
}

// momentOuterSum computes S = Σₜ gₜgₜᵗ over the moment contributions
// gₜ = xₜ·uₜ, optionally mean-centering them first. White's estimator does
// not center; Newey-West does. That asymmetry is intentional and mirrors
// the conventional definitions of the two estimators.
func momentOuterSum(x mat.Matrix, residuals []float64, center bool) *mat.Dense {
	g := momentContributions(x, residuals, center)

	var s mat.Dense
	s.Mul(g.T(), g)
	return &s
}

// momentContributions builds the T×K matrix whose rows are gₜ = xₜ·uₜ.
func momentContributions(x mat.Matrix, residuals []float64, center bool) *mat.Dense {
	m, n := x.Dims()
	g := mat.NewDense(m, n, nil)
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			g.Set(i, j, x.At(i, j)*residuals[i])
		}
	}
	if center {
		for j := 0; j < n; j++ {
			col := mat.Col(nil, j, g)
			mean := stat.Mean(col, nil)
			floats.AddConst(-mean, col)
			g.SetCol(j, col)
		}
	}
	return g
}

// neweyWestSum aggregates the mean-centered lag-0 outer product with
// Bartlett-weighted lagged autocovariances,
// S = Λ₀ + Σ_{l=1..lag} (1 − l/(lag+1))(Λₗ + Λₗᵗ).
func neweyWestSum(x mat.Matrix, residuals []float64, lag int) *mat.Dense {
	m, _ := x.Dims()
	g := momentContributions(x, residuals, true)

	var s mat.Dense
	s.Mul(g.T(), g)

	for l := 1; l <= lag; l++ {
		head := g.Slice(l, m, 0, g.RawMatrix().Cols)
		tail := g.Slice(0, m-l, 0, g.RawMatrix().Cols)

		var lambda mat.Dense
		lambda.Mul(head.T(), tail)

		w := 1.0 - float64(l)/float64(lag+1)

		var sym mat.Dense
		sym.Add(&lambda, lambda.T())
		sym.Scale(w, &sym)
		s.Add(&s, &sym)
	}
	return &s
}

// sandwich computes (XᵗX)⁻¹ S (XᵗX)⁻¹ and symmetrizes the result.
func sandwich(xtxInv, s *mat.Dense) *mat.SymDense {
	var tmp, cov mat.Dense
	tmp.Mul(xtxInv, s)
	cov.Mul(&tmp, xtxInv)
	return symmetrize(&cov)
}

// symmetrize averages a nearly symmetric matrix with its transpose so
// floating-point order of operations cannot leak asymmetry to callers.
func symmetrize(c *mat.Dense) *mat.SymDense {
	n, _ := c.Dims()
	sym := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			sym.SetSym(i, j, 0.5*(c.At(i, j)+c.At(j, i)))
		}
	}
	return sym
}

func stdErrFromCovariance(cov *mat.SymDense) []float64 {
	n, _ := cov.Dims()
	se := make([]float64, n)
	for i := 0; i < n; i++ {
		se[i] = math.Sqrt(cov.At(i, i))
	}
	return se
}
