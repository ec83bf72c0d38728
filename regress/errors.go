package regress

import (
	"errors"
)

var (
	ErrNoOptions                = errors.New("no initialized model options")
	ErrNoDesignMatrix           = errors.New("no design matrix")
	ErrNoTargetMatrix           = errors.New("no target matrix")
	ErrTargetLenMismatch        = errors.New("target length does not match design matrix rows")
	ErrResidualLenMismatch      = errors.New("residual length does not match design matrix rows")
	ErrFeatureLenMismatch       = errors.New("number of features does not match number of model coefficients")
	ErrSingularMatrix           = errors.New("design matrix is not full column rank")
	ErrInsufficientObservations = errors.New("not enough observations")
	ErrInvalidLag               = errors.New("negative lag count")
	ErrNotFitted                = errors.New("model has not been fit")
	ErrUnknownCovarianceKind    = errors.New("unknown covariance kind")
)
