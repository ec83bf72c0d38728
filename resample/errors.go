package resample

import (
	"errors"
)

var (
	ErrNoRandSource        = errors.New("no random source")
	ErrNoDesignMatrix      = errors.New("no design matrix")
	ErrInvalidSimCount     = errors.New("non-positive simulation count")
	ErrInvalidBlockSize    = errors.New("non-positive block size")
	ErrNoObservations      = errors.New("no observations to resample")
	ErrTargetLenMismatch   = errors.New("target length does not match design matrix rows")
	ErrCoefLenMismatch     = errors.New("coefficient length does not match design matrix columns")
	ErrResidualLenMismatch = errors.New("residual length does not match design matrix rows")
)
