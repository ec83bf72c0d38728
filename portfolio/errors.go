package portfolio

import (
	"errors"
)

var (
	ErrNoReturns             = errors.New("no return matrix")
	ErrInvalidBasketSize     = errors.New("non-positive basket size")
	ErrInvalidLookback       = errors.New("non-positive lookback offset")
	ErrTooFewAssets          = errors.New("not enough assets to fill both baskets")
	ErrTooFewPeriods         = errors.New("not enough periods for the lookback offset")
	ErrRiskFreeLenMismatch   = errors.New("risk free series length does not match returns")
	ErrInvalidAnnualization  = errors.New("non-positive annualization factor")
	ErrNoObservations        = errors.New("no non-missing observations")
)
