package panel

import (
	"errors"
)

var (
	ErrNoData                   = errors.New("no panel data")
	ErrGroupLenMismatch         = errors.New("group key length does not match row count")
	ErrTargetLenMismatch        = errors.New("target length does not match regressor rows")
	ErrThetaOutOfRange          = errors.New("quasi-demeaning weight must be in [0,1]")
	ErrConstColOutOfBounds      = errors.New("constant column is out of bounds")
	ErrInsufficientObservations = errors.New("not enough observations for panel estimation")
	ErrInsufficientGroups       = errors.New("not enough groups for panel estimation")
)
