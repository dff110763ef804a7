package engine

import "errors"

// All engine failures are recoverable by the caller: the operation reports a
// typed error and leaves state untouched.
var (
	ErrInvalidAmount        = errors.New("amount must be greater than zero")
	ErrInsufficientFunds    = errors.New("insufficient usdc balance")
	ErrInsufficientPosition = errors.New("insufficient position size")
	ErrCapacityExceeded     = errors.New("maximum agent count reached")
	ErrInsufficientBalance  = errors.New("insufficient user balance")
	ErrUnknownAsset         = errors.New("unknown asset")
)
