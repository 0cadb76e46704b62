package backtest

import "errors"

var (
	// ErrNoData means no bars fell inside the requested range. This is
	// terminal for the whole run, never silently skipped.
	ErrNoData = errors.New("no bars in requested range")

	// ErrInvalidParameter means a parameter set failed validation before
	// any evaluation started.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrInvalidOpen means a bar carried a non-positive open price, which
	// violates the day evaluator's precondition.
	ErrInvalidOpen = errors.New("open price must be positive")
)
