// Package errs holds the sentinel error kinds shared across the engine.
// Detection and sizing never use these for ordinary "no result" control
// flow (they return (T, bool) for that); these are reserved for the four
// error kinds the design calls out explicitly.
package errs

import "errors"

var (
	// ErrInsufficientHistory marks "not enough candles for this indicator
	// or setup". Callers recover locally: no setup, no event.
	ErrInsufficientHistory = errors.New("insufficient candle history")

	// ErrSizingFailure marks a risk factor <= 0 or a zero/negative SL
	// distance. No position is opened; callers log a warning.
	ErrSizingFailure = errors.New("position sizing failed")

	// ErrInvariantViolation marks a breach of a position invariant (for
	// example, filling an order on an already-closed position). This is
	// fatal: the engine halts rather than continue trading with a
	// corrupt position.
	ErrInvariantViolation = errors.New("position invariant violated")

	// ErrBrokerFailure marks a transient failure from the broker adapter.
	// The engine treats the intended fill/exit as not-yet-applied and
	// retries the same deterministic decision on the next tick.
	ErrBrokerFailure = errors.New("broker adapter failure")
)
