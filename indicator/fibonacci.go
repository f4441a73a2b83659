package indicator

import "github.com/evdnx/btcperp/market"

// FibLevels holds the three stacked entry prices TCL trades from: 0.236
// (Entry), 0.382 (Limit1) and 0.618 (Limit2) retracement of a high-low range.
type FibLevels struct {
	Entry, Limit1, Limit2 float64
}

const (
	fibEntryRatio  = 0.236
	fibLimit1Ratio = 0.382
	fibLimit2Ratio = 0.618
)

// FibonacciRetracement returns pullback prices below high (for longs) or
// pullup prices above low (for shorts) at the 0.236/0.382/0.618 ratios of
// the high-low range.
func FibonacciRetracement(high, low float64, direction market.Side) FibLevels {
	rng := high - low
	if direction == market.Long {
		return FibLevels{
			Entry:  high - rng*fibEntryRatio,
			Limit1: high - rng*fibLimit1Ratio,
			Limit2: high - rng*fibLimit2Ratio,
		}
	}
	return FibLevels{
		Entry:  low + rng*fibEntryRatio,
		Limit1: low + rng*fibLimit1Ratio,
		Limit2: low + rng*fibLimit2Ratio,
	}
}
