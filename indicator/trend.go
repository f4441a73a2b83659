package indicator

import "github.com/evdnx/btcperp/market"

// DetectTrend classifies the latest bar from a 4-EMA stack: long if
// ema9 > ema21 > ema50 > ema200 and close > ema9; short on the strict
// reverse; otherwise undefined (ok=false).
func DetectTrend(close float64, ema9, ema21, ema50, ema200 Value) (market.Side, bool) {
	if !ema9.Defined || !ema21.Defined || !ema50.Defined || !ema200.Defined {
		return "", false
	}
	switch {
	case ema9.V > ema21.V && ema21.V > ema50.V && ema50.V > ema200.V && close > ema9.V:
		return market.Long, true
	case ema9.V < ema21.V && ema21.V < ema50.V && ema50.V < ema200.V && close < ema9.V:
		return market.Short, true
	default:
		return "", false
	}
}

// FindTrendExtremes returns the max high and min low over the last lookback
// bars. direction is accepted for symmetry with the source API; both
// extrema are always returned regardless of it.
func FindTrendExtremes(high, low []float64, direction market.Side, lookback int) (trendHigh, trendLow float64) {
	n := len(high)
	if n == 0 {
		return 0, 0
	}
	start := n - lookback
	if start < 0 {
		start = 0
	}
	trendHigh, trendLow = high[start], low[start]
	for i := start + 1; i < n; i++ {
		if high[i] > trendHigh {
			trendHigh = high[i]
		}
		if low[i] < trendLow {
			trendLow = low[i]
		}
	}
	return trendHigh, trendLow
}

// TrendMagnitude is the percentage size of a high-low range relative to low.
func TrendMagnitude(high, low float64) float64 {
	if low == 0 {
		return 0
	}
	return (high - low) / low * 100
}
