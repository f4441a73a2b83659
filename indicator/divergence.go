package indicator

import "github.com/evdnx/btcperp/market"

// DetectRSIDivergence compares the two most recent confirmed swing lows (or
// highs) in close against RSI at the same bars, over a bounded lookback.
// Bullish: price makes a lower low while RSI makes a higher low. Bearish:
// price makes a higher high while RSI makes a lower high. Undefined if no
// divergence is confirmed.
func DetectRSIDivergence(close []float64, rsi []Value) (market.Side, bool) {
	n := len(close)
	if n == 0 || len(rsi) != n {
		return "", false
	}
	start := n - choCHLookback
	if start < 2 {
		start = 2
	}
	end := n - 3
	if end < start {
		return "", false
	}

	if lows := closeSwingLows(close, start, end, 2); len(lows) == 2 {
		recent, prior := lows[0], lows[1]
		if recent.price < prior.price &&
			rsi[recent.index].Defined && rsi[prior.index].Defined &&
			rsi[recent.index].V > rsi[prior.index].V {
			return market.Long, true
		}
	}
	if highs := closeSwingHighs(close, start, end, 2); len(highs) == 2 {
		recent, prior := highs[0], highs[1]
		if recent.price > prior.price &&
			rsi[recent.index].Defined && rsi[prior.index].Defined &&
			rsi[recent.index].V < rsi[prior.index].V {
			return market.Short, true
		}
	}
	return "", false
}

// closeSwingLows returns up to count confirmed swing lows in close within
// [start, end], most recent first.
func closeSwingLows(close []float64, start, end, count int) []swingPoint {
	var out []swingPoint
	for i := end; i >= start && len(out) < count; i-- {
		if close[i] < close[i-1] && close[i] < close[i-2] && close[i] < close[i+1] && close[i] < close[i+2] {
			out = append(out, swingPoint{index: i, price: close[i]})
		}
	}
	return out
}

// closeSwingHighs returns up to count confirmed swing highs in close within
// [start, end], most recent first.
func closeSwingHighs(close []float64, start, end, count int) []swingPoint {
	var out []swingPoint
	for i := end; i >= start && len(out) < count; i-- {
		if close[i] > close[i-1] && close[i] > close[i-2] && close[i] > close[i+1] && close[i] > close[i+2] {
			out = append(out, swingPoint{index: i, price: close[i]})
		}
	}
	return out
}
