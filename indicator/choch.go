package indicator

import "github.com/evdnx/btcperp/market"

// choCHLookback bounds how far back DetectChoCH and DetectRSIDivergence look
// for a confirmed swing pair.
const choCHLookback = 20

// ChoCHResult is the Change-of-Character signal: a confirmed break of a
// prior swing point opposite the prevailing micro-trend.
type ChoCHResult struct {
	Type market.Side
}

type swingPoint struct {
	index int
	price float64
}

// DetectChoCH looks at the most recent confirmed swing high and swing low
// within a bounded lookback. Whichever swing formed more recently tells us
// the prevailing micro-trend; a ChoCH fires when the latest close has broken
// past the *other*, older swing point:
//   - swing high more recent than swing low -> micro-trend is up; a close
//     below the swing low is a bearish ChoCH.
//   - swing low more recent than swing high -> micro-trend is down; a close
//     above the swing high is a bullish ChoCH.
func DetectChoCH(high, low, close []float64) (ChoCHResult, bool) {
	n := len(close)
	if n == 0 {
		return ChoCHResult{}, false
	}
	start := n - choCHLookback
	if start < 2 {
		start = 2
	}
	end := n - 3 // swings need 2 confirming bars after them
	if end < start {
		return ChoCHResult{}, false
	}

	swingHigh, okHigh := lastSwingHigh(high, start, end)
	swingLow, okLow := lastSwingLow(low, start, end)
	if !okHigh || !okLow {
		return ChoCHResult{}, false
	}

	last := close[n-1]
	switch {
	case swingHigh.index > swingLow.index && last < swingLow.price:
		return ChoCHResult{Type: market.Short}, true
	case swingLow.index > swingHigh.index && last > swingHigh.price:
		return ChoCHResult{Type: market.Long}, true
	default:
		return ChoCHResult{}, false
	}
}

func lastSwingHigh(high []float64, start, end int) (swingPoint, bool) {
	for i := end; i >= start; i-- {
		if high[i] > high[i-1] && high[i] > high[i-2] && high[i] > high[i+1] && high[i] > high[i+2] {
			return swingPoint{index: i, price: high[i]}, true
		}
	}
	return swingPoint{}, false
}

func lastSwingLow(low []float64, start, end int) (swingPoint, bool) {
	for i := end; i >= start; i-- {
		if low[i] < low[i-1] && low[i] < low[i-2] && low[i] < low[i+1] && low[i] < low[i+2] {
			return swingPoint{index: i, price: low[i]}, true
		}
	}
	return swingPoint{}, false
}
