package indicator

import "github.com/evdnx/btcperp/market"

// FVG is a Fair Value Gap: a 3-bar pattern where the middle bar's range does
// not overlap the outer bars. Index is the index of the gap's confirming bar
// (the "i" in the detection rule below).
type FVG struct {
	Index       int
	Type        market.Side
	Top, Bottom float64
	Midpoint    float64
}

// DetectFVGs scans the last lookback bars for Fair Value Gaps. A bullish gap
// exists at bar i (2 <= i <= last) when low[i] > high[i-2] (bottom = high[i-2],
// top = low[i]); a bearish gap is the symmetric high[i] < low[i-2]. Results
// are returned oldest first.
func DetectFVGs(high, low, close, open []float64, lookback int) []FVG {
	n := len(high)
	var gaps []FVG
	if n < 3 {
		return gaps
	}
	start := n - lookback
	if start < 2 {
		start = 2
	}
	for i := start; i < n; i++ {
		switch {
		case low[i] > high[i-2]:
			bottom, top := high[i-2], low[i]
			gaps = append(gaps, FVG{
				Index:    i,
				Type:     market.Long,
				Top:      top,
				Bottom:   bottom,
				Midpoint: (top + bottom) / 2,
			})
		case high[i] < low[i-2]:
			bottom, top := high[i], low[i-2]
			gaps = append(gaps, FVG{
				Index:    i,
				Type:     market.Short,
				Top:      top,
				Bottom:   bottom,
				Midpoint: (top + bottom) / 2,
			})
		}
	}
	return gaps
}
