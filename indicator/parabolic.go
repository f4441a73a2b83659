package indicator

import "math"

// Chosen to sit well above the steady per-bar moves of the synthetic trends
// this module's tests use (see DESIGN.md): a single-bar move beyond
// parabolicSingleBarPct, or a cumulative move beyond parabolicWindowPct
// across parabolicWindowBars bars, is treated as a blow-off move TCL should
// sit out.
const (
	parabolicSingleBarPct = 4.0
	parabolicWindowBars   = 5
	parabolicWindowPct    = 7.0
)

// IsParabolic reports whether the latest bar's move, or the cumulative move
// over the last parabolicWindowBars bars, exceeds a calibrated threshold.
func IsParabolic(close []float64) bool {
	n := len(close)
	if n < 2 {
		return false
	}
	lastPct := pctChange(close[n-2], close[n-1])
	if math.Abs(lastPct) > parabolicSingleBarPct {
		return true
	}

	start := n - 1 - parabolicWindowBars
	if start < 0 {
		start = 0
	}
	cumPct := pctChange(close[start], close[n-1])
	return math.Abs(cumPct) > parabolicWindowPct
}

func pctChange(from, to float64) float64 {
	if from == 0 {
		return 0
	}
	return (to - from) / from * 100
}
