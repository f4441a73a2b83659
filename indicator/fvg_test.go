package indicator

import (
	"testing"

	"github.com/evdnx/btcperp/market"
)

func TestDetectFVGsBullishGap(t *testing.T) {
	// bar0: high=10, bar1: irrelevant, bar2: low=12 > bar0.high=10 -> bullish gap
	high := []float64{10, 10.5, 13}
	low := []float64{9, 9.5, 12}
	closeP := []float64{9.5, 10, 12.5}
	open := []float64{9.2, 9.6, 12.2}

	gaps := DetectFVGs(high, low, closeP, open, 10)
	if len(gaps) != 1 {
		t.Fatalf("expected 1 gap, got %d: %+v", len(gaps), gaps)
	}
	g := gaps[0]
	if g.Type != market.Long {
		t.Fatalf("expected bullish (Long) gap, got %v", g.Type)
	}
	if g.Bottom != 10 || g.Top != 12 {
		t.Fatalf("unexpected gap bounds: %+v", g)
	}
	if g.Midpoint != 11 {
		t.Fatalf("unexpected midpoint: %v", g.Midpoint)
	}
}

func TestDetectFVGsBearishGap(t *testing.T) {
	high := []float64{13, 10.5, 9}
	low := []float64{12, 9.5, 8}
	closeP := []float64{12.5, 10, 8.5}
	open := []float64{12.8, 10.2, 8.8}

	gaps := DetectFVGs(high, low, closeP, open, 10)
	if len(gaps) != 1 {
		t.Fatalf("expected 1 gap, got %d: %+v", len(gaps), gaps)
	}
	g := gaps[0]
	if g.Type != market.Short {
		t.Fatalf("expected bearish (Short) gap, got %v", g.Type)
	}
	if g.Bottom != 9 || g.Top != 12 {
		t.Fatalf("unexpected gap bounds: %+v", g)
	}
}

func TestDetectFVGsNoGapOnOverlappingBars(t *testing.T) {
	high := []float64{10, 10, 10}
	low := []float64{9, 9, 9}
	closeP := []float64{9.5, 9.5, 9.5}
	open := []float64{9.5, 9.5, 9.5}

	gaps := DetectFVGs(high, low, closeP, open, 10)
	if len(gaps) != 0 {
		t.Fatalf("expected no gaps on overlapping bars, got %+v", gaps)
	}
}

func TestDetectFVGsRespectsLookback(t *testing.T) {
	// Gap confirmed at index 2; lookback of 1 should exclude it.
	high := []float64{10, 10.5, 13, 13.1, 13.2}
	low := []float64{9, 9.5, 12, 12.9, 13.0}
	closeP := []float64{9.5, 10, 12.5, 13.0, 13.1}
	open := []float64{9.2, 9.6, 12.2, 13.0, 13.1}

	gaps := DetectFVGs(high, low, closeP, open, 1)
	for _, g := range gaps {
		if g.Index == 2 {
			t.Fatalf("lookback=1 should not have included the gap at index 2")
		}
	}
}
