package indicator

import (
	"testing"

	"github.com/evdnx/btcperp/market"
)

func TestDetectTrendLong(t *testing.T) {
	dir, ok := DetectTrend(105, Def(104), Def(103), Def(102), Def(101))
	if !ok || dir != market.Long {
		t.Fatalf("expected Long, got dir=%v ok=%v", dir, ok)
	}
}

func TestDetectTrendShort(t *testing.T) {
	dir, ok := DetectTrend(95, Def(96), Def(97), Def(98), Def(99))
	if !ok || dir != market.Short {
		t.Fatalf("expected Short, got dir=%v ok=%v", dir, ok)
	}
}

func TestDetectTrendUndefinedOnMixedStack(t *testing.T) {
	_, ok := DetectTrend(100, Def(99), Def(101), Def(98), Def(102))
	if ok {
		t.Fatalf("expected undefined trend on a non-aligned EMA stack")
	}
}

func TestDetectTrendUndefinedWhenAnyEMAUndefined(t *testing.T) {
	_, ok := DetectTrend(105, Def(104), Def(103), Def(102), Undefined)
	if ok {
		t.Fatalf("expected undefined trend when any EMA is undefined")
	}
}

func TestFindTrendExtremes(t *testing.T) {
	high := []float64{10, 12, 9, 15, 11}
	low := []float64{8, 9, 7, 10, 9}
	trendHigh, trendLow := FindTrendExtremes(high, low, market.Long, 3)
	// last 3 bars: high={9,15,11} low={7,10,9}
	if trendHigh != 15 || trendLow != 7 {
		t.Fatalf("got high=%v low=%v, want high=15 low=7", trendHigh, trendLow)
	}
}

func TestTrendMagnitude(t *testing.T) {
	got := TrendMagnitude(110, 100)
	if got != 10 {
		t.Fatalf("magnitude = %v, want 10", got)
	}
	if got := TrendMagnitude(110, 0); got != 0 {
		t.Fatalf("expected 0 for zero low, got %v", got)
	}
}
