package indicator

import (
	"math"
	"testing"
)

func TestRSIUndefinedBeforeIndexN(t *testing.T) {
	x := []float64{1, 2, 3}
	out := RSI(x, 5)
	for i, v := range out {
		if v.Defined {
			t.Fatalf("index %d: expected undefined", i)
		}
	}
}

func TestRSIAllGainsIsHundred(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5, 6}
	out := RSI(x, 5)
	if !out[5].Defined || math.Abs(out[5].V-100) > 1e-9 {
		t.Fatalf("RSI with all gains = %+v, want 100", out[5])
	}
}

func TestRSIAllLossesIsZero(t *testing.T) {
	x := []float64{6, 5, 4, 3, 2, 1}
	out := RSI(x, 5)
	if !out[5].Defined || out[5].V != 0 {
		t.Fatalf("RSI with all losses = %+v, want 0", out[5])
	}
}

func TestRSIStaysInBounds(t *testing.T) {
	x := []float64{10, 12, 9, 15, 8, 20, 5, 25, 4, 30, 3, 35}
	out := RSI(x, 4)
	for i, v := range out {
		if v.Defined && (v.V < 0 || v.V > 100) {
			t.Fatalf("RSI out of bounds at %d: %v", i, v.V)
		}
	}
}
