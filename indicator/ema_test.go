package indicator

import (
	"math"
	"testing"
)

func TestEMAUndefinedBeforeSeed(t *testing.T) {
	x := []float64{1, 2, 3}
	out := EMA(x, 5)
	for i, v := range out {
		if v.Defined {
			t.Fatalf("index %d: expected undefined with insufficient history", i)
		}
	}
}

func TestEMASeedIsSimpleMean(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	out := EMA(x, 3)
	if !out[2].Defined || math.Abs(out[2].V-2) > 1e-9 {
		t.Fatalf("seed = %+v, want 2", out[2])
	}
}

func TestEMARecurrence(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	out := EMA(x, 3)
	k := 2.0 / 4.0
	want := (x[3]-2)*k + 2
	if math.Abs(out[3].V-want) > 1e-9 {
		t.Fatalf("EMA[3] = %v, want %v", out[3].V, want)
	}
}

func TestEMAIsPureAcrossCalls(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5, 6, 7}
	a := EMA(x, 3)
	b := EMA(x, 3)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("EMA is not pure at index %d: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestEMAAppendDoesNotRetroactivelyChangePriorValues(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	before := EMA(x, 3)
	after := EMA(append(append([]float64{}, x...), 6), 3)
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("appending changed index %d: %+v vs %+v", i, before[i], after[i])
		}
	}
}
