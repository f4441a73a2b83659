package candle

import (
	"errors"
	"testing"
)

func TestAppendRejectsDuplicateTimestamp(t *testing.T) {
	w := NewWindow()
	if err := w.Append(Bar{Close: 100, Timestamp: 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := w.Append(Bar{Close: 101, Timestamp: 1}); !errors.Is(err, ErrDuplicateTimestamp) {
		t.Fatalf("expected ErrDuplicateTimestamp, got %v", err)
	}
	if w.Len() != 1 {
		t.Fatalf("expected duplicate to be rejected, len=%d", w.Len())
	}
}

func TestAppendAllowsRepeatedZeroTimestamp(t *testing.T) {
	w := NewWindow()
	for i := 0; i < 3; i++ {
		if err := w.Append(Bar{Close: float64(i)}); err != nil {
			t.Fatalf("unexpected error on bar %d: %v", i, err)
		}
	}
	if w.Len() != 3 {
		t.Fatalf("expected 3 bars, got %d", w.Len())
	}
}

func TestColumnsAreOldestToNewestCopies(t *testing.T) {
	w := NewWindow()
	_ = w.Append(Bar{High: 10, Low: 5, Close: 8, Open: 6, Timestamp: 1})
	_ = w.Append(Bar{High: 12, Low: 6, Close: 11, Open: 8, Timestamp: 2})

	highs := w.Highs()
	if len(highs) != 2 || highs[0] != 10 || highs[1] != 12 {
		t.Fatalf("unexpected highs: %v", highs)
	}

	// Mutating the returned slice must not affect the window.
	highs[0] = 999
	if w.Highs()[0] != 10 {
		t.Fatalf("Highs() leaked the backing array")
	}
}

func TestTailReturnsLastNOldestFirst(t *testing.T) {
	w := NewWindow()
	for i := 1; i <= 5; i++ {
		_ = w.Append(Bar{Close: float64(i), Timestamp: int64(i)})
	}
	tail := w.Tail(3)
	if len(tail) != 3 {
		t.Fatalf("expected 3 bars, got %d", len(tail))
	}
	if tail[0].Close != 3 || tail[2].Close != 5 {
		t.Fatalf("unexpected tail contents: %+v", tail)
	}
}

func TestTailClampsToWindowLength(t *testing.T) {
	w := NewWindow()
	_ = w.Append(Bar{Close: 1, Timestamp: 1})
	if got := w.Tail(10); len(got) != 1 {
		t.Fatalf("expected clamped tail of 1, got %d", len(got))
	}
}

func TestTailNonPositiveReturnsEmpty(t *testing.T) {
	w := NewWindow()
	_ = w.Append(Bar{Close: 1, Timestamp: 1})
	if got := w.Tail(0); len(got) != 0 {
		t.Fatalf("expected empty tail for n=0, got %v", got)
	}
}

func TestLastReturnsMostRecentBar(t *testing.T) {
	w := NewWindow()
	_ = w.Append(Bar{Close: 1, Timestamp: 1})
	_ = w.Append(Bar{Close: 2, Timestamp: 2})
	if got := w.Last().Close; got != 2 {
		t.Fatalf("Last().Close = %v, want 2", got)
	}
}
