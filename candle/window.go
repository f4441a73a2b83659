// Package candle holds the append-only OHLC window the indicator and
// strategy packages read from, plus the Source interface external candle
// feeds implement.
package candle

import "errors"

// ErrDuplicateTimestamp is returned by Window.Append when a bar's timestamp
// has already been seen. The candle source is responsible for de-duplicating
// upstream; the window enforces it as a last line of defense.
var ErrDuplicateTimestamp = errors.New("candle: duplicate timestamp")

// Bar is a single OHLC(V) bar. Timestamp is a unix-millisecond value; 0 means
// "unspecified" and is never checked for duplicates.
type Bar struct {
	Open, High, Low, Close, Volume float64
	Timestamp                      int64
}

// Window is an append-only, oldest-to-newest sequence of bars. It is owned
// exclusively by the engine (see the concurrency model): strategies only
// ever read from it through the accessor methods below, which return copies,
// never the backing slices.
type Window struct {
	bars []Bar
	seen map[int64]struct{}
}

// NewWindow returns an empty window.
func NewWindow() *Window {
	return &Window{seen: make(map[int64]struct{})}
}

// Append adds a bar to the window. It rejects a bar whose timestamp has
// already been appended (Timestamp == 0 is exempt, for callers that don't
// track wall-clock time).
func (w *Window) Append(b Bar) error {
	if b.Timestamp != 0 {
		if _, ok := w.seen[b.Timestamp]; ok {
			return ErrDuplicateTimestamp
		}
		w.seen[b.Timestamp] = struct{}{}
	}
	w.bars = append(w.bars, b)
	return nil
}

// Len returns the number of bars in the window.
func (w *Window) Len() int { return len(w.bars) }

// Last returns the most recently appended bar. Panics on an empty window;
// callers always check Len first.
func (w *Window) Last() Bar { return w.bars[len(w.bars)-1] }

// Highs, Lows, Closes, Opens, Volumes return oldest-to-newest copies of the
// respective field across the whole window.
func (w *Window) Highs() []float64   { return w.column(func(b Bar) float64 { return b.High }) }
func (w *Window) Lows() []float64    { return w.column(func(b Bar) float64 { return b.Low }) }
func (w *Window) Closes() []float64  { return w.column(func(b Bar) float64 { return b.Close }) }
func (w *Window) Opens() []float64   { return w.column(func(b Bar) float64 { return b.Open }) }
func (w *Window) Volumes() []float64 { return w.column(func(b Bar) float64 { return b.Volume }) }

func (w *Window) column(field func(Bar) float64) []float64 {
	out := make([]float64, len(w.bars))
	for i, b := range w.bars {
		out[i] = field(b)
	}
	return out
}

// Tail returns the last n bars, oldest first. If n >= Len, the whole window
// is returned. n <= 0 returns an empty slice.
func (w *Window) Tail(n int) []Bar {
	if n <= 0 {
		return nil
	}
	if n >= len(w.bars) {
		out := make([]Bar, len(w.bars))
		copy(out, w.bars)
		return out
	}
	out := make([]Bar, n)
	copy(out, w.bars[len(w.bars)-n:])
	return out
}
