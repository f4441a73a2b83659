package strategy

import (
	"time"

	"github.com/evdnx/btcperp/candle"
)

// buildTrendWindow synthesizes n bars compounding pctStep per bar from
// startPrice: a steady, low-volatility trend strong enough to satisfy the
// EMA-stack, ADX and continuation-break checks without ever looking
// parabolic. A positive pctStep produces an uptrend, negative a downtrend.
func buildTrendWindow(n int, startPrice, pctStep float64) *candle.Window {
	w := candle.NewWindow()
	price := startPrice
	prevClose := startPrice
	for i := 0; i < n; i++ {
		open := prevClose
		price = price * (1 + pctStep)
		high := price * 1.001
		low := price * 0.999
		_ = w.Append(candle.Bar{
			Open:      open,
			High:      high,
			Low:       low,
			Close:     price,
			Volume:    1000,
			Timestamp: int64(i + 1),
		})
		prevClose = price
	}
	return w
}

// appendBar appends a single synthetic bar at the next timestamp.
func appendBar(w *candle.Window, open, high, low, close float64) {
	_ = w.Append(candle.Bar{
		Open:      open,
		High:      high,
		Low:       low,
		Close:     close,
		Volume:    1000,
		Timestamp: int64(w.Len() + 1),
	})
}

var fixedNow = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
