package strategy

import (
	"time"

	"github.com/evdnx/btcperp/candle"
	"github.com/evdnx/btcperp/config"
	"github.com/evdnx/btcperp/errs"
	"github.com/evdnx/btcperp/indicator"
	"github.com/evdnx/btcperp/market"
	"github.com/evdnx/btcperp/position"
	"github.com/evdnx/btcperp/risk"
)

// tclMinBars is the minimum window length TCL needs: the 200-EMA is the
// longest-lived indicator it reads.
const tclMinBars = 200

// continuationLookback is the bar count each half of the continuation-break
// check compares: the latest 20 bars' extreme against the 20 bars before
// that.
const continuationLookback = 20

// trendExtremesLookback sizes the high/low window used for SL/TP/fib
// placement, matching the source's find_trend_extremes lookback.
const trendExtremesLookback = 100

// TCLStrategy implements the Trend Continuation Line setup: a pullback
// entry into an established trend, sized as a 1/3/2-weighted stack across
// three Fibonacci retracement levels.
type TCLStrategy struct {
	Cfg config.TCLConfig
}

// NewTCLStrategy builds a TCLStrategy from a validated config.
func NewTCLStrategy(cfg config.TCLConfig) *TCLStrategy {
	return &TCLStrategy{Cfg: cfg}
}

// DetectSetup requires at least 200 bars and checks EMA-stack trend
// alignment, ADX strength, trend magnitude, the absence of a parabolic
// move, and a continuation break of the prior 20-bar extreme.
func (s *TCLStrategy) DetectSetup(w *candle.Window) (TCLSetup, bool, error) {
	if w.Len() < tclMinBars {
		return TCLSetup{}, false, errs.ErrInsufficientHistory
	}

	closes := w.Closes()
	highs := w.Highs()
	lows := w.Lows()

	ema9 := indicator.Last(indicator.EMA(closes, 9))
	ema21 := indicator.Last(indicator.EMA(closes, 21))
	ema50 := indicator.Last(indicator.EMA(closes, 50))
	ema200 := indicator.Last(indicator.EMA(closes, 200))

	direction, ok := indicator.DetectTrend(closes[len(closes)-1], ema9, ema21, ema50, ema200)
	if !ok {
		return TCLSetup{}, false, nil
	}

	adx := indicator.Last(indicator.ADX(highs, lows, closes, s.Cfg.ADXPeriod))
	if !adx.Defined || adx.V < s.Cfg.MinADX {
		return TCLSetup{}, false, nil
	}

	trendHigh, trendLow := indicator.FindTrendExtremes(highs, lows, direction, trendExtremesLookback)
	magnitude := indicator.TrendMagnitude(trendHigh, trendLow)
	if magnitude < s.Cfg.MinTrendPct {
		return TCLSetup{}, false, nil
	}

	if indicator.IsParabolic(closes) {
		return TCLSetup{}, false, nil
	}

	if !continuationBreak(highs, lows, direction) {
		return TCLSetup{}, false, nil
	}

	return TCLSetup{
		Direction:      direction,
		TrendHigh:      trendHigh,
		TrendLow:       trendLow,
		ADX:            adx.V,
		TrendMagnitude: magnitude,
	}, true, nil
}

// continuationBreak reports whether the latest continuationLookback bars'
// extreme has broken past the extreme of the continuationLookback bars
// before that, in the setup's direction.
func continuationBreak(highs, lows []float64, direction market.Side) bool {
	n := len(highs)
	if n < 2*continuationLookback {
		return false
	}
	recentStart := n - continuationLookback
	priorStart := n - 2*continuationLookback
	priorEnd := recentStart

	if direction == market.Long {
		return maxSlice(highs[recentStart:]) > maxSlice(highs[priorStart:priorEnd])
	}
	return minSlice(lows[recentStart:]) < minSlice(lows[priorStart:priorEnd])
}

func maxSlice(x []float64) float64 {
	m := x[0]
	for _, v := range x[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

func minSlice(x []float64) float64 {
	m := x[0]
	for _, v := range x[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

// CalculateEntries turns a detected setup into a 3-order stacked position
// plan. openedAt is supplied by the caller (the engine, from the triggering
// candle's timestamp) rather than read from the wall clock here, so the
// strategy stays a pure function of its inputs.
func (s *TCLStrategy) CalculateEntries(setup TCLSetup, balance float64, openedAt time.Time) (*position.Position, error) {
	fib := indicator.FibonacciRetracement(setup.TrendHigh, setup.TrendLow, setup.Direction)
	delta := setup.TrendHigh - setup.TrendLow

	var sl, tpEntry, tpLimit1, tpLimit2 float64
	if setup.Direction == market.Long {
		sl = setup.TrendLow * 0.998
		tpEntry = setup.TrendHigh
		tpLimit1 = fib.Limit1 + delta/s.Cfg.Manage1
		tpLimit2 = fib.Limit2 + delta/s.Cfg.Manage2
	} else {
		sl = setup.TrendHigh * 1.002
		tpEntry = setup.TrendLow
		tpLimit1 = fib.Limit1 - delta/s.Cfg.Manage1
		tpLimit2 = fib.Limit2 - delta/s.Cfg.Manage2
	}

	riskCap := risk.Cap(balance, s.Cfg.RiskPerTradePct, s.Cfg.MaxRiskPct)
	legs := []risk.Leg{
		{Price: fib.Entry, Multiplier: s.Cfg.EntryMult},
		{Price: fib.Limit1, Multiplier: s.Cfg.Limit1Mult},
		{Price: fib.Limit2, Multiplier: s.Cfg.Limit2Mult},
	}
	base := risk.StackedSize(riskCap, sl, legs)
	if base <= 0 {
		return nil, errs.ErrSizingFailure
	}

	entryOrder := position.NewOrder(setup.Direction, fib.Entry, base*s.Cfg.EntryMult, tpEntry, sl, position.Entry)
	limit1Order := position.NewOrder(setup.Direction, fib.Limit1, base*s.Cfg.Limit1Mult, tpLimit1, sl, position.Limit1)
	limit2Order := position.NewOrder(setup.Direction, fib.Limit2, base*s.Cfg.Limit2Mult, tpLimit2, sl, position.Limit2)

	orders := []*position.Order{&entryOrder, &limit1Order, &limit2Order}
	return position.New(position.TCL, setup.Direction, orders, tpEntry, sl, setup, openedAt), nil
}

// ManagePosition runs the scale-in gate, then fills crossed orders, then
// checks for breakeven migration. The scale-in gate returns immediately
// (without filling or checking breakeven) once it cancels, matching the
// source's "cancel and return" behavior for that tick.
func (s *TCLStrategy) ManagePosition(pos *position.Position, w *candle.Window) (ManageResult, error) {
	var result ManageResult
	price := w.Last().Close

	if pos.TotalSize > 0 {
		currentR := currentRMultiple(pos, price)
		if currentR < -0.20 {
			if cancelled := pos.CancelPending(); cancelled > 0 {
				result.ScaleInCancelled = true
				result.CancelledCount = cancelled
				result.CurrentR = currentR
				return result, nil
			}
		}
	}

	filled, err := fillPending(pos, price)
	if err != nil {
		return result, err
	}
	result.FilledOrders = filled

	if !pos.SLMovedToBE && pos.TotalSize > 0 {
		if triggered := breakevenTriggered(pos, w); triggered {
			old := pos.SL
			if pos.Side == market.Long {
				pos.SL = pos.AvgEntry * 1.001
			} else {
				pos.SL = pos.AvgEntry * 0.999
			}
			pos.SLMovedToBE = true
			result.SLMoved = true
			result.OldSL = old
			result.NewSL = pos.SL
			result.MoveReason = ReasonBreakeven
		}
	}

	return result, nil
}

// currentRMultiple is the unrealized move expressed in multiples of the
// position's current risk distance (the live SL, not the original one: once
// breakeven migration has tightened SL, the gate must measure R against
// that tighter distance, not the stale original).
func currentRMultiple(pos *position.Position, price float64) float64 {
	riskPct := risk.PctDistance(pos.AvgEntry, pos.SL)
	if riskPct == 0 {
		return 0
	}
	var unrealizedPct float64
	if pos.Side == market.Long {
		unrealizedPct = (price - pos.AvgEntry) / pos.AvgEntry
	} else {
		unrealizedPct = (pos.AvgEntry - price) / pos.AvgEntry
	}
	return unrealizedPct / riskPct
}

const breakevenBandPct = 0.0025

func breakevenTriggered(pos *position.Position, w *candle.Window) bool {
	for _, b := range w.Tail(5) {
		if pos.Side == market.Long && b.High >= pos.AvgEntry*(1+breakevenBandPct) {
			return true
		}
		if pos.Side == market.Short && b.Low <= pos.AvgEntry*(1-breakevenBandPct) {
			return true
		}
	}
	return false
}

// ShouldExit reports whether price has crossed the position's current TP or
// SL.
func (s *TCLStrategy) ShouldExit(pos *position.Position, price float64) (position.CloseReason, bool) {
	return shouldExit(pos, price)
}
