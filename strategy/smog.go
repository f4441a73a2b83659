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

// smogMinBars is the minimum window length SMOG needs.
const smogMinBars = 50

// smogSetupFVGLookback bounds how far back DetectSetup looks for a matching
// FVG; smogTrailFVGLookback is the narrower window ManagePosition re-scans
// on every tick to trail the stop.
const (
	smogSetupFVGLookback = 20
	smogTrailFVGLookback = 10
)

// SMOGStrategy implements the Smart Money reversal setup: an RSI-divergence
// + ChoCH + FVG confluence traded as a single order with an FVG-trailed
// stop.
type SMOGStrategy struct {
	Cfg config.SMOGConfig
}

// NewSMOGStrategy builds a SMOGStrategy from a validated config.
func NewSMOGStrategy(cfg config.SMOGConfig) *SMOGStrategy {
	return &SMOGStrategy{Cfg: cfg}
}

// DetectSetup requires at least 50 bars and checks ADX is below threshold
// (ranging market), RSI divergence, a matching ChoCH, and at least one
// matching FVG.
func (s *SMOGStrategy) DetectSetup(w *candle.Window) (SMOGSetup, bool, error) {
	if w.Len() < smogMinBars {
		return SMOGSetup{}, false, errs.ErrInsufficientHistory
	}

	closes := w.Closes()
	highs := w.Highs()
	lows := w.Lows()
	opens := w.Opens()

	adx := indicator.Last(indicator.ADX(highs, lows, closes, s.Cfg.ADXPeriod))
	if !adx.Defined || adx.V >= s.Cfg.ADXThreshold {
		return SMOGSetup{}, false, nil
	}

	rsi := indicator.RSI(closes, s.Cfg.RSIPeriod)
	divergence, ok := indicator.DetectRSIDivergence(closes, rsi)
	if !ok {
		return SMOGSetup{}, false, nil
	}

	choch, ok := indicator.DetectChoCH(highs, lows, closes)
	if !ok || choch.Type != divergence {
		return SMOGSetup{}, false, nil
	}

	fvg, ok := latestFVGOfType(highs, lows, closes, opens, smogSetupFVGLookback, divergence)
	if !ok {
		return SMOGSetup{}, false, nil
	}

	return SMOGSetup{
		Direction:  divergence,
		ADX:        adx.V,
		Divergence: divergence,
		FVG:        fvg,
	}, true, nil
}

// latestFVGOfType returns the most recent FVG matching side within the last
// lookback bars.
func latestFVGOfType(highs, lows, closes, opens []float64, lookback int, side market.Side) (indicator.FVG, bool) {
	gaps := indicator.DetectFVGs(highs, lows, closes, opens, lookback)
	for i := len(gaps) - 1; i >= 0; i-- {
		if gaps[i].Type == side {
			return gaps[i], true
		}
	}
	return indicator.FVG{}, false
}

// CalculateEntries builds the single-order plan: entry at the FVG midpoint,
// SL just beyond the FVG's far edge, TP set to achieve MinRR reward:risk.
func (s *SMOGStrategy) CalculateEntries(setup SMOGSetup, balance float64, openedAt time.Time) (*position.Position, error) {
	entry := setup.FVG.Midpoint

	var sl, tp float64
	if setup.Direction == market.Long {
		sl = setup.FVG.Bottom * 0.999
		riskDist := entry - sl
		tp = entry + s.Cfg.MinRR*riskDist
	} else {
		sl = setup.FVG.Top * 1.001
		riskDist := sl - entry
		tp = entry - s.Cfg.MinRR*riskDist
	}

	riskUSD := balance * s.Cfg.RiskPerTradePct / 100
	pctDistance := risk.PctDistance(entry, sl)
	sizeUSD := risk.NotionalForRisk(riskUSD, pctDistance)
	if sizeUSD <= 0 {
		return nil, errs.ErrSizingFailure
	}

	order := position.NewOrder(setup.Direction, entry, sizeUSD, tp, sl, position.Entry)
	orders := []*position.Order{&order}
	return position.New(position.SMOG, setup.Direction, orders, tp, sl, setup, openedAt), nil
}

// ManagePosition fills the pending entry, then, once filled, trails the
// stop behind the most recent matching FVG found within the last 10 bars.
// The trail only ever moves the stop in the position's favor.
func (s *SMOGStrategy) ManagePosition(pos *position.Position, w *candle.Window) (ManageResult, error) {
	var result ManageResult
	price := w.Last().Close

	filled, err := fillPending(pos, price)
	if err != nil {
		return result, err
	}
	result.FilledOrders = filled

	if pos.TotalSize == 0 {
		return result, nil
	}

	bars := w.Tail(smogTrailFVGLookback)
	highs := make([]float64, len(bars))
	lows := make([]float64, len(bars))
	closes := make([]float64, len(bars))
	opens := make([]float64, len(bars))
	for i, b := range bars {
		highs[i], lows[i], closes[i], opens[i] = b.High, b.Low, b.Close, b.Open
	}

	fvg, ok := latestFVGOfType(highs, lows, closes, opens, smogTrailFVGLookback, pos.Side)
	if !ok {
		return result, nil
	}

	old := pos.SL
	if pos.Side == market.Long && fvg.Bottom > pos.SL {
		pos.SL = fvg.Bottom
	} else if pos.Side == market.Short && fvg.Top < pos.SL {
		pos.SL = fvg.Top
	} else {
		return result, nil
	}

	result.SLMoved = true
	result.OldSL = old
	result.NewSL = pos.SL
	result.MoveReason = ReasonFVGTrail
	return result, nil
}

// ShouldExit reports whether price has crossed the position's current TP or
// SL.
func (s *SMOGStrategy) ShouldExit(pos *position.Position, price float64) (position.CloseReason, bool) {
	return shouldExit(pos, price)
}
