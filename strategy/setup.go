// Package strategy implements the two setup-detection and position-
// management strategies: TCL (Trend Continuation Line) and SMOG (Smart
// Money reversal). Both are stateless: every exported method takes the
// candle window and/or position by reference and returns a result: none of
// them hold any strategy-internal state between calls, so the engine can
// freely interleave ticks across strategies.
package strategy

import (
	"github.com/evdnx/btcperp/indicator"
	"github.com/evdnx/btcperp/market"
	"github.com/evdnx/btcperp/position"
)

// TCLSetup is the diagnostic snapshot a TCL detection produces, copied into
// Position.Metadata at CalculateEntries time.
type TCLSetup struct {
	Direction      market.Side
	TrendHigh      float64
	TrendLow       float64
	ADX            float64
	TrendMagnitude float64
}

// SetupKind implements position.Setup.
func (TCLSetup) SetupKind() string { return "TCL" }

// SMOGSetup is the diagnostic snapshot a SMOG detection produces.
type SMOGSetup struct {
	Direction  market.Side
	ADX        float64
	Divergence market.Side
	FVG        indicator.FVG
}

// SetupKind implements position.Setup.
func (SMOGSetup) SetupKind() string { return "SMOG" }

// SLMoveReason names why ManagePosition moved a stop-loss.
type SLMoveReason string

const (
	ReasonBreakeven SLMoveReason = "breakeven"
	ReasonFVGTrail  SLMoveReason = "fvg_trail"
)

// ManageResult reports what a ManagePosition call did on a single tick, so
// the engine can translate it into the right sequence of events without
// strategy itself depending on the events package.
type ManageResult struct {
	FilledOrders []*position.Order

	ScaleInCancelled bool
	CancelledCount   int
	CurrentR         float64

	SLMoved    bool
	OldSL      float64
	NewSL      float64
	MoveReason SLMoveReason
}

// fillPending fills every pending order whose entry price the current price
// has crossed, oldest-first, and reports which ones filled. It is shared
// between TCL and SMOG: both use the identical directional crossing rule.
func fillPending(pos *position.Position, price float64) ([]*position.Order, error) {
	var filled []*position.Order
	for _, o := range pos.PendingOrders() {
		crossed := (pos.Side == market.Long && price <= o.EntryPrice) ||
			(pos.Side == market.Short && price >= o.EntryPrice)
		if !crossed {
			continue
		}
		if err := pos.Fill(o, o.EntryPrice); err != nil {
			return filled, err
		}
		pos.TP = o.TP
		filled = append(filled, o)
	}
	return filled, nil
}

// shouldExit is the shared exit rule: long exits at price >= tp (reason tp)
// or price <= sl (reason sl); short is the mirror image. A position with
// nothing filled yet has no exposure and never exits.
func shouldExit(pos *position.Position, price float64) (position.CloseReason, bool) {
	if pos.TotalSize == 0 {
		return "", false
	}
	if pos.Side == market.Long {
		switch {
		case price >= pos.TP:
			return position.ReasonTP, true
		case price <= pos.SL:
			return position.ReasonSL, true
		}
		return "", false
	}
	switch {
	case price <= pos.TP:
		return position.ReasonTP, true
	case price >= pos.SL:
		return position.ReasonSL, true
	}
	return "", false
}
