// Package engine implements the per-tick dispatcher: ingest a candle, poll
// each strategy with no active position for a setup, manage every active
// position through fills/SL-migration/trailing, and emit exits.
// The engine is strategy-agnostic and holds no strategy-internal state: it
// owns the candle window, the broker adapter, and the live position table;
// TCLStrategy and SMOGStrategy are stateless computation invoked by name.
package engine

import (
	"context"
	"errors"
	"time"

	"github.com/evdnx/btcperp/broker"
	"github.com/evdnx/btcperp/candle"
	"github.com/evdnx/btcperp/config"
	"github.com/evdnx/btcperp/errs"
	"github.com/evdnx/btcperp/events"
	"github.com/evdnx/btcperp/logger"
	"github.com/evdnx/btcperp/market"
	"github.com/evdnx/btcperp/metrics"
	"github.com/evdnx/btcperp/position"
	"github.com/evdnx/btcperp/strategy"
)

// Engine ties the candle window, both strategies, the broker adapter and any
// registered observers together. It processes one tick at a time to
// completion: no suspension point inside setup detection, fills or exit
// decisions, only at the boundary between ticks (Run's call to
// source.Next) and inside the broker adapter itself.
type Engine struct {
	window *candle.Window
	broker broker.Broker
	log    logger.Logger

	tcl  *strategy.TCLStrategy
	smog *strategy.SMOGStrategy

	positions map[position.Strategy]*position.Position
	observers []events.Observer
}

// New builds an Engine wired to br for order submission/cancellation/balance
// and log for diagnostics. Observers can also be attached later via
// AddObserver.
func New(tclCfg config.TCLConfig, smogCfg config.SMOGConfig, br broker.Broker, log logger.Logger, obs ...events.Observer) *Engine {
	return &Engine{
		window:    candle.NewWindow(),
		broker:    br,
		log:       log,
		tcl:       strategy.NewTCLStrategy(tclCfg),
		smog:      strategy.NewSMOGStrategy(smogCfg),
		positions: make(map[position.Strategy]*position.Position),
		observers: obs,
	}
}

// AddObserver registers an additional observer. Not safe to call
// concurrently with Tick/Run.
func (e *Engine) AddObserver(o events.Observer) {
	e.observers = append(e.observers, o)
}

// Window exposes the engine's candle window for read-only inspection (e.g.
// by the example binary's status output).
func (e *Engine) Window() *candle.Window { return e.window }

// Position returns the currently active position for a strategy, or nil if
// none is open.
func (e *Engine) Position(s position.Strategy) *position.Position { return e.positions[s] }

// Run drives the engine from a candle source until the source is exhausted
// or returns an error. The only context-observing suspension point outside
// the broker adapter is the wait for the next candle.
func (e *Engine) Run(ctx context.Context, src candle.Source) error {
	for {
		bar, ok, err := src.Next(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := e.Tick(ctx, bar); err != nil {
			return err
		}
	}
}

// Tick processes one candle to completion: append it to the window, poll
// for new setups, manage every open position, and emit exits. It returns a
// non-nil error only for ErrInvariantViolation: the caller must halt
// the run loop on that, never retry.
func (e *Engine) Tick(ctx context.Context, bar candle.Bar) error {
	if err := e.window.Append(bar); err != nil {
		if errors.Is(err, candle.ErrDuplicateTimestamp) {
			return nil
		}
		return err
	}

	at := time.UnixMilli(bar.Timestamp)

	if e.positions[position.TCL] == nil {
		if err := e.tryOpenTCL(ctx, at); err != nil {
			return err
		}
	}
	if e.positions[position.SMOG] == nil {
		if err := e.tryOpenSMOG(ctx, at); err != nil {
			return err
		}
	}

	for strat, pos := range e.positions {
		if pos == nil {
			continue
		}
		if err := e.manage(ctx, strat, pos, bar.Close, at); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) tryOpenTCL(ctx context.Context, at time.Time) error {
	setup, ok, err := e.tcl.DetectSetup(e.window)
	if err != nil {
		if errors.Is(err, errs.ErrInsufficientHistory) {
			return nil
		}
		return err
	}
	if !ok {
		return nil
	}
	metrics.SetupsDetected.WithLabelValues(string(position.TCL)).Inc()
	e.emitSetupDetected(position.TCL, setup.Direction, setup, at)

	balance, err := e.broker.Balance(ctx)
	if err != nil {
		e.log.Warn("engine: balance query failed, retrying next tick", logger.Err(err))
		return nil
	}

	pos, err := e.tcl.CalculateEntries(setup, balance, at)
	if err != nil {
		if errors.Is(err, errs.ErrSizingFailure) {
			e.log.Warn("tcl: sizing failure, no position opened")
			return nil
		}
		return err
	}
	return e.openPosition(ctx, position.TCL, pos, at)
}

func (e *Engine) tryOpenSMOG(ctx context.Context, at time.Time) error {
	setup, ok, err := e.smog.DetectSetup(e.window)
	if err != nil {
		if errors.Is(err, errs.ErrInsufficientHistory) {
			return nil
		}
		return err
	}
	if !ok {
		return nil
	}
	metrics.SetupsDetected.WithLabelValues(string(position.SMOG)).Inc()
	e.emitSetupDetected(position.SMOG, setup.Direction, setup, at)

	balance, err := e.broker.Balance(ctx)
	if err != nil {
		e.log.Warn("engine: balance query failed, retrying next tick", logger.Err(err))
		return nil
	}

	pos, err := e.smog.CalculateEntries(setup, balance, at)
	if err != nil {
		if errors.Is(err, errs.ErrSizingFailure) {
			e.log.Warn("smog: sizing failure, no position opened")
			return nil
		}
		return err
	}
	return e.openPosition(ctx, position.SMOG, pos, at)
}

// openPosition submits every constituent order to the broker and, only if
// every submission succeeds, registers the position as active. A submission
// failure (BrokerFailure) is treated as transient: the position is
// discarded rather than half-registered, and DetectSetup will naturally
// recompute and retry the identical deterministic decision on the next tick.
func (e *Engine) openPosition(ctx context.Context, strat position.Strategy, pos *position.Position, at time.Time) error {
	for _, o := range pos.Orders {
		id, err := e.broker.SubmitOrder(ctx, *o)
		if err != nil {
			e.log.Warn("engine: order submission failed, retrying next tick",
				logger.String("strategy", string(strat)), logger.Err(err))
			return nil
		}
		o.ID = id
		metrics.OrdersSubmitted.WithLabelValues(string(strat)).Inc()
		e.emit(func(ob events.Observer) {
			ob.OnOrderSubmitted(events.OrderSubmitted{PositionID: pos.ID, Order: *o, At: at})
		})
	}
	e.positions[strat] = pos
	metrics.PositionsOpen.WithLabelValues(string(strat)).Set(1)
	return nil
}

func (e *Engine) manage(ctx context.Context, strat position.Strategy, pos *position.Position, price float64, at time.Time) error {
	var result strategy.ManageResult
	var err error

	switch strat {
	case position.TCL:
		result, err = e.tcl.ManagePosition(pos, e.window)
	case position.SMOG:
		result, err = e.smog.ManagePosition(pos, e.window)
	}
	if err != nil {
		// ManagePosition only ever fails with ErrInvariantViolation (a fill
		// attempted on a closed/foreign/non-pending order). That is fatal:
		// propagate it up so Run halts rather than keep trading a corrupt
		// position.
		return err
	}

	if result.ScaleInCancelled {
		metrics.ScaleInCancellations.WithLabelValues(string(strat)).Inc()
		for _, o := range pos.Orders {
			if o.Status == position.Cancelled && o.ID != "" {
				if cerr := e.broker.CancelOrder(ctx, o.ID); cerr != nil {
					e.log.Warn("engine: cancel order failed, will retry next tick", logger.Err(cerr))
				}
			}
		}
		e.emit(func(ob events.Observer) {
			ob.OnScaleInCancelled(events.ScaleInCancelled{
				PositionID:     pos.ID,
				CancelledCount: result.CancelledCount,
				CurrentR:       result.CurrentR,
				At:             at,
			})
		})
	}

	for _, o := range result.FilledOrders {
		metrics.OrdersFilled.WithLabelValues(string(strat)).Inc()
		e.emit(func(ob events.Observer) {
			ob.OnOrderFilled(events.OrderFilled{
				PositionID:   pos.ID,
				OrderType:    o.OrderType,
				Price:        o.EntryPrice,
				NewAvgEntry:  pos.AvgEntry,
				NewTotalSize: pos.TotalSize,
				At:           at,
			})
		})
	}

	if result.SLMoved {
		reason := events.ReasonBreakeven
		if result.MoveReason == strategy.ReasonFVGTrail {
			reason = events.ReasonFVGTrail
		}
		e.emit(func(ob events.Observer) {
			ob.OnSLMoved(events.SLMoved{
				PositionID: pos.ID,
				OldSL:      result.OldSL,
				NewSL:      result.NewSL,
				Reason:     reason,
				At:         at,
			})
		})
	}

	var reason position.CloseReason
	var exit bool
	switch strat {
	case position.TCL:
		reason, exit = e.tcl.ShouldExit(pos, price)
	case position.SMOG:
		reason, exit = e.smog.ShouldExit(pos, price)
	}
	if !exit {
		return nil
	}

	pos.Close(price, reason)
	if adj, ok := e.broker.(interface{ AdjustBalance(float64) }); ok {
		adj.AdjustBalance(pos.PnL)
	}
	delete(e.positions, strat)
	metrics.PositionsOpen.WithLabelValues(string(strat)).Set(0)
	e.emit(func(ob events.Observer) {
		ob.OnPositionClosed(events.PositionClosed{
			PositionID:  pos.ID,
			Reason:      reason,
			RealizedPnL: pos.PnL,
			RMultiple:   pos.RMultiple,
			At:          at,
		})
	})
	return nil
}

func (e *Engine) emitSetupDetected(strat position.Strategy, dir market.Side, setup position.Setup, at time.Time) {
	e.emit(func(ob events.Observer) {
		ob.OnSetupDetected(events.SetupDetected{
			Strategy:    strat,
			Direction:   dir,
			Diagnostics: setup,
			At:          at,
		})
	})
}

func (e *Engine) emit(fn func(events.Observer)) {
	for _, ob := range e.observers {
		fn(ob)
	}
}
