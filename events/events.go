// Package events holds the structured event types the engine emits on every
// tick (setup detection, order submission/fills, stop-loss moves, scale-in
// cancellations, position closes) plus the Observer interface and an
// in-memory Recorder used by tests and the example binary. Nothing in this
// package formats a string for a human; that is the logger's job.
package events

import (
	"time"

	"github.com/evdnx/btcperp/market"
	"github.com/evdnx/btcperp/position"
)

// SetupDetected reports that a strategy found a valid setup on the current
// candle window, before any position has been opened.
type SetupDetected struct {
	Strategy    position.Strategy
	Direction   market.Side
	Diagnostics position.Setup
	At          time.Time
}

// OrderSubmitted reports that an order belonging to a newly opened position
// was handed to the broker adapter.
type OrderSubmitted struct {
	PositionID string
	Order      position.Order
	At         time.Time
}

// OrderFilled reports a single order fill and the position's resulting
// average entry and total size.
type OrderFilled struct {
	PositionID   string
	OrderType    position.OrderType
	Price        float64
	NewAvgEntry  float64
	NewTotalSize float64
	At           time.Time
}

// SLMoveReason names why a stop-loss moved.
type SLMoveReason string

const (
	ReasonBreakeven SLMoveReason = "breakeven"
	ReasonFVGTrail  SLMoveReason = "fvg_trail"
)

// SLMoved reports a stop-loss migration, either the TCL breakeven move or a
// SMOG FVG trail.
type SLMoved struct {
	PositionID string
	OldSL      float64
	NewSL      float64
	Reason     SLMoveReason
	At         time.Time
}

// ScaleInCancelled reports that TCL's scale-in gate cancelled the remaining
// pending orders on a position.
type ScaleInCancelled struct {
	PositionID     string
	CancelledCount int
	CurrentR       float64
	At             time.Time
}

// PositionClosed reports a position's terminal state: why it closed, the
// realized PnL, and the R-multiple relative to its original stop-loss.
type PositionClosed struct {
	PositionID  string
	Reason      position.CloseReason
	RealizedPnL float64
	RMultiple   float64
	At          time.Time
}

// Observer receives every event the engine emits, in tick order. Each method
// is called synchronously from within Engine.Tick; an Observer must not
// block or it stalls the engine.
type Observer interface {
	OnSetupDetected(SetupDetected)
	OnOrderSubmitted(OrderSubmitted)
	OnOrderFilled(OrderFilled)
	OnSLMoved(SLMoved)
	OnScaleInCancelled(ScaleInCancelled)
	OnPositionClosed(PositionClosed)
}

// Recorder is an in-memory Observer that appends every event it receives, in
// the order received. It is not safe for concurrent use; the engine's
// single-threaded tick model means it never needs to be.
type Recorder struct {
	SetupsDetected  []SetupDetected
	OrdersSubmitted []OrderSubmitted
	OrdersFilled    []OrderFilled
	SLMoves         []SLMoved
	ScaleInCancels  []ScaleInCancelled
	PositionsClosed []PositionClosed
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) OnSetupDetected(e SetupDetected)       { r.SetupsDetected = append(r.SetupsDetected, e) }
func (r *Recorder) OnOrderSubmitted(e OrderSubmitted)     { r.OrdersSubmitted = append(r.OrdersSubmitted, e) }
func (r *Recorder) OnOrderFilled(e OrderFilled)           { r.OrdersFilled = append(r.OrdersFilled, e) }
func (r *Recorder) OnSLMoved(e SLMoved)                   { r.SLMoves = append(r.SLMoves, e) }
func (r *Recorder) OnScaleInCancelled(e ScaleInCancelled) { r.ScaleInCancels = append(r.ScaleInCancels, e) }
func (r *Recorder) OnPositionClosed(e PositionClosed)     { r.PositionsClosed = append(r.PositionsClosed, e) }

// Len returns the total number of events recorded across all kinds, mostly
// useful for "nothing happened" assertions in tests.
func (r *Recorder) Len() int {
	return len(r.SetupsDetected) + len(r.OrdersSubmitted) + len(r.OrdersFilled) +
		len(r.SLMoves) + len(r.ScaleInCancels) + len(r.PositionsClosed)
}
