package position

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/evdnx/btcperp/errs"
	"github.com/evdnx/btcperp/market"
)

// Strategy names the strategy that owns a position.
type Strategy string

const (
	TCL  Strategy = "TCL"
	SMOG Strategy = "SMOG"
)

// Status is a position's lifecycle state. Open is the only state orders can
// still be filled or cancelled in; once Closed no field on the position may
// change again.
type Status string

const (
	Open   Status = "open"
	Closed Status = "closed"
)

// CloseReason is why a position was closed.
type CloseReason string

const (
	ReasonTP CloseReason = "tp"
	ReasonSL CloseReason = "sl"
)

// Setup is the marker interface for the tagged union of per-strategy setup
// snapshots (TCLSetup / SMOGSetup in package strategy) that gets copied into
// Position.Metadata. It replaces the source's generic metadata dict with a
// closed, compile-time-checked set of shapes.
type Setup interface {
	SetupKind() string
}

// Position is the mutable record the engine owns for the lifetime of a
// trade. CalculateEntries creates it, ManagePosition updates it in place
// through the pointer the engine passes in, and only the engine adds it to
// or removes it from its live position table.
type Position struct {
	ID          string
	Strategy    Strategy
	Side        market.Side
	Orders      []*Order
	AvgEntry    float64
	TotalSize   float64
	TP          float64
	SL          float64
	OriginalSL  float64
	SLMovedToBE bool
	OpenedAt    time.Time
	PnL         float64
	RMultiple   float64
	Status      Status
	Reason      CloseReason
	Metadata    Setup
}

// New builds an open position from a fully-formed order plan. OriginalSL is
// captured here, once, from the supplied sl; it is never written again
// after this call.
func New(strategy Strategy, side market.Side, orders []*Order, tp, sl float64, metadata Setup, openedAt time.Time) *Position {
	return &Position{
		ID:         uuid.NewString(),
		Strategy:   strategy,
		Side:       side,
		Orders:     orders,
		TP:         tp,
		SL:         sl,
		OriginalSL: sl,
		OpenedAt:   openedAt,
		Status:     Open,
		Metadata:   metadata,
	}
}

// Fill marks order as filled at fillPrice and recomputes AvgEntry/TotalSize
// per the notional-weighted-mean invariant. It is an invariant violation to
// fill an order that isn't Pending, doesn't belong to this position, or
// belongs to an already-closed position.
func (p *Position) Fill(order *Order, fillPrice float64) error {
	if p.Status == Closed {
		return fmt.Errorf("%w: fill on closed position %s", errs.ErrInvariantViolation, p.ID)
	}
	if order.Status != Pending {
		return fmt.Errorf("%w: fill on non-pending order %s (%s)", errs.ErrInvariantViolation, order.ID, order.Status)
	}
	if !p.owns(order) {
		return fmt.Errorf("%w: order %s does not belong to position %s", errs.ErrInvariantViolation, order.ID, p.ID)
	}

	oldNotional := 0.0
	if p.TotalSize > 0 {
		oldNotional = p.AvgEntry * p.TotalSize
	}
	newNotional := fillPrice * order.SizeUSD

	order.Status = Filled
	p.TotalSize += order.SizeUSD
	if p.TotalSize > 0 {
		p.AvgEntry = (oldNotional + newNotional) / p.TotalSize
	} else {
		p.AvgEntry = fillPrice
	}
	return nil
}

func (p *Position) owns(order *Order) bool {
	for _, o := range p.Orders {
		if o == order {
			return true
		}
	}
	return false
}

// UnrealizedPnL is the mark-to-market PnL in USD at the given price. Returns
// 0 when nothing has filled yet.
func (p *Position) UnrealizedPnL(price float64) float64 {
	if p.TotalSize == 0 {
		return 0
	}
	if p.Side == market.Long {
		return (price - p.AvgEntry) / p.AvgEntry * p.TotalSize
	}
	return (p.AvgEntry - price) / p.AvgEntry * p.TotalSize
}

// Close marks the position closed at price for reason, recording final PnL
// and the R-multiple realized relative to OriginalSL. Once closed, no field
// on the position changes again.
func (p *Position) Close(price float64, reason CloseReason) {
	if p.Status == Closed {
		return
	}
	p.PnL = p.UnrealizedPnL(price)
	p.RMultiple = rMultiple(p.Side, p.AvgEntry, p.OriginalSL, price)
	p.Status = Closed
	p.Reason = reason
}

func rMultiple(side market.Side, avgEntry, originalSL, price float64) float64 {
	if avgEntry == 0 {
		return 0
	}
	riskPct := (avgEntry - originalSL) / avgEntry
	if side == market.Short {
		riskPct = -riskPct
	}
	if riskPct == 0 {
		return 0
	}
	var movePct float64
	if side == market.Long {
		movePct = (price - avgEntry) / avgEntry
	} else {
		movePct = (avgEntry - price) / avgEntry
	}
	return movePct / riskPct
}

// PendingOrders returns the orders still awaiting a fill.
func (p *Position) PendingOrders() []*Order {
	var out []*Order
	for _, o := range p.Orders {
		if o.Status == Pending {
			out = append(out, o)
		}
	}
	return out
}

// CancelPending cancels every pending order and returns how many were
// cancelled.
func (p *Position) CancelPending() int {
	n := 0
	for _, o := range p.Orders {
		if o.Status == Pending {
			o.Status = Cancelled
			n++
		}
	}
	return n
}
