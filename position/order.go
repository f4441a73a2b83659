// Package position holds the Order/Position value types and the invariants
// that govern how a stacked order plan turns into fills, average entry and
// realized PnL. Strategies compute positions; once a position is open the
// engine owns it and hands it to the owning strategy's ManagePosition, which
// mutates it in place.
package position

import "github.com/evdnx/btcperp/market"

// OrderType distinguishes the legs of a stacked entry plan.
type OrderType string

const (
	Entry  OrderType = "entry"
	Limit1 OrderType = "limit1"
	Limit2 OrderType = "limit2"
)

// OrderStatus tracks an order's lifecycle. Pending is the only non-terminal
// state; once Filled or Cancelled an order never changes status again.
type OrderStatus string

const (
	Pending   OrderStatus = "pending"
	Filled    OrderStatus = "filled"
	Cancelled OrderStatus = "cancelled"
)

// Order is one leg of a position's entry plan. Side, EntryPrice, SizeUSD,
// TP, SL and OrderType are fixed at creation; Status is the only mutable
// field.
type Order struct {
	ID         string
	Side       market.Side
	EntryPrice float64
	SizeUSD    float64
	TP         float64
	SL         float64
	OrderType  OrderType
	Status     OrderStatus
}

// NewOrder builds a pending order. ID is left for the caller (typically the
// engine, via uuid) to assign before the order is submitted to a broker.
func NewOrder(side market.Side, entryPrice, sizeUSD, tp, sl float64, orderType OrderType) Order {
	return Order{
		Side:       side,
		EntryPrice: entryPrice,
		SizeUSD:    sizeUSD,
		TP:         tp,
		SL:         sl,
		OrderType:  orderType,
		Status:     Pending,
	}
}
